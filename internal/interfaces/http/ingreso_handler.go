package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/dulceria/dulces-api/internal/application/dto"
	"github.com/dulceria/dulces-api/internal/application/ingreso"
	"github.com/dulceria/dulces-api/internal/domain"
)

// IngresoHandler maneja las peticiones HTTP del flujo de ingreso.
type IngresoHandler struct {
	uc *ingreso.UseCase
}

// NewIngresoHandler construye el handler.
func NewIngresoHandler(uc *ingreso.UseCase) *IngresoHandler {
	return &IngresoHandler{uc: uc}
}

// Resolver godoc
// @Summary      Resolver un código escaneado
// @Description  Devuelve los campos que el operador debe capturar: alta
// @Description  completa si el código es nuevo, cajas adicionales si ya existe.
// @Tags         ingreso
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResolverCodigoRequest  true  "Código detectado"
// @Success      200   {object}  dto.ResolucionIngresoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ingreso/resolver [post]
func (h *IngresoHandler) Resolver(c *fiber.Ctx) error {
	var in dto.ResolverCodigoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.ResolverCodigo(in.Codigo)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "codigo es requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if !res.Existe {
		return c.JSON(dto.ResolucionIngresoResponse{
			Estado: "nuevo",
			Campos: []dto.CampoRequerido{
				{Nombre: "nombre", Tipo: "texto"},
				{Nombre: "cajas", Tipo: "entero"},
				{Nombre: "piezas_por_caja", Tipo: "entero"},
			},
		})
	}
	return c.JSON(dto.ResolucionIngresoResponse{
		Estado: "existente",
		Campos: []dto.CampoRequerido{{Nombre: "cajas_adicionales", Tipo: "entero"}},
		Dulce:  dto.ToDulceResponse(res.Dulce),
	})
}

// ConfirmarNuevo godoc
// @Summary      Dar de alta un dulce nuevo
// @Tags         ingreso
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConfirmarNuevoRequest  true  "Datos capturados"
// @Success      201   {object}  dto.IngresoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ingreso/nuevo [post]
func (h *IngresoHandler) ConfirmarNuevo(c *fiber.Ctx) error {
	var in dto.ConfirmarNuevoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.ConfirmarNuevo(
		in.Codigo, in.Nombre,
		dto.ParseCantidad(in.Cajas),
		dto.ParseCantidad(in.PiezasPorCaja),
	)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "codigo es requerido"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el código ya fue dado de alta"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	d := res.Dulce
	return c.Status(fiber.StatusCreated).JSON(dto.IngresoResponse{
		Aplicado: true,
		Dulce:    dto.ToDulceResponse(d),
		Mensaje:  mensajeAlta(d.Nombre, d.Cajas, d.Total),
	})
}

// ConfirmarExistente godoc
// @Summary      Sumar cajas a un dulce existente
// @Description  Una cantidad no positiva o no numérica no escribe nada y
// @Description  responde aplicado=false, igual que cerrar el prompt sin datos.
// @Tags         ingreso
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConfirmarExistenteRequest  true  "Cajas adicionales"
// @Success      200   {object}  dto.IngresoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ingreso/existente [post]
func (h *IngresoHandler) ConfirmarExistente(c *fiber.Ctx) error {
	var in dto.ConfirmarExistenteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.ConfirmarExistente(in.Codigo, dto.ParseCantidad(in.CajasAdicionales))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "codigo es requerido"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "dulce no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if !res.Aplicado {
		return c.JSON(dto.IngresoResponse{Aplicado: false, Mensaje: "sin cambios"})
	}
	d := res.Dulce
	return c.JSON(dto.IngresoResponse{
		Aplicado: true,
		Dulce:    dto.ToDulceResponse(d),
		Mensaje:  mensajeIncremento(d.Nombre),
	})
}

func mensajeAlta(nombre string, cajas, total int) string {
	return fmt.Sprintf("%q agregado con %d cajas (%d piezas)", nombre, cajas, total)
}

func mensajeIncremento(nombre string) string {
	return fmt.Sprintf("%q actualizado con cajas adicionales", nombre)
}
