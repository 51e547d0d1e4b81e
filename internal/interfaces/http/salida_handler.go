package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dulceria/dulces-api/internal/application/dto"
	"github.com/dulceria/dulces-api/internal/application/salida"
	"github.com/dulceria/dulces-api/internal/domain"
)

// SalidaHandler maneja las peticiones HTTP del flujo de salida.
type SalidaHandler struct {
	uc *salida.UseCase
}

// NewSalidaHandler construye el handler.
func NewSalidaHandler(uc *salida.UseCase) *SalidaHandler {
	return &SalidaHandler{uc: uc}
}

// AbrirSesion godoc
// @Summary      Abrir una sesión de salida con ticket vacío
// @Tags         salida
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AbrirSesionRequest  true  "Receptor"
// @Success      201   {object}  dto.SesionResponse
// @Router       /api/salida/sesiones [post]
func (h *SalidaHandler) AbrirSesion(c *fiber.Ctx) error {
	var in dto.AbrirSesionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	s := h.uc.Abrir(in.Receptor)
	return c.Status(fiber.StatusCreated).JSON(dto.SesionResponse{
		SesionID: s.ID,
		Receptor: s.Receptor,
		Creada:   s.Creada,
	})
}

// Resumen godoc
// @Summary      Consultar el ticket actual de la sesión
// @Tags         salida
// @Produce      json
// @Param        id  path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.TicketResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/salida/sesiones/{id} [get]
func (h *SalidaHandler) Resumen(c *fiber.Ctx) error {
	s, err := h.uc.Obtener(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SESSION_NOT_FOUND", Message: "sesión de salida no encontrada"})
	}
	out := dto.TicketResponse{
		Receptor:    s.Receptor,
		Creada:      s.Creada,
		TotalPiezas: s.Ticket(s.Creada).TotalPiezas(),
	}
	for _, it := range s.Items {
		out.Items = append(out.Items, dto.TicketItemResponse{
			Codigo: it.Codigo, Nombre: it.Nombre, Cajas: it.Cajas, Piezas: it.Piezas,
		})
	}
	return c.JSON(out)
}

// RegistrarRetiro godoc
// @Summary      Retirar cajas de un dulce dentro de la sesión
// @Description  Validación estricta: la cantidad debe ser un entero positivo
// @Description  que no exceda las cajas disponibles, si no la operación se
// @Description  aborta sin escribir. La selección manual usa esta misma ruta.
// @Tags         salida
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la sesión"
// @Param        body  body  dto.RetiroRequest  true  "Código y cajas a retirar"
// @Success      200   {object}  dto.RetiroResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/salida/sesiones/{id}/retiros [post]
func (h *SalidaHandler) RegistrarRetiro(c *fiber.Ctx) error {
	var in dto.RetiroRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	r, err := h.uc.RegistrarRetiro(c.Params("id"), in.Codigo, dto.ParseCantidad(in.Cajas))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSesionNoEncontrada):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SESSION_NOT_FOUND", Message: "sesión de salida no encontrada"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "dulce no encontrado en inventario"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la cantidad debe ser un entero positivo"})
		case errors.Is(err, domain.ErrInsufficientStock):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "no hay cajas suficientes"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.RetiroResponse{
		Codigo:          r.Codigo,
		Nombre:          r.Nombre,
		CajasRetiradas:  r.CajasRetiradas,
		PiezasRetiradas: r.PiezasRetiradas,
		CajasRestantes:  r.CajasRestantes,
		Eliminado:       r.Eliminado,
	})
}

// Cancelar godoc
// @Summary      Cancelar la sesión restaurando el stock retirado
// @Description  Compensación por fila, no rollback: las filas cuyo registro
// @Description  ya no existe se omiten y se reportan; el ticket queda vacío.
// @Tags         salida
// @Produce      json
// @Param        id  path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.CancelacionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/salida/sesiones/{id}/cancelar [post]
func (h *SalidaHandler) Cancelar(c *fiber.Ctx) error {
	res, err := h.uc.Cancelar(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrSesionNoEncontrada) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SESSION_NOT_FOUND", Message: "sesión de salida no encontrada"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CANCEL_IN_PROGRESS", Message: "la cancelación ya está en curso"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.CancelacionResponse{
		Restaurados: res.Restaurados,
		Omitidos:    res.Omitidos,
	})
}

// GenerarTicket godoc
// @Summary      Exportar el ticket de la sesión como PDF
// @Description  Exportación de presentación pura: no toca el almacén y no
// @Description  vacía la sesión.
// @Tags         salida
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la sesión"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/salida/sesiones/{id}/ticket [get]
func (h *SalidaHandler) GenerarTicket(c *fiber.Ctx) error {
	pdf, err := h.uc.GenerarTicket(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrSesionNoEncontrada) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SESSION_NOT_FOUND", Message: "sesión de salida no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "RENDER_FAILED", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="ticket-salida.pdf"`)
	return c.Send(pdf)
}

// CerrarSesion godoc
// @Summary      Cerrar la sesión descartando su ticket
// @Tags         salida
// @Param        id  path  string  true  "ID de la sesión"
// @Success      204
// @Router       /api/salida/sesiones/{id} [delete]
func (h *SalidaHandler) CerrarSesion(c *fiber.Ctx) error {
	h.uc.Cerrar(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}
