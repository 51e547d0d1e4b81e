package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dulceria/dulces-api/internal/application/dto"
	"github.com/dulceria/dulces-api/internal/application/scanner"
	"github.com/dulceria/dulces-api/internal/domain"
)

// ScannerHandler maneja la frontera de escaneo: cuadros de cámara, entrada
// manual y linterna por dispositivo.
type ScannerHandler struct {
	adapter *scanner.Adapter
}

// NewScannerHandler construye el handler.
func NewScannerHandler(adapter *scanner.Adapter) *ScannerHandler {
	return &ScannerHandler{adapter: adapter}
}

// ProcesarFrame godoc
// @Summary      Decodificar un cuadro de cámara
// @Tags         escaner
// @Accept       octet-stream
// @Produce      json
// @Success      200  {object}  dto.DeteccionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/escaner/frames [post]
func (h *ScannerHandler) ProcesarFrame(c *fiber.Ctx) error {
	frame := c.Body()
	if len(frame) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_FRAME", Message: "cuadro vacío"})
	}
	codigo, err := h.adapter.ProcesarFrame(frame)
	if err != nil {
		// Un cuadro sin código o ilegible no es fatal: el cliente sigue
		// enviando cuadros. Se responde 200 con el detalle visible.
		return c.JSON(dto.DeteccionResponse{Detectado: false, Mensaje: err.Error()})
	}
	return c.JSON(dto.DeteccionResponse{Detectado: true, Codigo: codigo})
}

// EntradaManual godoc
// @Summary      Capturar un código manualmente
// @Tags         escaner
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EntradaManualRequest  true  "Texto del código"
// @Success      200   {object}  dto.DeteccionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/escaner/manual [post]
func (h *ScannerHandler) EntradaManual(c *fiber.Ctx) error {
	var in dto.EntradaManualRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	codigo, err := h.adapter.EntradaManual(in.Texto)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el código no puede estar vacío"})
	}
	return c.JSON(dto.DeteccionResponse{Detectado: true, Codigo: codigo})
}

// RegistrarDispositivo godoc
// @Summary      Registrar la cámara del operador y sus capacidades
// @Tags         escaner
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarDispositivoRequest  true  "Capacidades"
// @Success      201   {object}  dto.DispositivoResponse
// @Router       /api/escaner/dispositivos [post]
func (h *ScannerHandler) RegistrarDispositivo(c *fiber.Ctx) error {
	var in dto.RegistrarDispositivoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	d := h.adapter.RegistrarDispositivo(scanner.Capacidades{Linterna: in.Linterna})
	return c.Status(fiber.StatusCreated).JSON(dto.DispositivoResponse{
		DispositivoID: d.ID,
		Linterna:      d.Caps.Linterna,
	})
}

// AlternarLinterna godoc
// @Summary      Encender o apagar la linterna del dispositivo
// @Tags         escaner
// @Produce      json
// @Param        id  path  string  true  "ID del dispositivo"
// @Success      200  {object}  dto.LinternaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/escaner/dispositivos/{id}/linterna [post]
func (h *ScannerHandler) AlternarLinterna(c *fiber.Ctx) error {
	id := c.Params("id")
	encendida, err := h.adapter.AlternarLinterna(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "dispositivo no registrado"})
		}
		if errors.Is(err, domain.ErrLinternaNoSoportada) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "TORCH_UNSUPPORTED", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.LinternaResponse{Encendida: encendida})
}
