package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dulceria/dulces-api/internal/application/consulta"
	"github.com/dulceria/dulces-api/internal/application/dto"
	"github.com/dulceria/dulces-api/internal/domain"
)

// ConsultaHandler maneja la vista de inventario.
type ConsultaHandler struct {
	uc *consulta.UseCase
}

// NewConsultaHandler construye el handler.
func NewConsultaHandler(uc *consulta.UseCase) *ConsultaHandler {
	return &ConsultaHandler{uc: uc}
}

// Listar godoc
// @Summary      Listar el inventario vigente
// @Description  Purga oportunista: los registros sin cajas se eliminan durante
// @Description  el listado y no aparecen en la respuesta. Filtro por
// @Description  subcadena del nombre, sin distinguir mayúsculas; orden
// @Description  alfabético con colación española.
// @Tags         consulta
// @Produce      json
// @Param        filtro  query  string  false  "Subcadena del nombre"
// @Success      200  {object}  dto.InventarioResponse
// @Router       /api/dulces [get]
func (h *ConsultaHandler) Listar(c *fiber.Ctx) error {
	listado, err := h.uc.Listar(c.Query("filtro"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := dto.InventarioResponse{
		Items:       make([]dto.DulceResponse, 0, len(listado.Items)),
		TotalPiezas: listado.TotalPiezas,
	}
	for _, d := range listado.Items {
		out.Items = append(out.Items, *dto.ToDulceResponse(d))
	}
	return c.JSON(out)
}

// Eliminar godoc
// @Summary      Eliminar un dulce del inventario
// @Description  Requiere confirmar=true: es el paso de confirmación explícito
// @Description  previo al borrado.
// @Tags         consulta
// @Produce      json
// @Param        codigo    path   string  true  "Código de barras"
// @Param        confirmar query  bool    true  "Confirmación explícita"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dulces/{codigo} [delete]
func (h *ConsultaHandler) Eliminar(c *fiber.Ctx) error {
	codigo := c.Params("codigo")
	confirmado := c.QueryBool("confirmar", false)
	if err := h.uc.Eliminar(codigo, confirmado); err != nil {
		if errors.Is(err, domain.ErrConfirmRequerido) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "CONFIRM_REQUIRED", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_CODE", Message: "codigo es requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ExportarExcel godoc
// @Summary      Exportar el inventario vigente a Excel
// @Tags         consulta
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        filtro  query  string  false  "Subcadena del nombre"
// @Success      200  {file}  binary
// @Router       /api/dulces/export [get]
func (h *ConsultaHandler) ExportarExcel(c *fiber.Ctx) error {
	libro, err := h.uc.ExportarExcel(c.Query("filtro"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT_FAILED", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventario-dulces.xlsx"`)
	return c.Send(libro)
}
