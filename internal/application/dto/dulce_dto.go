package dto

import "github.com/dulceria/dulces-api/internal/domain/entity"

// DulceResponse representación HTTP de un registro de inventario.
type DulceResponse struct {
	Codigo        string `json:"codigo"`
	Nombre        string `json:"nombre"`
	Cajas         int    `json:"cajas"`
	PiezasPorCaja int    `json:"piezas_por_caja"`
	Total         int    `json:"total"`
}

// ToDulceResponse convierte la entidad a su DTO.
func ToDulceResponse(d *entity.Dulce) *DulceResponse {
	if d == nil {
		return nil
	}
	return &DulceResponse{
		Codigo:        d.Codigo,
		Nombre:        d.Nombre,
		Cajas:         d.Cajas,
		PiezasPorCaja: d.PiezasPorCaja,
		Total:         d.Total,
	}
}

// InventarioResponse listado de la consulta con el total corriente de piezas.
type InventarioResponse struct {
	Items       []DulceResponse `json:"items"`
	TotalPiezas int             `json:"total_piezas"`
}
