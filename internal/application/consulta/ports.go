package consulta

import "github.com/dulceria/dulces-api/internal/domain/entity"

// InventarioExporter genera un libro de Excel con el inventario vigente.
type InventarioExporter interface {
	Exportar(items []*entity.Dulce, totalPiezas int) ([]byte, error)
}
