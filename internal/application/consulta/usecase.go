// Package consulta implementa la vista de inventario: listado con purga
// oportunista, filtro por nombre, eliminación confirmada y exportación.
package consulta

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dulceria/dulces-api/internal/domain"
	"github.com/dulceria/dulces-api/internal/domain/entity"
	"github.com/dulceria/dulces-api/internal/domain/repository"
	"github.com/dulceria/dulces-api/pkg/logger"
	"github.com/dulceria/dulces-api/pkg/metrics"
)

// Listado es el inventario vigente tras purga, filtro y orden.
type Listado struct {
	Items       []*entity.Dulce
	TotalPiezas int
}

// UseCase vista de consulta del inventario.
type UseCase struct {
	repo     repository.DulceRepository
	exporter InventarioExporter
	log      *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.DulceRepository, exporter InventarioExporter, log *logger.Logger) *UseCase {
	return &UseCase{repo: repo, exporter: exporter, log: log}
}

// Listar devuelve el inventario filtrado y ordenado alfabéticamente con
// colación española. Todo registro con cajas <= 0 encontrado durante el
// listado viola el invariante de existencia: se elimina del almacén (mejor
// esfuerzo) y se excluye de la respuesta. El filtro vacío devuelve la lista
// completa.
func (uc *UseCase) Listar(filtro string) (*Listado, error) {
	todos, err := uc.repo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("listar inventario: %w", err)
	}

	filtroLower := strings.ToLower(strings.TrimSpace(filtro))
	items := make([]*entity.Dulce, 0, len(todos))
	total := 0
	for _, d := range todos {
		if d.AgotadoEnCajas() {
			if err := uc.repo.Delete(d.Codigo); err != nil {
				uc.log.Warn().Err(err).Str("codigo", d.Codigo).Msg("purga: no se pudo eliminar registro agotado")
			} else {
				metrics.Movimientos.WithLabelValues("purga").Inc()
				uc.log.Info().Str("codigo", d.Codigo).Msg("purga: registro sin cajas eliminado")
			}
			continue
		}
		if filtroLower != "" && !strings.Contains(strings.ToLower(d.Nombre), filtroLower) {
			continue
		}
		items = append(items, d)
		total += d.Total
	}

	c := collate.New(language.Spanish, collate.IgnoreCase)
	sort.SliceStable(items, func(i, j int) bool {
		return c.CompareString(items[i].Nombre, items[j].Nombre) < 0
	})

	return &Listado{Items: items, TotalPiezas: total}, nil
}

// Eliminar borra un registro del inventario. Exige la confirmación explícita
// del operador; sin ella devuelve domain.ErrConfirmRequerido y no escribe.
func (uc *UseCase) Eliminar(codigo string, confirmado bool) error {
	if codigo == "" {
		return domain.ErrInvalidInput
	}
	if !confirmado {
		return domain.ErrConfirmRequerido
	}
	if err := uc.repo.Delete(codigo); err != nil {
		return fmt.Errorf("eliminar dulce: %w", err)
	}
	uc.log.Info().Str("codigo", codigo).Msg("dulce eliminado por el operador")
	return nil
}

// ExportarExcel genera el libro de Excel del listado vigente (mismo filtro,
// misma purga y orden que Listar).
func (uc *UseCase) ExportarExcel(filtro string) ([]byte, error) {
	listado, err := uc.Listar(filtro)
	if err != nil {
		return nil, err
	}
	return uc.exporter.Exportar(listado.Items, listado.TotalPiezas)
}
