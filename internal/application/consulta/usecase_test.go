package consulta_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dulceria/dulces-api/internal/application/consulta"
	"github.com/dulceria/dulces-api/internal/domain"
	"github.com/dulceria/dulces-api/internal/domain/entity"
	"github.com/dulceria/dulces-api/internal/infrastructure/memstore"
	"github.com/dulceria/dulces-api/pkg/logger"
)

// exportadorFake registra lo que se le pidió exportar.
type exportadorFake struct {
	items []*entity.Dulce
	total int
}

func (e *exportadorFake) Exportar(items []*entity.Dulce, total int) ([]byte, error) {
	e.items = items
	e.total = total
	return []byte("xlsx"), nil
}

func nuevoUseCase(t *testing.T, dulces ...*entity.Dulce) (*consulta.UseCase, *memstore.DulceRepo, *exportadorFake) {
	t.Helper()
	repo := memstore.NewDulceRepository()
	for _, d := range dulces {
		require.NoError(t, repo.Create(d))
	}
	exp := &exportadorFake{}
	return consulta.NewUseCase(repo, exp, logger.Nop()), repo, exp
}

// Los registros sin cajas se purgan durante el listado y no aparecen.
func TestListar_PurgaRegistrosSinCajas(t *testing.T) {
	uc, repo, _ := nuevoUseCase(t,
		&entity.Dulce{Codigo: "A1", Nombre: "Paleta", Cajas: 2, PiezasPorCaja: 10, Total: 20},
		&entity.Dulce{Codigo: "B2", Nombre: "Chicle", Cajas: 0, PiezasPorCaja: 5, Total: 0},
		&entity.Dulce{Codigo: "C3", Nombre: "Mazapán", Cajas: -1, PiezasPorCaja: 8, Total: -8},
	)

	listado, err := uc.Listar("")
	require.NoError(t, err)
	require.Len(t, listado.Items, 1)
	assert.Equal(t, "Paleta", listado.Items[0].Nombre)

	// La purga es real: los registros violatorios ya no están en el almacén.
	for _, codigo := range []string{"B2", "C3"} {
		d, err := repo.Get(codigo)
		require.NoError(t, err)
		assert.Nil(t, d, "el registro %s debió purgarse", codigo)
	}
}

// El filtro vacío devuelve la lista completa ordenada, sin cambios.
func TestListar_FiltroVacioEsIdentidad(t *testing.T) {
	uc, _, _ := nuevoUseCase(t,
		&entity.Dulce{Codigo: "A1", Nombre: "Paleta", Cajas: 2, PiezasPorCaja: 10, Total: 20},
		&entity.Dulce{Codigo: "B2", Nombre: "chicle", Cajas: 3, PiezasPorCaja: 5, Total: 15},
		&entity.Dulce{Codigo: "C3", Nombre: "Ácido dulce", Cajas: 1, PiezasPorCaja: 8, Total: 8},
	)

	completo, err := uc.Listar("")
	require.NoError(t, err)
	filtrado, err := uc.Listar("   ")
	require.NoError(t, err)
	assert.Equal(t, completo.Items, filtrado.Items, "filtro en blanco debe equivaler a sin filtro")
	assert.Equal(t, completo.TotalPiezas, filtrado.TotalPiezas)

	// Colación española: la tilde no manda "Ácido" al final como lo haría
	// un orden por bytes.
	require.Len(t, completo.Items, 3)
	assert.Equal(t, "Ácido dulce", completo.Items[0].Nombre)
	assert.Equal(t, "chicle", completo.Items[1].Nombre)
	assert.Equal(t, "Paleta", completo.Items[2].Nombre)
}

// Filtro por subcadena sin distinguir mayúsculas.
func TestListar_FiltroPorNombre(t *testing.T) {
	uc, _, _ := nuevoUseCase(t,
		&entity.Dulce{Codigo: "A1", Nombre: "Paleta Payaso", Cajas: 2, PiezasPorCaja: 10, Total: 20},
		&entity.Dulce{Codigo: "B2", Nombre: "Chicle", Cajas: 3, PiezasPorCaja: 5, Total: 15},
	)

	listado, err := uc.Listar("paleta")
	require.NoError(t, err)
	require.Len(t, listado.Items, 1)
	assert.Equal(t, "Paleta Payaso", listado.Items[0].Nombre)
	assert.Equal(t, 20, listado.TotalPiezas, "el total corre solo sobre lo listado")
}

func TestListar_TotalDePiezas(t *testing.T) {
	uc, _, _ := nuevoUseCase(t,
		&entity.Dulce{Codigo: "A1", Nombre: "Paleta", Cajas: 2, PiezasPorCaja: 10, Total: 20},
		&entity.Dulce{Codigo: "B2", Nombre: "Chicle", Cajas: 3, PiezasPorCaja: 5, Total: 15},
	)

	listado, err := uc.Listar("")
	require.NoError(t, err)
	assert.Equal(t, 35, listado.TotalPiezas)
}

// Eliminar exige confirmación explícita; sin ella no se escribe nada.
func TestEliminar_RequiereConfirmacion(t *testing.T) {
	uc, repo, _ := nuevoUseCase(t,
		&entity.Dulce{Codigo: "A1", Nombre: "Paleta", Cajas: 2, PiezasPorCaja: 10, Total: 20},
	)

	err := uc.Eliminar("A1", false)
	assert.ErrorIs(t, err, domain.ErrConfirmRequerido)
	d, err := repo.Get("A1")
	require.NoError(t, err)
	assert.NotNil(t, d, "sin confirmación el registro sigue vivo")

	require.NoError(t, uc.Eliminar("A1", true))
	d, err = repo.Get("A1")
	require.NoError(t, err)
	assert.Nil(t, d)
}

// La exportación usa el mismo listado purgado, filtrado y ordenado.
func TestExportarExcel_UsaListadoVigente(t *testing.T) {
	uc, _, exp := nuevoUseCase(t,
		&entity.Dulce{Codigo: "A1", Nombre: "Paleta", Cajas: 2, PiezasPorCaja: 10, Total: 20},
		&entity.Dulce{Codigo: "B2", Nombre: "Agotado", Cajas: 0, PiezasPorCaja: 5, Total: 0},
	)

	libro, err := uc.ExportarExcel("")
	require.NoError(t, err)
	assert.NotEmpty(t, libro)
	require.Len(t, exp.items, 1)
	assert.Equal(t, "Paleta", exp.items[0].Nombre)
	assert.Equal(t, 20, exp.total)
}
