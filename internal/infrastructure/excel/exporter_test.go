package excel_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dulceria/dulces-api/internal/domain/entity"
	"github.com/dulceria/dulces-api/internal/infrastructure/excel"
)

func TestExportar_LibroLegible(t *testing.T) {
	e := excel.NewExporter()

	items := []*entity.Dulce{
		{Codigo: "A1", Nombre: "Paleta", Cajas: 2, PiezasPorCaja: 10, Total: 20},
		{Codigo: "B2", Nombre: "Chicle", Cajas: 3, PiezasPorCaja: 5, Total: 15},
	}
	libro, err := e.Exportar(items, 35)
	require.NoError(t, err)
	require.NotEmpty(t, libro)

	// El libro generado debe poder reabrirse y contener los datos.
	f, err := excelize.OpenReader(bytes.NewReader(libro))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	nombre, err := f.GetCellValue("Inventario", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Paleta", nombre)

	cajas, err := f.GetCellValue("Inventario", "C3")
	require.NoError(t, err)
	assert.Equal(t, "3", cajas)

	total, err := f.GetCellValue("Inventario", "E5")
	require.NoError(t, err)
	assert.Equal(t, "35", total)
}

func TestExportar_InventarioVacio(t *testing.T) {
	e := excel.NewExporter()

	libro, err := e.Exportar(nil, 0)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(libro))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	encabezado, err := f.GetCellValue("Inventario", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Código", encabezado)
}
