// Package excel exporta el inventario vigente como libro de Excel.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dulceria/dulces-api/internal/application/consulta"
	"github.com/dulceria/dulces-api/internal/domain/entity"
)

var _ consulta.InventarioExporter = (*Exporter)(nil)

// Exporter implementa consulta.InventarioExporter con excelize.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// Exportar genera una hoja "Inventario" con una fila por dulce y el total de
// piezas al final. Devuelve los bytes del .xlsx.
func (e *Exporter) Exportar(items []*entity.Dulce, totalPiezas int) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const hoja = "Inventario"
	idx, err := f.NewSheet(hoja)
	if err != nil {
		return nil, fmt.Errorf("excel: crear hoja: %w", err)
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	encabezados := []string{"Código", "Nombre", "Cajas", "Piezas por caja", "Total de piezas"}
	for i, h := range encabezados {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("excel: celda de encabezado: %w", err)
		}
		if err := f.SetCellValue(hoja, cell, h); err != nil {
			return nil, fmt.Errorf("excel: escribir encabezado: %w", err)
		}
	}

	for i, d := range items {
		fila := i + 2
		valores := []any{d.Codigo, d.Nombre, d.Cajas, d.PiezasPorCaja, d.Total}
		for j, v := range valores {
			cell, err := excelize.CoordinatesToCellName(j+1, fila)
			if err != nil {
				return nil, fmt.Errorf("excel: celda de datos: %w", err)
			}
			if err := f.SetCellValue(hoja, cell, v); err != nil {
				return nil, fmt.Errorf("excel: escribir celda: %w", err)
			}
		}
	}

	filaTotal := len(items) + 3
	cellLabel, _ := excelize.CoordinatesToCellName(4, filaTotal)
	cellValor, _ := excelize.CoordinatesToCellName(5, filaTotal)
	_ = f.SetCellValue(hoja, cellLabel, "Total en inventario:")
	_ = f.SetCellValue(hoja, cellValor, totalPiezas)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}
