// Package pdf implementa la generación del ticket de salida de dulces.
//
// Layout de la página (media carta, estilo recibo):
//
//	┌──────────────────────────────────────────────┐
//	│  TICKET DE SALIDA DE DULCES                  │
//	│  Receptor: <nombre>        Fecha: <fecha>    │
//	│  ──────────────────────────────────────────  │
//	│  TABLA: Nombre | Cajas | Piezas | Código     │
//	│  ──────────────────────────────────────────  │
//	│  TOTAL DE PIEZAS: <n>                        │
//	└──────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/dulceria/dulces-api/internal/application/salida"
	"github.com/dulceria/dulces-api/internal/domain/entity"
)

var (
	colorNaranja = &props.Color{Red: 255, Green: 111, Blue: 60}
	colorGris    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ salida.TicketGenerator = (*MarotoTicketGenerator)(nil)

// MarotoTicketGenerator implementa salida.TicketGenerator usando Maroto v2.
type MarotoTicketGenerator struct{}

// NewMarotoTicketGenerator construye el generador.
func NewMarotoTicketGenerator() *MarotoTicketGenerator { return &MarotoTicketGenerator{} }

// Generar genera el PDF del ticket y devuelve sus bytes.
func (g *MarotoTicketGenerator) Generar(ticket *entity.Ticket) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "courier", Size: 9}).
		WithTitle("Ticket de Salida de Dulces", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRows(ticket)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorNaranja, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range itemRows(ticket.Items) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorNaranja, Thickness: 0.3}))
	m.AddRows(totalRow(ticket))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar ticket: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRows: título, receptor y fecha.
func headerRows(ticket *entity.Ticket) []core.Row {
	receptor := ticket.Receptor
	if receptor == "" {
		receptor = "—"
	}
	return []core.Row{
		row.New(10).Add(col.New(12).Add(
			text.New("TICKET DE SALIDA DE DULCES", props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center,
				Color: colorNaranja, Top: 1,
			}),
		)),
		row.New(10).Add(
			col.New(7).Add(text.New("Receptor: "+receptor, props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 2,
			})),
			col.New(5).Add(text.New(
				"Fecha: "+ticket.Fecha.Format("02/01/2006 15:04"),
				props.Text{Size: 9, Align: align.Right, Top: 2, Color: colorGris},
			)),
		),
	}
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Nombre", 4, align.Left),
		h("Cajas", 2, align.Center),
		h("Piezas", 2, align.Center),
		h("Código", 4, align.Center),
	)
}

// itemRows: una fila por línea del ticket, con el código de barras renderizado
// para reescanear la salida si hace falta.
func itemRows(items []entity.TicketItem) []core.Row {
	if len(items) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("No se han agregado dulces.", props.Text{
				Size: 9, Align: align.Center, Top: 2, Color: colorGris,
			}),
		))}
	}
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(12).Add(
			col.New(4).Add(text.New(it.Nombre, props.Text{
				Size: 9, Align: align.Left, Top: 3,
			})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", it.Cajas), props.Text{
				Size: 9, Align: align.Center, Top: 3,
			})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", it.Piezas), props.Text{
				Size: 9, Align: align.Center, Top: 3,
			})),
			col.New(4).Add(code.NewBar(it.Codigo, props.Barcode{
				Percent: 80,
				Center:  true,
			})),
		))
	}
	return result
}

// totalRow: total de piezas retiradas en la sesión.
func totalRow(ticket *entity.Ticket) core.Row {
	return row.New(10).Add(
		col.New(8).Add(text.New("TOTAL DE PIEZAS:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorNaranja, Top: 2, Right: 2,
		})),
		col.New(4).Add(text.New(fmt.Sprintf("%d", ticket.TotalPiezas()), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Left,
			Color: colorNaranja, Top: 2,
		})),
	)
}
