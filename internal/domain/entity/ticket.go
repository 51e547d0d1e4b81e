package entity

import "time"

// TicketItem es una línea del ticket de salida, agregada por código:
// escaneos repetidos del mismo dulce acumulan sobre la misma línea.
type TicketItem struct {
	Codigo string
	Nombre string
	Cajas  int
	Piezas int
}

// Ticket es el resumen efímero de una sesión de salida. Vive en memoria
// mientras la sesión está abierta; se descarta al cerrarla o cancelarla.
type Ticket struct {
	Receptor string
	Fecha    time.Time
	Items    []TicketItem
}

// TotalPiezas suma las piezas retiradas en toda la sesión.
func (t *Ticket) TotalPiezas() int {
	total := 0
	for _, it := range t.Items {
		total += it.Piezas
	}
	return total
}
