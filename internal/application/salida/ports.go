package salida

import "github.com/dulceria/dulces-api/internal/domain/entity"

// TicketGenerator renderiza el ticket de una sesión de salida como artefacto
// compartible (PDF). Es una exportación de presentación pura: no toca el
// almacén y su fallo no debe alterar la sesión.
type TicketGenerator interface {
	Generar(ticket *entity.Ticket) ([]byte, error)
}
