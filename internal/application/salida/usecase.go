// Package salida implementa el flujo de despacho: retiros validados contra el
// stock disponible, el ticket acumulado por sesión, la cancelación
// compensatoria y la exportación del ticket.
package salida

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dulceria/dulces-api/internal/domain"
	"github.com/dulceria/dulces-api/internal/domain/entity"
	"github.com/dulceria/dulces-api/internal/domain/repository"
	"github.com/dulceria/dulces-api/pkg/logger"
	"github.com/dulceria/dulces-api/pkg/metrics"
)

// Sesion es un ticket de salida abierto. Vive en memoria: se descarta al
// cerrar la vista, nunca se persiste.
type Sesion struct {
	ID       string
	Receptor string
	Creada   time.Time
	Items    []entity.TicketItem

	cancelando bool // bloquea retiros mientras corre la compensación
}

// Retiro es el resultado de un retiro confirmado.
type Retiro struct {
	Codigo          string
	Nombre          string
	CajasRetiradas  int
	PiezasRetiradas int
	CajasRestantes  int
	Eliminado       bool
}

// Cancelacion reporta la acción compensatoria fila por fila.
type Cancelacion struct {
	Restaurados []string
	Omitidos    []string
}

// UseCase flujo de salida de dulces.
type UseCase struct {
	repo repository.DulceRepository
	gen  TicketGenerator
	log  *logger.Logger

	mu       sync.Mutex
	sesiones map[string]*Sesion
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.DulceRepository, gen TicketGenerator, log *logger.Logger) *UseCase {
	return &UseCase{
		repo:     repo,
		gen:      gen,
		log:      log,
		sesiones: make(map[string]*Sesion),
	}
}

// Abrir crea una sesión con ticket vacío para el receptor indicado.
func (uc *UseCase) Abrir(receptor string) *Sesion {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	s := &Sesion{
		ID:       uuid.New().String(),
		Receptor: receptor,
		Creada:   time.Now(),
	}
	uc.sesiones[s.ID] = s
	return s
}

// Obtener devuelve una instantánea de la sesión, o
// domain.ErrSesionNoEncontrada. Las líneas se copian bajo el lock: el ticket
// vivo sigue mutando con retiros concurrentes y el llamador no debe verlo.
func (uc *UseCase) Obtener(sesionID string) (*Sesion, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	s, ok := uc.sesiones[sesionID]
	if !ok {
		return nil, domain.ErrSesionNoEncontrada
	}
	copia := &Sesion{
		ID:       s.ID,
		Receptor: s.Receptor,
		Creada:   s.Creada,
		Items:    make([]entity.TicketItem, len(s.Items)),
	}
	copy(copia.Items, s.Items)
	return copia, nil
}

// Ticket presenta la instantánea como ticket imprimible con la fecha indicada.
func (s *Sesion) Ticket(fecha time.Time) *entity.Ticket {
	return &entity.Ticket{Receptor: s.Receptor, Fecha: fecha, Items: s.Items}
}

// Cerrar descarta la sesión y su ticket sin tocar el almacén.
func (uc *UseCase) Cerrar(sesionID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	delete(uc.sesiones, sesionID)
}

// RegistrarRetiro ejecuta el ciclo completo de un retiro: búsqueda,
// validación estricta de la cantidad, commit contra el almacén y
// actualización del ticket de la sesión. La selección manual usa esta misma
// ruta, solo cambia el origen del código.
//
// Cualquier rechazo deja el registro y la sesión sin cambios: no hay retiros
// parciales.
func (uc *UseCase) RegistrarRetiro(sesionID, codigo string, cajas int) (*Retiro, error) {
	uc.mu.Lock()
	s, ok := uc.sesiones[sesionID]
	if !ok {
		uc.mu.Unlock()
		return nil, domain.ErrSesionNoEncontrada
	}
	if s.cancelando {
		uc.mu.Unlock()
		return nil, domain.ErrInvalidInput
	}
	uc.mu.Unlock()

	dulce, err := uc.repo.Get(codigo)
	if err != nil {
		return nil, fmt.Errorf("retiro: %w", err)
	}
	if dulce == nil {
		return nil, domain.ErrNotFound
	}
	if cajas <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if cajas > dulce.Cajas {
		return nil, domain.ErrInsufficientStock
	}

	restantes := dulce.Cajas - cajas
	piezasRetiradas := cajas * dulce.PiezasPorCaja
	totalRestante := dulce.Total - piezasRetiradas

	// Cajas manda para el borrado: aunque el total derive por un supuesto
	// violado de piezasPorCaja, cero cajas elimina el registro completo.
	eliminado := restantes <= 0
	if eliminado {
		if err := uc.repo.Delete(codigo); err != nil {
			return nil, fmt.Errorf("retiro: eliminar agotado: %w", err)
		}
	} else {
		if err := uc.repo.SetStock(codigo, restantes, totalRestante); err != nil {
			return nil, fmt.Errorf("retiro: actualizar stock: %w", err)
		}
	}
	metrics.Movimientos.WithLabelValues("salida").Inc()

	uc.mu.Lock()
	agregarItem(s, dulce, cajas, piezasRetiradas)
	uc.mu.Unlock()

	uc.log.Info().
		Str("codigo", codigo).
		Int("cajas", cajas).
		Bool("eliminado", eliminado).
		Msg("retiro registrado")

	return &Retiro{
		Codigo:          codigo,
		Nombre:          dulce.Nombre,
		CajasRetiradas:  cajas,
		PiezasRetiradas: piezasRetiradas,
		CajasRestantes:  restantes,
		Eliminado:       eliminado,
	}, nil
}

// agregarItem acumula sobre la línea existente del mismo código o agrega una
// nueva al final. Llamar con uc.mu tomado.
func agregarItem(s *Sesion, dulce *entity.Dulce, cajas, piezas int) {
	for i := range s.Items {
		if s.Items[i].Codigo == dulce.Codigo {
			s.Items[i].Cajas += cajas
			s.Items[i].Piezas += piezas
			return
		}
	}
	s.Items = append(s.Items, entity.TicketItem{
		Codigo: dulce.Codigo,
		Nombre: dulce.Nombre,
		Cajas:  cajas,
		Piezas: piezas,
	})
}

// Cancelar devuelve al almacén las cajas de cada línea del ticket con el
// incremento atómico. Es compensación, no rollback: una línea cuyo registro
// ya no existe se omite con advertencia — la cancelación no resucita dulces
// eliminados. El ticket se vacía aunque haya omisiones.
func (uc *UseCase) Cancelar(sesionID string) (*Cancelacion, error) {
	uc.mu.Lock()
	s, ok := uc.sesiones[sesionID]
	if !ok {
		uc.mu.Unlock()
		return nil, domain.ErrSesionNoEncontrada
	}
	if s.cancelando {
		uc.mu.Unlock()
		return nil, domain.ErrInvalidInput
	}
	s.cancelando = true
	items := make([]entity.TicketItem, len(s.Items))
	copy(items, s.Items)
	uc.mu.Unlock()

	res := &Cancelacion{}
	for _, it := range items {
		existente, err := uc.repo.Get(it.Codigo)
		if err != nil {
			uc.log.Warn().Err(err).Str("codigo", it.Codigo).Msg("cancelación: error al consultar, fila omitida")
			res.Omitidos = append(res.Omitidos, it.Codigo)
			continue
		}
		if existente == nil {
			uc.log.Warn().Str("codigo", it.Codigo).Msg("cancelación: registro ya eliminado, fila omitida")
			res.Omitidos = append(res.Omitidos, it.Codigo)
			continue
		}
		if err := uc.repo.IncrementStock(it.Codigo, it.Cajas, it.Piezas); err != nil {
			uc.log.Warn().Err(err).Str("codigo", it.Codigo).Msg("cancelación: no se pudo restaurar, fila omitida")
			res.Omitidos = append(res.Omitidos, it.Codigo)
			continue
		}
		res.Restaurados = append(res.Restaurados, it.Codigo)
	}
	metrics.Movimientos.WithLabelValues("cancelacion").Inc()

	uc.mu.Lock()
	s.Items = nil
	s.cancelando = false
	uc.mu.Unlock()

	return res, nil
}

// GenerarTicket renderiza el ticket actual de la sesión. Es exportación
// pura: no toca el almacén y no vacía la sesión — el ticket sigue disponible
// hasta cerrar o cancelar.
func (uc *UseCase) GenerarTicket(sesionID string) ([]byte, error) {
	s, err := uc.Obtener(sesionID)
	if err != nil {
		return nil, err
	}

	pdf, err := uc.gen.Generar(s.Ticket(time.Now()))
	if err != nil {
		// El fallo de render no corrompe la sesión; solo no hay artefacto.
		uc.log.Error().Err(err).Str("sesion", sesionID).Msg("no se pudo generar el ticket")
		return nil, err
	}
	return pdf, nil
}
