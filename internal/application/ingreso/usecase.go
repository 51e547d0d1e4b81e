// Package ingreso implementa el flujo de entrada de stock: resolver un código
// detectado y confirmar el alta o el incremento según exista o no el registro.
package ingreso

import (
	"fmt"

	"github.com/dulceria/dulces-api/internal/domain"
	"github.com/dulceria/dulces-api/internal/domain/entity"
	"github.com/dulceria/dulces-api/internal/domain/repository"
	"github.com/dulceria/dulces-api/pkg/logger"
	"github.com/dulceria/dulces-api/pkg/metrics"
)

// Resolucion describe qué debe capturar el operador tras escanear un código.
// Es la petición de entrada explícita que sustituye a los prompts bloqueantes.
type Resolucion struct {
	Existe bool
	Dulce  *entity.Dulce // registro actual cuando Existe
}

// Resultado de una confirmación de ingreso. Aplicado=false indica el no-op
// silencioso de una cantidad no positiva.
type Resultado struct {
	Aplicado bool
	Dulce    *entity.Dulce
}

// UseCase flujo de ingreso de dulces.
type UseCase struct {
	repo repository.DulceRepository
	log  *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.DulceRepository, log *logger.Logger) *UseCase {
	return &UseCase{repo: repo, log: log}
}

// ResolverCodigo consulta el almacén por un código detectado y devuelve si el
// registro existe, con sus datos actuales si es el caso.
func (uc *UseCase) ResolverCodigo(codigo string) (*Resolucion, error) {
	if codigo == "" {
		return nil, domain.ErrInvalidInput
	}
	dulce, err := uc.repo.Get(codigo)
	if err != nil {
		return nil, fmt.Errorf("resolver código: %w", err)
	}
	if dulce == nil {
		return &Resolucion{Existe: false}, nil
	}
	return &Resolucion{Existe: true, Dulce: dulce}, nil
}

// ConfirmarNuevo crea el registro de un código no visto antes. El total se
// calcula como cajas * piezasPorCaja; las cantidades ya llegan saneadas (lo
// no numérico vale 0).
func (uc *UseCase) ConfirmarNuevo(codigo, nombre string, cajas, piezasPorCaja int) (*Resultado, error) {
	if codigo == "" {
		return nil, domain.ErrInvalidInput
	}
	dulce := &entity.Dulce{
		Codigo:        codigo,
		Nombre:        nombre,
		Cajas:         cajas,
		PiezasPorCaja: piezasPorCaja,
		Total:         cajas * piezasPorCaja,
	}
	if err := uc.repo.Create(dulce); err != nil {
		return nil, err
	}
	metrics.Movimientos.WithLabelValues("ingreso_nuevo").Inc()
	uc.log.Info().
		Str("codigo", codigo).
		Str("nombre", nombre).
		Int("cajas", cajas).
		Int("total", dulce.Total).
		Msg("dulce agregado al inventario")
	return &Resultado{Aplicado: true, Dulce: dulce}, nil
}

// ConfirmarExistente suma cajas adicionales a un registro existente con el
// incremento atómico del almacén. Una cantidad no positiva termina la
// interacción en silencio: sin escritura y sin error.
func (uc *UseCase) ConfirmarExistente(codigo string, cajasAdicionales int) (*Resultado, error) {
	if codigo == "" {
		return nil, domain.ErrInvalidInput
	}
	dulce, err := uc.repo.Get(codigo)
	if err != nil {
		return nil, fmt.Errorf("confirmar ingreso: %w", err)
	}
	if dulce == nil {
		return nil, domain.ErrNotFound
	}
	// La búsqueda va primero: la cantidad solo se evalúa sobre un registro
	// existente.
	if cajasAdicionales <= 0 {
		return &Resultado{Aplicado: false}, nil
	}
	deltaPiezas := cajasAdicionales * dulce.PiezasPorCaja
	if err := uc.repo.IncrementStock(codigo, cajasAdicionales, deltaPiezas); err != nil {
		return nil, err
	}
	metrics.Movimientos.WithLabelValues("ingreso_adicional").Inc()
	uc.log.Info().
		Str("codigo", codigo).
		Int("cajas_adicionales", cajasAdicionales).
		Msg("stock incrementado")

	// Instantánea local tras el incremento; bajo escritores concurrentes el
	// almacén puede haber acumulado más que esto.
	dulce.Cajas += cajasAdicionales
	dulce.Total += deltaPiezas
	return &Resultado{Aplicado: true, Dulce: dulce}, nil
}
