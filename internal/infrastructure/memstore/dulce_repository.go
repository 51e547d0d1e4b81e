// Package memstore ofrece una implementación en memoria del puerto
// DulceRepository. Se usa en tests de los flujos de trabajo y como modo demo
// sin base de datos (APP_ENV=demo).
package memstore

import (
	"sync"

	"github.com/dulceria/dulces-api/internal/domain"
	"github.com/dulceria/dulces-api/internal/domain/entity"
	"github.com/dulceria/dulces-api/internal/domain/repository"
)

var _ repository.DulceRepository = (*DulceRepo)(nil)

// DulceRepo almacena dulces en un mapa protegido por RWMutex.
type DulceRepo struct {
	mu     sync.RWMutex
	dulces map[string]entity.Dulce
}

// NewDulceRepository construye un repositorio vacío.
func NewDulceRepository() *DulceRepo {
	return &DulceRepo{dulces: make(map[string]entity.Dulce)}
}

// Get devuelve una copia del registro, o (nil, nil) si el código no existe.
func (r *DulceRepo) Get(codigo string) (*entity.Dulce, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.dulces[codigo]
	if !ok {
		return nil, nil
	}
	copia := d
	return &copia, nil
}

// Create agrega un dulce nuevo; código repetido devuelve domain.ErrDuplicate.
func (r *DulceRepo) Create(dulce *entity.Dulce) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.dulces[dulce.Codigo]; ok {
		return domain.ErrDuplicate
	}
	r.dulces[dulce.Codigo] = *dulce
	return nil
}

// IncrementStock suma deltas bajo el lock del mapa (equivalente en memoria
// del incremento atómico del almacén real).
func (r *DulceRepo) IncrementStock(codigo string, deltaCajas, deltaPiezas int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.dulces[codigo]
	if !ok {
		return domain.ErrNotFound
	}
	d.Cajas += deltaCajas
	d.Total += deltaPiezas
	r.dulces[codigo] = d
	return nil
}

// SetStock sobreescribe cajas y total con valores absolutos.
func (r *DulceRepo) SetStock(codigo string, cajas, total int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.dulces[codigo]
	if !ok {
		return domain.ErrNotFound
	}
	d.Cajas = cajas
	d.Total = total
	r.dulces[codigo] = d
	return nil
}

// Delete elimina el registro; eliminar un código inexistente no es error.
func (r *DulceRepo) Delete(codigo string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.dulces, codigo)
	return nil
}

// ListAll devuelve copias de todos los registros, sin orden garantizado.
func (r *DulceRepo) ListAll() ([]*entity.Dulce, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*entity.Dulce, 0, len(r.dulces))
	for _, d := range r.dulces {
		copia := d
		list = append(list, &copia)
	}
	return list, nil
}
