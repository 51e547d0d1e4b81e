package repository

import "github.com/dulceria/dulces-api/internal/domain/entity"

// DulceRepository define el puerto de persistencia sobre la colección de
// dulces (DIP). El código de barras es la identidad primaria del documento.
//
// Get devuelve (nil, nil) cuando el código no existe; los casos de uso que
// necesitan distinguirlo lo traducen a domain.ErrNotFound.
type DulceRepository interface {
	Get(codigo string) (*entity.Dulce, error)
	// Create falla con domain.ErrDuplicate si el código ya existe.
	Create(dulce *entity.Dulce) error
	// IncrementStock suma deltas a cajas y total usando el incremento atómico
	// nativo del almacén (evita lost updates entre escritores concurrentes).
	IncrementStock(codigo string, deltaCajas, deltaPiezas int) error
	// SetStock sobreescribe cajas y total con valores absolutos (ruta de
	// decremento en salidas).
	SetStock(codigo string, cajas, total int) error
	Delete(codigo string) error
	// ListAll devuelve el inventario completo sin orden garantizado.
	ListAll() ([]*entity.Dulce, error)
}
