package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dulceria/dulces-api/internal/domain"
	"github.com/dulceria/dulces-api/internal/domain/entity"
	"github.com/dulceria/dulces-api/internal/domain/repository"
)

var _ repository.DulceRepository = (*DulceRepo)(nil)

// DulceRepo implementación del puerto DulceRepository sobre PostgreSQL.
// La tabla dulces usa el código de barras como llave primaria.
type DulceRepo struct {
	q Querier
}

// NewDulceRepository construye el adaptador de persistencia. Pasar pool o tx (Querier).
func NewDulceRepository(q Querier) *DulceRepo {
	return &DulceRepo{q: q}
}

// Get obtiene un dulce por código. Devuelve (nil, nil) si no existe.
func (r *DulceRepo) Get(codigo string) (*entity.Dulce, error) {
	query := `
		SELECT codigo, nombre, cajas, piezas_por_caja, total
		FROM dulces WHERE codigo = $1`
	var d entity.Dulce
	err := r.q.QueryRow(context.Background(), query, codigo).Scan(
		&d.Codigo, &d.Nombre, &d.Cajas, &d.PiezasPorCaja, &d.Total,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get dulce: %w", err)
	}
	return &d, nil
}

// Create persiste un dulce nuevo. Un código repetido devuelve domain.ErrDuplicate.
func (r *DulceRepo) Create(dulce *entity.Dulce) error {
	query := `
		INSERT INTO dulces (codigo, nombre, cajas, piezas_por_caja, total)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		dulce.Codigo, dulce.Nombre, dulce.Cajas, dulce.PiezasPorCaja, dulce.Total,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert dulce: %w", err)
	}
	return nil
}

// IncrementStock suma deltas a cajas y total en una sola sentencia; la
// aritmética ocurre en el servidor, que es el primitivo de incremento atómico
// del almacén (protege escritores concurrentes en la ruta de ingreso).
func (r *DulceRepo) IncrementStock(codigo string, deltaCajas, deltaPiezas int) error {
	query := `
		UPDATE dulces SET cajas = cajas + $2, total = total + $3
		WHERE codigo = $1`
	cmd, err := r.q.Exec(context.Background(), query, codigo, deltaCajas, deltaPiezas)
	if err != nil {
		return fmt.Errorf("increment dulce: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetStock sobreescribe cajas y total con valores absolutos (ruta de salida).
func (r *DulceRepo) SetStock(codigo string, cajas, total int) error {
	query := `
		UPDATE dulces SET cajas = $2, total = $3
		WHERE codigo = $1`
	cmd, err := r.q.Exec(context.Background(), query, codigo, cajas, total)
	if err != nil {
		return fmt.Errorf("set stock dulce: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un dulce por código. Eliminar un código inexistente no es error.
func (r *DulceRepo) Delete(codigo string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM dulces WHERE codigo = $1`, codigo)
	if err != nil {
		return fmt.Errorf("delete dulce: %w", err)
	}
	return nil
}

// ListAll devuelve el inventario completo tal como está almacenado.
func (r *DulceRepo) ListAll() ([]*entity.Dulce, error) {
	query := `SELECT codigo, nombre, cajas, piezas_por_caja, total FROM dulces`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list dulces: %w", err)
	}
	defer rows.Close()
	var list []*entity.Dulce
	for rows.Next() {
		var d entity.Dulce
		if err := rows.Scan(&d.Codigo, &d.Nombre, &d.Cajas, &d.PiezasPorCaja, &d.Total); err != nil {
			return nil, fmt.Errorf("scan dulce: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
