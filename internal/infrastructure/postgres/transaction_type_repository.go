package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.TransactionTypeRepository = (*TransactionTypeRepo)(nil)

// TransactionTypeRepo tipos de transacción sobre PostgreSQL.
type TransactionTypeRepo struct {
	q Querier
}

// NewTransactionTypeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionTypeRepository(q Querier) *TransactionTypeRepo {
	return &TransactionTypeRepo{q: q}
}

// GetByID obtiene un tipo por ID.
func (r *TransactionTypeRepo) GetByID(ctx context.Context, id string) (*entity.TransactionType, error) {
	return r.get(ctx, `SELECT id, nombre, descripcion FROM tipos_transaccion WHERE id = $1`, id)
}

// GetByName obtiene un tipo por nombre (ENTRADA|SALIDA).
func (r *TransactionTypeRepo) GetByName(ctx context.Context, name string) (*entity.TransactionType, error) {
	return r.get(ctx, `SELECT id, nombre, descripcion FROM tipos_transaccion WHERE nombre = $1`, name)
}

// Ensure crea el tipo si no existe (idempotente; usado por el seed).
func (r *TransactionTypeRepo) Ensure(ctx context.Context, name, description string) (*entity.TransactionType, error) {
	existing, err := r.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	t := &entity.TransactionType{ID: uuid.New().String(), Name: name, Description: description}
	query := `INSERT INTO tipos_transaccion (id, nombre, descripcion) VALUES ($1, $2, $3)`
	if _, err := r.q.Exec(ctx, query, t.ID, t.Name, t.Description); err != nil {
		if isUniqueViolation(err) {
			return r.GetByName(ctx, name)
		}
		return nil, fmt.Errorf("ensure transaction type: %w", err)
	}
	return t, nil
}

func (r *TransactionTypeRepo) get(ctx context.Context, query string, arg any) (*entity.TransactionType, error) {
	var t entity.TransactionType
	var desc *string
	err := r.q.QueryRow(ctx, query, arg).Scan(&t.ID, &t.Name, &desc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction type: %w", err)
	}
	if desc != nil {
		t.Description = *desc
	}
	return &t, nil
}
