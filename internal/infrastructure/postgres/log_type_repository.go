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

var _ repository.LogTypeRepository = (*LogTypeRepo)(nil)

// LogTypeRepo tipos de log sobre PostgreSQL.
type LogTypeRepo struct {
	q Querier
}

// NewLogTypeRepository construye el adaptador de tipos de log.
func NewLogTypeRepository(q Querier) *LogTypeRepo {
	return &LogTypeRepo{q: q}
}

// GetByName obtiene un tipo de log por nombre. Nil si no existe.
func (r *LogTypeRepo) GetByName(ctx context.Context, name string) (*entity.LogType, error) {
	var t entity.LogType
	var desc *string
	err := r.q.QueryRow(ctx, `SELECT id, nombre, descripcion FROM tipos_log WHERE nombre = $1`, name).
		Scan(&t.ID, &t.Name, &desc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get log type: %w", err)
	}
	if desc != nil {
		t.Description = *desc
	}
	return &t, nil
}

// Ensure crea el tipo de log si no existe (idempotente; usado por el seed).
func (r *LogTypeRepo) Ensure(ctx context.Context, name, description string) (*entity.LogType, error) {
	existing, err := r.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	t := &entity.LogType{ID: uuid.New().String(), Name: name, Description: description}
	query := `INSERT INTO tipos_log (id, nombre, descripcion) VALUES ($1, $2, $3)`
	if _, err := r.q.Exec(ctx, query, t.ID, t.Name, t.Description); err != nil {
		if isUniqueViolation(err) {
			return r.GetByName(ctx, name)
		}
		return nil, fmt.Errorf("ensure log type: %w", err)
	}
	return t, nil
}
