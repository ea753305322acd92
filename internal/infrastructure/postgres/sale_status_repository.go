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

var _ repository.SaleStatusRepository = (*SaleStatusRepo)(nil)

// SaleStatusRepo estados de venta sobre PostgreSQL.
type SaleStatusRepo struct {
	q Querier
}

// NewSaleStatusRepository construye el adaptador de estados de venta.
func NewSaleStatusRepository(q Querier) *SaleStatusRepo {
	return &SaleStatusRepo{q: q}
}

// GetByID obtiene un estado por ID. Nil si no existe.
func (r *SaleStatusRepo) GetByID(ctx context.Context, id string) (*entity.SaleStatus, error) {
	return r.get(ctx, `SELECT id, nombre FROM estados_venta WHERE id = $1`, id)
}

// GetByName obtiene un estado por nombre.
func (r *SaleStatusRepo) GetByName(ctx context.Context, name string) (*entity.SaleStatus, error) {
	return r.get(ctx, `SELECT id, nombre FROM estados_venta WHERE nombre = $1`, name)
}

// Ensure crea el estado si no existe (idempotente; usado por el seed).
func (r *SaleStatusRepo) Ensure(ctx context.Context, name string) (*entity.SaleStatus, error) {
	existing, err := r.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	s := &entity.SaleStatus{ID: uuid.New().String(), Name: name}
	if _, err := r.q.Exec(ctx, `INSERT INTO estados_venta (id, nombre) VALUES ($1, $2)`, s.ID, s.Name); err != nil {
		if isUniqueViolation(err) {
			return r.GetByName(ctx, name)
		}
		return nil, fmt.Errorf("ensure sale status: %w", err)
	}
	return s, nil
}

func (r *SaleStatusRepo) get(ctx context.Context, query string, arg any) (*entity.SaleStatus, error) {
	var s entity.SaleStatus
	err := r.q.QueryRow(ctx, query, arg).Scan(&s.ID, &s.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale status: %w", err)
	}
	return &s, nil
}
