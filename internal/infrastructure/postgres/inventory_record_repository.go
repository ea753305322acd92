package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.InventoryRecordRepository = (*InventoryRecordRepo)(nil)

// InventoryRecordRepo foto materializada de inventario sobre PostgreSQL
// (usable con pool o tx).
type InventoryRecordRepo struct {
	q Querier
}

// NewInventoryRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRecordRepository(q Querier) *InventoryRecordRepo {
	return &InventoryRecordRepo{q: q}
}

const inventoryColumns = `id, producto_id, cantidad_actual, cantidad_reservada, cantidad_disponible, ubicacion, lote, fecha_vencimiento, fecha_ultima_entrada, fecha_ultima_salida, fecha_actualizacion`

// Get obtiene el registro de inventario de un producto. Nil si no existe.
func (r *InventoryRecordRepo) Get(ctx context.Context, productID string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventario WHERE producto_id = $1`
	rec, err := scanInventoryRecord(r.q.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory record: %w", err)
	}
	return rec, nil
}

// GetForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE).
// Si no existe, materializa primero la fila en ceros y reintenta el SELECT:
// sin fila no hay bloqueo, y dos primeros movimientos concurrentes partirían
// ambos del registro en ceros, pisándose el Upsert. Materializar con
// DO NOTHING hace que todo llamador contienda sobre una fila real.
func (r *InventoryRecordRepo) GetForUpdate(ctx context.Context, productID string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventario WHERE producto_id = $1 FOR UPDATE`
	rec, err := scanInventoryRecord(r.q.QueryRow(ctx, query, productID))
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get inventory record for update: %w", err)
	}

	zero := entity.NewInventoryRecord(uuid.New().String(), productID, time.Now())
	insert := `
		INSERT INTO inventario (id, producto_id, cantidad_actual, cantidad_reservada, cantidad_disponible, fecha_actualizacion)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (producto_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, insert,
		zero.ID, zero.ProductID, zero.Current, zero.Reserved, zero.Available, zero.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("materialize inventory record: %w", err)
	}

	// El INSERT pudo perder la carrera (DO NOTHING): releer la fila ganadora.
	rec, err = scanInventoryRecord(r.q.QueryRow(ctx, query, productID))
	if err != nil {
		return nil, fmt.Errorf("get inventory record for update: %w", err)
	}
	return rec, nil
}

// Upsert inserta o actualiza el registro por producto.
func (r *InventoryRecordRepo) Upsert(ctx context.Context, rec *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventario (` + inventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (producto_id) DO UPDATE SET
			cantidad_actual = EXCLUDED.cantidad_actual,
			cantidad_reservada = EXCLUDED.cantidad_reservada,
			cantidad_disponible = EXCLUDED.cantidad_disponible,
			fecha_ultima_entrada = EXCLUDED.fecha_ultima_entrada,
			fecha_ultima_salida = EXCLUDED.fecha_ultima_salida,
			fecha_actualizacion = EXCLUDED.fecha_actualizacion`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.ProductID, rec.Current, rec.Reserved, rec.Available,
		nullIfEmpty(rec.Location), nullIfEmpty(rec.Lot), rec.ExpiresAt,
		rec.LastEntryAt, rec.LastExitAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert inventory record: %w", err)
	}
	return nil
}

func scanInventoryRecord(row pgx.Row) (*entity.InventoryRecord, error) {
	var rec entity.InventoryRecord
	var location, lot *string
	if err := row.Scan(
		&rec.ID, &rec.ProductID, &rec.Current, &rec.Reserved, &rec.Available,
		&location, &lot, &rec.ExpiresAt, &rec.LastEntryAt, &rec.LastExitAt, &rec.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if location != nil {
		rec.Location = *location
	}
	if lot != nil {
		rec.Lot = *lot
	}
	return &rec, nil
}
