package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

// InventoryRecord es la foto materializada del stock de un producto (tabla inventario).
// Es una desnormalización del ledger de transacciones, no verdad independiente:
// si diverge, el agregado del ledger manda. Se crea perezosamente con ceros en
// el primer movimiento del producto.
//
// Invariante: Available == Current - Reserved después de cada mutación,
// y Reserved <= Current.
type InventoryRecord struct {
	ID          string
	ProductID   string
	Current     decimal.Decimal // cantidad_actual
	Reserved    decimal.Decimal // cantidad_reservada
	Available   decimal.Decimal // cantidad_disponible
	Location    string
	Lot         string
	ExpiresAt   *time.Time
	LastEntryAt *time.Time
	LastExitAt  *time.Time
	UpdatedAt   time.Time
}

// NewInventoryRecord crea el registro inicial en ceros para un producto.
func NewInventoryRecord(id, productID string, now time.Time) *InventoryRecord {
	return &InventoryRecord{
		ID:        id,
		ProductID: productID,
		Current:   decimal.Zero,
		Reserved:  decimal.Zero,
		Available: decimal.Zero,
		UpdatedAt: now,
	}
}

// ApplyEntry suma la cantidad al stock actual y recalcula el disponible.
// La validación de cantidad > 0 ocurre antes, al crear la transacción.
func (r *InventoryRecord) ApplyEntry(quantity decimal.Decimal, when, now time.Time) error {
	r.Current = r.Current.Add(quantity)
	r.Available = r.Current.Sub(r.Reserved)
	r.LastEntryAt = &when
	r.UpdatedAt = now
	return r.CheckConsistency()
}

// ApplyExit resta la cantidad del stock actual y recalcula el disponible.
// NO valida stock suficiente: esa verificación es del orquestador, contra la
// fila bloqueada, dentro de la misma transacción de BD.
func (r *InventoryRecord) ApplyExit(quantity decimal.Decimal, when, now time.Time) error {
	r.Current = r.Current.Sub(quantity)
	r.Available = r.Current.Sub(r.Reserved)
	r.LastExitAt = &when
	r.UpdatedAt = now
	return r.CheckConsistency()
}

// CheckConsistency verifica Available == Current - Reserved.
// Una violación significa que Reserved fue mutado fuera del flujo normal:
// error de programación, fatal para la operación en curso.
func (r *InventoryRecord) CheckConsistency() error {
	if !r.Available.Equal(r.Current.Sub(r.Reserved)) {
		return domain.ErrConsistencyFault
	}
	return nil
}
