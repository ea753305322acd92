package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// InventoryRecordRepository define el puerto para la foto materializada de
// inventario por producto. Usado dentro de transacciones de BD para garantizar
// consistencia con el ledger.
type InventoryRecordRepository interface {
	Get(ctx context.Context, productID string) (*entity.InventoryRecord, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE). Si no
	// existe, la materializa en ceros antes de bloquearla (creación perezosa):
	// el primer movimiento de un producto también debe contender por la fila.
	GetForUpdate(ctx context.Context, productID string) (*entity.InventoryRecord, error)
	Upsert(ctx context.Context, record *entity.InventoryRecord) error
}
