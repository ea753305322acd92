package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// TransactionRepository define el puerto de persistencia para el ledger de
// transacciones. Deliberadamente NO expone Update ni Delete: la inmutabilidad
// del ledger se garantiza a nivel de tipo (además del trigger en la tabla).
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	// ListByProduct lista transacciones de un producto, más recientes primero.
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.Transaction, error)
	// ListByType lista transacciones por nombre de tipo (ENTRADA|SALIDA),
	// opcionalmente filtradas por producto, más recientes primero.
	ListByType(ctx context.Context, typeName string, productID *string, limit, offset int) ([]*entity.Transaction, error)
	// ListByPurchase lista las entradas asociadas a una compra, en orden de creación.
	ListByPurchase(ctx context.Context, purchaseID string, limit, offset int) ([]*entity.Transaction, error)
	// SumByProductAndType suma las cantidades de un producto para un tipo dado.
	// Es la base del agregado autoritativo de stock (ENTRADA - SALIDA).
	SumByProductAndType(ctx context.Context, productID, typeName string) (decimal.Decimal, error)
}

// TransactionTypeRepository define el puerto para los tipos de transacción.
type TransactionTypeRepository interface {
	GetByID(ctx context.Context, id string) (*entity.TransactionType, error)
	GetByName(ctx context.Context, name string) (*entity.TransactionType, error)
	// Ensure crea el tipo si no existe (idempotente; usado por el seed).
	Ensure(ctx context.Context, name, description string) (*entity.TransactionType, error)
}
