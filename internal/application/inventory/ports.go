package inventory

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// inventario: todo el lote hace Commit o Rollback como unidad.
type TxRunner interface {
	// Run pasa los repositorios del núcleo de inventario (ledger + foto).
	Run(ctx context.Context, fn func(
		txRepo repository.TransactionRepository,
		typeRepo repository.TransactionTypeRepository,
		recordRepo repository.InventoryRecordRepository,
		productRepo repository.ProductRepository,
	) error) error

	// RunSale añade los repositorios de venta (cabecera + detalles) a la misma tx.
	RunSale(ctx context.Context, fn func(
		txRepo repository.TransactionRepository,
		typeRepo repository.TransactionTypeRepository,
		recordRepo repository.InventoryRecordRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
