package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/audit"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TransactionUseCase registra movimientos sueltos del ledger (ajustes manuales
// ENTRADA/SALIDA) de forma transaccional, con bloqueo de fila en inventario
// (SELECT FOR UPDATE) y actualización de la foto materializada en la misma tx.
type TransactionUseCase struct {
	txRunner    TxRunner
	typeRepo    repository.TransactionTypeRepository
	productRepo repository.ProductRepository
	txRepo      repository.TransactionRepository
	audit       *audit.Recorder
}

// NewTransactionUseCase construye el caso de uso. Los repos recibidos aquí van
// atados al pool (lecturas); las escrituras pasan siempre por el TxRunner.
func NewTransactionUseCase(
	txRunner TxRunner,
	typeRepo repository.TransactionTypeRepository,
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
	auditRec *audit.Recorder,
) *TransactionUseCase {
	return &TransactionUseCase{
		txRunner:    txRunner,
		typeRepo:    typeRepo,
		productRepo: productRepo,
		txRepo:      txRepo,
		audit:       auditRec,
	}
}

// TransactionInput entrada para registrar un movimiento manual.
type TransactionInput struct {
	Type      string // ENTRADA | SALIDA
	ProductID string
	Quantity  decimal.Decimal
	Date      *time.Time // nil = ahora
	Note      string
	UserID    string
}

// Register valida tipo, producto y cantidad, y dentro de una transacción de BD:
// bloquea la fila de inventario, para SALIDA verifica stock contra el agregado
// del ledger, escribe la transacción y actualiza la foto. Commit o Rollback.
func (uc *TransactionUseCase) Register(ctx context.Context, input TransactionInput) (*entity.Transaction, error) {
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	txType, err := uc.typeRepo.GetByName(ctx, input.Type)
	if err != nil {
		return nil, err
	}
	if txType == nil {
		return nil, domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	when := now
	if input.Date != nil {
		when = *input.Date
	}
	created := &entity.Transaction{
		ID:        uuid.New().String(),
		TypeID:    txType.ID,
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		Date:      when,
		Note:      input.Note,
		UserID:    input.UserID,
		CreatedAt: now,
	}

	err = uc.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		_ repository.TransactionTypeRepository,
		recordRepo repository.InventoryRecordRepository,
		_ repository.ProductRepository,
	) error {
		// Bloquea primero la fila de inventario: serializa las salidas
		// concurrentes del mismo producto antes de leer el agregado.
		record, err := recordRepo.GetForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}

		if txType.Name == entity.TransactionTypeSalida {
			// Los ajustes manuales validan contra el ledger (verdad autoritativa).
			stock, err := computeStock(ctx, txRepo, input.ProductID)
			if err != nil {
				return err
			}
			if stock.LessThan(input.Quantity) {
				return domain.ErrInsufficientStock
			}
		}

		if err := txRepo.Create(ctx, created); err != nil {
			return err
		}

		switch txType.Name {
		case entity.TransactionTypeEntrada:
			if err := record.ApplyEntry(input.Quantity, when, now); err != nil {
				return err
			}
		case entity.TransactionTypeSalida:
			if err := record.ApplyExit(input.Quantity, when, now); err != nil {
				return err
			}
		default:
			return domain.ErrInvalidInput
		}
		return recordRepo.Upsert(ctx, record)
	})
	if err != nil {
		uc.audit.Error(ctx, fmt.Sprintf("Error al crear transacción: %v", err), &input.UserID)
		return nil, err
	}

	uc.audit.Info(ctx, fmt.Sprintf(
		"Transacción %s registrada: %s (cantidad: %s)",
		txType.Name, product.Name, input.Quantity.String(),
	), &input.UserID)
	return created, nil
}

// GetByID obtiene una transacción del ledger.
func (uc *TransactionUseCase) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	tx, err := uc.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.ErrNotFound
	}
	return tx, nil
}

// ListByProduct lista las transacciones de un producto, más recientes primero.
func (uc *TransactionUseCase) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.Transaction, error) {
	return uc.txRepo.ListByProduct(ctx, productID, limit, offset)
}

// ListByType lista por tipo (ENTRADA|SALIDA), opcionalmente por producto.
func (uc *TransactionUseCase) ListByType(ctx context.Context, typeName string, productID *string, limit, offset int) ([]*entity.Transaction, error) {
	if typeName != entity.TransactionTypeEntrada && typeName != entity.TransactionTypeSalida {
		return nil, domain.ErrInvalidInput
	}
	return uc.txRepo.ListByType(ctx, typeName, productID, limit, offset)
}

// computeStock agrega el ledger: suma ENTRADA menos suma SALIDA.
// Cero si no hay transacciones; puede ser negativo (la prevención es del
// orquestador, no de esta capa).
func computeStock(ctx context.Context, txRepo repository.TransactionRepository, productID string) (decimal.Decimal, error) {
	entries, err := txRepo.SumByProductAndType(ctx, productID, entity.TransactionTypeEntrada)
	if err != nil {
		return decimal.Zero, err
	}
	exits, err := txRepo.SumByProductAndType(ctx, productID, entity.TransactionTypeSalida)
	if err != nil {
		return decimal.Zero, err
	}
	return entries.Sub(exits), nil
}
