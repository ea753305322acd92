package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/audit"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// PurchaseUseCase procesa lotes de líneas de compra: por cada línea una
// transacción ENTRADA etiquetada con la compra y la actualización de la foto
// de inventario, todo dentro de una sola transacción de BD. El lote completo
// hace Commit o Rollback: nunca hay efecto parcial visible.
type PurchaseUseCase struct {
	txRunner     TxRunner
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
	typeRepo     repository.TransactionTypeRepository
	txRepo       repository.TransactionRepository
	audit        *audit.Recorder
}

// NewPurchaseUseCase construye el caso de uso de compras.
func NewPurchaseUseCase(
	txRunner TxRunner,
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	typeRepo repository.TransactionTypeRepository,
	txRepo repository.TransactionRepository,
	auditRec *audit.Recorder,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:     txRunner,
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		typeRepo:     typeRepo,
		txRepo:       txRepo,
		audit:        auditRec,
	}
}

// Create registra el documento de compra. El documento es solo la cabecera:
// la mercancía entra después, línea a línea, vía AddItems.
func (uc *PurchaseUseCase) Create(ctx context.Context, req dto.CreatePurchaseRequest, userID string) (*entity.Purchase, error) {
	if req.Number == "" {
		return nil, domain.ErrInvalidInput
	}
	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}
	purchase := &entity.Purchase{
		ID:         uuid.New().String(),
		Number:     req.Number,
		SupplierID: req.SupplierID,
		Date:       date,
		Total:      req.Total,
		UserID:     userID,
		Notes:      req.Notes,
		CreatedAt:  time.Now(),
	}
	if err := uc.purchaseRepo.Create(ctx, purchase); err != nil {
		uc.audit.Error(ctx, fmt.Sprintf("Error al crear compra %s: %v", req.Number, err), &userID)
		return nil, err
	}
	uc.audit.Info(ctx, fmt.Sprintf("Compra creada con ID %s (numero=%s)", purchase.ID, purchase.Number), &userID)
	return purchase, nil
}

// GetByID obtiene una compra por ID.
func (uc *PurchaseUseCase) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	purchase, err := uc.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	return purchase, nil
}

// List lista compras, más recientes primero.
func (uc *PurchaseUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Purchase, error) {
	return uc.purchaseRepo.List(ctx, limit, offset)
}

// AddItems agrega un lote de líneas a una compra existente. Valida compra,
// tipo ENTRADA y todos los productos antes de escribir nada; si alguna línea
// no resuelve, no se escribe ninguna. Devuelve las transacciones creadas en
// el orden de las líneas recibidas.
func (uc *PurchaseUseCase) AddItems(ctx context.Context, purchaseID string, lines []dto.PurchaseLineRequest, userID string) ([]*entity.Transaction, error) {
	if len(lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	purchase, err := uc.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	entrada, err := uc.typeRepo.GetByName(ctx, entity.TransactionTypeEntrada)
	if err != nil {
		return nil, err
	}
	if entrada == nil {
		return nil, domain.ErrNotFound
	}

	// Fase de validación: toda línea debe resolver antes del primer write.
	for _, line := range lines {
		if !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("producto %s: %w", line.ProductID, domain.ErrNotFound)
		}
	}

	now := time.Now()
	created := make([]*entity.Transaction, 0, len(lines))

	err = uc.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		_ repository.TransactionTypeRepository,
		recordRepo repository.InventoryRecordRepository,
		_ repository.ProductRepository,
	) error {
		for _, line := range lines {
			note := line.Note
			if note == "" {
				note = fmt.Sprintf("Compra #%s", purchaseID)
			}
			pid := purchaseID
			tx := &entity.Transaction{
				ID:         uuid.New().String(),
				TypeID:     entrada.ID,
				ProductID:  line.ProductID,
				Quantity:   line.Quantity,
				Date:       now,
				PurchaseID: &pid,
				Note:       note,
				UserID:     userID,
				CreatedAt:  now,
			}
			if err := txRepo.Create(ctx, tx); err != nil {
				return err
			}

			record, err := recordRepo.GetForUpdate(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if err := record.ApplyEntry(line.Quantity, now, now); err != nil {
				return err
			}
			if err := recordRepo.Upsert(ctx, record); err != nil {
				return err
			}
			created = append(created, tx)
		}
		return nil
	})
	if err != nil {
		uc.audit.Error(ctx, fmt.Sprintf("Error al agregar items a compra %s: %v", purchaseID, err), &userID)
		return nil, err
	}

	uc.audit.Info(ctx, fmt.Sprintf("Se agregaron %d items a la compra %s", len(created), purchaseID), &userID)
	return created, nil
}

// ListItems lista las transacciones ENTRADA de una compra.
func (uc *PurchaseUseCase) ListItems(ctx context.Context, purchaseID string, limit, offset int) ([]*entity.Transaction, error) {
	purchase, err := uc.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	return uc.txRepo.ListByPurchase(ctx, purchaseID, limit, offset)
}
