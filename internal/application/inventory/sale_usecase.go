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

// SaleUseCase orquesta una venta completa: cabecera, detalles, transacciones
// SALIDA y actualización de inventario, en una sola transacción de BD.
//
// La verificación de disponibilidad se hace contra la fila de inventario
// bloqueada (SELECT FOR UPDATE), no contra una re-agregación del ledger:
// lectura del disponible, decisión y decremento ocurren dentro de la misma tx,
// de modo que dos ventas concurrentes del mismo producto jamás sobregiran el
// disponible por lecturas intercaladas.
type SaleUseCase struct {
	txRunner     TxRunner
	customerRepo repository.CustomerRepository
	statusRepo   repository.SaleStatusRepository
	productRepo  repository.ProductRepository
	typeRepo     repository.TransactionTypeRepository
	saleRepo     repository.SaleRepository
	audit        *audit.Recorder
}

// NewSaleUseCase construye el caso de uso de ventas.
func NewSaleUseCase(
	txRunner TxRunner,
	customerRepo repository.CustomerRepository,
	statusRepo repository.SaleStatusRepository,
	productRepo repository.ProductRepository,
	typeRepo repository.TransactionTypeRepository,
	saleRepo repository.SaleRepository,
	auditRec *audit.Recorder,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:     txRunner,
		customerRepo: customerRepo,
		statusRepo:   statusRepo,
		productRepo:  productRepo,
		typeRepo:     typeRepo,
		saleRepo:     saleRepo,
		audit:        auditRec,
	}
}

// InsufficientStockError detalla qué producto no alcanzó y cuánto había.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   decimal.Decimal
	Requested   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para el producto %s (disponible: %s, solicitado: %s)",
		e.ProductName, e.Available.String(), e.Requested.String())
}

// Unwrap permite errors.Is(err, domain.ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return domain.ErrInsufficientStock }

// Create procesa una venta con N líneas. Resuelve cliente, estado y productos;
// dentro de la tx bloquea cada fila de inventario, verifica disponible >=
// solicitado (aborta todo con InsufficientStockError antes de decrementar),
// inserta cabecera, detalles y transacciones SALIDA, y aplica las salidas.
// Commit o Rollback completo: nunca queda un decremento parcial visible.
func (uc *SaleUseCase) Create(ctx context.Context, input dto.CreateSaleRequest, sellerID string) (*entity.Sale, error) {
	if len(input.Details) == 0 {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	status, err := uc.statusRepo.GetByID(ctx, input.StatusID)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return nil, domain.ErrNotFound
	}
	salida, err := uc.typeRepo.GetByName(ctx, entity.TransactionTypeSalida)
	if err != nil {
		return nil, err
	}
	if salida == nil {
		return nil, domain.ErrNotFound
	}

	// Resolución de productos antes de cualquier write; el orden de las
	// líneas se preserva tal cual lo envió el caller.
	products := make([]*entity.Product, len(input.Details))
	for i, d := range input.Details {
		if !d.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		p, err := uc.productRepo.GetByID(ctx, d.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("producto %s: %w", d.ProductID, domain.ErrNotFound)
		}
		products[i] = p
	}

	now := time.Now()
	when := input.Date
	if when.IsZero() {
		when = now
	}
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		InvoiceNumber: input.InvoiceNumber,
		CustomerID:    input.CustomerID,
		Date:          when,
		Total:         input.Total,
		SellerID:      sellerID,
		StatusID:      input.StatusID,
		Notes:         input.Notes,
		CreatedAt:     now,
	}

	err = uc.txRunner.RunSale(ctx, func(
		txRepo repository.TransactionRepository,
		_ repository.TransactionTypeRepository,
		recordRepo repository.InventoryRecordRepository,
		_ repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		// Bloquea cada producto una sola vez y verifica disponibilidad de
		// TODAS las líneas antes de escribir: una línea corta aborta la
		// venta completa. El mismo producto en varias líneas acumula.
		records := make(map[string]*entity.InventoryRecord, len(input.Details))
		remaining := make(map[string]decimal.Decimal, len(input.Details))
		for i, d := range input.Details {
			record, ok := records[d.ProductID]
			if !ok {
				var err error
				record, err = recordRepo.GetForUpdate(ctx, d.ProductID)
				if err != nil {
					return err
				}
				records[d.ProductID] = record
				remaining[d.ProductID] = record.Available
			}
			if remaining[d.ProductID].LessThan(d.Quantity) {
				return &InsufficientStockError{
					ProductID:   d.ProductID,
					ProductName: products[i].Name,
					Available:   record.Available,
					Requested:   d.Quantity,
				}
			}
			remaining[d.ProductID] = remaining[d.ProductID].Sub(d.Quantity)
		}

		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		for _, d := range input.Details {
			detail := &entity.SaleDetail{
				ID:           uuid.New().String(),
				SaleID:       sale.ID,
				ProductID:    d.ProductID,
				Quantity:     d.Quantity,
				UnitPrice:    d.UnitPrice,
				UnitDiscount: d.UnitDiscount,
				Subtotal:     d.Subtotal,
				CreatedAt:    now,
			}
			if err := saleRepo.CreateDetail(ctx, detail); err != nil {
				return err
			}

			sid := sale.ID
			tx := &entity.Transaction{
				ID:        uuid.New().String(),
				TypeID:    salida.ID,
				ProductID: d.ProductID,
				Quantity:  d.Quantity,
				Date:      when,
				SaleID:    &sid,
				Note:      fmt.Sprintf("Venta #%s", sale.InvoiceNumber),
				UserID:    sellerID,
				CreatedAt: now,
			}
			if err := txRepo.Create(ctx, tx); err != nil {
				return err
			}

			record := records[d.ProductID]
			if err := record.ApplyExit(d.Quantity, when, now); err != nil {
				return err
			}
			if err := recordRepo.Upsert(ctx, record); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.audit.Error(ctx, fmt.Sprintf("Error al crear venta: %v", err), &sellerID)
		return nil, err
	}

	uc.audit.Info(ctx, fmt.Sprintf(
		"Venta creada con ID %s (factura=%s, cliente=%s %s)",
		sale.ID, sale.InvoiceNumber, customer.Name, customer.LastName,
	), &sellerID)
	return sale, nil
}

// GetByID obtiene una venta por ID.
func (uc *SaleUseCase) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return sale, nil
}

// List lista ventas.
func (uc *SaleUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Sale, error) {
	return uc.saleRepo.List(ctx, limit, offset)
}
