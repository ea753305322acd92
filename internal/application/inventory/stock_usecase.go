package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// StockUseCase proyecta stock a partir del ledger de transacciones.
// Es el camino lento y autoritativo; la foto de inventario es la caché.
type StockUseCase struct {
	txRepo      repository.TransactionRepository
	productRepo repository.ProductRepository
}

// NewStockUseCase construye el proyector de stock.
func NewStockUseCase(txRepo repository.TransactionRepository, productRepo repository.ProductRepository) *StockUseCase {
	return &StockUseCase{txRepo: txRepo, productRepo: productRepo}
}

// ComputeStock calcula el stock actual de un producto: ENTRADAS - SALIDAS.
func (uc *StockUseCase) ComputeStock(ctx context.Context, productID string) (decimal.Decimal, error) {
	return computeStock(ctx, uc.txRepo, productID)
}

// GetStock devuelve stock calculado, stock mínimo y la bandera de stock bajo.
func (uc *StockUseCase) GetStock(ctx context.Context, productID string) (*dto.StockResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	stock, err := computeStock(ctx, uc.txRepo, productID)
	if err != nil {
		return nil, err
	}
	return &dto.StockResponse{
		ProductID:     productID,
		ComputedStock: stock,
		MinStock:      product.MinStock,
		IsLow:         stock.LessThan(product.MinStock),
	}, nil
}

// ListLowStock devuelve los productos cuyo stock calculado queda estrictamente
// por debajo del umbral, ascendente por stock. threshold nil compara contra el
// stock_minimo de cada producto. Recalcula producto a producto sobre el
// ledger: es una ruta de reporte, no el camino caliente de ventas.
func (uc *StockUseCase) ListLowStock(ctx context.Context, threshold *decimal.Decimal) ([]dto.LowStockItem, error) {
	products, err := uc.productRepo.List(ctx, 0, 0) // 0 = sin límite
	if err != nil {
		return nil, err
	}
	low := make([]dto.LowStockItem, 0)
	for _, p := range products {
		stock, err := computeStock(ctx, uc.txRepo, p.ID)
		if err != nil {
			return nil, err
		}
		limit := p.MinStock
		if threshold != nil {
			limit = *threshold
		}
		if stock.LessThan(limit) {
			low = append(low, dto.LowStockItem{
				ProductID:     p.ID,
				Name:          p.Name,
				Code:          p.Code,
				ComputedStock: stock,
				MinStock:      p.MinStock,
			})
		}
	}
	sort.Slice(low, func(i, j int) bool {
		return low[i].ComputedStock.LessThan(low[j].ComputedStock)
	})
	return low, nil
}
