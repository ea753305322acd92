package stats

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// StatsUseCase estadísticas generales del sistema: totales y productos
// bajo su stock mínimo (recalculado desde el ledger, ruta de reporte).
type StatsUseCase struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	stockUC     *inventory.StockUseCase
}

// NewStatsUseCase construye el caso de uso de estadísticas.
func NewStatsUseCase(productRepo repository.ProductRepository, userRepo repository.UserRepository, stockUC *inventory.StockUseCase) *StatsUseCase {
	return &StatsUseCase{productRepo: productRepo, userRepo: userRepo, stockUC: stockUC}
}

// General devuelve totales de productos y usuarios más el reporte de stock
// bajo contra el umbral mínimo de cada producto.
func (uc *StatsUseCase) General(ctx context.Context) (*dto.StatsResponse, error) {
	totalProducts, err := uc.productRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalUsers, err := uc.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	low, err := uc.stockUC.ListLowStock(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &dto.StatsResponse{
		TotalProducts:     totalProducts,
		TotalUsers:        totalUsers,
		LowStock:          low,
		DatabaseConnected: true,
	}, nil
}
