package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas y sus detalles.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateDetail(ctx context.Context, detail *entity.SaleDetail) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	ListDetails(ctx context.Context, saleID string) ([]*entity.SaleDetail, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Sale, error)
}

// CustomerRepository define el puerto para clientes (solo lectura desde ventas).
type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
}

// SaleStatusRepository define el puerto para estados de venta.
type SaleStatusRepository interface {
	GetByID(ctx context.Context, id string) (*entity.SaleStatus, error)
	GetByName(ctx context.Context, name string) (*entity.SaleStatus, error)
	Ensure(ctx context.Context, name string) (*entity.SaleStatus, error)
}
