package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product datos maestros de producto (tabla productos).
// Desde el núcleo de inventario es solo lectura; el CRUD de productos lo administra.
type Product struct {
	ID            string
	Code          string
	Name          string
	Description   string
	Brand         string
	Model         string
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	MinStock      decimal.Decimal // umbral de stock mínimo para reportes de stock bajo
	UnitMeasure   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
