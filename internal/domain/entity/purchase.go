package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase documento de compra (tabla compras). El núcleo de inventario solo
// cuelga transacciones ENTRADA de su ID; la cabecera la administra el CRUD externo.
type Purchase struct {
	ID         string
	Number     string
	SupplierID *string
	Date       time.Time
	Total      decimal.Decimal
	UserID     string
	Notes      string
	CreatedAt  time.Time
}
