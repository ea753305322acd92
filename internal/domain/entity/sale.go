package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale documento de venta (tabla ventas).
type Sale struct {
	ID            string
	InvoiceNumber string
	CustomerID    string
	Date          time.Time
	Total         decimal.Decimal
	SellerID      string // usuario vendedor
	StatusID      string
	Notes         string
	CreatedAt     time.Time
}

// SaleDetail línea de venta (tabla detalle_ventas). Cada línea genera una
// transacción SALIDA en el ledger al confirmarse la venta.
type SaleDetail struct {
	ID           string
	SaleID       string
	ProductID    string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	UnitDiscount decimal.Decimal
	Subtotal     decimal.Decimal
	CreatedAt    time.Time
}

// Customer cliente (tabla clientes). Solo lectura desde el núcleo de ventas.
type Customer struct {
	ID        string
	Name      string
	LastName  string
	Document  string
	Phone     string
	Email     string
	CreatedAt time.Time
}

// SaleStatus estado de venta (tabla estados_venta).
type SaleStatus struct {
	ID   string
	Name string
}
