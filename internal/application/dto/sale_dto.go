package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleDetailRequest línea de venta.
type SaleDetailRequest struct {
	ProductID    string          `json:"producto_id"`
	Quantity     decimal.Decimal `json:"cantidad"`
	UnitPrice    decimal.Decimal `json:"precio_unitario"`
	UnitDiscount decimal.Decimal `json:"descuento_unitario"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// CreateSaleRequest body para POST /api/ventas.
type CreateSaleRequest struct {
	InvoiceNumber string              `json:"factura_id"`
	CustomerID    string              `json:"cliente_id"`
	Date          time.Time           `json:"fecha"`
	Total         decimal.Decimal     `json:"valor_total"`
	StatusID      string              `json:"estado_venta_id"`
	Notes         string              `json:"observaciones,omitempty"`
	Details       []SaleDetailRequest `json:"detalle_ventas"`
}

// SaleResponse respuesta de creación/consulta de venta.
type SaleResponse struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"factura_id"`
	CustomerID    string          `json:"cliente_id"`
	Date          time.Time       `json:"fecha"`
	Total         decimal.Decimal `json:"valor_total"`
	SellerID      string          `json:"vendedor_id"`
	StatusID      string          `json:"estado_venta_id"`
	Notes         string          `json:"observaciones,omitempty"`
}
