package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// CreatePurchaseRequest body para POST /api/compras.
type CreatePurchaseRequest struct {
	Number     string          `json:"numero_compra"`
	SupplierID *string         `json:"proveedor_id,omitempty"`
	Date       time.Time       `json:"fecha_compra"`
	Total      decimal.Decimal `json:"total"`
	Notes      string          `json:"observaciones,omitempty"`
}

// PurchaseResponse respuesta de creación/consulta de compra.
type PurchaseResponse struct {
	ID         string          `json:"id"`
	Number     string          `json:"numero_compra"`
	SupplierID *string         `json:"proveedor_id,omitempty"`
	Date       time.Time       `json:"fecha_compra"`
	Total      decimal.Decimal `json:"total"`
	UserID     string          `json:"usuario_id"`
	Notes      string          `json:"observaciones,omitempty"`
}

// ToPurchaseResponse mapea la entidad a la respuesta HTTP.
func ToPurchaseResponse(p *entity.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:         p.ID,
		Number:     p.Number,
		SupplierID: p.SupplierID,
		Date:       p.Date,
		Total:      p.Total,
		UserID:     p.UserID,
		Notes:      p.Notes,
	}
}

// PurchaseLineRequest una línea de compra (recibo de mercancía).
type PurchaseLineRequest struct {
	ProductID string          `json:"producto_id"`
	Quantity  decimal.Decimal `json:"cantidad"`
	Note      string          `json:"observaciones,omitempty"`
}

// AddPurchaseItemsRequest body para POST /api/compras/:id/transacciones.
// Las líneas se procesan en el orden recibido, como un solo lote atómico.
type AddPurchaseItemsRequest struct {
	Items []PurchaseLineRequest `json:"items"`
}
