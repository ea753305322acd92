package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// RegisterTransactionRequest body para POST /api/transacciones (ajuste manual).
type RegisterTransactionRequest struct {
	Type      string          `json:"tipo"` // ENTRADA | SALIDA
	ProductID string          `json:"producto_id"`
	Quantity  decimal.Decimal `json:"cantidad"`
	Date      *time.Time      `json:"fecha,omitempty"`
	Note      string          `json:"observaciones,omitempty"`
}

// TransactionResponse representación de una transacción del ledger.
type TransactionResponse struct {
	ID         string          `json:"id"`
	Type       string          `json:"tipo"`
	ProductID  string          `json:"producto_id"`
	Quantity   decimal.Decimal `json:"cantidad"`
	Date       time.Time       `json:"fecha"`
	PurchaseID *string         `json:"compra_id,omitempty"`
	SaleID     *string         `json:"venta_id,omitempty"`
	Note       string          `json:"observaciones,omitempty"`
	UserID     string          `json:"usuario_id"`
	CreatedAt  time.Time       `json:"fecha_creacion"`
}

// StockResponse respuesta de GET /api/stock/:producto_id.
// ComputedStock sale del agregado del ledger (verdad autoritativa);
// el registro de inventario es solo la caché del camino caliente.
type StockResponse struct {
	ProductID     string          `json:"producto_id"`
	ComputedStock decimal.Decimal `json:"stock_actual"`
	MinStock      decimal.Decimal `json:"stock_minimo"`
	IsLow         bool            `json:"stock_bajo"`
}

// LowStockItem producto bajo el umbral de stock.
type LowStockItem struct {
	ProductID     string          `json:"producto_id"`
	Name          string          `json:"nombre"`
	Code          string          `json:"codigo"`
	ComputedStock decimal.Decimal `json:"stock_actual"`
	MinStock      decimal.Decimal `json:"stock_minimo"`
}

// ToTransactionResponse convierte la entidad a su representación HTTP.
// typeName se resuelve aparte porque la entidad solo guarda el ID del tipo.
func ToTransactionResponse(t *entity.Transaction, typeName string) TransactionResponse {
	return TransactionResponse{
		ID:         t.ID,
		Type:       typeName,
		ProductID:  t.ProductID,
		Quantity:   t.Quantity,
		Date:       t.Date,
		PurchaseID: t.PurchaseID,
		SaleID:     t.SaleID,
		Note:       t.Note,
		UserID:     t.UserID,
		CreatedAt:  t.CreatedAt,
	}
}
