package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain"
)

// StockHandler expone el stock calculado desde el ledger (protegido).
type StockHandler struct {
	uc *inventory.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// GetByProduct devuelve el stock agregado de un producto (ΣENTRADA - ΣSALIDA).
func (h *StockHandler) GetByProduct(c *fiber.Ctx) error {
	stock, err := h.uc.GetStock(c.Context(), c.Params("producto_id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(stock)
}

// ListLow devuelve los productos con stock bajo el umbral.
// Query: umbral (opcional; por defecto usa stock_minimo de cada producto).
func (h *StockHandler) ListLow(c *fiber.Ctx) error {
	var threshold *decimal.Decimal
	if raw := c.Query("umbral"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "umbral inválido"})
		}
		threshold = &d
	}
	items, err := h.uc.ListLowStock(c.Context(), threshold)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(items), "productos": items})
}
