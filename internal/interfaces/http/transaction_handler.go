package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TransactionHandler maneja el ledger de movimientos (protegido).
type TransactionHandler struct {
	uc       *inventory.TransactionUseCase
	typeRepo repository.TransactionTypeRepository
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *inventory.TransactionUseCase, typeRepo repository.TransactionTypeRepository) *TransactionHandler {
	return &TransactionHandler{uc: uc, typeRepo: typeRepo}
}

// Register registra un movimiento manual (ENTRADA o SALIDA).
func (h *TransactionHandler) Register(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Type != entity.TransactionTypeEntrada && in.Type != entity.TransactionTypeSalida {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo debe ser ENTRADA o SALIDA"})
	}
	tx, err := h.uc.Register(c.Context(), inventory.TransactionInput{
		Type:      in.Type,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Date:      in.Date,
		Note:      in.Note,
		UserID:    userID,
	})
	if err != nil {
		return mapTransactionError(c, err)
	}
	resp := dto.ToTransactionResponse(tx, in.Type)
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID devuelve una transacción del ledger.
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	tx, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "transacción no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	names, err := h.resolveTypeNames(c.Context(), []*entity.Transaction{tx})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ToTransactionResponse(tx, names[tx.TypeID]))
}

// List devuelve el historial de un producto, opcionalmente filtrado por tipo.
// Query: producto_id (requerido), tipo (ENTRADA|SALIDA, opcional), limit, offset.
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	productID := c.Query("producto_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "producto_id es requerido"})
	}
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	var (
		txs []*entity.Transaction
		err error
	)
	if typeName := c.Query("tipo"); typeName != "" {
		txs, err = h.uc.ListByType(c.Context(), typeName, &productID, limit, offset)
	} else {
		txs, err = h.uc.ListByProduct(c.Context(), productID, limit, offset)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	names, err := h.resolveTypeNames(c.Context(), txs)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, dto.ToTransactionResponse(tx, names[tx.TypeID]))
	}
	return c.JSON(fiber.Map{"total": len(out), "transacciones": out})
}

// Immutable responde 405 para PUT/DELETE: el ledger es append-only.
func (h *TransactionHandler) Immutable(c *fiber.Ctx) error {
	return c.Status(fiber.StatusMethodNotAllowed).JSON(dto.ErrorResponse{
		Code:    "IMMUTABLE",
		Message: domain.ErrImmutable.Error(),
	})
}

// resolveTypeNames mapea tipo_transaccion_id -> nombre para un lote de transacciones.
func (h *TransactionHandler) resolveTypeNames(ctx context.Context, txs []*entity.Transaction) (map[string]string, error) {
	names := make(map[string]string, 2)
	for _, tx := range txs {
		if _, ok := names[tx.TypeID]; ok {
			continue
		}
		t, err := h.typeRepo.GetByID(ctx, tx.TypeID)
		if err != nil {
			return nil, err
		}
		if t != nil {
			names[tx.TypeID] = t.Name
		}
	}
	return names, nil
}

func mapTransactionError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos: cantidad debe ser mayor que cero"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	}
	if errors.Is(err, domain.ErrInsufficientStock) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
