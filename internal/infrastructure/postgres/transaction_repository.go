package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación del ledger sobre PostgreSQL (usable con pool
// o tx). No existen métodos Update ni Delete: el ledger es append-only y la
// tabla además lleva un trigger que rechaza UPDATE/DELETE.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `id, tipo_transaccion_id, producto_id, cantidad, fecha, compra_id, venta_id, observaciones, usuario_id, fecha_creacion`

// Create persiste una transacción del ledger.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	query := `
		INSERT INTO transacciones (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.TypeID, t.ProductID, t.Quantity, t.Date,
		t.PurchaseID, t.SaleID, nullIfEmpty(t.Note), t.UserID, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción por ID.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transacciones WHERE id = $1`
	t, err := scanTransaction(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// ListByProduct lista transacciones de un producto, más recientes primero.
func (r *TransactionRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transacciones WHERE producto_id = $1
		ORDER BY fecha DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list by product: %w", err)
	}
	return collectTransactions(rows)
}

// ListByType lista transacciones por nombre de tipo, opcionalmente filtradas
// por producto, más recientes primero.
func (r *TransactionRepo) ListByType(ctx context.Context, typeName string, productID *string, limit, offset int) ([]*entity.Transaction, error) {
	query := `
		SELECT t.id, t.tipo_transaccion_id, t.producto_id, t.cantidad, t.fecha, t.compra_id, t.venta_id, t.observaciones, t.usuario_id, t.fecha_creacion
		FROM transacciones t
		JOIN tipos_transaccion tt ON tt.id = t.tipo_transaccion_id
		WHERE tt.nombre = $1`
	args := []any{typeName}
	pos := 2
	if productID != nil {
		query += fmt.Sprintf(" AND t.producto_id = $%d", pos)
		args = append(args, *productID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY t.fecha DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list by type: %w", err)
	}
	return collectTransactions(rows)
}

// ListByPurchase lista las entradas de una compra en orden de creación.
func (r *TransactionRepo) ListByPurchase(ctx context.Context, purchaseID string, limit, offset int) ([]*entity.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transacciones WHERE compra_id = $1
		ORDER BY fecha_creacion ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, purchaseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list by purchase: %w", err)
	}
	return collectTransactions(rows)
}

// SumByProductAndType suma cantidades de un producto para un tipo.
// COALESCE a 0 cuando no hay filas.
func (r *TransactionRepo) SumByProductAndType(ctx context.Context, productID, typeName string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(t.cantidad), 0)
		FROM transacciones t
		JOIN tipos_transaccion tt ON tt.id = t.tipo_transaccion_id
		WHERE t.producto_id = $1 AND tt.nombre = $2`
	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, query, productID, typeName).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum by product and type: %w", err)
	}
	return sum, nil
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	var note *string
	if err := row.Scan(
		&t.ID, &t.TypeID, &t.ProductID, &t.Quantity, &t.Date,
		&t.PurchaseID, &t.SaleID, &note, &t.UserID, &t.CreatedAt,
	); err != nil {
		return nil, err
	}
	if note != nil {
		t.Note = *note
	}
	return &t, nil
}

func collectTransactions(rows pgx.Rows) ([]*entity.Transaction, error) {
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
