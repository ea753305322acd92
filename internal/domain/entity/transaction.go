package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Nombres de tipo de transacción. Solo estos dos participan en la aritmética
// de stock; cualquier otro nombre en tipos_transaccion queda fuera del cálculo.
const (
	TransactionTypeEntrada = "ENTRADA" // entrada de productos al inventario
	TransactionTypeSalida  = "SALIDA"  // salida de productos del inventario
)

// TransactionType tipo de transacción de inventario (tabla tipos_transaccion).
// Se resuelve por nombre y se referencia por ID desde las transacciones.
type TransactionType struct {
	ID          string
	Name        string
	Description string
}

// Transaction representa un movimiento del ledger de inventario (tabla transacciones).
// La cantidad es siempre positiva; la dirección la da el tipo (ENTRADA/SALIDA).
// Las filas son inmutables: se crean una vez y nunca se actualizan ni eliminan.
type Transaction struct {
	ID         string
	TypeID     string
	ProductID  string
	Quantity   decimal.Decimal
	Date       time.Time
	PurchaseID *string // compra asociada (solo entradas por compra)
	SaleID     *string // venta asociada (solo salidas por venta)
	Note       string
	UserID     string // usuario que registró el movimiento
	CreatedAt  time.Time
}
