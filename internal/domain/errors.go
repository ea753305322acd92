package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")

	// ErrImmutable: intento de modificar o borrar una fila del ledger (transacciones)
	// o del log de auditoría. Las filas son inmutables una vez creadas.
	ErrImmutable = errors.New("registro inmutable: no se permite actualizar ni eliminar")

	// ErrConsistencyFault: disponible != actual - reservada después de una mutación.
	// Indica que cantidad_reservada fue alterada fuera del flujo normal; no es recuperable.
	ErrConsistencyFault = errors.New("inconsistencia de inventario: disponible != actual - reservada")
)
