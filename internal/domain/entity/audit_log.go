package entity

import "time"

// Nombres de tipo de log (tabla tipos_log).
const (
	LogTypeError   = "ERROR"
	LogTypeWarning = "WARNING"
	LogTypeInfo    = "INFO"
	LogTypeLogin   = "LOGIN"
	LogTypeSignup  = "SIGNUP"
)

// Tipos de actor para un log.
const (
	ActorSystem = "SYSTEM"
	ActorUser   = "USUARIO"
)

// LogType tipo de log de auditoría.
type LogType struct {
	ID          string
	Name        string
	Description string
}

// AuditLog entrada del log de auditoría (tabla logs) - INMUTABLE.
// Se crea una vez y nunca se actualiza ni elimina.
type AuditLog struct {
	ID          string
	Description string
	ActorType   string // SYSTEM o USUARIO
	TypeID      string
	UserID      *string // nil para logs de SYSTEM
	Date        time.Time
}
