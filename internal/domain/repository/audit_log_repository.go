package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// AuditLogRepository define el puerto para el log de auditoría - INMUTABLE.
// Solo crear y leer; como en el ledger, no existen métodos de mutación.
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	GetByID(ctx context.Context, id string) (*entity.AuditLog, error)
	List(ctx context.Context, typeName *string, userID *string, limit, offset int) ([]*entity.AuditLog, error)
}

// LogTypeRepository define el puerto para tipos de log.
type LogTypeRepository interface {
	GetByName(ctx context.Context, name string) (*entity.LogType, error)
	Ensure(ctx context.Context, name, description string) (*entity.LogType, error)
}
