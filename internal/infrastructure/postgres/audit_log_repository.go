package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo log de auditoría sobre PostgreSQL - INMUTABLE.
// Como el ledger: solo Create y lecturas; la tabla lleva trigger anti
// UPDATE/DELETE por si alguien escribe por fuera del repositorio.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador del log de auditoría.
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

const auditLogColumns = `id, descripcion, usuario_tipo, tipo_log_id, usuario_id, fecha`

// Create persiste una entrada del log.
func (r *AuditLogRepo) Create(ctx context.Context, l *entity.AuditLog) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	query := `INSERT INTO logs (` + auditLogColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, l.ID, l.Description, l.ActorType, l.TypeID, l.UserID, l.Date)
	if err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada por ID. Nil si no existe.
func (r *AuditLogRepo) GetByID(ctx context.Context, id string) (*entity.AuditLog, error) {
	query := `SELECT ` + auditLogColumns + ` FROM logs WHERE id = $1`
	var l entity.AuditLog
	err := r.q.QueryRow(ctx, query, id).Scan(&l.ID, &l.Description, &l.ActorType, &l.TypeID, &l.UserID, &l.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get audit log: %w", err)
	}
	return &l, nil
}

// List lista entradas, más recientes primero, con filtros opcionales por
// nombre de tipo y por usuario.
func (r *AuditLogRepo) List(ctx context.Context, typeName *string, userID *string, limit, offset int) ([]*entity.AuditLog, error) {
	query := `
		SELECT l.id, l.descripcion, l.usuario_tipo, l.tipo_log_id, l.usuario_id, l.fecha
		FROM logs l
		JOIN tipos_log tl ON tl.id = l.tipo_log_id
		WHERE 1=1`
	args := []any{}
	pos := 1
	if typeName != nil {
		query += fmt.Sprintf(" AND tl.nombre = $%d", pos)
		args = append(args, *typeName)
		pos++
	}
	if userID != nil {
		query += fmt.Sprintf(" AND l.usuario_id = $%d", pos)
		args = append(args, *userID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY l.fecha DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditLog
	for rows.Next() {
		var l entity.AuditLog
		if err := rows.Scan(&l.ID, &l.Description, &l.ActorType, &l.TypeID, &l.UserID, &l.Date); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
