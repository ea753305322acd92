package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Recorder escribe entradas en el log de auditoría (tabla logs, inmutable).
// Es fire-and-forget: un fallo al auditar se registra en zerolog y se descarta,
// nunca aborta la operación de negocio que lo originó.
type Recorder struct {
	logRepo  repository.AuditLogRepository
	typeRepo repository.LogTypeRepository
	log      zerolog.Logger

	mu        sync.RWMutex
	typeCache map[string]string // nombre de tipo -> id, para no consultar en cada log
}

// NewRecorder construye el recorder de auditoría.
func NewRecorder(logRepo repository.AuditLogRepository, typeRepo repository.LogTypeRepository, log zerolog.Logger) *Recorder {
	return &Recorder{
		logRepo:   logRepo,
		typeRepo:  typeRepo,
		log:       log,
		typeCache: make(map[string]string),
	}
}

// Info registra una acción informativa.
func (r *Recorder) Info(ctx context.Context, description string, userID *string) {
	r.record(ctx, entity.LogTypeInfo, description, userID)
}

// Warning registra una advertencia no crítica.
func (r *Recorder) Warning(ctx context.Context, description string, userID *string) {
	r.record(ctx, entity.LogTypeWarning, description, userID)
}

// Error registra un error.
func (r *Recorder) Error(ctx context.Context, description string, userID *string) {
	r.record(ctx, entity.LogTypeError, description, userID)
}

// Login registra un inicio de sesión.
func (r *Recorder) Login(ctx context.Context, userID string) {
	r.record(ctx, entity.LogTypeLogin, "Usuario inició sesión", &userID)
}

func (r *Recorder) record(ctx context.Context, typeName, description string, userID *string) {
	typeID, err := r.typeID(ctx, typeName)
	if err != nil {
		r.log.Warn().Err(err).Str("tipo", typeName).Msg("auditoría: tipo de log no configurado")
		return
	}
	actor := entity.ActorSystem
	if userID != nil {
		actor = entity.ActorUser
	}
	log := &entity.AuditLog{
		ID:          uuid.New().String(),
		Description: description,
		ActorType:   actor,
		TypeID:      typeID,
		UserID:      userID,
		Date:        time.Now(),
	}
	if err := r.logRepo.Create(ctx, log); err != nil {
		r.log.Warn().Err(err).Msg("auditoría: no se pudo escribir el log")
	}
}

func (r *Recorder) typeID(ctx context.Context, name string) (string, error) {
	r.mu.RLock()
	id, ok := r.typeCache[name]
	r.mu.RUnlock()
	if ok {
		return id, nil
	}
	t, err := r.typeRepo.GetByName(ctx, name)
	if err != nil {
		return "", err
	}
	if t == nil {
		return "", domain.ErrNotFound
	}
	r.mu.Lock()
	r.typeCache[name] = t.ID
	r.mu.Unlock()
	return t.ID, nil
}
