// seed puebla los datos paramétricos mínimos del sistema: tipos de
// transacción (ENTRADA/SALIDA), tipos de log, estados de venta y un
// usuario admin inicial si no existe ninguno.
//
// Uso: go run ./cmd/seed
// Lee la configuración de BD de las mismas env vars que el servidor.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Almacen-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	typeRepo := postgres.NewTransactionTypeRepository(pool)
	logTypeRepo := postgres.NewLogTypeRepository(pool)
	statusRepo := postgres.NewSaleStatusRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	// Tipos de transacción del ledger
	txTypes := map[string]string{
		entity.TransactionTypeEntrada: "Entrada de mercancía al inventario",
		entity.TransactionTypeSalida:  "Salida de mercancía del inventario",
	}
	for name, desc := range txTypes {
		t, err := typeRepo.Ensure(ctx, name, desc)
		if err != nil {
			fail("tipo de transacción %s: %v", name, err)
		}
		fmt.Printf("tipo de transacción %-8s -> %s\n", name, t.ID)
	}

	// Tipos de log de auditoría
	logTypes := map[string]string{
		entity.LogTypeError:   "Errores de operación",
		entity.LogTypeWarning: "Advertencias",
		entity.LogTypeInfo:    "Eventos informativos",
		entity.LogTypeLogin:   "Inicios de sesión",
		entity.LogTypeSignup:  "Registros de usuario",
	}
	for name, desc := range logTypes {
		t, err := logTypeRepo.Ensure(ctx, name, desc)
		if err != nil {
			fail("tipo de log %s: %v", name, err)
		}
		fmt.Printf("tipo de log %-8s -> %s\n", name, t.ID)
	}

	// Estados de venta
	for _, name := range []string{"PENDIENTE", "COMPLETADA", "ANULADA"} {
		s, err := statusRepo.Ensure(ctx, name)
		if err != nil {
			fail("estado de venta %s: %v", name, err)
		}
		fmt.Printf("estado de venta %-11s -> %s\n", name, s.ID)
	}

	// Usuario admin inicial (solo si la tabla está vacía)
	count, err := userRepo.Count(ctx)
	if err != nil {
		fail("contar usuarios: %v", err)
	}
	if count > 0 {
		fmt.Println("usuarios ya existentes, se omite el admin inicial")
		return
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
		fmt.Println("SEED_ADMIN_PASSWORD no definido, usando password por defecto (cambiar en producción)")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fail("hashear password: %v", err)
	}
	now := time.Now()
	admin := &entity.User{
		ID:           uuid.New().String(),
		Username:     "admin",
		Email:        "admin@almacen.local",
		PasswordHash: string(hash),
		Name:         "Administrador",
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		fail("crear admin: %v", err)
	}
	fmt.Printf("usuario admin creado -> %s\n", admin.ID)
}

func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
