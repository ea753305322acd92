package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"
	RoleOperador = "operador"
	RoleVendedor = "vendedor"
)

// User usuario del sistema (tabla usuarios).
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin | operador | vendedor
	Status       string // active | inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
