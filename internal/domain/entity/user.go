package entity

import (
	"slices"
	"time"
)

// Roles válidos para User. No son excluyentes: un usuario puede ser a la vez
// customer y vendor, o customer y admin.
const (
	RoleCustomer = "customer"
	RoleVendor   = "vendor"
	RoleAdmin    = "admin"
)

// User representa una identidad del sistema (clientes y administradores;
// los vendedores son un User con perfil Vendor asociado).
// TokenVersion se incrementa al cambiar la contraseña: invalida de golpe
// todos los refresh tokens emitidos con la versión anterior.
type User struct {
	ID           string
	Email        string // único
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Roles        []string // customer, vendor, admin (conjunto)
	Active       bool
	TokenVersion int
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole indica si el usuario tiene el rol dado.
func (u *User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}
