package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "ADMIN"
	RoleStartup = "STARTUP"
)

// User representa una cuenta que puede iniciar sesión.
// Los usuarios STARTUP se vinculan a su Startup mediante Startup.UserID.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // ADMIN, STARTUP
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsValidRole informa si role es uno de los roles conocidos.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleStartup
}
