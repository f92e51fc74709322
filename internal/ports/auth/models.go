package auth

import "slices"

// PermissionDenied es el mensaje de rol insuficiente, el mismo en HTTP y en
// la fachada.
const PermissionDenied = "User does not have permission to perform this action"

// Role del usuario autenticado.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
	RoleClient  Role = "client"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff, RoleClient:
		return true
	}
	return false
}

// In indica si r está entre allowed.
func (r Role) In(allowed ...Role) bool {
	return slices.Contains(allowed, r)
}

// Claims representa la información extraída del token (o de la API key).
type Claims struct {
	UserID     string
	Email      string
	Role       Role
	LocationID string
}
