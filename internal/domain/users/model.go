package users

import (
	"time"

	"doggy-daycare/internal/ports/auth"
)

type Role = auth.Role

const (
	RoleAdmin   = auth.RoleAdmin
	RoleManager = auth.RoleManager
	RoleStaff   = auth.RoleStaff
	RoleClient  = auth.RoleClient
)

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`

	PasswordHash string `json:"-"`
	APIKey       string `json:"-"`

	Role       Role    `json:"role"`
	LocationID *string `json:"location_id,omitempty"`
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	Active     bool    `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
}

// Claims arma las claims de autenticación del usuario.
func (u User) Claims() auth.Claims {
	c := auth.Claims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
	}
	if u.LocationID != nil {
		c.LocationID = *u.LocationID
	}
	return c
}

// LoginResult es lo que devuelve un login exitoso.
type LoginResult struct {
	UserID string `json:"user_id"`
	APIKey string `json:"api_key"`
	Role   Role   `json:"role"`
}
