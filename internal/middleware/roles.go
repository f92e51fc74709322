package middleware

import (
	"net/http"
	"strings"

	"doggy-daycare/internal/platform/apperr"
	"doggy-daycare/internal/platform/httpx"
	"doggy-daycare/internal/ports/auth"
)

// RequireRoles corta con 401 si no hay claims y con 403 si el rol no está
// entre los permitidos.
func RequireRoles(allowed ...auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r.Context())
			if !ok || strings.TrimSpace(claims.UserID) == "" {
				httpx.Unauthorized(w)
				return
			}
			if !claims.Role.In(allowed...) {
				httpx.WriteError(w, r, apperr.Authorization(auth.PermissionDenied))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ManagersOnly: configuración de sedes, catálogo, personal y reportes.
func ManagersOnly() func(http.Handler) http.Handler {
	return RequireRoles(auth.RoleAdmin, auth.RoleManager)
}

// StaffOnly: operación diaria del mostrador.
func StaffOnly() func(http.Handler) http.Handler {
	return RequireRoles(auth.RoleAdmin, auth.RoleManager, auth.RoleStaff)
}
