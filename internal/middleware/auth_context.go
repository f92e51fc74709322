package middleware

import (
	"context"
	"net/http"
	"strings"

	"doggy-daycare/internal/platform/logger"
	"doggy-daycare/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

const (
	HeaderAPIKey    = "X-Api-Key"
	HeaderDebugUser = "X-Debug-User-ID"
	HeaderDebugRole = "X-Debug-Role"
)

type AuthOptions struct {
	// Verifier de Bearer tokens; nil => se ignora Authorization.
	Verifier auth.AuthVerifier
	// APIKeys resuelve X-Api-Key; nil => se ignora el header.
	APIKeys auth.APIKeyResolver
	// DevHeaders habilita X-Debug-User-ID / X-Debug-Role (solo dev).
	DevHeaders bool
}

// AuthContext intenta, en orden, Bearer token, API key y headers de dev.
// Si ninguno resuelve claims el request sigue sin ellas; RequireRoles
// decide si corta con 401/403.
func AuthContext(opts AuthOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := logger.FromContext(ctx, nil)

			if token := bearerToken(r.Header.Get("Authorization")); token != "" && opts.Verifier != nil {
				claims, err := opts.Verifier.Verify(ctx, token)
				if err == nil {
					next.ServeHTTP(w, r.WithContext(WithClaims(ctx, claims)))
					return
				}
				log.Debug("bearer token rejected", map[string]any{"err": err})
			}

			if key := strings.TrimSpace(r.Header.Get(HeaderAPIKey)); key != "" && opts.APIKeys != nil {
				claims, err := opts.APIKeys.ResolveAPIKey(ctx, key)
				if err == nil {
					next.ServeHTTP(w, r.WithContext(WithClaims(ctx, claims)))
					return
				}
				log.Debug("api key rejected", map[string]any{"err": err})
			}

			if opts.DevHeaders {
				if uid := strings.TrimSpace(r.Header.Get(HeaderDebugUser)); uid != "" {
					role := auth.Role(strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderDebugRole))))
					if !role.Valid() {
						role = auth.RoleStaff
					}
					claims := auth.Claims{UserID: uid, Role: role}
					next.ServeHTTP(w, r.WithContext(WithClaims(ctx, claims)))
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
