package auth

import (
	"context"
	"time"
)

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer firma tokens propios al hacer login.
type TokenIssuer interface {
	Issue(c Claims) (token string, expiresAt time.Time, err error)
}

// APIKeyResolver resuelve la API key de un usuario activo a sus claims.
type APIKeyResolver interface {
	ResolveAPIKey(ctx context.Context, apiKey string) (Claims, error)
}
