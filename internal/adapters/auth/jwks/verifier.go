// Package jwks verifica tokens RS256 emitidos por un IdP externo usando
// su JWKS publicado.
package jwks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"doggy-daycare/internal/adapters/auth/jwtauth"
	"doggy-daycare/internal/platform/logger"
	"doggy-daycare/internal/ports/auth"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

var ErrNotConfigured = errors.New("jwks verifier not configured")

const defaultRefresh = time.Hour

type Verifier struct {
	keys   *keyfunc.JWKS
	issuer string
}

// New descarga el JWKS y lo refresca en background hasta que ctx termine.
func New(ctx context.Context, url, issuer string, log logger.Logger) (*Verifier, error) {
	if log == nil {
		log = logger.Nop()
	}
	keys, err := keyfunc.Get(strings.TrimSpace(url), keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   defaultRefresh,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			log.Warn("jwks refresh failed", map[string]any{"url": url, "err": err})
		},
	})
	if err != nil {
		return nil, fmt.Errorf("load jwks: %w", err)
	}
	return &Verifier{keys: keys, issuer: issuer}, nil
}

// NewFromKeys usa un JWKS ya cargado (p.ej. desde JSON en tests).
func NewFromKeys(keys *keyfunc.JWKS, issuer string) *Verifier {
	return &Verifier{keys: keys, issuer: issuer}
}

// Verify implementa auth.AuthVerifier.
func (v *Verifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if v == nil || v.keys == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, jwtauth.ErrTokenEmpty
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	var tc jwtauth.TokenClaims
	if _, err := jwt.ParseWithClaims(token, &tc, v.keys.Keyfunc, opts...); err != nil {
		return auth.Claims{}, fmt.Errorf("jwks verify failed: %w", err)
	}
	return tc.Auth()
}

// Close detiene el refresco en background.
func (v *Verifier) Close() {
	if v != nil && v.keys != nil {
		v.keys.EndBackground()
	}
}
