// Package jwtauth firma y verifica tokens HS256 propios del servicio.
package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"doggy-daycare/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrSecretEmpty = errors.New("jwt secret is empty")
	ErrTokenEmpty  = errors.New("token is empty")
)

// TokenClaims es el payload de los tokens. Lo comparte el verificador JWKS.
type TokenClaims struct {
	Email      string `json:"email,omitempty"`
	Role       string `json:"role"`
	LocationID string `json:"location_id,omitempty"`
	jwt.RegisteredClaims
}

// Auth convierte el payload a claims del dominio.
func (c TokenClaims) Auth() (auth.Claims, error) {
	uid := strings.TrimSpace(c.Subject)
	if uid == "" {
		return auth.Claims{}, errors.New("token missing subject")
	}
	role := auth.Role(strings.ToLower(strings.TrimSpace(c.Role)))
	if !role.Valid() {
		return auth.Claims{}, fmt.Errorf("token has unknown role %q", c.Role)
	}
	return auth.Claims{
		UserID:     uid,
		Email:      c.Email,
		Role:       role,
		LocationID: c.LocationID,
	}, nil
}

type Signer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func New(secret string, ttl time.Duration, issuer string) (*Signer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrSecretEmpty
	}
	return &Signer{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}, nil
}

// Issue implementa auth.TokenIssuer.
func (s *Signer) Issue(c auth.Claims) (string, time.Time, error) {
	now := s.now().UTC()
	exp := now.Add(s.ttl)
	tc := TokenClaims{
		Email:      c.Email,
		Role:       string(c.Role),
		LocationID: c.LocationID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.UserID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Verify implementa auth.AuthVerifier.
func (s *Signer) Verify(_ context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	var tc TokenClaims
	if _, err := jwt.ParseWithClaims(token, &tc, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...); err != nil {
		return auth.Claims{}, fmt.Errorf("jwt verify failed: %w", err)
	}
	return tc.Auth()
}
