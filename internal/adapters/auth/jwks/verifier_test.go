package jwks

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"testing"
	"time"

	"doggy-daycare/internal/adapters/auth/jwtauth"
	"doggy-daycare/internal/ports/auth"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keySet(t *testing.T, kid string, pub *rsa.PublicKey) *keyfunc.JWKS {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"keys": []map[string]string{{
			"kty": "RSA",
			"kid": kid,
			"alg": "RS256",
			"use": "sig",
			"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
		}},
	})
	require.NoError(t, err)
	keys, err := keyfunc.NewJSON(raw)
	require.NoError(t, err)
	return keys
}

func sign(t *testing.T, key *rsa.PrivateKey, kid string, tc jwtauth.TokenClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, tc)
	tok.Header["kid"] = kid
	s, err := tok.SignedString(key)
	require.NoError(t, err)
	return s
}

func TestVerify(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	v := NewFromKeys(keySet(t, "k1", &key.PublicKey), "https://idp.example.com/")

	claims := jwtauth.TokenClaims{
		Email: "staff@example.com",
		Role:  "staff",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-9",
			Issuer:    "https://idp.example.com/",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	c, err := v.Verify(context.Background(), sign(t, key, "k1", claims))
	require.NoError(t, err)
	assert.Equal(t, "u-9", c.UserID)
	assert.Equal(t, auth.RoleStaff, c.Role)

	claims.Issuer = "https://other.example.com/"
	_, err = v.Verify(context.Background(), sign(t, key, "k1", claims))
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
}

func TestVerify_UnknownKey(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	other, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	v := NewFromKeys(keySet(t, "k1", &key.PublicKey), "")

	tok := sign(t, other, "k1", jwtauth.TokenClaims{
		Role: "staff",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-9",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	_, err = v.Verify(context.Background(), tok)
	assert.Error(t, err)
}

func TestVerify_NotConfigured(t *testing.T) {
	var v *Verifier
	_, err := v.Verify(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
