package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"doggy-daycare/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type verifierFunc func(ctx context.Context, token string) (auth.Claims, error)

func (f verifierFunc) Verify(ctx context.Context, token string) (auth.Claims, error) {
	return f(ctx, token)
}

type keyResolver map[string]auth.Claims

func (k keyResolver) ResolveAPIKey(_ context.Context, key string) (auth.Claims, error) {
	c, ok := k[key]
	if !ok {
		return auth.Claims{}, errors.New("unknown key")
	}
	return c, nil
}

func claimsEcho(t *testing.T, seen *auth.Claims, found *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen, *found = GetClaims(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthContext(t *testing.T) {
	opts := AuthOptions{
		Verifier: verifierFunc(func(_ context.Context, token string) (auth.Claims, error) {
			if token == "good" {
				return auth.Claims{UserID: "jwt-user", Role: auth.RoleManager}, nil
			}
			return auth.Claims{}, errors.New("bad token")
		}),
		APIKeys:    keyResolver{"k1": {UserID: "key-user", Role: auth.RoleStaff}},
		DevHeaders: true,
	}

	cases := []struct {
		name    string
		headers map[string]string
		wantID  string
		role    auth.Role
		found   bool
	}{
		{"bearer", map[string]string{"Authorization": "Bearer good"}, "jwt-user", auth.RoleManager, true},
		{"bad bearer falls back to api key", map[string]string{"Authorization": "Bearer nope", HeaderAPIKey: "k1"}, "key-user", auth.RoleStaff, true},
		{"api key", map[string]string{HeaderAPIKey: "k1"}, "key-user", auth.RoleStaff, true},
		{"dev headers", map[string]string{HeaderDebugUser: "dev", HeaderDebugRole: "ADMIN"}, "dev", auth.RoleAdmin, true},
		{"dev default role", map[string]string{HeaderDebugUser: "dev"}, "dev", auth.RoleStaff, true},
		{"anonymous", nil, "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var seen auth.Claims
			var found bool
			h := AuthContext(opts)(claimsEcho(t, &seen, &found))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tc.found, found)
			assert.Equal(t, tc.wantID, seen.UserID)
			assert.Equal(t, tc.role, seen.Role)
		})
	}
}

func TestAuthContext_DevHeadersDisabled(t *testing.T) {
	var seen auth.Claims
	var found bool
	h := AuthContext(AuthOptions{})(claimsEcho(t, &seen, &found))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderDebugUser, "dev")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.False(t, found)
}

func TestRequireRoles(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	h := ManagersOnly()(ok)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithClaims(req.Context(), auth.Claims{UserID: "u", Role: auth.RoleStaff}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), auth.PermissionDenied)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithClaims(req.Context(), auth.Claims{UserID: "u", Role: auth.RoleManager}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecover(t *testing.T) {
	h := Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
}
