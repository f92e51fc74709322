package jwtauth

import (
	"context"
	"testing"
	"time"

	"doggy-daycare/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSigner(t *testing.T, at time.Time) *Signer {
	t.Helper()
	s, err := New("test-secret", time.Hour, "doggy-daycare")
	require.NoError(t, err)
	s.now = func() time.Time { return at }
	return s
}

func TestIssueAndVerify(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	s := newSigner(t, now)

	token, exp, err := s.Issue(auth.Claims{
		UserID:     "u-1",
		Email:      "casey@example.com",
		Role:       auth.RoleManager,
		LocationID: "loc-1",
	})
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), exp)

	c, err := s.Verify(context.Background(), "  "+token+" ")
	require.NoError(t, err)
	assert.Equal(t, "u-1", c.UserID)
	assert.Equal(t, auth.RoleManager, c.Role)
	assert.Equal(t, "loc-1", c.LocationID)
}

func TestVerify_Expired(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	s := newSigner(t, now)
	token, _, err := s.Issue(auth.Claims{UserID: "u-1", Role: auth.RoleStaff})
	require.NoError(t, err)

	s.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, err = s.Verify(context.Background(), token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerify_WrongSecretOrIssuer(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	s := newSigner(t, now)

	other, err := New("other-secret", time.Hour, "doggy-daycare")
	require.NoError(t, err)
	other.now = s.now
	token, _, err := other.Issue(auth.Claims{UserID: "u-1", Role: auth.RoleStaff})
	require.NoError(t, err)
	_, err = s.Verify(context.Background(), token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	foreign, err := New("test-secret", time.Hour, "someone-else")
	require.NoError(t, err)
	foreign.now = s.now
	token, _, err = foreign.Issue(auth.Claims{UserID: "u-1", Role: auth.RoleStaff})
	require.NoError(t, err)
	_, err = s.Verify(context.Background(), token)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
}

func TestVerify_RejectsUnknownRole(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	s := newSigner(t, now)
	token, _, err := s.Issue(auth.Claims{UserID: "u-1", Role: "owner"})
	require.NoError(t, err)

	_, err = s.Verify(context.Background(), token)
	assert.Error(t, err)
}

func TestNew_RequiresSecret(t *testing.T) {
	_, err := New(" ", time.Hour, "")
	assert.ErrorIs(t, err, ErrSecretEmpty)

	s := newSigner(t, time.Now())
	_, err = s.Verify(context.Background(), "")
	assert.ErrorIs(t, err, ErrTokenEmpty)
}
