package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"doggy-daycare/internal/platform/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusFor(apperr.NotFound("Pet")))
	assert.Equal(t, http.StatusBadRequest, StatusFor(apperr.Validation("Pet has expired vaccinations")))
	assert.Equal(t, http.StatusForbidden, StatusFor(apperr.Authorization("Invalid credentials")))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("db down")))
}

func TestWriteError_HidesInternalErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)

	WriteError(rec, req, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestWriteError_IncludesField(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/x", nil)

	WriteError(rec, req, apperr.FieldValidation("email", "email is required"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "email is required", body["error"])
	assert.Equal(t, "email", body["field"])
}

func TestDecode(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"name":"Rex"}`))
	require.NoError(t, Decode(req, &dst))
	assert.Equal(t, "Rex", dst.Name)

	req = httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"name":`))
	err := Decode(req, &dst)
	assert.True(t, apperr.IsValidation(err))

	req = httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(""))
	assert.NoError(t, Decode(req, &dst))
}

func TestQueryDay(t *testing.T) {
	def := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	got, err := QueryDay(req, "date", def)
	require.NoError(t, err)
	assert.Equal(t, def, got)

	req = httptest.NewRequest(http.MethodGet, "/x?date=2026-04-01", nil)
	got, err = QueryDay(req, "date", def)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), got)

	req = httptest.NewRequest(http.MethodGet, "/x?date=01/04/2026", nil)
	_, err = QueryDay(req, "date", def)
	assert.Equal(t, "date must be YYYY-MM-DD", apperr.Message(err))
}
