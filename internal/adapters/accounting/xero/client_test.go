package xero

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"doggy-daycare/internal/domain/reports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() reports.XeroInvoice {
	return reports.XeroInvoice{
		Type:            reports.XeroTypeReceivable,
		InvoiceNumber:   "INV-2026-00001",
		Contact:         reports.XeroContact{Name: "Jordan River", EmailAddress: "jordan@example.com"},
		Date:            "2026-03-02",
		DueDate:         "2026-03-09",
		LineAmountTypes: reports.XeroAmountsInclusive,
		LineItems: []reports.XeroLineItem{{
			Description: "Grooming",
			Quantity:    1,
			UnitAmount:  decimal.RequireFromString("25"),
			TaxAmount:   decimal.RequireFromString("2.5"),
		}},
		AmountDue: decimal.RequireFromString("22.5"),
	}
}

func TestPushInvoice(t *testing.T) {
	var got struct {
		Invoices []map[string]any `json:"Invoices"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, invoicesPath, r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "tenant-1", r.Header.Get("Xero-Tenant-Id"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"Status":"OK"}`))
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL, Token: "tok", TenantID: "tenant-1"})
	require.NoError(t, err)
	require.NoError(t, c.PushInvoice(context.Background(), sample()))

	require.Len(t, got.Invoices, 1)
	assert.Equal(t, "INV-2026-00001", got.Invoices[0]["InvoiceNumber"])
	assert.Equal(t, "ACCREC", got.Invoices[0]["Type"])
}

func TestPushInvoice_Errors(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusUnauthorized)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(int(status.Load()))
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL, Token: "tok"})
	require.NoError(t, err)
	assert.ErrorIs(t, c.PushInvoice(context.Background(), sample()), ErrUnauthorized)

	status.Store(http.StatusBadGateway)
	assert.ErrorIs(t, c.PushInvoice(context.Background(), sample()), ErrUpstream)

	empty, err := NewClient(Config{})
	require.NoError(t, err)
	assert.ErrorIs(t, empty.PushInvoice(context.Background(), sample()), ErrNotConfigured)
}
