// Package xero publica facturas en el endpoint contable compatible con Xero.
package xero

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"doggy-daycare/internal/domain/reports"
	"doggy-daycare/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("accounting client not configured")
	ErrUnauthorized  = errors.New("accounting unauthorized")
	ErrUpstream      = errors.New("accounting upstream error")
)

const invoicesPath = "/api.xro/2.0/Invoices"

type Config struct {
	BaseURL string
	Token   string

	// TenantID se manda como Xero-Tenant-Id cuando no está vacío.
	TenantID string
	Timeout  time.Duration
}

type Client struct {
	http  *httpclient.Client
	token string
}

func NewClient(cfg Config) (*Client, error) {
	token := strings.TrimSpace(cfg.Token)
	hc, err := httpclient.New(cfg.BaseURL,
		httpclient.WithTimeout(cfg.Timeout),
		httpclient.WithHeader("Authorization", "Bearer "+token),
		httpclient.WithHeader("Xero-Tenant-Id", strings.TrimSpace(cfg.TenantID)),
	)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc, token: token}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http.Configured() && c.token != ""
}

type invoicesEnvelope struct {
	Invoices []reports.XeroInvoice `json:"Invoices"`
}

// PushInvoice implementa reports.AccountingSink.
func (c *Client) PushInvoice(ctx context.Context, inv reports.XeroInvoice) error {
	if !c.IsConfigured() {
		return ErrNotConfigured
	}

	err := c.http.PostJSON(ctx, invoicesPath, invoicesEnvelope{Invoices: []reports.XeroInvoice{inv}}, nil)
	if err == nil {
		return nil
	}

	var se *httpclient.StatusError
	if errors.As(err, &se) && se.Rejected() {
		return ErrUnauthorized
	}
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}
