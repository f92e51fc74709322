package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft  Status = "draft"
	StatusIssued Status = "issued"
	StatusPaid   Status = "paid"
)

// DueDays: plazo de pago desde la emisión.
const DueDays = 7

type Invoice struct {
	ID        string  `json:"id"`
	BookingID *string `json:"booking_id,omitempty"`
	ClientID  string  `json:"client_id"`
	Number    string  `json:"invoice_number"`

	IssueDate time.Time `json:"issue_date"`
	DueDate   time.Time `json:"due_date"`
	Status    Status    `json:"status"`

	Subtotal   decimal.Decimal `json:"subtotal"`
	GSTAmount  decimal.Decimal `json:"gst_amount"`
	Total      decimal.Decimal `json:"total"`
	BalanceDue decimal.Decimal `json:"balance_due"`

	Attributes map[string]string `json:"attributes"`
	CreatedAt  time.Time         `json:"created_at"`

	LineItems []LineItem `json:"line_items"`
	Payments  []Payment  `json:"payments"`

	// Solo en listados: datos de la reserva asociada.
	BookingStart *time.Time `json:"start_time,omitempty"`
	LocationID   *string    `json:"location_id,omitempty"`
}

type LineItem struct {
	ID          string          `json:"id"`
	InvoiceID   string          `json:"invoice_id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	GSTRate     decimal.Decimal `json:"gst_rate"`
	Total       decimal.Decimal `json:"total"`
}

type Payment struct {
	ID          string            `json:"id"`
	InvoiceID   string            `json:"invoice_id"`
	Amount      decimal.Decimal   `json:"amount"`
	Method      string            `json:"method"`
	PaymentDate time.Time         `json:"payment_date"`
	Reference   string            `json:"reference"`
	Attributes  map[string]string `json:"attributes"`
	CreatedAt   time.Time         `json:"created_at"`
}
