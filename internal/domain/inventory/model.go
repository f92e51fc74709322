package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item de stock vendible o consumible (snacks, shampoo, correas...).
type Item struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	SKU        string            `json:"sku"`
	Quantity   int               `json:"quantity"`
	UnitCost   decimal.Decimal   `json:"unit_cost"`
	UnitPrice  decimal.Decimal   `json:"unit_price"`
	Taxable    bool              `json:"taxable"`
	Attributes map[string]string `json:"attributes"`
	CreatedAt  time.Time         `json:"created_at"`
}

// Transaction registra cada ajuste de stock.
type Transaction struct {
	ID               string    `json:"id"`
	ItemID           string    `json:"item_id"`
	QuantityChange   int       `json:"quantity_change"`
	Reason           string    `json:"reason"`
	StaffUserID      *string   `json:"staff_user_id,omitempty"`
	RelatedInvoiceID *string   `json:"related_invoice_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
