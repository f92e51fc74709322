package reports

import (
	"time"

	"doggy-daycare/internal/domain/bookings"
	"doggy-daycare/internal/domain/catalog"
	"doggy-daycare/internal/domain/crm"
	"doggy-daycare/internal/domain/locations"

	"github.com/shopspring/decimal"
)

// OccupancyRow: mascotas reservadas por fecha de servicio.
type OccupancyRow struct {
	ServiceDate time.Time `json:"service_date"`
	Pets        int       `json:"pets"`
}

type MethodTotal struct {
	Method string          `json:"method"`
	Total  decimal.Decimal `json:"total"`
}

type Revenue struct {
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	LocationID   *string         `json:"location_id,omitempty"`
	Revenue      decimal.Decimal `json:"revenue"`
	GSTCollected decimal.Decimal `json:"gst_collected"`
	Payments     []MethodTotal   `json:"payments"`
}

// RevenueTotals es lo que devuelve el repo para el rango de emisión.
type RevenueTotals struct {
	Revenue      decimal.Decimal
	GSTCollected decimal.Decimal
}

type PackageUsage struct {
	ClientID       string                  `json:"client_id"`
	Packages       []catalog.ClientPackage `json:"packages"`
	TotalAvailable int                     `json:"total_available"`
}

// Dashboard es la foto del día de una sede.
type Dashboard struct {
	Location           locations.Location       `json:"location"`
	Date               string                   `json:"date"`
	Bookings           []bookings.View          `json:"bookings"`
	Waitlist           []bookings.WaitlistEntry `json:"waitlist"`
	Occupancy          int                      `json:"occupancy"`
	Capacity           int                      `json:"capacity"`
	Available          int                      `json:"available"`
	OutstandingBalance decimal.Decimal          `json:"outstanding_balance"`
	NewClientsToday    int                      `json:"new_clients_today"`
	RecentMessages     []crm.Message            `json:"recent_messages"`
}

// -------------------------
// Export contable (formato Xero)
// -------------------------

const (
	XeroTypeReceivable   = "ACCREC"
	XeroAmountsInclusive = "Inclusive"
)

type XeroContact struct {
	Name         string `json:"Name"`
	EmailAddress string `json:"EmailAddress"`
}

type XeroLineItem struct {
	Description string          `json:"Description"`
	Quantity    int             `json:"Quantity"`
	UnitAmount  decimal.Decimal `json:"UnitAmount"`
	TaxAmount   decimal.Decimal `json:"TaxAmount"`
}

type XeroInvoice struct {
	Type            string          `json:"Type"`
	InvoiceNumber   string          `json:"InvoiceNumber"`
	Contact         XeroContact     `json:"Contact"`
	Date            string          `json:"Date"`
	DueDate         string          `json:"DueDate"`
	LineAmountTypes string          `json:"LineAmountTypes"`
	LineItems       []XeroLineItem  `json:"LineItems"`
	AmountDue       decimal.Decimal `json:"AmountDue"`
}
