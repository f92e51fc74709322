package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Offering es un servicio adicional vendible (baño, corte de uñas, transporte...).
type Offering struct {
	ID                     string            `json:"id"`
	Name                   string            `json:"name"`
	Description            string            `json:"description"`
	DefaultDurationMinutes int               `json:"default_duration_minutes"`
	Price                  decimal.Decimal   `json:"price"`
	GSTApplicable          bool              `json:"gst_applicable"`
	LocationID             *string           `json:"location_id,omitempty"`
	AllowMultiplePets      bool              `json:"allow_multiple_pets"`
	Attributes             map[string]string `json:"attributes"`
	CreatedAt              time.Time         `json:"created_at"`
}

// DaycarePackage es un pase prepago de N días.
type DaycarePackage struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	LocationID   *string           `json:"location_id,omitempty"`
	TotalCredits int               `json:"total_credits"`
	Price        decimal.Decimal   `json:"price"`
	GSTInclusive bool              `json:"gst_inclusive"`
	ValidDays    *int              `json:"valid_days,omitempty"`
	Attributes   map[string]string `json:"attributes"`
	CreatedAt    time.Time         `json:"created_at"`
}

// ClientPackage es un pase comprado por un cliente con sus créditos restantes.
type ClientPackage struct {
	ID               string            `json:"id"`
	ClientID         string            `json:"client_id"`
	PackageID        string            `json:"package_id"`
	RemainingCredits int               `json:"remaining_credits"`
	PurchaseDate     time.Time         `json:"purchase_date"`
	ExpiryDate       *time.Time        `json:"expiry_date,omitempty"`
	Attributes       map[string]string `json:"attributes"`

	// Solo en listados.
	PackageName  string `json:"package_name,omitempty"`
	TotalCredits int    `json:"total_credits,omitempty"`
}

// ActiveOn indica si el pase no está vencido en day (sin vencimiento => activo).
func (cp ClientPackage) ActiveOn(day time.Time) bool {
	return cp.ExpiryDate == nil || !cp.ExpiryDate.Before(day)
}
