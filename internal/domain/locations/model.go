package locations

import (
	"time"

	"github.com/shopspring/decimal"
)

const DefaultTimezone = "Australia/Sydney"

// Location es una sede de daycare con su capacidad y tarifa base.
type Location struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"`

	Address  string `json:"address"`
	Suburb   string `json:"suburb"`
	State    string `json:"state"`
	Postcode string `json:"postcode"`

	// Capacity: máximo de mascotas simultáneas.
	Capacity          int             `json:"capacity"`
	BaseDaycareRate   decimal.Decimal `json:"base_daycare_rate"`
	SecondPetDiscount decimal.Decimal `json:"second_pet_discount"` // porcentaje 0-100
	GSTRegistered     bool            `json:"gst_registered"`

	CreatedAt time.Time `json:"created_at"`
}
