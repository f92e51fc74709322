package bookings

import (
	"slices"
	"time"

	"doggy-daycare/internal/domain/locations"
	"doggy-daycare/internal/platform/money"

	"github.com/shopspring/decimal"
)

// petRate: la primera mascota paga la tarifa base, las siguientes con el
// descuento de la sede aplicado.
func petRate(loc locations.Location, idx int) decimal.Decimal {
	if idx == 0 {
		return loc.BaseDaycareRate
	}
	return money.Discounted(loc.BaseDaycareRate, loc.SecondPetDiscount)
}

// Overlaps indica si [start, end) se cruza con la reserva b.
func (b Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}

// Occupies indica si la reserva cuenta para la capacidad de la sede.
func (b Booking) Occupies() bool {
	return slices.Contains(ActiveStatuses, b.Status)
}
