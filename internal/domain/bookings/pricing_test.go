package bookings

import (
	"testing"
	"time"

	"doggy-daycare/internal/domain/locations"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPetRate_DiscountFromSecondPet(t *testing.T) {
	loc := locations.Location{
		BaseDaycareRate:   decimal.RequireFromString("60"),
		SecondPetDiscount: decimal.RequireFromString("10"),
	}

	assert.True(t, petRate(loc, 0).Equal(decimal.RequireFromString("60")))
	assert.True(t, petRate(loc, 1).Equal(decimal.RequireFromString("54")))
	assert.True(t, petRate(loc, 2).Equal(decimal.RequireFromString("54")))
}

func TestBookingOverlaps_HalfOpen(t *testing.T) {
	at := func(h int) time.Time { return time.Date(2026, 3, 2, h, 0, 0, 0, time.UTC) }
	b := Booking{StartTime: at(8), EndTime: at(17)}

	assert.True(t, b.Overlaps(at(8), at(17)))
	assert.True(t, b.Overlaps(at(16), at(18)))
	assert.True(t, b.Overlaps(at(6), at(9)))
	assert.False(t, b.Overlaps(at(17), at(19)), "termina justo cuando empieza la otra")
	assert.False(t, b.Overlaps(at(5), at(8)))
}

func TestBookingOccupies(t *testing.T) {
	assert.True(t, Booking{Status: StatusReserved}.Occupies())
	assert.True(t, Booking{Status: StatusCheckedIn}.Occupies())
	assert.False(t, Booking{Status: StatusCompleted}.Occupies())
}
