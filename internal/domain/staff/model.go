package staff

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	Position   string          `json:"position"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	StartedOn  time.Time       `json:"started_on"`
	CreatedAt  time.Time       `json:"created_at"`

	// Solo en listados.
	Name string `json:"name,omitempty"`
}

type Shift struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	LocationID string    `json:"location_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	CreatedAt  time.Time `json:"created_at"`
}

// ClockEntry es una fichada; ClockOut nil => turno abierto.
type ClockEntry struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employee_id"`
	ClockIn    time.Time  `json:"clock_in"`
	ClockOut   *time.Time `json:"clock_out,omitempty"`
}

// Worked devuelve la duración fichada; cero si sigue abierta.
func (c ClockEntry) Worked() time.Duration {
	if c.ClockOut == nil {
		return 0
	}
	return c.ClockOut.Sub(c.ClockIn)
}
