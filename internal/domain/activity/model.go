package activity

import "time"

// Note es una nota de comportamiento o cuidado sobre una mascota.
type Note struct {
	ID        string    `json:"id"`
	PetID     string    `json:"pet_id"`
	Note      string    `json:"note"`
	FlagType  FlagType  `json:"flag_type"`
	Severity  Severity  `json:"severity"`
	CreatedBy *string   `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	StaffName string `json:"staff_name,omitempty"`
}

// Log es una entrada del registro de actividad (comida, paseo, incidente...).
type Log struct {
	ID           string       `json:"id"`
	PetID        string       `json:"pet_id"`
	BookingID    *string      `json:"booking_id,omitempty"`
	ActivityType ActivityType `json:"activity_type"`
	Details      string       `json:"details"`
	LoggedBy     *string      `json:"logged_by,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`

	StaffName string `json:"staff_name,omitempty"`
}
