package bookings

import (
	"time"

	"doggy-daycare/internal/domain/billing"
	"doggy-daycare/internal/domain/clients"

	"github.com/shopspring/decimal"
)

// Status de una reserva.
// @Enum reserved, confirmed, checked_in, completed
type Status string

const (
	StatusReserved  Status = "reserved"
	StatusConfirmed Status = "confirmed"
	StatusCheckedIn Status = "checked_in"
	StatusCompleted Status = "completed"
)

// ActiveStatuses ocupan lugar en la sede.
var ActiveStatuses = []Status{StatusReserved, StatusConfirmed, StatusCheckedIn}

const PetStatusBooked = "booked"

type Booking struct {
	ID         string `json:"id"`
	LocationID string `json:"location_id"`
	ClientID   string `json:"client_id"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    Status    `json:"status"`

	Notes          string  `json:"notes"`
	CreatedBy      *string `json:"created_by,omitempty"`
	RecurrenceRule *string `json:"recurrence_rule,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingPet es la línea de una mascota dentro de la reserva.
type BookingPet struct {
	ID            string          `json:"id"`
	BookingID     string          `json:"booking_id"`
	PetID         string          `json:"pet_id"`
	PackageID     *string         `json:"package_id,omitempty"`
	Price         decimal.Decimal `json:"price"`
	GSTApplicable bool            `json:"gst_applicable"`
	Status        string          `json:"status"`

	PetName string `json:"pet_name,omitempty"`
}

type BookingService struct {
	ID            string          `json:"id"`
	BookingID     string          `json:"booking_id"`
	ServiceID     string          `json:"service_id"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	GSTApplicable bool            `json:"gst_applicable"`

	ServiceName string `json:"service_name,omitempty"`
}

type CheckIn struct {
	ID           string `json:"id"`
	BookingPetID string `json:"booking_pet_id"`

	CheckInTime  time.Time  `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time,omitempty"`
	StaffUserID  *string    `json:"staff_user_id,omitempty"`

	WaiverSigned      bool   `json:"waiver_signed"`
	HealthCheckPassed bool   `json:"health_check_passed"`
	Notes             string `json:"notes"`

	PetID   string `json:"pet_id,omitempty"`
	PetName string `json:"pet_name,omitempty"`
}

type WaitlistStatus string

const (
	WaitlistPending   WaitlistStatus = "pending"
	WaitlistConverted WaitlistStatus = "converted"
)

type WaitlistEntry struct {
	ID         string `json:"id"`
	LocationID string `json:"location_id"`
	ClientID   string `json:"client_id"`
	PetID      string `json:"pet_id"`

	RequestedStart time.Time      `json:"requested_start"`
	RequestedEnd   time.Time      `json:"requested_end"`
	Status         WaitlistStatus `json:"status"`
	Notes          string         `json:"notes"`
	CreatedAt      time.Time      `json:"created_at"`

	ClientName string `json:"client_name,omitempty"`
	PetName    string `json:"pet_name,omitempty"`
}

// RecurringBooking es la plantilla de una reserva que se repite (RRULE).
// StartTime/EndTime son horas del día en formato HH:MM.
type RecurringBooking struct {
	ID         string            `json:"id"`
	LocationID string            `json:"location_id"`
	ClientID   string            `json:"client_id"`
	Rule       string            `json:"rule"`
	StartDate  time.Time         `json:"start_date"`
	EndDate    *time.Time        `json:"end_date,omitempty"`
	StartTime  string            `json:"start_time"`
	EndTime    string            `json:"end_time"`
	Attributes map[string]string `json:"attributes"`
	CreatedAt  time.Time         `json:"created_at"`
}

// View es la reserva con sus líneas, cliente, factura y check-ins.
type View struct {
	Booking

	Pets     []BookingPet     `json:"pets"`
	Services []BookingService `json:"services"`
	Client   *clients.Client  `json:"client,omitempty"`
	Invoice  *billing.Invoice `json:"invoice,omitempty"`
	CheckIns []CheckIn        `json:"checkins"`
}

const (
	ResultBooked     = "booked"
	ResultWaitlisted = "waitlisted"
)

// Result de Create: o la reserva creada o los ids de lista de espera.
type Result struct {
	Status      string   `json:"status"`
	Booking     *View    `json:"booking,omitempty"`
	WaitlistIDs []string `json:"waitlist_ids,omitempty"`
}

// Calendar agrupa las reservas por fecha (YYYY-MM-DD).
type Calendar struct {
	Date     string            `json:"date"`
	Bookings map[string][]View `json:"bookings"`
}
