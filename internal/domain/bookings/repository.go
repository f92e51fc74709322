package bookings

import (
	"context"
	"time"
)

type Repository interface {
	// Create persiste la reserva con sus líneas de mascotas y servicios.
	Create(ctx context.Context, b Booking, pets []BookingPet, services []BookingService) error
	GetByID(ctx context.Context, id string) (Booking, error)
	// ListPets/ListServices ordenan por nombre de mascota/servicio.
	ListPets(ctx context.Context, bookingID string) ([]BookingPet, error)
	ListServices(ctx context.Context, bookingID string) ([]BookingService, error)
	// ListByLocation: reservas con inicio en [from, to), por inicio.
	ListByLocation(ctx context.Context, locationID string, from, to time.Time) ([]Booking, error)
	ListByClient(ctx context.Context, filter ClientFilter) ([]Booking, error)
	// CountBookedPets cuenta mascotas de reservas activas que se solapan con [start, end).
	CountBookedPets(ctx context.Context, locationID string, start, end time.Time) (int, error)
	UpdateStatus(ctx context.Context, id string, status Status, at time.Time) error

	GetBookingPet(ctx context.Context, bookingID, petID string) (BookingPet, error)

	GetCheckIn(ctx context.Context, bookingPetID string) (CheckIn, error)
	// SaveCheckIn inserta o reemplaza el check-in de la línea.
	SaveCheckIn(ctx context.Context, c CheckIn) error
	SetCheckOut(ctx context.Context, bookingPetID string, at time.Time) error
	// CountOpenCheckIns: check-ins de la reserva sin hora de salida.
	CountOpenCheckIns(ctx context.Context, bookingID string) (int, error)
	ListCheckIns(ctx context.Context, bookingID string) ([]CheckIn, error)

	CreateWaitlist(ctx context.Context, e WaitlistEntry) error
	GetWaitlist(ctx context.Context, id string) (WaitlistEntry, error)
	// ListWaitlist: entradas con inicio pedido en [from, to), por alta.
	ListWaitlist(ctx context.Context, locationID string, from, to time.Time) ([]WaitlistEntry, error)
	UpdateWaitlistStatus(ctx context.Context, id string, status WaitlistStatus) error

	CreateRecurring(ctx context.Context, r RecurringBooking) error
	GetRecurring(ctx context.Context, id string) (RecurringBooking, error)
}

type ClientFilter struct {
	ClientID string
	// EndsAfter filtra reservas que terminan en o después del instante.
	EndsAfter *time.Time
	// Limit <= 0 => sin límite.
	Limit int
}
