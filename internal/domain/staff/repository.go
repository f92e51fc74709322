package staff

import (
	"context"
	"time"
)

type Repository interface {
	CreateEmployee(ctx context.Context, e Employee) error
	GetEmployee(ctx context.Context, id string) (Employee, error)
	ListEmployees(ctx context.Context) ([]Employee, error)

	CreateShift(ctx context.Context, s Shift) error
	GetShift(ctx context.Context, id string) (Shift, error)
	// ListShifts: turnos de la sede que empiezan en [from, to), por inicio.
	ListShifts(ctx context.Context, locationID string, from, to time.Time) ([]Shift, error)

	CreateClockEntry(ctx context.Context, c ClockEntry) error
	GetClockEntry(ctx context.Context, id string) (ClockEntry, error)
	SetClockOut(ctx context.Context, id string, at time.Time) error
}
