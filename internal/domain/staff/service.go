package staff

import (
	"context"
	"errors"
	"strings"
	"time"

	"doggy-daycare/internal/domain/locations"
	"doggy-daycare/internal/domain/users"
	"doggy-daycare/internal/platform/apperr"
	"doggy-daycare/internal/platform/dates"
	"doggy-daycare/internal/platform/validation"
	"doggy-daycare/internal/ports/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Users interface {
	Get(ctx context.Context, id string) (users.User, error)
}

type Locations interface {
	Get(ctx context.Context, id string) (locations.Location, error)
}

type Service struct {
	repo      Repository
	users     Users
	locations Locations
	now       func() time.Time
}

func NewService(repo Repository, u Users, l Locations, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:      repo,
		users:     u,
		locations: l,
		now:       now,
	}
}

type EmployeeInput struct {
	UserID     string          `json:"user_id" validate:"notblank"`
	Position   string          `json:"position" validate:"notblank"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	StartedOn  time.Time       `json:"-" validate:"required"`
}

func (s *Service) CreateEmployee(ctx context.Context, in EmployeeInput) (Employee, error) {
	if err := validation.Struct(in); err != nil {
		return Employee{}, err
	}
	if in.HourlyRate.IsNegative() {
		return Employee{}, apperr.FieldValidation("hourly_rate", "hourly_rate must be at least 0")
	}
	if _, err := s.users.Get(ctx, in.UserID); err != nil {
		return Employee{}, err
	}

	e := Employee{
		ID:         uuid.NewString(),
		UserID:     strings.TrimSpace(in.UserID),
		Position:   strings.TrimSpace(in.Position),
		HourlyRate: in.HourlyRate.Round(2),
		StartedOn:  dates.Day(in.StartedOn),
		CreatedAt:  s.now().UTC(),
	}
	if err := s.repo.CreateEmployee(ctx, e); err != nil {
		return Employee{}, err
	}
	return s.GetEmployee(ctx, e.ID)
}

func (s *Service) GetEmployee(ctx context.Context, id string) (Employee, error) {
	e, err := s.repo.GetEmployee(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Employee{}, apperr.NotFound("Employee")
		}
		return Employee{}, err
	}
	return e, nil
}

func (s *Service) ListEmployees(ctx context.Context) ([]Employee, error) {
	return s.repo.ListEmployees(ctx)
}

type ShiftInput struct {
	EmployeeID string    `json:"employee_id" validate:"notblank"`
	LocationID string    `json:"location_id" validate:"notblank"`
	StartTime  time.Time `json:"-" validate:"required"`
	EndTime    time.Time `json:"-" validate:"required"`
}

func (s *Service) ScheduleShift(ctx context.Context, in ShiftInput) (Shift, error) {
	if err := validation.Struct(in); err != nil {
		return Shift{}, err
	}
	if !in.EndTime.After(in.StartTime) {
		return Shift{}, apperr.Validation("End time must be after start time")
	}
	emp, err := s.GetEmployee(ctx, in.EmployeeID)
	if err != nil {
		return Shift{}, err
	}
	loc, err := s.locations.Get(ctx, in.LocationID)
	if err != nil {
		return Shift{}, err
	}

	sh := Shift{
		ID:         uuid.NewString(),
		EmployeeID: emp.ID,
		LocationID: loc.ID,
		StartTime:  in.StartTime.UTC(),
		EndTime:    in.EndTime.UTC(),
		CreatedAt:  s.now().UTC(),
	}
	if err := s.repo.CreateShift(ctx, sh); err != nil {
		return Shift{}, err
	}
	return s.repo.GetShift(ctx, sh.ID)
}

// ListShifts devuelve los turnos de la sede que empiezan en el día dado.
func (s *Service) ListShifts(ctx context.Context, locationID string, day time.Time) ([]Shift, error) {
	from := dates.Day(day)
	return s.repo.ListShifts(ctx, strings.TrimSpace(locationID), from, from.AddDate(0, 0, 1))
}

func (s *Service) ClockIn(ctx context.Context, employeeID string, at time.Time) (ClockEntry, error) {
	emp, err := s.GetEmployee(ctx, employeeID)
	if err != nil {
		return ClockEntry{}, err
	}
	if at.IsZero() {
		return ClockEntry{}, apperr.FieldValidation("clock_in", "clock_in is required")
	}

	c := ClockEntry{
		ID:         uuid.NewString(),
		EmployeeID: emp.ID,
		ClockIn:    at.UTC(),
	}
	if err := s.repo.CreateClockEntry(ctx, c); err != nil {
		return ClockEntry{}, err
	}
	return s.GetClockEntry(ctx, c.ID)
}

func (s *Service) GetClockEntry(ctx context.Context, id string) (ClockEntry, error) {
	c, err := s.repo.GetClockEntry(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ClockEntry{}, apperr.NotFound("Time clock entry")
		}
		return ClockEntry{}, err
	}
	return c, nil
}

// ClockOut cierra la fichada; la salida debe ser posterior a la entrada.
func (s *Service) ClockOut(ctx context.Context, entryID string, at time.Time) (ClockEntry, error) {
	c, err := s.GetClockEntry(ctx, entryID)
	if err != nil {
		return ClockEntry{}, err
	}
	if c.ClockOut != nil {
		return ClockEntry{}, apperr.Validation("Time clock entry already closed")
	}
	if !at.After(c.ClockIn) {
		return ClockEntry{}, apperr.FieldValidation("clock_out", "clock_out must be after clock_in")
	}
	if err := s.repo.SetClockOut(ctx, c.ID, at.UTC()); err != nil {
		return ClockEntry{}, err
	}
	return s.GetClockEntry(ctx, c.ID)
}
