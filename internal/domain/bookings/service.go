package bookings

import (
	"context"
	"errors"
	"strings"
	"time"

	"doggy-daycare/internal/domain/billing"
	"doggy-daycare/internal/domain/catalog"
	"doggy-daycare/internal/domain/clients"
	"doggy-daycare/internal/domain/locations"
	"doggy-daycare/internal/domain/pets"
	"doggy-daycare/internal/platform/apperr"
	"doggy-daycare/internal/platform/dates"
	"doggy-daycare/internal/platform/logger"
	"doggy-daycare/internal/platform/validation"
	"doggy-daycare/internal/ports/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Locations interface {
	Get(ctx context.Context, id string) (locations.Location, error)
}

type Clients interface {
	Get(ctx context.Context, id string) (clients.Client, error)
}

type Pets interface {
	Get(ctx context.Context, id string) (pets.Pet, error)
	CheckVaccinated(ctx context.Context, petID string, at time.Time) error
}

type Catalog interface {
	GetOffering(ctx context.Context, id string) (catalog.Offering, error)
	RedeemCredit(ctx context.Context, clientID string, today time.Time) (string, error)
}

type Invoicer interface {
	Issue(ctx context.Context, in billing.IssueInput) (billing.Invoice, error)
	GetByBooking(ctx context.Context, bookingID string) (*billing.Invoice, error)
}

type Deps struct {
	Locations Locations
	Clients   Clients
	Pets      Pets
	Catalog   Catalog
	Invoices  Invoicer
}

type Service struct {
	repo Repository
	deps Deps
	tx   storage.TxManager
	log  logger.Logger
	now  func() time.Time
}

func NewService(repo Repository, deps Deps, tx storage.TxManager, log logger.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo: repo,
		deps: deps,
		tx:   tx,
		log:  log,
		now:  now,
	}
}

type ServiceRequest struct {
	ServiceID string `json:"service_id" validate:"notblank"`
	// Quantity 0 => 1.
	Quantity int `json:"quantity" validate:"gte=0"`
}

type CreateInput struct {
	LocationID       string           `json:"location_id" validate:"notblank"`
	ClientID         string           `json:"client_id" validate:"notblank"`
	StartTime        time.Time        `json:"-" validate:"required"`
	EndTime          time.Time        `json:"-" validate:"required"`
	PetIDs           []string         `json:"pet_ids" validate:"min=1,dive,notblank"`
	CreatedBy        *string          `json:"created_by"`
	Notes            string           `json:"notes"`
	Services         []ServiceRequest `json:"services" validate:"dive"`
	RecurrenceRule   *string          `json:"recurrence_rule"`
	DepositAmount    decimal.Decimal  `json:"deposit_amount"`
	UsePackageCredit bool             `json:"use_package_credit"`
}

// Create admite la reserva si hay lugar; si no, anota cada mascota en la
// lista de espera. Todo ocurre en una transacción.
func (s *Service) Create(ctx context.Context, in CreateInput) (Result, error) {
	if err := validation.Struct(in); err != nil {
		return Result{}, err
	}
	if in.DepositAmount.IsNegative() {
		return Result{}, apperr.FieldValidation("deposit_amount", "deposit_amount must be at least 0")
	}

	var out Result
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		out, err = s.create(ctx, in, true)
		return err
	})
	if err != nil {
		return Result{}, err
	}

	if out.Status == ResultWaitlisted {
		s.log.Info("booking waitlisted", map[string]any{
			"location_id":  in.LocationID,
			"client_id":    in.ClientID,
			"waitlist_ids": out.WaitlistIDs,
		})
	} else {
		s.log.Info("booking created", map[string]any{
			"booking_id":  out.Booking.ID,
			"location_id": out.Booking.LocationID,
			"pets":        len(out.Booking.Pets),
		})
	}
	return out, nil
}

// create asume que ya hay una transacción abierta en ctx.
func (s *Service) create(ctx context.Context, in CreateInput, allowWaitlist bool) (Result, error) {
	loc, err := s.deps.Locations.Get(ctx, in.LocationID)
	if err != nil {
		return Result{}, err
	}
	start, end := in.StartTime.UTC(), in.EndTime.UTC()
	if !end.After(start) {
		return Result{}, apperr.Validation("End time must be after start time")
	}
	if _, err := s.deps.Clients.Get(ctx, in.ClientID); err != nil {
		return Result{}, err
	}

	petNames := make([]string, len(in.PetIDs))
	for i, id := range in.PetIDs {
		p, err := s.deps.Pets.Get(ctx, id)
		if err != nil {
			return Result{}, err
		}
		if p.ClientID != strings.TrimSpace(in.ClientID) {
			return Result{}, apperr.Validation("Pet does not belong to this client")
		}
		petNames[i] = p.Name
	}
	for _, id := range in.PetIDs {
		if err := s.deps.Pets.CheckVaccinated(ctx, id, start); err != nil {
			return Result{}, err
		}
	}

	booked, err := s.repo.CountBookedPets(ctx, loc.ID, start, end)
	if err != nil {
		return Result{}, err
	}
	if booked+len(in.PetIDs) > loc.Capacity {
		if !allowWaitlist {
			return Result{}, apperr.Validation("Location is at capacity for the requested time")
		}
		return s.waitlist(ctx, loc.ID, in, start, end)
	}

	now := s.now().UTC()
	b := Booking{
		ID:             uuid.NewString(),
		LocationID:     loc.ID,
		ClientID:       strings.TrimSpace(in.ClientID),
		StartTime:      start,
		EndTime:        end,
		Status:         StatusReserved,
		Notes:          strings.TrimSpace(in.Notes),
		CreatedBy:      optional(in.CreatedBy),
		RecurrenceRule: optional(in.RecurrenceRule),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	today := dates.LocalDay(s.now(), loc.Timezone)
	var lines []billing.Line
	petLines := make([]BookingPet, 0, len(in.PetIDs))
	for i, id := range in.PetIDs {
		price := petRate(loc, i)
		var pkgID *string
		if in.UsePackageCredit {
			cp, err := s.deps.Catalog.RedeemCredit(ctx, b.ClientID, today)
			if err != nil {
				return Result{}, err
			}
			pkgID = &cp
			price = decimal.Zero
		}
		taxable := price.IsPositive() && loc.GSTRegistered
		petLines = append(petLines, BookingPet{
			ID:            uuid.NewString(),
			BookingID:     b.ID,
			PetID:         strings.TrimSpace(id),
			PackageID:     pkgID,
			Price:         price,
			GSTApplicable: taxable,
			Status:        PetStatusBooked,
		})
		lines = append(lines, billing.Line{
			Description: "Daycare - " + petNames[i],
			Quantity:    1,
			UnitPrice:   price,
			Taxable:     taxable,
		})
	}

	svcLines := make([]BookingService, 0, len(in.Services))
	for _, req := range in.Services {
		o, err := s.deps.Catalog.GetOffering(ctx, req.ServiceID)
		if err != nil {
			return Result{}, err
		}
		qty := req.Quantity
		if qty == 0 {
			qty = 1
		}
		taxable := o.GSTApplicable && loc.GSTRegistered
		svcLines = append(svcLines, BookingService{
			ID:            uuid.NewString(),
			BookingID:     b.ID,
			ServiceID:     o.ID,
			Quantity:      qty,
			Price:         o.Price,
			GSTApplicable: taxable,
		})
		lines = append(lines, billing.Line{
			Description: o.Name,
			Quantity:    qty,
			UnitPrice:   o.Price,
			Taxable:     taxable,
		})
	}

	if err := s.repo.Create(ctx, b, petLines, svcLines); err != nil {
		return Result{}, err
	}

	bookingID := b.ID
	if _, err := s.deps.Invoices.Issue(ctx, billing.IssueInput{
		BookingID: &bookingID,
		ClientID:  b.ClientID,
		IssueDate: start,
		Lines:     lines,
		Deposit:   in.DepositAmount,
	}); err != nil {
		return Result{}, err
	}

	if b.RecurrenceRule != nil {
		if _, err := s.createRecurring(ctx, RecurringInput{
			LocationID: b.LocationID,
			ClientID:   b.ClientID,
			Rule:       *b.RecurrenceRule,
			StartDate:  start,
			StartTime:  start.Format(dates.HourMinute),
			EndTime:    end.Format(dates.HourMinute),
		}); err != nil {
			return Result{}, err
		}
	}

	view, err := s.Get(ctx, b.ID)
	if err != nil {
		return Result{}, err
	}
	return Result{Status: ResultBooked, Booking: &view}, nil
}

func (s *Service) waitlist(ctx context.Context, locationID string, in CreateInput, start, end time.Time) (Result, error) {
	ids := make([]string, 0, len(in.PetIDs))
	for _, petID := range in.PetIDs {
		e := WaitlistEntry{
			ID:             uuid.NewString(),
			LocationID:     locationID,
			ClientID:       strings.TrimSpace(in.ClientID),
			PetID:          strings.TrimSpace(petID),
			RequestedStart: start,
			RequestedEnd:   end,
			Status:         WaitlistPending,
			Notes:          strings.TrimSpace(in.Notes),
			CreatedAt:      s.now().UTC(),
		}
		if err := s.repo.CreateWaitlist(ctx, e); err != nil {
			return Result{}, err
		}
		ids = append(ids, e.ID)
	}
	return Result{Status: ResultWaitlisted, WaitlistIDs: ids}, nil
}

// Get devuelve la reserva enriquecida.
func (s *Service) Get(ctx context.Context, id string) (View, error) {
	b, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return View{}, apperr.NotFound("Booking")
		}
		return View{}, err
	}
	return s.view(ctx, b)
}

func (s *Service) view(ctx context.Context, b Booking) (View, error) {
	v := View{Booking: b}
	var err error
	if v.Pets, err = s.repo.ListPets(ctx, b.ID); err != nil {
		return View{}, err
	}
	if v.Services, err = s.repo.ListServices(ctx, b.ID); err != nil {
		return View{}, err
	}
	c, err := s.deps.Clients.Get(ctx, b.ClientID)
	if err != nil {
		return View{}, err
	}
	v.Client = &c
	if v.Invoice, err = s.deps.Invoices.GetByBooking(ctx, b.ID); err != nil {
		return View{}, err
	}
	if v.CheckIns, err = s.repo.ListCheckIns(ctx, b.ID); err != nil {
		return View{}, err
	}
	return v, nil
}

func (s *Service) views(ctx context.Context, list []Booking) ([]View, error) {
	out := make([]View, 0, len(list))
	for _, b := range list {
		v, err := s.view(ctx, b)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// List devuelve las reservas de la sede que empiezan en el día dado.
func (s *Service) List(ctx context.Context, locationID string, day time.Time) ([]View, error) {
	from := dates.Day(day)
	list, err := s.repo.ListByLocation(ctx, strings.TrimSpace(locationID), from, from.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return s.views(ctx, list)
}

type ClientQuery struct {
	ClientID     string
	UpcomingOnly bool
	Limit        int
}

// ListForClient: con UpcomingOnly solo reservas que aún no terminaron.
func (s *Service) ListForClient(ctx context.Context, q ClientQuery) ([]View, error) {
	if _, err := s.deps.Clients.Get(ctx, q.ClientID); err != nil {
		return nil, err
	}
	filter := ClientFilter{ClientID: strings.TrimSpace(q.ClientID), Limit: q.Limit}
	if q.UpcomingOnly {
		now := s.now().UTC()
		filter.EndsAfter = &now
	}
	list, err := s.repo.ListByClient(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, list)
}

// CalendarView agrupa por fecha las reservas del día.
func (s *Service) CalendarView(ctx context.Context, locationID string, day time.Time) (Calendar, error) {
	list, err := s.List(ctx, locationID, day)
	if err != nil {
		return Calendar{}, err
	}
	cal := Calendar{
		Date:     dates.Day(day).Format(dates.DayLayout),
		Bookings: map[string][]View{},
	}
	for _, v := range list {
		key := v.StartTime.Format(dates.DayLayout)
		cal.Bookings[key] = append(cal.Bookings[key], v)
	}
	return cal, nil
}

// -------------------------
// Check-in / check-out
// -------------------------

type CheckInInput struct {
	BookingID         string    `json:"booking_id" validate:"notblank"`
	PetID             string    `json:"pet_id" validate:"notblank"`
	StaffUserID       *string   `json:"staff_user_id"`
	CheckInTime       time.Time `json:"-" validate:"required"`
	WaiverSigned      bool      `json:"waiver_signed"`
	HealthCheckPassed *bool     `json:"health_check_passed"`
	Notes             string    `json:"notes"`
}

// CheckIn registra (o reemplaza) el ingreso y pasa la reserva a checked_in.
func (s *Service) CheckIn(ctx context.Context, in CheckInInput) (CheckIn, error) {
	if err := validation.Struct(in); err != nil {
		return CheckIn{}, err
	}

	var out CheckIn
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		bp, err := s.bookingPet(ctx, in.BookingID, in.PetID)
		if err != nil {
			return err
		}

		c := CheckIn{
			ID:                uuid.NewString(),
			BookingPetID:      bp.ID,
			CheckInTime:       in.CheckInTime.UTC(),
			StaffUserID:       optional(in.StaffUserID),
			WaiverSigned:      in.WaiverSigned,
			HealthCheckPassed: in.HealthCheckPassed == nil || *in.HealthCheckPassed,
			Notes:             strings.TrimSpace(in.Notes),
		}
		if existing, err := s.repo.GetCheckIn(ctx, bp.ID); err == nil {
			c.ID = existing.ID
		} else if !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		if err := s.repo.SaveCheckIn(ctx, c); err != nil {
			return err
		}
		if err := s.repo.UpdateStatus(ctx, bp.BookingID, StatusCheckedIn, s.now().UTC()); err != nil {
			return err
		}
		out, err = s.repo.GetCheckIn(ctx, bp.ID)
		return err
	})
	if err != nil {
		return CheckIn{}, err
	}
	return out, nil
}

type CheckOutInput struct {
	BookingID    string    `json:"booking_id" validate:"notblank"`
	PetID        string    `json:"pet_id" validate:"notblank"`
	CheckOutTime time.Time `json:"-" validate:"required"`
}

// CheckOut registra la salida. Cuando no quedan mascotas adentro la reserva
// pasa a completed. Una segunda salida sobrescribe la hora.
func (s *Service) CheckOut(ctx context.Context, in CheckOutInput) (CheckIn, error) {
	if err := validation.Struct(in); err != nil {
		return CheckIn{}, err
	}

	var out CheckIn
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		bp, err := s.bookingPet(ctx, in.BookingID, in.PetID)
		if err != nil {
			return err
		}
		if _, err := s.repo.GetCheckIn(ctx, bp.ID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return apperr.Validation("Pet has not been checked in")
			}
			return err
		}
		if err := s.repo.SetCheckOut(ctx, bp.ID, in.CheckOutTime.UTC()); err != nil {
			return err
		}

		open, err := s.repo.CountOpenCheckIns(ctx, bp.BookingID)
		if err != nil {
			return err
		}
		if open == 0 {
			if err := s.repo.UpdateStatus(ctx, bp.BookingID, StatusCompleted, s.now().UTC()); err != nil {
				return err
			}
		}
		out, err = s.repo.GetCheckIn(ctx, bp.ID)
		return err
	})
	if err != nil {
		return CheckIn{}, err
	}
	return out, nil
}

func (s *Service) bookingPet(ctx context.Context, bookingID, petID string) (BookingPet, error) {
	bp, err := s.repo.GetBookingPet(ctx, strings.TrimSpace(bookingID), strings.TrimSpace(petID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return BookingPet{}, apperr.Validation("Pet is not part of this booking")
		}
		return BookingPet{}, err
	}
	return bp, nil
}

// -------------------------
// Lista de espera
// -------------------------

// ListWaitlist devuelve las entradas pedidas para el día, con nombres.
func (s *Service) ListWaitlist(ctx context.Context, locationID string, day time.Time) ([]WaitlistEntry, error) {
	from := dates.Day(day)
	return s.repo.ListWaitlist(ctx, strings.TrimSpace(locationID), from, from.AddDate(0, 0, 1))
}

func (s *Service) GetWaitlist(ctx context.Context, id string) (WaitlistEntry, error) {
	e, err := s.repo.GetWaitlist(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return WaitlistEntry{}, apperr.NotFound("Waitlist entry")
		}
		return WaitlistEntry{}, err
	}
	return e, nil
}

// PromoteWaitlist convierte la entrada en reserva. Si sigue sin haber lugar
// la entrada queda pendiente.
func (s *Service) PromoteWaitlist(ctx context.Context, id string) (Result, error) {
	var out Result
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		e, err := s.GetWaitlist(ctx, id)
		if err != nil {
			return err
		}
		if e.Status == WaitlistConverted {
			return apperr.Validation("Waitlist entry already converted")
		}

		out, err = s.create(ctx, CreateInput{
			LocationID: e.LocationID,
			ClientID:   e.ClientID,
			StartTime:  e.RequestedStart,
			EndTime:    e.RequestedEnd,
			PetIDs:     []string{e.PetID},
			Notes:      e.Notes,
		}, false)
		if err != nil {
			return err
		}
		return s.repo.UpdateWaitlistStatus(ctx, e.ID, WaitlistConverted)
	})
	if err != nil {
		return Result{}, err
	}

	s.log.Info("waitlist promoted", map[string]any{
		"waitlist_id": id,
		"booking_id":  out.Booking.ID,
	})
	return out, nil
}

// -------------------------
// Reservas recurrentes
// -------------------------

type RecurringInput struct {
	LocationID string            `json:"location_id" validate:"notblank"`
	ClientID   string            `json:"client_id" validate:"notblank"`
	Rule       string            `json:"rule" validate:"notblank"`
	StartDate  time.Time         `json:"-" validate:"required"`
	EndDate    *time.Time        `json:"-"`
	StartTime  string            `json:"start_time" validate:"notblank"`
	EndTime    string            `json:"end_time" validate:"notblank"`
	Attributes map[string]string `json:"attributes"`
}

func (s *Service) CreateRecurring(ctx context.Context, in RecurringInput) (RecurringBooking, error) {
	if _, err := s.deps.Locations.Get(ctx, in.LocationID); err != nil {
		return RecurringBooking{}, err
	}
	if _, err := s.deps.Clients.Get(ctx, in.ClientID); err != nil {
		return RecurringBooking{}, err
	}
	return s.createRecurring(ctx, in)
}

func (s *Service) createRecurring(ctx context.Context, in RecurringInput) (RecurringBooking, error) {
	if err := validation.Struct(in); err != nil {
		return RecurringBooking{}, err
	}
	startTOD, err := time.Parse(dates.HourMinute, strings.TrimSpace(in.StartTime))
	if err != nil {
		return RecurringBooking{}, apperr.FieldValidation("start_time", "start_time must be HH:MM")
	}
	endTOD, err := time.Parse(dates.HourMinute, strings.TrimSpace(in.EndTime))
	if err != nil {
		return RecurringBooking{}, apperr.FieldValidation("end_time", "end_time must be HH:MM")
	}
	if !endTOD.After(startTOD) {
		return RecurringBooking{}, apperr.Validation("End time must be after start time")
	}

	startDate := dates.Day(in.StartDate)
	var endDate *time.Time
	if in.EndDate != nil {
		d := dates.Day(*in.EndDate)
		if d.Before(startDate) {
			return RecurringBooking{}, apperr.FieldValidation("end_date", "end_date must not be before start_date")
		}
		endDate = &d
	}

	attrs := make(map[string]string, len(in.Attributes))
	for k, v := range in.Attributes {
		attrs[k] = v
	}
	r := RecurringBooking{
		ID:         uuid.NewString(),
		LocationID: strings.TrimSpace(in.LocationID),
		ClientID:   strings.TrimSpace(in.ClientID),
		Rule:       strings.TrimSpace(in.Rule),
		StartDate:  startDate,
		EndDate:    endDate,
		StartTime:  startTOD.Format(dates.HourMinute),
		EndTime:    endTOD.Format(dates.HourMinute),
		Attributes: attrs,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.repo.CreateRecurring(ctx, r); err != nil {
		return RecurringBooking{}, err
	}
	return s.repo.GetRecurring(ctx, r.ID)
}

// PetsBooked suma las mascotas de las reservas dadas.
func PetsBooked(list []View) int {
	n := 0
	for _, v := range list {
		n += len(v.Pets)
	}
	return n
}

func optional(v *string) *string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}
