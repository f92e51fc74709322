package postgres

import (
	"context"
	"database/sql"
	"time"

	"doggy-daycare/internal/domain/bookings"
)

type bookingRepo struct {
	s *Store
}

const bookingColumns = `
	id, location_id, client_id, start_time, end_time, status,
	notes, created_by, recurrence_rule, created_at, updated_at`

func scanBooking(row rowScanner) (bookings.Booking, error) {
	var b bookings.Booking
	var status string
	err := row.Scan(
		&b.ID, &b.LocationID, &b.ClientID, &b.StartTime, &b.EndTime, &status,
		&b.Notes, &b.CreatedBy, &b.RecurrenceRule, &b.CreatedAt, &b.UpdatedAt,
	)
	b.Status = bookings.Status(status)
	b.StartTime, b.EndTime = b.StartTime.UTC(), b.EndTime.UTC()
	return b, err
}

func activeStatuses() []string {
	out := make([]string, 0, len(bookings.ActiveStatuses))
	for _, st := range bookings.ActiveStatuses {
		out = append(out, string(st))
	}
	return out
}

// Create inserta la reserva y sus líneas en una sola transacción.
func (r *bookingRepo) Create(ctx context.Context, b bookings.Booking, pets []bookings.BookingPet, services []bookings.BookingService) error {
	return r.s.WithinTx(ctx, func(ctx context.Context) error {
		q := r.s.q(ctx)
		if err := exec(ctx, q, `
			INSERT INTO bookings (`+bookingColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		`,
			b.ID, b.LocationID, b.ClientID, b.StartTime, b.EndTime, string(b.Status),
			b.Notes, b.CreatedBy, b.RecurrenceRule, b.CreatedAt, b.UpdatedAt,
		); err != nil {
			return err
		}
		for _, p := range pets {
			if err := exec(ctx, q, `
				INSERT INTO booking_pets (id, booking_id, pet_id, package_id, price, gst_applicable, status)
				VALUES ($1,$2,$3,$4,$5,$6,$7)
			`, p.ID, b.ID, p.PetID, p.PackageID, p.Price, p.GSTApplicable, p.Status); err != nil {
				return err
			}
		}
		for _, sv := range services {
			if err := exec(ctx, q, `
				INSERT INTO booking_services (id, booking_id, service_id, quantity, price, gst_applicable)
				VALUES ($1,$2,$3,$4,$5,$6)
			`, sv.ID, b.ID, sv.ServiceID, sv.Quantity, sv.Price, sv.GSTApplicable); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *bookingRepo) GetByID(ctx context.Context, id string) (bookings.Booking, error) {
	row := r.s.q(ctx).QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	b, err := scanBooking(row)
	if err != nil {
		return bookings.Booking{}, mapErr(err)
	}
	return b, nil
}

const bookingPetSelect = `
	SELECT bp.id, bp.booking_id, bp.pet_id, bp.package_id, bp.price,
		bp.gst_applicable, bp.status, COALESCE(p.name, '')
	FROM booking_pets bp
	LEFT JOIN pets p ON p.id = bp.pet_id`

func scanBookingPet(row rowScanner) (bookings.BookingPet, error) {
	var bp bookings.BookingPet
	err := row.Scan(&bp.ID, &bp.BookingID, &bp.PetID, &bp.PackageID, &bp.Price, &bp.GSTApplicable, &bp.Status, &bp.PetName)
	return bp, err
}

func (r *bookingRepo) ListPets(ctx context.Context, bookingID string) ([]bookings.BookingPet, error) {
	rows, err := r.s.q(ctx).QueryContext(ctx, bookingPetSelect+`
		WHERE bp.booking_id = $1
		ORDER BY p.name, bp.seq
	`, bookingID)
	return collect(rows, err, scanBookingPet)
}

func (r *bookingRepo) ListServices(ctx context.Context, bookingID string) ([]bookings.BookingService, error) {
	rows, err := r.s.q(ctx).QueryContext(ctx, `
		SELECT bs.id, bs.booking_id, bs.service_id, bs.quantity, bs.price,
			bs.gst_applicable, COALESCE(s.name, '')
		FROM booking_services bs
		LEFT JOIN services s ON s.id = bs.service_id
		WHERE bs.booking_id = $1
		ORDER BY s.name, bs.seq
	`, bookingID)
	return collect(rows, err, func(row rowScanner) (bookings.BookingService, error) {
		var bs bookings.BookingService
		err := row.Scan(&bs.ID, &bs.BookingID, &bs.ServiceID, &bs.Quantity, &bs.Price, &bs.GSTApplicable, &bs.ServiceName)
		return bs, err
	})
}

func (r *bookingRepo) ListByLocation(ctx context.Context, locationID string, from, to time.Time) ([]bookings.Booking, error) {
	rows, err := r.s.q(ctx).QueryContext(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE location_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time, seq
	`, locationID, from, to)
	return collect(rows, err, scanBooking)
}

func (r *bookingRepo) ListByClient(ctx context.Context, filter bookings.ClientFilter) ([]bookings.Booking, error) {
	var endsAfter sql.NullTime
	if filter.EndsAfter != nil {
		endsAfter = sql.NullTime{Time: *filter.EndsAfter, Valid: true}
	}
	var limit sql.NullInt64
	if filter.Limit > 0 {
		limit = sql.NullInt64{Int64: int64(filter.Limit), Valid: true}
	}
	// LIMIT NULL equivale a sin límite.
	rows, err := r.s.q(ctx).QueryContext(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE client_id = $1
		  AND ($2::timestamptz IS NULL OR end_time >= $2)
		ORDER BY start_time, seq
		LIMIT $3
	`, filter.ClientID, endsAfter, limit)
	return collect(rows, err, scanBooking)
}

func (r *bookingRepo) CountBookedPets(ctx context.Context, locationID string, start, end time.Time) (int, error) {
	var n int
	err := r.s.q(ctx).QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM booking_pets bp
		JOIN bookings b ON b.id = bp.booking_id
		WHERE b.location_id = $1
		  AND b.status = ANY($2)
		  AND b.start_time < $4 AND b.end_time > $3
	`, locationID, activeStatuses(), start, end).Scan(&n)
	return n, mapErr(err)
}

func (r *bookingRepo) UpdateStatus(ctx context.Context, id string, status bookings.Status, at time.Time) error {
	return mustAffect(r.s.q(ctx).ExecContext(ctx, `
		UPDATE bookings SET status = $2, updated_at = $3 WHERE id = $1
	`, id, string(status), at))
}

func (r *bookingRepo) GetBookingPet(ctx context.Context, bookingID, petID string) (bookings.BookingPet, error) {
	row := r.s.q(ctx).QueryRowContext(ctx, bookingPetSelect+`
		WHERE bp.booking_id = $1 AND bp.pet_id = $2
		ORDER BY bp.seq
		LIMIT 1
	`, bookingID, petID)
	bp, err := scanBookingPet(row)
	if err != nil {
		return bookings.BookingPet{}, mapErr(err)
	}
	return bp, nil
}

const checkInSelect = `
	SELECT c.id, c.booking_pet_id, c.check_in_time, c.check_out_time, c.staff_user_id,
		c.waiver_signed, c.health_check_passed, c.notes,
		COALESCE(bp.pet_id, ''), COALESCE(p.name, '')
	FROM checkins c
	LEFT JOIN booking_pets bp ON bp.id = c.booking_pet_id
	LEFT JOIN pets p ON p.id = bp.pet_id`

func scanCheckIn(row rowScanner) (bookings.CheckIn, error) {
	var c bookings.CheckIn
	var out sql.NullTime
	err := row.Scan(
		&c.ID, &c.BookingPetID, &c.CheckInTime, &out, &c.StaffUserID,
		&c.WaiverSigned, &c.HealthCheckPassed, &c.Notes,
		&c.PetID, &c.PetName,
	)
	c.CheckInTime = c.CheckInTime.UTC()
	c.CheckOutTime = nullTime(out)
	return c, err
}

func (r *bookingRepo) GetCheckIn(ctx context.Context, bookingPetID string) (bookings.CheckIn, error) {
	row := r.s.q(ctx).QueryRowContext(ctx, checkInSelect+` WHERE c.booking_pet_id = $1`, bookingPetID)
	c, err := scanCheckIn(row)
	if err != nil {
		return bookings.CheckIn{}, mapErr(err)
	}
	return c, nil
}

// SaveCheckIn: si la línea ya tiene check-in se reemplaza conservando id y salida.
func (r *bookingRepo) SaveCheckIn(ctx context.Context, c bookings.CheckIn) error {
	return exec(ctx, r.s.q(ctx), `
		INSERT INTO checkins (
			id, booking_pet_id, check_in_time, check_out_time, staff_user_id,
			waiver_signed, health_check_passed, notes
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (booking_pet_id) DO UPDATE SET
			check_in_time       = EXCLUDED.check_in_time,
			staff_user_id       = EXCLUDED.staff_user_id,
			waiver_signed       = EXCLUDED.waiver_signed,
			health_check_passed = EXCLUDED.health_check_passed,
			notes               = EXCLUDED.notes
	`,
		c.ID, c.BookingPetID, c.CheckInTime, toNullTime(c.CheckOutTime), c.StaffUserID,
		c.WaiverSigned, c.HealthCheckPassed, c.Notes,
	)
}

func (r *bookingRepo) SetCheckOut(ctx context.Context, bookingPetID string, at time.Time) error {
	return mustAffect(r.s.q(ctx).ExecContext(ctx, `
		UPDATE checkins SET check_out_time = $2 WHERE booking_pet_id = $1
	`, bookingPetID, at))
}

func (r *bookingRepo) CountOpenCheckIns(ctx context.Context, bookingID string) (int, error) {
	var n int
	err := r.s.q(ctx).QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM checkins c
		JOIN booking_pets bp ON bp.id = c.booking_pet_id
		WHERE bp.booking_id = $1 AND c.check_out_time IS NULL
	`, bookingID).Scan(&n)
	return n, mapErr(err)
}

func (r *bookingRepo) ListCheckIns(ctx context.Context, bookingID string) ([]bookings.CheckIn, error) {
	rows, err := r.s.q(ctx).QueryContext(ctx, checkInSelect+`
		WHERE bp.booking_id = $1
		ORDER BY c.check_in_time, c.seq
	`, bookingID)
	return collect(rows, err, scanCheckIn)
}

const waitlistSelect = `
	SELECT w.id, w.location_id, w.client_id, w.pet_id, w.requested_start, w.requested_end,
		w.status, w.notes, w.created_at,
		COALESCE(c.first_name || ' ' || c.last_name, ''), COALESCE(p.name, '')
	FROM waitlist_entries w
	LEFT JOIN clients c ON c.id = w.client_id
	LEFT JOIN pets p ON p.id = w.pet_id`

func scanWaitlist(row rowScanner) (bookings.WaitlistEntry, error) {
	var e bookings.WaitlistEntry
	var status string
	err := row.Scan(
		&e.ID, &e.LocationID, &e.ClientID, &e.PetID, &e.RequestedStart, &e.RequestedEnd,
		&status, &e.Notes, &e.CreatedAt,
		&e.ClientName, &e.PetName,
	)
	e.Status = bookings.WaitlistStatus(status)
	e.RequestedStart, e.RequestedEnd = e.RequestedStart.UTC(), e.RequestedEnd.UTC()
	return e, err
}

func (r *bookingRepo) CreateWaitlist(ctx context.Context, e bookings.WaitlistEntry) error {
	return exec(ctx, r.s.q(ctx), `
		INSERT INTO waitlist_entries (
			id, location_id, client_id, pet_id, requested_start, requested_end,
			status, notes, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		e.ID, e.LocationID, e.ClientID, e.PetID, e.RequestedStart, e.RequestedEnd,
		string(e.Status), e.Notes, e.CreatedAt,
	)
}

func (r *bookingRepo) GetWaitlist(ctx context.Context, id string) (bookings.WaitlistEntry, error) {
	row := r.s.q(ctx).QueryRowContext(ctx, waitlistSelect+` WHERE w.id = $1`, id)
	e, err := scanWaitlist(row)
	if err != nil {
		return bookings.WaitlistEntry{}, mapErr(err)
	}
	return e, nil
}

func (r *bookingRepo) ListWaitlist(ctx context.Context, locationID string, from, to time.Time) ([]bookings.WaitlistEntry, error) {
	rows, err := r.s.q(ctx).QueryContext(ctx, waitlistSelect+`
		WHERE w.location_id = $1 AND w.requested_start >= $2 AND w.requested_start < $3
		ORDER BY w.seq
	`, locationID, from, to)
	return collect(rows, err, scanWaitlist)
}

func (r *bookingRepo) UpdateWaitlistStatus(ctx context.Context, id string, status bookings.WaitlistStatus) error {
	return mustAffect(r.s.q(ctx).ExecContext(ctx, `
		UPDATE waitlist_entries SET status = $2 WHERE id = $1
	`, id, string(status)))
}

const recurringColumns = `
	id, location_id, client_id, rule, start_date, end_date,
	start_time, end_time, attributes, created_at`

func (r *bookingRepo) CreateRecurring(ctx context.Context, rb bookings.RecurringBooking) error {
	return exec(ctx, r.s.q(ctx), `
		INSERT INTO recurring_bookings (`+recurringColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		rb.ID, rb.LocationID, rb.ClientID, rb.Rule, rb.StartDate, toNullTime(rb.EndDate),
		rb.StartTime, rb.EndTime, attrs(rb.Attributes), rb.CreatedAt,
	)
}

func (r *bookingRepo) GetRecurring(ctx context.Context, id string) (bookings.RecurringBooking, error) {
	var rb bookings.RecurringBooking
	var end sql.NullTime
	var a jsonMap
	err := r.s.q(ctx).QueryRowContext(ctx, `SELECT `+recurringColumns+` FROM recurring_bookings WHERE id = $1`, id).Scan(
		&rb.ID, &rb.LocationID, &rb.ClientID, &rb.Rule, &rb.StartDate, &end,
		&rb.StartTime, &rb.EndTime, &a, &rb.CreatedAt,
	)
	if err != nil {
		return bookings.RecurringBooking{}, mapErr(err)
	}
	rb.StartDate = rb.StartDate.UTC()
	rb.EndDate = nullTime(end)
	rb.Attributes = a
	return rb, nil
}
