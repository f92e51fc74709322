package postgres

import (
	"context"
	"database/sql"
	"time"

	"doggy-daycare/internal/domain/staff"
)

type staffRepo struct {
	s *Store
}

const employeeSelect = `
	SELECT e.id, e.user_id, e.position, e.hourly_rate, e.started_on, e.created_at,
		COALESCE(u.name, '')
	FROM employees e
	LEFT JOIN users u ON u.id = e.user_id`

func scanEmployee(row rowScanner) (staff.Employee, error) {
	var e staff.Employee
	err := row.Scan(&e.ID, &e.UserID, &e.Position, &e.HourlyRate, &e.StartedOn, &e.CreatedAt, &e.Name)
	e.StartedOn = e.StartedOn.UTC()
	return e, err
}

func (r *staffRepo) CreateEmployee(ctx context.Context, e staff.Employee) error {
	return exec(ctx, r.s.q(ctx), `
		INSERT INTO employees (id, user_id, position, hourly_rate, started_on, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, e.ID, e.UserID, e.Position, e.HourlyRate, e.StartedOn, e.CreatedAt)
}

func (r *staffRepo) GetEmployee(ctx context.Context, id string) (staff.Employee, error) {
	row := r.s.q(ctx).QueryRowContext(ctx, employeeSelect+` WHERE e.id = $1`, id)
	e, err := scanEmployee(row)
	if err != nil {
		return staff.Employee{}, mapErr(err)
	}
	return e, nil
}

func (r *staffRepo) ListEmployees(ctx context.Context) ([]staff.Employee, error) {
	rows, err := r.s.q(ctx).QueryContext(ctx, employeeSelect+` ORDER BY u.name, e.seq`)
	return collect(rows, err, scanEmployee)
}

const shiftColumns = `id, employee_id, location_id, start_time, end_time, created_at`

func scanShift(row rowScanner) (staff.Shift, error) {
	var sh staff.Shift
	err := row.Scan(&sh.ID, &sh.EmployeeID, &sh.LocationID, &sh.StartTime, &sh.EndTime, &sh.CreatedAt)
	sh.StartTime, sh.EndTime = sh.StartTime.UTC(), sh.EndTime.UTC()
	return sh, err
}

func (r *staffRepo) CreateShift(ctx context.Context, sh staff.Shift) error {
	return exec(ctx, r.s.q(ctx), `
		INSERT INTO shifts (`+shiftColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, sh.ID, sh.EmployeeID, sh.LocationID, sh.StartTime, sh.EndTime, sh.CreatedAt)
}

func (r *staffRepo) GetShift(ctx context.Context, id string) (staff.Shift, error) {
	row := r.s.q(ctx).QueryRowContext(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE id = $1`, id)
	sh, err := scanShift(row)
	if err != nil {
		return staff.Shift{}, mapErr(err)
	}
	return sh, nil
}

func (r *staffRepo) ListShifts(ctx context.Context, locationID string, from, to time.Time) ([]staff.Shift, error) {
	rows, err := r.s.q(ctx).QueryContext(ctx, `
		SELECT `+shiftColumns+`
		FROM shifts
		WHERE location_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time, seq
	`, locationID, from, to)
	return collect(rows, err, scanShift)
}

func (r *staffRepo) CreateClockEntry(ctx context.Context, c staff.ClockEntry) error {
	return exec(ctx, r.s.q(ctx), `
		INSERT INTO time_clock_entries (id, employee_id, clock_in, clock_out)
		VALUES ($1,$2,$3,$4)
	`, c.ID, c.EmployeeID, c.ClockIn, toNullTime(c.ClockOut))
}

func (r *staffRepo) GetClockEntry(ctx context.Context, id string) (staff.ClockEntry, error) {
	var c staff.ClockEntry
	var out sql.NullTime
	err := r.s.q(ctx).QueryRowContext(ctx, `
		SELECT id, employee_id, clock_in, clock_out FROM time_clock_entries WHERE id = $1
	`, id).Scan(&c.ID, &c.EmployeeID, &c.ClockIn, &out)
	if err != nil {
		return staff.ClockEntry{}, mapErr(err)
	}
	c.ClockIn = c.ClockIn.UTC()
	c.ClockOut = nullTime(out)
	return c, nil
}

func (r *staffRepo) SetClockOut(ctx context.Context, id string, at time.Time) error {
	return mustAffect(r.s.q(ctx).ExecContext(ctx, `
		UPDATE time_clock_entries SET clock_out = $2 WHERE id = $1
	`, id, at))
}
