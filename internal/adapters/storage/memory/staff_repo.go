package memory

import (
	"context"
	"sort"
	"time"

	"doggy-daycare/internal/domain/staff"
	"doggy-daycare/internal/ports/storage"
)

type staffRepo struct {
	s *Store
}

func (r *staffRepo) withName(e staff.Employee) staff.Employee {
	u, _ := r.s.t.users.get(e.UserID)
	e.Name = u.Name
	return e
}

func (r *staffRepo) CreateEmployee(ctx context.Context, e staff.Employee) error {
	defer r.s.lock(ctx)()
	e.Name = ""
	return insert(r.s, r.s.t.employees, e.ID, e)
}

func (r *staffRepo) GetEmployee(ctx context.Context, id string) (staff.Employee, error) {
	defer r.s.lock(ctx)()
	e, ok := r.s.t.employees.get(id)
	if !ok {
		return staff.Employee{}, storage.ErrNotFound
	}
	return r.withName(e), nil
}

func (r *staffRepo) ListEmployees(ctx context.Context) ([]staff.Employee, error) {
	defer r.s.lock(ctx)()
	out := make([]staff.Employee, 0)
	for _, e := range r.s.t.employees.rows() {
		out = append(out, r.withName(e))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *staffRepo) CreateShift(ctx context.Context, sh staff.Shift) error {
	defer r.s.lock(ctx)()
	return insert(r.s, r.s.t.shifts, sh.ID, sh)
}

func (r *staffRepo) GetShift(ctx context.Context, id string) (staff.Shift, error) {
	defer r.s.lock(ctx)()
	sh, ok := r.s.t.shifts.get(id)
	if !ok {
		return staff.Shift{}, storage.ErrNotFound
	}
	return sh, nil
}

func (r *staffRepo) ListShifts(ctx context.Context, locationID string, from, to time.Time) ([]staff.Shift, error) {
	defer r.s.lock(ctx)()
	out := make([]staff.Shift, 0)
	for _, sh := range r.s.t.shifts.rows() {
		if sh.LocationID == locationID && !sh.StartTime.Before(from) && sh.StartTime.Before(to) {
			out = append(out, sh)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *staffRepo) CreateClockEntry(ctx context.Context, c staff.ClockEntry) error {
	defer r.s.lock(ctx)()
	return insert(r.s, r.s.t.clockEntries, c.ID, c)
}

func (r *staffRepo) GetClockEntry(ctx context.Context, id string) (staff.ClockEntry, error) {
	defer r.s.lock(ctx)()
	c, ok := r.s.t.clockEntries.get(id)
	if !ok {
		return staff.ClockEntry{}, storage.ErrNotFound
	}
	return c, nil
}

func (r *staffRepo) SetClockOut(ctx context.Context, id string, at time.Time) error {
	defer r.s.lock(ctx)()
	c, ok := r.s.t.clockEntries.get(id)
	if !ok {
		return storage.ErrNotFound
	}
	c.ClockOut = &at
	r.s.t.clockEntries.replace(id, c)
	return nil
}
