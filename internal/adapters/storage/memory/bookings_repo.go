package memory

import (
	"context"
	"sort"
	"time"

	"doggy-daycare/internal/domain/bookings"
	"doggy-daycare/internal/ports/storage"
)

type bookingRepo struct {
	s *Store
}

func (r *bookingRepo) Create(ctx context.Context, b bookings.Booking, pets []bookings.BookingPet, services []bookings.BookingService) error {
	defer r.s.lock(ctx)()
	if err := insert(r.s, r.s.t.bookings, b.ID, b); err != nil {
		return err
	}
	for _, p := range pets {
		if err := insert(r.s, r.s.t.bookingPets, p.ID, p); err != nil {
			return err
		}
	}
	for _, sv := range services {
		if err := insert(r.s, r.s.t.bookingServices, sv.ID, sv); err != nil {
			return err
		}
	}
	return nil
}

func (r *bookingRepo) GetByID(ctx context.Context, id string) (bookings.Booking, error) {
	defer r.s.lock(ctx)()
	b, ok := r.s.t.bookings.get(id)
	if !ok {
		return bookings.Booking{}, storage.ErrNotFound
	}
	return b, nil
}

func (r *bookingRepo) ListPets(ctx context.Context, bookingID string) ([]bookings.BookingPet, error) {
	defer r.s.lock(ctx)()
	out := make([]bookings.BookingPet, 0)
	for _, bp := range r.s.t.bookingPets.rows() {
		if bp.BookingID != bookingID {
			continue
		}
		p, _ := r.s.t.pets.get(bp.PetID)
		bp.PetName = p.Name
		out = append(out, bp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PetName < out[j].PetName })
	return out, nil
}

func (r *bookingRepo) ListServices(ctx context.Context, bookingID string) ([]bookings.BookingService, error) {
	defer r.s.lock(ctx)()
	out := make([]bookings.BookingService, 0)
	for _, bs := range r.s.t.bookingServices.rows() {
		if bs.BookingID != bookingID {
			continue
		}
		o, _ := r.s.t.offerings.get(bs.ServiceID)
		bs.ServiceName = o.Name
		out = append(out, bs)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ServiceName < out[j].ServiceName })
	return out, nil
}

func byStart(list []bookings.Booking) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].StartTime.Before(list[j].StartTime) })
}

func (r *bookingRepo) ListByLocation(ctx context.Context, locationID string, from, to time.Time) ([]bookings.Booking, error) {
	defer r.s.lock(ctx)()
	out := make([]bookings.Booking, 0)
	for _, b := range r.s.t.bookings.rows() {
		if b.LocationID == locationID && !b.StartTime.Before(from) && b.StartTime.Before(to) {
			out = append(out, b)
		}
	}
	byStart(out)
	return out, nil
}

func (r *bookingRepo) ListByClient(ctx context.Context, filter bookings.ClientFilter) ([]bookings.Booking, error) {
	defer r.s.lock(ctx)()
	out := make([]bookings.Booking, 0)
	for _, b := range r.s.t.bookings.rows() {
		if b.ClientID != filter.ClientID {
			continue
		}
		if filter.EndsAfter != nil && b.EndTime.Before(*filter.EndsAfter) {
			continue
		}
		out = append(out, b)
	}
	byStart(out)
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *bookingRepo) CountBookedPets(ctx context.Context, locationID string, start, end time.Time) (int, error) {
	defer r.s.lock(ctx)()
	active := map[string]bool{}
	for _, e := range r.s.t.bookings {
		b := e.val
		if b.LocationID == locationID && b.Occupies() && b.Overlaps(start, end) {
			active[b.ID] = true
		}
	}
	n := 0
	for _, e := range r.s.t.bookingPets {
		if active[e.val.BookingID] {
			n++
		}
	}
	return n, nil
}

func (r *bookingRepo) UpdateStatus(ctx context.Context, id string, status bookings.Status, at time.Time) error {
	defer r.s.lock(ctx)()
	b, ok := r.s.t.bookings.get(id)
	if !ok {
		return storage.ErrNotFound
	}
	b.Status = status
	b.UpdatedAt = at
	r.s.t.bookings.replace(id, b)
	return nil
}

func (r *bookingRepo) GetBookingPet(ctx context.Context, bookingID, petID string) (bookings.BookingPet, error) {
	defer r.s.lock(ctx)()
	for _, bp := range r.s.t.bookingPets.rows() {
		if bp.BookingID == bookingID && bp.PetID == petID {
			return bp, nil
		}
	}
	return bookings.BookingPet{}, storage.ErrNotFound
}

func (r *bookingRepo) checkInByPet(bookingPetID string) (bookings.CheckIn, bool) {
	for _, e := range r.s.t.checkIns {
		if e.val.BookingPetID == bookingPetID {
			return r.withPet(e.val), true
		}
	}
	return bookings.CheckIn{}, false
}

func (r *bookingRepo) withPet(c bookings.CheckIn) bookings.CheckIn {
	if bp, ok := r.s.t.bookingPets.get(c.BookingPetID); ok {
		c.PetID = bp.PetID
		p, _ := r.s.t.pets.get(bp.PetID)
		c.PetName = p.Name
	}
	return c
}

func (r *bookingRepo) GetCheckIn(ctx context.Context, bookingPetID string) (bookings.CheckIn, error) {
	defer r.s.lock(ctx)()
	c, ok := r.checkInByPet(bookingPetID)
	if !ok {
		return bookings.CheckIn{}, storage.ErrNotFound
	}
	return c, nil
}

func (r *bookingRepo) SaveCheckIn(ctx context.Context, c bookings.CheckIn) error {
	defer r.s.lock(ctx)()
	c.PetID, c.PetName = "", ""
	if existing, ok := r.checkInByPet(c.BookingPetID); ok {
		c.ID = existing.ID
		c.CheckOutTime = existing.CheckOutTime
		r.s.t.checkIns.replace(c.ID, c)
		return nil
	}
	return insert(r.s, r.s.t.checkIns, c.ID, c)
}

func (r *bookingRepo) SetCheckOut(ctx context.Context, bookingPetID string, at time.Time) error {
	defer r.s.lock(ctx)()
	c, ok := r.checkInByPet(bookingPetID)
	if !ok {
		return storage.ErrNotFound
	}
	c.PetID, c.PetName = "", ""
	c.CheckOutTime = &at
	r.s.t.checkIns.replace(c.ID, c)
	return nil
}

func (r *bookingRepo) CountOpenCheckIns(ctx context.Context, bookingID string) (int, error) {
	defer r.s.lock(ctx)()
	n := 0
	for _, e := range r.s.t.checkIns {
		bp, ok := r.s.t.bookingPets.get(e.val.BookingPetID)
		if ok && bp.BookingID == bookingID && e.val.CheckOutTime == nil {
			n++
		}
	}
	return n, nil
}

func (r *bookingRepo) ListCheckIns(ctx context.Context, bookingID string) ([]bookings.CheckIn, error) {
	defer r.s.lock(ctx)()
	out := make([]bookings.CheckIn, 0)
	for _, c := range r.s.t.checkIns.rows() {
		bp, ok := r.s.t.bookingPets.get(c.BookingPetID)
		if !ok || bp.BookingID != bookingID {
			continue
		}
		out = append(out, r.withPet(c))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CheckInTime.Before(out[j].CheckInTime) })
	return out, nil
}

func (r *bookingRepo) withNames(e bookings.WaitlistEntry) bookings.WaitlistEntry {
	if c, ok := r.s.t.clients.get(e.ClientID); ok {
		e.ClientName = c.FullName()
	}
	if p, ok := r.s.t.pets.get(e.PetID); ok {
		e.PetName = p.Name
	}
	return e
}

func (r *bookingRepo) CreateWaitlist(ctx context.Context, e bookings.WaitlistEntry) error {
	defer r.s.lock(ctx)()
	e.ClientName, e.PetName = "", ""
	return insert(r.s, r.s.t.waitlist, e.ID, e)
}

func (r *bookingRepo) GetWaitlist(ctx context.Context, id string) (bookings.WaitlistEntry, error) {
	defer r.s.lock(ctx)()
	e, ok := r.s.t.waitlist.get(id)
	if !ok {
		return bookings.WaitlistEntry{}, storage.ErrNotFound
	}
	return r.withNames(e), nil
}

func (r *bookingRepo) ListWaitlist(ctx context.Context, locationID string, from, to time.Time) ([]bookings.WaitlistEntry, error) {
	defer r.s.lock(ctx)()
	out := make([]bookings.WaitlistEntry, 0)
	for _, e := range r.s.t.waitlist.rows() {
		if e.LocationID == locationID && !e.RequestedStart.Before(from) && e.RequestedStart.Before(to) {
			out = append(out, r.withNames(e))
		}
	}
	return out, nil
}

func (r *bookingRepo) UpdateWaitlistStatus(ctx context.Context, id string, status bookings.WaitlistStatus) error {
	defer r.s.lock(ctx)()
	e, ok := r.s.t.waitlist.get(id)
	if !ok {
		return storage.ErrNotFound
	}
	e.Status = status
	r.s.t.waitlist.replace(id, e)
	return nil
}

func (r *bookingRepo) CreateRecurring(ctx context.Context, rb bookings.RecurringBooking) error {
	defer r.s.lock(ctx)()
	return insert(r.s, r.s.t.recurring, rb.ID, rb)
}

func (r *bookingRepo) GetRecurring(ctx context.Context, id string) (bookings.RecurringBooking, error) {
	defer r.s.lock(ctx)()
	rb, ok := r.s.t.recurring.get(id)
	if !ok {
		return bookings.RecurringBooking{}, storage.ErrNotFound
	}
	return rb, nil
}
