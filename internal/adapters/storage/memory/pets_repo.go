package memory

import (
	"context"
	"sort"
	"time"

	"doggy-daycare/internal/domain/pets"
	"doggy-daycare/internal/ports/storage"
)

type petRepo struct {
	s *Store
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	defer r.s.lock(ctx)()
	return insert(r.s, r.s.t.pets, p.ID, p)
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	defer r.s.lock(ctx)()
	if !r.s.t.pets.replace(p.ID, p) {
		return storage.ErrNotFound
	}
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	defer r.s.lock(ctx)()
	p, ok := r.s.t.pets.get(id)
	if !ok {
		return pets.Pet{}, storage.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) List(ctx context.Context, filter pets.ListFilter) ([]pets.Pet, error) {
	defer r.s.lock(ctx)()

	out := make([]pets.Pet, 0)
	for _, p := range r.s.t.pets.rows() {
		if filter.ClientID != "" && p.ClientID != filter.ClientID {
			continue
		}
		if p.Archived && !filter.IncludeArchived {
			continue
		}
		if c, ok := r.s.t.clients.get(p.ClientID); ok {
			p.OwnerName = c.FullName()
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *petRepo) CreateVaccination(ctx context.Context, v pets.Vaccination) error {
	defer r.s.lock(ctx)()
	return insert(r.s, r.s.t.vaccinations, v.ID, v)
}

func (r *petRepo) GetVaccination(ctx context.Context, id string) (pets.Vaccination, error) {
	defer r.s.lock(ctx)()
	v, ok := r.s.t.vaccinations.get(id)
	if !ok {
		return pets.Vaccination{}, storage.ErrNotFound
	}
	return v, nil
}

func (r *petRepo) ListVaccinations(ctx context.Context, petID string) ([]pets.Vaccination, error) {
	defer r.s.lock(ctx)()

	out := make([]pets.Vaccination, 0)
	for _, v := range r.s.t.vaccinations.rows() {
		if v.PetID == petID {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ExpiryDate.After(out[j].ExpiryDate) })
	return out, nil
}

func (r *petRepo) LatestExpiry(ctx context.Context, petID string) (*time.Time, error) {
	defer r.s.lock(ctx)()

	var latest *time.Time
	for _, e := range r.s.t.vaccinations {
		if e.val.PetID != petID {
			continue
		}
		if latest == nil || e.val.ExpiryDate.After(*latest) {
			d := e.val.ExpiryDate
			latest = &d
		}
	}
	return latest, nil
}
