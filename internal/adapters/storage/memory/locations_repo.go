package memory

import (
	"context"
	"sort"
	"strings"

	"doggy-daycare/internal/domain/locations"
	"doggy-daycare/internal/ports/storage"
)

type locationRepo struct {
	s *Store
}

func (r *locationRepo) Create(ctx context.Context, l locations.Location) error {
	defer r.s.lock(ctx)()
	return insert(r.s, r.s.t.locations, l.ID, l)
}

func (r *locationRepo) GetByID(ctx context.Context, id string) (locations.Location, error) {
	defer r.s.lock(ctx)()
	l, ok := r.s.t.locations.get(id)
	if !ok {
		return locations.Location{}, storage.ErrNotFound
	}
	return l, nil
}

func (r *locationRepo) List(ctx context.Context) ([]locations.Location, error) {
	defer r.s.lock(ctx)()
	out := r.s.t.locations.rows()
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}
