package memory

import (
	"context"
	"sort"
	"strings"

	"doggy-daycare/internal/domain/users"
	"doggy-daycare/internal/ports/storage"
)

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(ctx context.Context, u users.User) error {
	defer r.s.lock(ctx)()
	for _, e := range r.s.t.users {
		if strings.EqualFold(e.val.Email, u.Email) {
			return storage.ErrConflict
		}
	}
	return insert(r.s, r.s.t.users, u.ID, u)
}

func (r *userRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	defer r.s.lock(ctx)()
	u, ok := r.s.t.users.get(id)
	if !ok {
		return users.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	defer r.s.lock(ctx)()
	for _, e := range r.s.t.users {
		if strings.EqualFold(e.val.Email, email) {
			return e.val, nil
		}
	}
	return users.User{}, storage.ErrNotFound
}

func (r *userRepo) GetByAPIKey(ctx context.Context, apiKey string) (users.User, error) {
	defer r.s.lock(ctx)()
	if apiKey == "" {
		return users.User{}, storage.ErrNotFound
	}
	for _, e := range r.s.t.users {
		if e.val.APIKey == apiKey {
			return e.val, nil
		}
	}
	return users.User{}, storage.ErrNotFound
}

func (r *userRepo) List(ctx context.Context, locationID *string) ([]users.User, error) {
	defer r.s.lock(ctx)()
	out := make([]users.User, 0)
	for _, u := range r.s.t.users.rows() {
		if !u.Active {
			continue
		}
		if locationID != nil && u.LocationID != nil && *u.LocationID != *locationID {
			continue
		}
		out = append(out, u)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Role != out[j].Role {
			return out[i].Role < out[j].Role
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}
