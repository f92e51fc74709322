package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"doggy-daycare/internal/domain/clients"
	"doggy-daycare/internal/ports/storage"
)

type clientRepo struct {
	s *Store
}

func (r *clientRepo) Create(ctx context.Context, c clients.Client) error {
	defer r.s.lock(ctx)()
	return insert(r.s, r.s.t.clients, c.ID, c)
}

func (r *clientRepo) GetByID(ctx context.Context, id string) (clients.Client, error) {
	defer r.s.lock(ctx)()
	c, ok := r.s.t.clients.get(id)
	if !ok {
		return clients.Client{}, storage.ErrNotFound
	}
	return c, nil
}

func (r *clientRepo) List(ctx context.Context) ([]clients.Client, error) {
	defer r.s.lock(ctx)()
	out := r.s.t.clients.rows()
	for i, c := range out {
		out[i].LoginEmail = c.Email
		if c.UserID == nil {
			continue
		}
		if u, ok := r.s.t.users.get(*c.UserID); ok && u.Email != "" {
			out[i].LoginEmail = u.Email
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		li, lj := strings.ToLower(out[i].LastName), strings.ToLower(out[j].LastName)
		if li != lj {
			return li < lj
		}
		return strings.ToLower(out[i].FirstName) < strings.ToLower(out[j].FirstName)
	})
	return out, nil
}

func (r *clientRepo) CountCreatedOn(ctx context.Context, day time.Time) (int, error) {
	defer r.s.lock(ctx)()
	end := day.AddDate(0, 0, 1)
	n := 0
	for _, e := range r.s.t.clients {
		at := e.val.CreatedAt
		if !at.Before(day) && at.Before(end) {
			n++
		}
	}
	return n, nil
}
