package memory

import (
	"context"
	"sort"
	"time"

	"doggy-daycare/internal/domain/crm"
	"doggy-daycare/internal/ports/storage"
)

type crmRepo struct {
	s *Store
}

func (r *crmRepo) CreateNotification(ctx context.Context, n crm.Notification) error {
	defer r.s.lock(ctx)()
	return insert(r.s, r.s.t.notifications, n.ID, n)
}

func (r *crmRepo) GetNotification(ctx context.Context, id string) (crm.Notification, error) {
	defer r.s.lock(ctx)()
	n, ok := r.s.t.notifications.get(id)
	if !ok {
		return crm.Notification{}, storage.ErrNotFound
	}
	return n, nil
}

func (r *crmRepo) ListNotifications(ctx context.Context, clientID string) ([]crm.Notification, error) {
	defer r.s.lock(ctx)()
	rows := r.s.t.notifications.rows()
	out := make([]crm.Notification, 0)
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i].ClientID == clientID {
			out = append(out, rows[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *crmRepo) withNames(m crm.Message) crm.Message {
	if m.StaffUserID != nil {
		u, _ := r.s.t.users.get(*m.StaffUserID)
		m.StaffName = u.Name
	}
	if c, ok := r.s.t.clients.get(m.ClientID); ok {
		m.ClientName = c.FullName()
	}
	return m
}

func (r *crmRepo) CreateMessage(ctx context.Context, m crm.Message) error {
	defer r.s.lock(ctx)()
	m.StaffName, m.ClientName = "", ""
	return insert(r.s, r.s.t.messages, m.ID, m)
}

func (r *crmRepo) GetMessage(ctx context.Context, id string) (crm.Message, error) {
	defer r.s.lock(ctx)()
	m, ok := r.s.t.messages.get(id)
	if !ok {
		return crm.Message{}, storage.ErrNotFound
	}
	return r.withNames(m), nil
}

// newestFirst recorre los mensajes del último al primero.
func (r *crmRepo) newestFirst(keep func(crm.Message) bool) []crm.Message {
	rows := r.s.t.messages.rows()
	out := make([]crm.Message, 0)
	for i := len(rows) - 1; i >= 0; i-- {
		if keep(rows[i]) {
			out = append(out, r.withNames(rows[i]))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *crmRepo) ListMessages(ctx context.Context, clientID string) ([]crm.Message, error) {
	defer r.s.lock(ctx)()
	return r.newestFirst(func(m crm.Message) bool { return m.ClientID == clientID }), nil
}

func (r *crmRepo) RecentMessages(ctx context.Context, since time.Time, limit int) ([]crm.Message, error) {
	defer r.s.lock(ctx)()
	out := r.newestFirst(func(m crm.Message) bool {
		_, ok := r.s.t.clients.get(m.ClientID)
		return ok && !m.CreatedAt.Before(since)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
