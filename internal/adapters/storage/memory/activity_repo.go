package memory

import (
	"context"
	"slices"
	"sort"

	"doggy-daycare/internal/domain/activity"
	"doggy-daycare/internal/ports/storage"
)

type activityRepo struct {
	s *Store
}

func (r *activityRepo) staffName(id *string) string {
	if id == nil {
		return ""
	}
	u, _ := r.s.t.users.get(*id)
	return u.Name
}

func (r *activityRepo) CreateNote(ctx context.Context, n activity.Note) error {
	defer r.s.lock(ctx)()
	return insert(r.s, r.s.t.notes, n.ID, n)
}

func (r *activityRepo) GetNote(ctx context.Context, id string) (activity.Note, error) {
	defer r.s.lock(ctx)()
	n, ok := r.s.t.notes.get(id)
	if !ok {
		return activity.Note{}, storage.ErrNotFound
	}
	n.StaffName = r.staffName(n.CreatedBy)
	return n, nil
}

func (r *activityRepo) ListNotes(ctx context.Context, petID string) ([]activity.Note, error) {
	defer r.s.lock(ctx)()

	rows := r.s.t.notes.rows()
	out := make([]activity.Note, 0)
	// Más recientes primero; a igual fecha, la última insertada.
	for i := len(rows) - 1; i >= 0; i-- {
		n := rows[i]
		if n.PetID != petID {
			continue
		}
		n.StaffName = r.staffName(n.CreatedBy)
		out = append(out, n)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *activityRepo) CreateLog(ctx context.Context, l activity.Log) error {
	defer r.s.lock(ctx)()
	return insert(r.s, r.s.t.logs, l.ID, l)
}

func (r *activityRepo) GetLog(ctx context.Context, id string) (activity.Log, error) {
	defer r.s.lock(ctx)()
	l, ok := r.s.t.logs.get(id)
	if !ok {
		return activity.Log{}, storage.ErrNotFound
	}
	l.StaffName = r.staffName(l.LoggedBy)
	return l, nil
}

func (r *activityRepo) ListLogs(ctx context.Context, petID string, filter activity.ListFilter) ([]activity.Log, error) {
	defer r.s.lock(ctx)()

	rows := r.s.t.logs.rows()
	out := make([]activity.Log, 0)
	for i := len(rows) - 1; i >= 0; i-- {
		l := rows[i]
		if l.PetID != petID {
			continue
		}
		if len(filter.Types) > 0 && !slices.Contains(filter.Types, l.ActivityType) {
			continue
		}
		if filter.BookingID != "" && (l.BookingID == nil || *l.BookingID != filter.BookingID) {
			continue
		}
		if filter.From != nil && l.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && l.CreatedAt.After(*filter.To) {
			continue
		}
		l.StaffName = r.staffName(l.LoggedBy)
		out = append(out, l)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit := filter.NormalizedLimit(); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
