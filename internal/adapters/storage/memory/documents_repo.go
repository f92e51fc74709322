package memory

import (
	"context"
	"sort"

	"doggy-daycare/internal/domain/documents"
	"doggy-daycare/internal/ports/storage"
)

type documentRepo struct {
	s *Store
}

func (r *documentRepo) Create(ctx context.Context, d documents.Document) error {
	defer r.s.lock(ctx)()
	return insert(r.s, r.s.t.documents, d.ID, d)
}

func (r *documentRepo) GetByID(ctx context.Context, id string) (documents.Document, error) {
	defer r.s.lock(ctx)()
	d, ok := r.s.t.documents.get(id)
	if !ok {
		return documents.Document{}, storage.ErrNotFound
	}
	return d, nil
}

func (r *documentRepo) List(ctx context.Context) ([]documents.Document, error) {
	defer r.s.lock(ctx)()
	out := r.s.t.documents.rows()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *documentRepo) CreateAssignment(ctx context.Context, a documents.Assignment) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.t.documents.get(a.DocumentID); !ok {
		return storage.ErrNotFound
	}
	a.DocumentName = ""
	return insert(r.s, r.s.t.assignments, a.ID, a)
}

func (r *documentRepo) UpdateAssignment(ctx context.Context, a documents.Assignment) error {
	defer r.s.lock(ctx)()
	a.DocumentName = ""
	if !r.s.t.assignments.replace(a.ID, a) {
		return storage.ErrNotFound
	}
	return nil
}

func (r *documentRepo) withDocument(a documents.Assignment) documents.Assignment {
	d, _ := r.s.t.documents.get(a.DocumentID)
	a.DocumentName = d.Name
	return a
}

func (r *documentRepo) GetAssignment(ctx context.Context, id string) (documents.Assignment, error) {
	defer r.s.lock(ctx)()
	a, ok := r.s.t.assignments.get(id)
	if !ok {
		return documents.Assignment{}, storage.ErrNotFound
	}
	return r.withDocument(a), nil
}

func (r *documentRepo) ListAssignments(ctx context.Context, clientID string) ([]documents.Assignment, error) {
	defer r.s.lock(ctx)()
	out := make([]documents.Assignment, 0)
	for _, a := range r.s.t.assignments.rows() {
		if a.ClientID == clientID {
			out = append(out, r.withDocument(a))
		}
	}
	return out, nil
}
