package documents

import (
	"context"
	"errors"
	"testing"
	"time"

	"doggy-daycare/internal/domain/clients"
	"doggy-daycare/internal/platform/apperr"
	"doggy-daycare/internal/ports/storage"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	docs        map[string]Document
	assignments map[string]Assignment
}

func newTestRepo() *testRepo {
	return &testRepo{
		docs:        map[string]Document{},
		assignments: map[string]Assignment{},
	}
}

func (r *testRepo) Create(ctx context.Context, d Document) error {
	if _, ok := r.docs[d.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.docs[d.ID] = d
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Document, error) {
	d, ok := r.docs[id]
	if !ok {
		return Document{}, storage.ErrNotFound
	}
	return d, nil
}

func (r *testRepo) List(ctx context.Context) ([]Document, error) {
	out := make([]Document, 0, len(r.docs))
	for _, d := range r.docs {
		out = append(out, d)
	}
	return out, nil
}

func (r *testRepo) CreateAssignment(ctx context.Context, a Assignment) error {
	r.assignments[a.ID] = a
	return nil
}

func (r *testRepo) UpdateAssignment(ctx context.Context, a Assignment) error {
	if _, ok := r.assignments[a.ID]; !ok {
		return storage.ErrNotFound
	}
	r.assignments[a.ID] = a
	return nil
}

func (r *testRepo) GetAssignment(ctx context.Context, id string) (Assignment, error) {
	a, ok := r.assignments[id]
	if !ok {
		return Assignment{}, storage.ErrNotFound
	}
	return a, nil
}

func (r *testRepo) ListAssignments(ctx context.Context, clientID string) ([]Assignment, error) {
	out := make([]Assignment, 0)
	for _, a := range r.assignments {
		if a.ClientID == clientID {
			out = append(out, a)
		}
	}
	return out, nil
}

type oneClient struct{}

func (oneClient) Get(ctx context.Context, id string) (clients.Client, error) {
	if id != "client-1" {
		return clients.Client{}, apperr.NotFound("Client")
	}
	return clients.Client{ID: id}, nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_DefaultsToRequiresSignature(t *testing.T) {
	svc := NewService(newTestRepo(), oneClient{}, nil)

	d, err := svc.Create(context.Background(), CreateInput{Name: "Waiver", Content: "I agree"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if !d.RequiresSignature {
		t.Fatalf("expected requires_signature by default")
	}
}

func TestService_Assign_UnknownDocument(t *testing.T) {
	svc := NewService(newTestRepo(), oneClient{}, nil)

	_, err := svc.Assign(context.Background(), AssignInput{DocumentID: "missing", ClientID: "client-1"})
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestService_Complete_SetsSignedAt_AndIdempotent(t *testing.T) {
	repo := newTestRepo()
	now1 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := NewService(repo, oneClient{}, func() time.Time { return now1 })

	d, err := svc.Create(context.Background(), CreateInput{Name: "Waiver", Content: "I agree"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	a, err := svc.Assign(context.Background(), AssignInput{DocumentID: d.ID, ClientID: "client-1"})
	if err != nil {
		t.Fatalf("Assign error: %v", err)
	}
	if a.Status != StatusPending {
		t.Fatalf("expected pending, got %s", a.Status)
	}

	signed := time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)
	done, err := svc.Complete(context.Background(), CompleteInput{
		AssignmentID: a.ID,
		SignedAt:     signed,
		CapturedData: map[string]string{"signature": "Ana Diaz"},
	})
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if done.Status != StatusCompleted || done.SignedAt == nil || !done.SignedAt.Equal(signed) {
		t.Fatalf("unexpected completed assignment: %#v", done)
	}

	// idempotente: una segunda firma no pisa la primera
	again, err := svc.Complete(context.Background(), CompleteInput{
		AssignmentID: a.ID,
		SignedAt:     signed.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("Complete #2 error: %v", err)
	}
	if !again.SignedAt.Equal(signed) || again.CapturedData["signature"] != "Ana Diaz" {
		t.Fatalf("second complete must not overwrite: %#v", again)
	}
}
