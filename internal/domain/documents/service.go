package documents

import (
	"context"
	"errors"
	"strings"
	"time"

	"doggy-daycare/internal/domain/clients"
	"doggy-daycare/internal/platform/apperr"
	"doggy-daycare/internal/platform/dates"
	"doggy-daycare/internal/platform/validation"
	"doggy-daycare/internal/ports/storage"

	"github.com/google/uuid"
)

type Clients interface {
	Get(ctx context.Context, id string) (clients.Client, error)
}

type Service struct {
	repo    Repository
	clients Clients
	now     func() time.Time
}

func NewService(repo Repository, cl Clients, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:    repo,
		clients: cl,
		now:     now,
	}
}

type CreateInput struct {
	Name              string `json:"name" validate:"notblank"`
	Description       string `json:"description"`
	Content           string `json:"content" validate:"notblank"`
	RequiresSignature *bool  `json:"requires_signature"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Document, error) {
	if err := validation.Struct(in); err != nil {
		return Document{}, err
	}

	d := Document{
		ID:                uuid.NewString(),
		Name:              strings.TrimSpace(in.Name),
		Description:       strings.TrimSpace(in.Description),
		Content:           in.Content,
		RequiresSignature: in.RequiresSignature == nil || *in.RequiresSignature,
		CreatedAt:         s.now().UTC(),
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return Document{}, err
	}
	return s.Get(ctx, d.ID)
}

func (s *Service) Get(ctx context.Context, id string) (Document, error) {
	d, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Document{}, apperr.NotFound("Document")
		}
		return Document{}, err
	}
	return d, nil
}

func (s *Service) List(ctx context.Context) ([]Document, error) {
	return s.repo.List(ctx)
}

type AssignInput struct {
	DocumentID string     `json:"document_id" validate:"notblank"`
	ClientID   string     `json:"client_id" validate:"notblank"`
	DueDate    *time.Time `json:"-"`
}

func (s *Service) Assign(ctx context.Context, in AssignInput) (Assignment, error) {
	if err := validation.Struct(in); err != nil {
		return Assignment{}, err
	}
	doc, err := s.Get(ctx, in.DocumentID)
	if err != nil {
		return Assignment{}, err
	}
	if _, err := s.clients.Get(ctx, in.ClientID); err != nil {
		return Assignment{}, err
	}

	var due *time.Time
	if in.DueDate != nil {
		d := dates.Day(*in.DueDate)
		due = &d
	}

	now := s.now().UTC()
	a := Assignment{
		ID:           uuid.NewString(),
		DocumentID:   doc.ID,
		ClientID:     strings.TrimSpace(in.ClientID),
		Status:       StatusPending,
		DueDate:      due,
		CapturedData: map[string]string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateAssignment(ctx, a); err != nil {
		return Assignment{}, err
	}
	return s.GetAssignment(ctx, a.ID)
}

func (s *Service) GetAssignment(ctx context.Context, id string) (Assignment, error) {
	a, err := s.repo.GetAssignment(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Assignment{}, apperr.NotFound("Document assignment")
		}
		return Assignment{}, err
	}
	return a, nil
}

type CompleteInput struct {
	AssignmentID string            `json:"assignment_id" validate:"notblank"`
	SignedAt     time.Time         `json:"-" validate:"required"`
	CapturedData map[string]string `json:"captured_data"`
}

// Complete marca la asignación como completada.
func (s *Service) Complete(ctx context.Context, in CompleteInput) (Assignment, error) {
	if err := validation.Struct(in); err != nil {
		return Assignment{}, err
	}
	a, err := s.GetAssignment(ctx, in.AssignmentID)
	if err != nil {
		return Assignment{}, err
	}

	// Idempotente
	if a.Status == StatusCompleted {
		return a, nil
	}

	signed := in.SignedAt.UTC()
	data := make(map[string]string, len(in.CapturedData))
	for k, v := range in.CapturedData {
		data[k] = v
	}
	a.Status = StatusCompleted
	a.SignedAt = &signed
	a.CapturedData = data
	a.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateAssignment(ctx, a); err != nil {
		return Assignment{}, err
	}
	return s.GetAssignment(ctx, a.ID)
}

func (s *Service) ListAssignments(ctx context.Context, clientID string) ([]Assignment, error) {
	if _, err := s.clients.Get(ctx, clientID); err != nil {
		return nil, err
	}
	return s.repo.ListAssignments(ctx, strings.TrimSpace(clientID))
}
