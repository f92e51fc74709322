package activity

import (
	"context"
	"errors"
	"strings"
	"time"

	"doggy-daycare/internal/domain/pets"
	"doggy-daycare/internal/platform/apperr"
	"doggy-daycare/internal/platform/validation"
	"doggy-daycare/internal/ports/storage"

	"github.com/google/uuid"
)

type Pets interface {
	Get(ctx context.Context, id string) (pets.Pet, error)
}

type Service struct {
	repo Repository
	pets Pets
	now  func() time.Time
}

func NewService(repo Repository, p Pets, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo: repo,
		pets: p,
		now:  now,
	}
}

type NoteInput struct {
	PetID     string   `json:"pet_id" validate:"notblank"`
	Note      string   `json:"note" validate:"notblank"`
	FlagType  FlagType `json:"flag_type"`
	Severity  Severity `json:"severity" validate:"omitempty,oneof=low medium high"`
	CreatedBy *string  `json:"created_by"`
}

func (s *Service) AddNote(ctx context.Context, in NoteInput) (Note, error) {
	if err := validation.Struct(in); err != nil {
		return Note{}, err
	}
	if _, err := s.pets.Get(ctx, in.PetID); err != nil {
		return Note{}, err
	}

	n := Note{
		ID:        uuid.NewString(),
		PetID:     strings.TrimSpace(in.PetID),
		Note:      strings.TrimSpace(in.Note),
		FlagType:  FlagType(strings.TrimSpace(string(in.FlagType))),
		Severity:  in.Severity,
		CreatedBy: optional(in.CreatedBy),
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.CreateNote(ctx, n); err != nil {
		return Note{}, err
	}
	return s.repo.GetNote(ctx, n.ID)
}

func (s *Service) ListNotes(ctx context.Context, petID string) ([]Note, error) {
	if _, err := s.pets.Get(ctx, petID); err != nil {
		return nil, err
	}
	return s.repo.ListNotes(ctx, strings.TrimSpace(petID))
}

type LogInput struct {
	PetID        string       `json:"pet_id" validate:"notblank"`
	ActivityType ActivityType `json:"activity_type" validate:"notblank"`
	Details      string       `json:"details"`
	BookingID    *string      `json:"booking_id"`
	LoggedBy     *string      `json:"logged_by"`
}

func (s *Service) LogActivity(ctx context.Context, in LogInput) (Log, error) {
	if err := validation.Struct(in); err != nil {
		return Log{}, err
	}
	if _, err := s.pets.Get(ctx, in.PetID); err != nil {
		return Log{}, err
	}

	l := Log{
		ID:           uuid.NewString(),
		PetID:        strings.TrimSpace(in.PetID),
		BookingID:    optional(in.BookingID),
		ActivityType: ActivityType(strings.ToLower(strings.TrimSpace(string(in.ActivityType)))),
		Details:      strings.TrimSpace(in.Details),
		LoggedBy:     optional(in.LoggedBy),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.CreateLog(ctx, l); err != nil {
		return Log{}, err
	}
	got, err := s.repo.GetLog(ctx, l.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Log{}, apperr.NotFound("Activity log")
		}
		return Log{}, err
	}
	return got, nil
}

func (s *Service) ListLogs(ctx context.Context, petID string, filter ListFilter) ([]Log, error) {
	if _, err := s.pets.Get(ctx, petID); err != nil {
		return nil, err
	}
	filter.Limit = filter.NormalizedLimit()
	return s.repo.ListLogs(ctx, strings.TrimSpace(petID), filter)
}

func optional(v *string) *string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}
