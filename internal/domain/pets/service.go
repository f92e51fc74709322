package pets

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

// Clients es lo único que pets necesita del módulo de clientes.
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

type AddInput struct {
	ClientID            string     `json:"client_id" validate:"notblank"`
	Name                string     `json:"name" validate:"notblank"`
	Breed               string     `json:"breed"`
	BirthDate           *time.Time `json:"-"`
	Gender              Gender     `json:"gender" validate:"omitempty,oneof=male female unknown"`
	Colour              string     `json:"colour"`
	MedicalNotes        string     `json:"medical_notes"`
	FeedingInstructions string     `json:"feeding_instructions"`
	BehaviourFlags      string     `json:"behaviour_flags"`
	Allergies           string     `json:"allergies"`
	PhotoURL            string     `json:"photo_url"`
}

func (s *Service) Add(ctx context.Context, in AddInput) (Pet, error) {
	if err := validation.Struct(in); err != nil {
		return Pet{}, err
	}
	if _, err := s.clients.Get(ctx, in.ClientID); err != nil {
		return Pet{}, err
	}

	var bd *time.Time
	if in.BirthDate != nil {
		d := dates.Day(*in.BirthDate)
		bd = &d
	}
	gender := in.Gender
	if gender == "" {
		gender = GenderUnknown
	}

	p := Pet{
		ID:                  uuid.NewString(),
		ClientID:            strings.TrimSpace(in.ClientID),
		Name:                strings.TrimSpace(in.Name),
		Breed:               strings.TrimSpace(in.Breed),
		BirthDate:           bd,
		Gender:              gender,
		Colour:              strings.TrimSpace(in.Colour),
		MedicalNotes:        strings.TrimSpace(in.MedicalNotes),
		FeedingInstructions: strings.TrimSpace(in.FeedingInstructions),
		BehaviourFlags:      strings.TrimSpace(in.BehaviourFlags),
		Allergies:           strings.TrimSpace(in.Allergies),
		PhotoURL:            strings.TrimSpace(in.PhotoURL),
		CreatedAt:           s.now().UTC(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return s.Get(ctx, p.ID)
}

func (s *Service) Get(ctx context.Context, id string) (Pet, error) {
	p, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Pet{}, apperr.NotFound("Pet")
		}
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Pet, error) {
	filter.ClientID = strings.TrimSpace(filter.ClientID)
	return s.repo.List(ctx, filter)
}

// Archive marca la mascota como archivada (idempotente).
func (s *Service) Archive(ctx context.Context, id string) (Pet, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	if p.Archived {
		return p, nil
	}
	p.Archived = true
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return s.Get(ctx, p.ID)
}

type VaccinationInput struct {
	PetID       string    `json:"pet_id" validate:"notblank"`
	VaccineName string    `json:"vaccine_name" validate:"notblank"`
	ExpiryDate  time.Time `json:"-" validate:"required"`
	DocumentURL string    `json:"document_url"`
	Notes       string    `json:"notes"`
}

func (s *Service) RecordVaccination(ctx context.Context, in VaccinationInput) (Vaccination, error) {
	if err := validation.Struct(in); err != nil {
		return Vaccination{}, err
	}
	if _, err := s.Get(ctx, in.PetID); err != nil {
		return Vaccination{}, err
	}

	v := Vaccination{
		ID:          uuid.NewString(),
		PetID:       strings.TrimSpace(in.PetID),
		VaccineName: strings.TrimSpace(in.VaccineName),
		ExpiryDate:  dates.Day(in.ExpiryDate),
		DocumentURL: strings.TrimSpace(in.DocumentURL),
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.CreateVaccination(ctx, v); err != nil {
		return Vaccination{}, err
	}
	return s.GetVaccination(ctx, v.ID)
}

func (s *Service) GetVaccination(ctx context.Context, id string) (Vaccination, error) {
	v, err := s.repo.GetVaccination(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Vaccination{}, apperr.NotFound("Vaccination record")
		}
		return Vaccination{}, err
	}
	return v, nil
}

func (s *Service) ListVaccinations(ctx context.Context, petID string) ([]Vaccination, error) {
	if _, err := s.Get(ctx, petID); err != nil {
		return nil, err
	}
	return s.repo.ListVaccinations(ctx, strings.TrimSpace(petID))
}

// CheckVaccinated exige que el último vencimiento no sea anterior a at.
// El vencimiento cuenta desde la medianoche de su fecha.
func (s *Service) CheckVaccinated(ctx context.Context, petID string, at time.Time) error {
	expiry, err := s.repo.LatestExpiry(ctx, strings.TrimSpace(petID))
	if err != nil {
		return err
	}
	if expiry == nil {
		return apperr.Validation("Pet is missing vaccination records")
	}
	if expiry.Before(at) {
		return apperr.Validation("Pet has expired vaccinations")
	}
	return nil
}
