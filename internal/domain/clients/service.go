package clients

import (
	"context"
	"errors"
	"strings"
	"time"

	"doggy-daycare/internal/platform/apperr"
	"doggy-daycare/internal/platform/dates"
	"doggy-daycare/internal/platform/validation"
	"doggy-daycare/internal/ports/storage"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo: repo,
		now:  now,
	}
}

type RegisterInput struct {
	FirstName string `json:"first_name" validate:"notblank"`
	LastName  string `json:"last_name" validate:"notblank"`
	Phone     string `json:"phone" validate:"notblank"`
	Email     string `json:"email" validate:"required,email"`

	Address               string  `json:"address"`
	Suburb                string  `json:"suburb"`
	State                 string  `json:"state"`
	Postcode              string  `json:"postcode"`
	EmergencyContactName  string  `json:"emergency_contact_name"`
	EmergencyContactPhone string  `json:"emergency_contact_phone"`
	MarketingOptIn        bool    `json:"marketing_opt_in"`
	Notes                 string  `json:"notes"`
	UserID                *string `json:"user_id"`
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (Client, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.Struct(in); err != nil {
		return Client{}, err
	}

	var userID *string
	if in.UserID != nil && strings.TrimSpace(*in.UserID) != "" {
		v := strings.TrimSpace(*in.UserID)
		userID = &v
	}

	c := Client{
		ID:                    uuid.NewString(),
		UserID:                userID,
		FirstName:             strings.TrimSpace(in.FirstName),
		LastName:              strings.TrimSpace(in.LastName),
		Phone:                 strings.TrimSpace(in.Phone),
		Email:                 in.Email,
		Address:               strings.TrimSpace(in.Address),
		Suburb:                strings.TrimSpace(in.Suburb),
		State:                 strings.TrimSpace(in.State),
		Postcode:              strings.TrimSpace(in.Postcode),
		EmergencyContactName:  strings.TrimSpace(in.EmergencyContactName),
		EmergencyContactPhone: strings.TrimSpace(in.EmergencyContactPhone),
		MarketingOptIn:        in.MarketingOptIn,
		Notes:                 strings.TrimSpace(in.Notes),
		CreatedAt:             s.now().UTC(),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return Client{}, err
	}
	return s.Get(ctx, c.ID)
}

func (s *Service) Get(ctx context.Context, id string) (Client, error) {
	c, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Client{}, apperr.NotFound("Client")
		}
		return Client{}, err
	}
	return c, nil
}

func (s *Service) List(ctx context.Context) ([]Client, error) {
	return s.repo.List(ctx)
}

// CountNewOn cuenta altas del día (dashboard).
func (s *Service) CountNewOn(ctx context.Context, day time.Time) (int, error) {
	return s.repo.CountCreatedOn(ctx, dates.Day(day))
}
