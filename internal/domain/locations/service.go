package locations

import (
	"context"
	"errors"
	"strings"
	"time"

	"doggy-daycare/internal/platform/apperr"
	"doggy-daycare/internal/platform/validation"
	"doggy-daycare/internal/ports/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
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

type CreateInput struct {
	Name              string          `json:"name" validate:"notblank"`
	Capacity          int             `json:"capacity" validate:"gte=0"`
	BaseDaycareRate   decimal.Decimal `json:"base_daycare_rate"`
	SecondPetDiscount decimal.Decimal `json:"second_pet_discount"`
	Timezone          string          `json:"timezone"`
	Address           string          `json:"address"`
	Suburb            string          `json:"suburb"`
	State             string          `json:"state"`
	Postcode          string          `json:"postcode"`

	// nil => registrada (default).
	GSTRegistered *bool `json:"gst_registered"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Location, error) {
	if err := validation.Struct(in); err != nil {
		return Location{}, err
	}
	if in.BaseDaycareRate.IsNegative() {
		return Location{}, apperr.FieldValidation("base_daycare_rate", "base_daycare_rate must be at least 0")
	}
	if in.SecondPetDiscount.IsNegative() || in.SecondPetDiscount.GreaterThan(decimal.NewFromInt(100)) {
		return Location{}, apperr.FieldValidation("second_pet_discount", "second_pet_discount must be between 0 and 100")
	}

	tz := strings.TrimSpace(in.Timezone)
	if tz == "" {
		tz = DefaultTimezone
	}
	gst := true
	if in.GSTRegistered != nil {
		gst = *in.GSTRegistered
	}

	l := Location{
		ID:                uuid.NewString(),
		Name:              strings.TrimSpace(in.Name),
		Timezone:          tz,
		Address:           strings.TrimSpace(in.Address),
		Suburb:            strings.TrimSpace(in.Suburb),
		State:             strings.TrimSpace(in.State),
		Postcode:          strings.TrimSpace(in.Postcode),
		Capacity:          in.Capacity,
		BaseDaycareRate:   in.BaseDaycareRate.Round(2),
		SecondPetDiscount: in.SecondPetDiscount,
		GSTRegistered:     gst,
		CreatedAt:         s.now().UTC(),
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return Location{}, err
	}
	return s.Get(ctx, l.ID)
}

func (s *Service) Get(ctx context.Context, id string) (Location, error) {
	l, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Location{}, apperr.NotFound("Location")
		}
		return Location{}, err
	}
	return l, nil
}

func (s *Service) List(ctx context.Context) ([]Location, error) {
	return s.repo.List(ctx)
}
