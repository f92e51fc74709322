package catalog

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
	"github.com/shopspring/decimal"
)

type Clients interface {
	Get(ctx context.Context, id string) (clients.Client, error)
}

type Service struct {
	repo    Repository
	clients Clients
	tx      storage.TxManager
	now     func() time.Time
}

func NewService(repo Repository, cl Clients, tx storage.TxManager, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:    repo,
		clients: cl,
		tx:      tx,
		now:     now,
	}
}

// -------------------------
// Servicios (offerings)
// -------------------------

type OfferingInput struct {
	Name                   string            `json:"name" validate:"notblank"`
	Price                  decimal.Decimal   `json:"price"`
	Description            string            `json:"description"`
	DefaultDurationMinutes int               `json:"default_duration_minutes" validate:"gte=0"`
	GSTApplicable          *bool             `json:"gst_applicable"`
	LocationID             *string           `json:"location_id"`
	AllowMultiplePets      *bool             `json:"allow_multiple_pets"`
	Attributes             map[string]string `json:"attributes"`
}

func (s *Service) CreateOffering(ctx context.Context, in OfferingInput) (Offering, error) {
	if err := validation.Struct(in); err != nil {
		return Offering{}, err
	}
	if in.Price.IsNegative() {
		return Offering{}, apperr.FieldValidation("price", "price must be at least 0")
	}

	o := Offering{
		ID:                     uuid.NewString(),
		Name:                   strings.TrimSpace(in.Name),
		Description:            strings.TrimSpace(in.Description),
		DefaultDurationMinutes: in.DefaultDurationMinutes,
		Price:                  in.Price.Round(2),
		GSTApplicable:          boolOr(in.GSTApplicable, true),
		LocationID:             optional(in.LocationID),
		AllowMultiplePets:      boolOr(in.AllowMultiplePets, true),
		Attributes:             attrs(in.Attributes),
		CreatedAt:              s.now().UTC(),
	}
	if err := s.repo.CreateOffering(ctx, o); err != nil {
		return Offering{}, err
	}
	return s.GetOffering(ctx, o.ID)
}

func (s *Service) GetOffering(ctx context.Context, id string) (Offering, error) {
	o, err := s.repo.GetOffering(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Offering{}, apperr.NotFound("Service")
		}
		return Offering{}, err
	}
	return o, nil
}

func (s *Service) ListOfferings(ctx context.Context, locationID *string) ([]Offering, error) {
	return s.repo.ListOfferings(ctx, optional(locationID))
}

// -------------------------
// Paquetes
// -------------------------

type PackageInput struct {
	Name         string            `json:"name" validate:"notblank"`
	Description  string            `json:"description"`
	LocationID   *string           `json:"location_id"`
	TotalCredits int               `json:"total_credits" validate:"gt=0"`
	Price        decimal.Decimal   `json:"price"`
	GSTInclusive *bool             `json:"gst_inclusive"`
	ValidDays    *int              `json:"valid_days" validate:"omitempty,gt=0"`
	Attributes   map[string]string `json:"attributes"`
}

func (s *Service) CreatePackage(ctx context.Context, in PackageInput) (DaycarePackage, error) {
	if err := validation.Struct(in); err != nil {
		return DaycarePackage{}, err
	}
	if in.Price.IsNegative() {
		return DaycarePackage{}, apperr.FieldValidation("price", "price must be at least 0")
	}

	p := DaycarePackage{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Description:  strings.TrimSpace(in.Description),
		LocationID:   optional(in.LocationID),
		TotalCredits: in.TotalCredits,
		Price:        in.Price.Round(2),
		GSTInclusive: boolOr(in.GSTInclusive, true),
		ValidDays:    in.ValidDays,
		Attributes:   attrs(in.Attributes),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.CreatePackage(ctx, p); err != nil {
		return DaycarePackage{}, err
	}
	return s.GetPackage(ctx, p.ID)
}

func (s *Service) GetPackage(ctx context.Context, id string) (DaycarePackage, error) {
	p, err := s.repo.GetPackage(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return DaycarePackage{}, apperr.NotFound("Package")
		}
		return DaycarePackage{}, err
	}
	return p, nil
}

func (s *Service) ListPackages(ctx context.Context, locationID *string) ([]DaycarePackage, error) {
	return s.repo.ListPackages(ctx, optional(locationID))
}

type SellInput struct {
	ClientID     string            `json:"client_id" validate:"notblank"`
	PackageID    string            `json:"package_id" validate:"notblank"`
	PurchaseDate time.Time         `json:"-" validate:"required"`
	ExpiryDate   *time.Time        `json:"-"`
	Attributes   map[string]string `json:"attributes"`
}

// SellPackage acredita al cliente el total del pase. Sin vencimiento
// explícito se usa purchase_date + valid_days (si el pase lo define).
func (s *Service) SellPackage(ctx context.Context, in SellInput) (ClientPackage, error) {
	if err := validation.Struct(in); err != nil {
		return ClientPackage{}, err
	}
	if _, err := s.clients.Get(ctx, in.ClientID); err != nil {
		return ClientPackage{}, err
	}
	pkg, err := s.GetPackage(ctx, in.PackageID)
	if err != nil {
		return ClientPackage{}, err
	}

	purchase := dates.Day(in.PurchaseDate)
	var expiry *time.Time
	switch {
	case in.ExpiryDate != nil:
		d := dates.Day(*in.ExpiryDate)
		expiry = &d
	case pkg.ValidDays != nil:
		d := purchase.AddDate(0, 0, *pkg.ValidDays)
		expiry = &d
	}
	if expiry != nil && expiry.Before(purchase) {
		return ClientPackage{}, apperr.FieldValidation("expiry_date", "expiry_date must not be before purchase_date")
	}

	cp := ClientPackage{
		ID:               uuid.NewString(),
		ClientID:         strings.TrimSpace(in.ClientID),
		PackageID:        pkg.ID,
		RemainingCredits: pkg.TotalCredits,
		PurchaseDate:     purchase,
		ExpiryDate:       expiry,
		Attributes:       attrs(in.Attributes),
	}
	if err := s.repo.CreateClientPackage(ctx, cp); err != nil {
		return ClientPackage{}, err
	}
	return s.GetClientPackage(ctx, cp.ID)
}

func (s *Service) GetClientPackage(ctx context.Context, id string) (ClientPackage, error) {
	cp, err := s.repo.GetClientPackage(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ClientPackage{}, apperr.NotFound("Client package")
		}
		return ClientPackage{}, err
	}
	return cp, nil
}

func (s *Service) ListClientPackages(ctx context.Context, clientID string) ([]ClientPackage, error) {
	if _, err := s.clients.Get(ctx, clientID); err != nil {
		return nil, err
	}
	return s.repo.ListClientPackages(ctx, strings.TrimSpace(clientID))
}

// AdjustClientPackage suma delta (puede ser negativo) a los créditos.
func (s *Service) AdjustClientPackage(ctx context.Context, id string, delta int) (ClientPackage, error) {
	var out ClientPackage
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		cp, err := s.GetClientPackage(ctx, id)
		if err != nil {
			return err
		}
		if err := s.repo.AddCredits(ctx, cp.ID, delta); err != nil {
			if errors.Is(err, storage.ErrInsufficient) {
				return apperr.Validation("Package does not have enough credits")
			}
			return err
		}
		out, err = s.GetClientPackage(ctx, cp.ID)
		return err
	})
	if err != nil {
		return ClientPackage{}, err
	}
	return out, nil
}

// RedeemCredit consume un crédito del pase elegible del cliente en today
// (día calendario de la sede) y devuelve su id. Debe llamarse dentro de la
// transacción de la reserva. El descuento es condicional en el repo: si
// otra reserva vació el pase entre la lectura y la escritura, falla.
func (s *Service) RedeemCredit(ctx context.Context, clientID string, today time.Time) (string, error) {
	pkgs, err := s.repo.ListClientPackages(ctx, strings.TrimSpace(clientID))
	if err != nil {
		return "", err
	}
	chosen, err := pickRedeemable(pkgs, dates.Day(today))
	if err != nil {
		return "", err
	}
	if err := s.repo.AddCredits(ctx, chosen.ID, -1); err != nil {
		if errors.Is(err, storage.ErrInsufficient) {
			return "", apperr.Validation("Selected package has no remaining credits")
		}
		return "", err
	}
	return chosen.ID, nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func optional(v *string) *string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}

func attrs(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		if strings.TrimSpace(k) == "" {
			continue
		}
		out[k] = v
	}
	return out
}
