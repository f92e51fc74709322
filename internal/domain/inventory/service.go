package inventory

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
	tx   storage.TxManager
	now  func() time.Time
}

func NewService(repo Repository, tx storage.TxManager, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo: repo,
		tx:   tx,
		now:  now,
	}
}

type CreateInput struct {
	Name       string            `json:"name" validate:"notblank"`
	SKU        string            `json:"sku" validate:"notblank"`
	Quantity   int               `json:"quantity" validate:"gte=0"`
	UnitCost   decimal.Decimal   `json:"unit_cost"`
	UnitPrice  decimal.Decimal   `json:"unit_price"`
	Taxable    *bool             `json:"taxable"`
	Attributes map[string]string `json:"attributes"`
}

func (s *Service) CreateItem(ctx context.Context, in CreateInput) (Item, error) {
	if err := validation.Struct(in); err != nil {
		return Item{}, err
	}
	if in.UnitCost.IsNegative() || in.UnitPrice.IsNegative() {
		return Item{}, apperr.Validation("unit_cost and unit_price must be at least 0")
	}

	taxable := true
	if in.Taxable != nil {
		taxable = *in.Taxable
	}
	attrs := make(map[string]string, len(in.Attributes))
	for k, v := range in.Attributes {
		attrs[k] = v
	}

	it := Item{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(in.Name),
		SKU:        strings.TrimSpace(in.SKU),
		Quantity:   in.Quantity,
		UnitCost:   in.UnitCost.Round(2),
		UnitPrice:  in.UnitPrice.Round(2),
		Taxable:    taxable,
		Attributes: attrs,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.repo.CreateItem(ctx, it); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return Item{}, apperr.FieldValidation("sku", "SKU already exists")
		}
		return Item{}, err
	}
	return s.GetItem(ctx, it.ID)
}

func (s *Service) GetItem(ctx context.Context, id string) (Item, error) {
	it, err := s.repo.GetItem(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Item{}, apperr.NotFound("Inventory item")
		}
		return Item{}, err
	}
	return it, nil
}

func (s *Service) ListItems(ctx context.Context) ([]Item, error) {
	return s.repo.ListItems(ctx)
}

func (s *Service) ListTransactions(ctx context.Context, itemID string) ([]Transaction, error) {
	if _, err := s.GetItem(ctx, itemID); err != nil {
		return nil, err
	}
	return s.repo.ListTransactions(ctx, strings.TrimSpace(itemID))
}

type AdjustInput struct {
	ItemID           string  `json:"item_id" validate:"notblank"`
	QuantityChange   int     `json:"quantity_change"`
	Reason           string  `json:"reason" validate:"notblank"`
	StaffUserID      *string `json:"staff_user_id"`
	RelatedInvoiceID *string `json:"related_invoice_id"`
}

// Adjust aplica el cambio de stock y registra la transacción en una sola tx.
func (s *Service) Adjust(ctx context.Context, in AdjustInput) (Item, error) {
	if err := validation.Struct(in); err != nil {
		return Item{}, err
	}

	var out Item
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		it, err := s.GetItem(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if err := s.repo.AddQuantity(ctx, it.ID, in.QuantityChange); err != nil {
			if errors.Is(err, storage.ErrInsufficient) {
				return apperr.Validation("Inventory cannot be negative")
			}
			return err
		}
		if err := s.repo.CreateTransaction(ctx, Transaction{
			ID:               uuid.NewString(),
			ItemID:           it.ID,
			QuantityChange:   in.QuantityChange,
			Reason:           strings.TrimSpace(in.Reason),
			StaffUserID:      optional(in.StaffUserID),
			RelatedInvoiceID: optional(in.RelatedInvoiceID),
			CreatedAt:        s.now().UTC(),
		}); err != nil {
			return err
		}
		out, err = s.GetItem(ctx, it.ID)
		return err
	})
	if err != nil {
		return Item{}, err
	}
	return out, nil
}

func optional(v *string) *string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}
