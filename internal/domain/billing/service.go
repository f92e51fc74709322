package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"doggy-daycare/internal/platform/apperr"
	"doggy-daycare/internal/platform/dates"
	"doggy-daycare/internal/platform/logger"
	"doggy-daycare/internal/platform/money"
	"doggy-daycare/internal/platform/validation"
	"doggy-daycare/internal/ports/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MethodDeposit    = "deposit"
	DepositReference = "booking-deposit"
)

type Service struct {
	repo Repository
	tx   storage.TxManager
	log  logger.Logger
	now  func() time.Time
}

func NewService(repo Repository, tx storage.TxManager, log logger.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo: repo,
		tx:   tx,
		log:  log,
		now:  now,
	}
}

type IssueInput struct {
	BookingID *string
	ClientID  string
	IssueDate time.Time
	Lines     []Line
	Deposit   decimal.Decimal
}

// Issue emite una factura (status issued, vence a los 7 días) y registra
// el depósito como pago si es distinto de cero.
func (s *Service) Issue(ctx context.Context, in IssueInput) (Invoice, error) {
	if strings.TrimSpace(in.ClientID) == "" {
		return Invoice{}, apperr.FieldValidation("client_id", "client_id is required")
	}
	if in.Deposit.IsNegative() {
		return Invoice{}, apperr.FieldValidation("deposit_amount", "deposit_amount must be at least 0")
	}

	var out Invoice
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		issue := dates.Day(in.IssueDate)
		number, err := s.nextNumber(ctx, issue)
		if err != nil {
			return err
		}

		totals := ComputeTotals(in.Lines)
		inv := Invoice{
			ID:         uuid.NewString(),
			BookingID:  in.BookingID,
			ClientID:   strings.TrimSpace(in.ClientID),
			Number:     number,
			IssueDate:  issue,
			DueDate:    issue.AddDate(0, 0, DueDays),
			Status:     StatusIssued,
			Subtotal:   totals.Subtotal,
			GSTAmount:  totals.GST,
			Total:      totals.Total,
			BalanceDue: totals.Total,
			Attributes: map[string]string{},
			CreatedAt:  s.now().UTC(),
		}
		inv.LineItems = make([]LineItem, 0, len(in.Lines))
		for _, l := range in.Lines {
			inv.LineItems = append(inv.LineItems, lineItem(inv.ID, uuid.NewString(), l))
		}

		if err := s.repo.Create(ctx, inv); err != nil {
			return err
		}

		if !in.Deposit.IsZero() {
			if _, err := s.recordPayment(ctx, PaymentInput{
				InvoiceID:   inv.ID,
				Amount:      in.Deposit,
				Method:      MethodDeposit,
				PaymentDate: issue,
				Reference:   DepositReference,
			}); err != nil {
				return err
			}
		}

		out, err = s.Get(ctx, inv.ID)
		return err
	})
	if err != nil {
		return Invoice{}, err
	}

	s.log.Info("invoice issued", map[string]any{
		"invoice_id": out.ID,
		"number":     out.Number,
		"total":      out.Total.StringFixed(2),
	})
	return out, nil
}

// nextNumber: INV-<año>-<secuencia de 5 dígitos>, secuencia por año.
func (s *Service) nextNumber(ctx context.Context, issue time.Time) (string, error) {
	seq, err := s.repo.NextSequence(ctx, fmt.Sprintf("invoice_%d", issue.Year()))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%d-%05d", issue.Year(), seq), nil
}

func (s *Service) Get(ctx context.Context, id string) (Invoice, error) {
	inv, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Invoice{}, apperr.NotFound("Invoice")
		}
		return Invoice{}, err
	}
	return inv, nil
}

// GetByBooking devuelve nil si la reserva no tiene factura.
func (s *Service) GetByBooking(ctx context.Context, bookingID string) (*Invoice, error) {
	inv, err := s.repo.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Invoice, error) {
	filter.ClientID = strings.TrimSpace(filter.ClientID)
	return s.repo.List(ctx, filter)
}

type PaymentInput struct {
	InvoiceID   string            `json:"invoice_id" validate:"notblank"`
	Amount      decimal.Decimal   `json:"amount"`
	Method      string            `json:"method" validate:"notblank"`
	PaymentDate time.Time         `json:"-" validate:"required"`
	Reference   string            `json:"reference"`
	Attributes  map[string]string `json:"attributes"`
}

// RecordPayment descuenta el pago del saldo. El saldo puede quedar negativo;
// con saldo <= 0 la factura pasa a paid.
func (s *Service) RecordPayment(ctx context.Context, in PaymentInput) (Invoice, error) {
	if err := validation.Struct(in); err != nil {
		return Invoice{}, err
	}
	if !in.Amount.IsPositive() {
		return Invoice{}, apperr.FieldValidation("amount", "amount must be greater than 0")
	}

	var out Invoice
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		out, err = s.recordPayment(ctx, in)
		return err
	})
	if err != nil {
		return Invoice{}, err
	}

	s.log.Info("payment recorded", map[string]any{
		"invoice_id":  out.ID,
		"amount":      in.Amount.StringFixed(2),
		"method":      in.Method,
		"balance_due": out.BalanceDue.StringFixed(2),
		"status":      string(out.Status),
	})
	return out, nil
}

func (s *Service) recordPayment(ctx context.Context, in PaymentInput) (Invoice, error) {
	inv, err := s.Get(ctx, in.InvoiceID)
	if err != nil {
		return Invoice{}, err
	}

	attrs := make(map[string]string, len(in.Attributes))
	for k, v := range in.Attributes {
		attrs[k] = v
	}
	p := Payment{
		ID:          uuid.NewString(),
		InvoiceID:   inv.ID,
		Amount:      money.Round2(in.Amount),
		Method:      strings.TrimSpace(in.Method),
		PaymentDate: dates.Day(in.PaymentDate),
		Reference:   strings.TrimSpace(in.Reference),
		Attributes:  attrs,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.CreatePayment(ctx, p); err != nil {
		return Invoice{}, err
	}

	inv.BalanceDue, inv.Status = applyPayment(inv.BalanceDue, inv.Status, p.Amount)
	if err := s.repo.UpdateBalance(ctx, inv.ID, inv.BalanceDue, inv.Status); err != nil {
		return Invoice{}, err
	}
	return s.Get(ctx, inv.ID)
}

func applyPayment(balance decimal.Decimal, status Status, amount decimal.Decimal) (decimal.Decimal, Status) {
	next := money.Round2(balance.Sub(amount))
	if !next.IsPositive() {
		return next, StatusPaid
	}
	return next, status
}
