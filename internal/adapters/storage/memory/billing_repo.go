package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"doggy-daycare/internal/domain/billing"
	"doggy-daycare/internal/ports/storage"

	"github.com/shopspring/decimal"
)

type billingRepo struct {
	s *Store
}

func (r *billingRepo) Create(ctx context.Context, inv billing.Invoice) error {
	defer r.s.lock(ctx)()
	for _, e := range r.s.t.invoices {
		if e.val.Number == inv.Number {
			return storage.ErrConflict
		}
	}
	lines := inv.LineItems
	inv.LineItems, inv.Payments = nil, nil
	if err := insert(r.s, r.s.t.invoices, inv.ID, inv); err != nil {
		return err
	}
	for _, li := range lines {
		if err := insert(r.s, r.s.t.lineItems, li.ID, li); err != nil {
			return err
		}
	}
	return nil
}

// full completa líneas y pagos.
func (r *billingRepo) full(inv billing.Invoice) billing.Invoice {
	inv.LineItems = make([]billing.LineItem, 0)
	for _, li := range r.s.t.lineItems.rows() {
		if li.InvoiceID == inv.ID {
			inv.LineItems = append(inv.LineItems, li)
		}
	}
	inv.Payments = make([]billing.Payment, 0)
	for _, p := range r.s.t.payments.rows() {
		if p.InvoiceID == inv.ID {
			inv.Payments = append(inv.Payments, p)
		}
	}
	return inv
}

func (r *billingRepo) GetByID(ctx context.Context, id string) (billing.Invoice, error) {
	defer r.s.lock(ctx)()
	inv, ok := r.s.t.invoices.get(id)
	if !ok {
		return billing.Invoice{}, storage.ErrNotFound
	}
	return r.full(inv), nil
}

func (r *billingRepo) GetByBookingID(ctx context.Context, bookingID string) (billing.Invoice, error) {
	defer r.s.lock(ctx)()
	for _, inv := range r.s.t.invoices.rows() {
		if inv.BookingID != nil && *inv.BookingID == bookingID {
			return r.full(inv), nil
		}
	}
	return billing.Invoice{}, storage.ErrNotFound
}

func (r *billingRepo) List(ctx context.Context, filter billing.ListFilter) ([]billing.Invoice, error) {
	defer r.s.lock(ctx)()
	rows := r.s.t.invoices.rows()
	out := make([]billing.Invoice, 0)
	for i := len(rows) - 1; i >= 0; i-- {
		inv := rows[i]
		if filter.ClientID != "" && inv.ClientID != filter.ClientID {
			continue
		}
		if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, inv.Status) {
			continue
		}
		if inv.BookingID != nil {
			if b, ok := r.s.t.bookings.get(*inv.BookingID); ok {
				start, loc := b.StartTime, b.LocationID
				inv.BookingStart, inv.LocationID = &start, &loc
			}
		}
		out = append(out, inv)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].IssueDate.After(out[j].IssueDate) })
	return out, nil
}

func (r *billingRepo) UpdateBalance(ctx context.Context, id string, balance decimal.Decimal, status billing.Status) error {
	defer r.s.lock(ctx)()
	inv, ok := r.s.t.invoices.get(id)
	if !ok {
		return storage.ErrNotFound
	}
	inv.BalanceDue = balance
	inv.Status = status
	r.s.t.invoices.replace(id, inv)
	return nil
}

func (r *billingRepo) CreatePayment(ctx context.Context, p billing.Payment) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.t.invoices.get(p.InvoiceID); !ok {
		return storage.ErrNotFound
	}
	return insert(r.s, r.s.t.payments, p.ID, p)
}

func (r *billingRepo) NextSequence(ctx context.Context, name string) (int, error) {
	defer r.s.lock(ctx)()
	key := fmt.Sprintf("seq_%s", name)
	r.s.t.metadata[key]++
	return r.s.t.metadata[key], nil
}
