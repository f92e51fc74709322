package memory

import (
	"context"
	"sort"
	"time"

	"doggy-daycare/internal/domain/billing"
	"doggy-daycare/internal/domain/reports"
	"doggy-daycare/internal/platform/dates"

	"github.com/shopspring/decimal"
)

type reportRepo struct {
	s *Store
}

func within(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

func (r *reportRepo) OccupancyByDate(ctx context.Context, locationID string, from, to time.Time) ([]reports.OccupancyRow, error) {
	defer r.s.lock(ctx)()

	perDay := map[time.Time]int{}
	for _, bp := range r.s.t.bookingPets {
		b, ok := r.s.t.bookings.get(bp.val.BookingID)
		if !ok || b.LocationID != locationID || !within(b.StartTime, from, to) {
			continue
		}
		perDay[dates.Day(b.StartTime)]++
	}

	out := make([]reports.OccupancyRow, 0, len(perDay))
	for d, n := range perDay {
		out = append(out, reports.OccupancyRow{ServiceDate: d, Pets: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ServiceDate.Before(out[j].ServiceDate) })
	return out, nil
}

func (r *reportRepo) RevenueTotals(ctx context.Context, from, to time.Time, locationID *string) (reports.RevenueTotals, error) {
	defer r.s.lock(ctx)()

	totals := reports.RevenueTotals{Revenue: decimal.Zero, GSTCollected: decimal.Zero}
	for _, e := range r.s.t.invoices {
		inv := e.val
		if !within(inv.IssueDate, from, to) {
			continue
		}
		if locationID != nil {
			if inv.BookingID == nil {
				continue
			}
			b, ok := r.s.t.bookings.get(*inv.BookingID)
			if !ok || b.LocationID != *locationID {
				continue
			}
		}
		totals.Revenue = totals.Revenue.Add(inv.Total)
		totals.GSTCollected = totals.GSTCollected.Add(inv.GSTAmount)
	}
	return totals, nil
}

func (r *reportRepo) PaymentsByMethod(ctx context.Context, from, to time.Time) ([]reports.MethodTotal, error) {
	defer r.s.lock(ctx)()

	perMethod := map[string]decimal.Decimal{}
	for _, e := range r.s.t.payments {
		if within(e.val.PaymentDate, from, to) {
			perMethod[e.val.Method] = perMethod[e.val.Method].Add(e.val.Amount)
		}
	}

	out := make([]reports.MethodTotal, 0, len(perMethod))
	for m, total := range perMethod {
		out = append(out, reports.MethodTotal{Method: m, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Method < out[j].Method })
	return out, nil
}

func (r *reportRepo) OutstandingInvoices(ctx context.Context) ([]billing.Invoice, error) {
	defer r.s.lock(ctx)()

	out := make([]billing.Invoice, 0)
	for _, inv := range r.s.t.invoices.rows() {
		if inv.BalanceDue.IsPositive() {
			out = append(out, inv)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].IssueDate.Before(out[j].IssueDate) })
	return out, nil
}

func (r *reportRepo) OutstandingTotal(ctx context.Context, locationID string) (decimal.Decimal, error) {
	defer r.s.lock(ctx)()

	total := decimal.Zero
	for _, e := range r.s.t.invoices {
		inv := e.val
		if inv.Status == billing.StatusPaid {
			continue
		}
		if inv.BookingID != nil {
			b, ok := r.s.t.bookings.get(*inv.BookingID)
			if ok && b.LocationID != locationID {
				continue
			}
		}
		total = total.Add(inv.BalanceDue)
	}
	return total, nil
}
