package postgres

import (
	"context"
	"time"

	"doggy-daycare/internal/domain/billing"
	"doggy-daycare/internal/domain/reports"

	"github.com/shopspring/decimal"
)

type reportRepo struct {
	s *Store
}

// OccupancyByDate agrupa por el día UTC de inicio de la reserva.
func (r *reportRepo) OccupancyByDate(ctx context.Context, locationID string, from, to time.Time) ([]reports.OccupancyRow, error) {
	rows, err := r.s.q(ctx).QueryContext(ctx, `
		SELECT (b.start_time AT TIME ZONE 'UTC')::date AS service_date, COUNT(bp.id)
		FROM booking_pets bp
		JOIN bookings b ON b.id = bp.booking_id
		WHERE b.location_id = $1 AND b.start_time >= $2 AND b.start_time < $3
		GROUP BY service_date
		ORDER BY service_date
	`, locationID, from, to)
	return collect(rows, err, func(row rowScanner) (reports.OccupancyRow, error) {
		var o reports.OccupancyRow
		err := row.Scan(&o.ServiceDate, &o.Pets)
		o.ServiceDate = o.ServiceDate.UTC()
		return o, err
	})
}

func (r *reportRepo) RevenueTotals(ctx context.Context, from, to time.Time, locationID *string) (reports.RevenueTotals, error) {
	var t reports.RevenueTotals
	err := r.s.q(ctx).QueryRowContext(ctx, `
		SELECT COALESCE(SUM(i.total), 0), COALESCE(SUM(i.gst_amount), 0)
		FROM invoices i
		LEFT JOIN bookings b ON b.id = i.booking_id
		WHERE i.issue_date >= $1 AND i.issue_date < $2
		  AND ($3::text IS NULL OR b.location_id = $3)
	`, from, to, locationID).Scan(&t.Revenue, &t.GSTCollected)
	return t, mapErr(err)
}

func (r *reportRepo) PaymentsByMethod(ctx context.Context, from, to time.Time) ([]reports.MethodTotal, error) {
	rows, err := r.s.q(ctx).QueryContext(ctx, `
		SELECT method, SUM(amount)
		FROM payments
		WHERE payment_date >= $1 AND payment_date < $2
		GROUP BY method
		ORDER BY method
	`, from, to)
	return collect(rows, err, func(row rowScanner) (reports.MethodTotal, error) {
		var m reports.MethodTotal
		err := row.Scan(&m.Method, &m.Total)
		return m, err
	})
}

func (r *reportRepo) OutstandingInvoices(ctx context.Context) ([]billing.Invoice, error) {
	rows, err := r.s.q(ctx).QueryContext(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices i
		WHERE i.balance_due > 0
		ORDER BY i.issue_date, i.seq
	`)
	return collect(rows, err, func(row rowScanner) (billing.Invoice, error) {
		return scanInvoice(row)
	})
}

// OutstandingTotal cuenta facturas sin reserva o cuya reserva ya no existe.
func (r *reportRepo) OutstandingTotal(ctx context.Context, locationID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.s.q(ctx).QueryRowContext(ctx, `
		SELECT COALESCE(SUM(i.balance_due), 0)
		FROM invoices i
		LEFT JOIN bookings b ON b.id = i.booking_id
		WHERE i.status <> $2
		  AND (b.id IS NULL OR b.location_id = $1)
	`, locationID, string(billing.StatusPaid)).Scan(&total)
	return total, mapErr(err)
}
