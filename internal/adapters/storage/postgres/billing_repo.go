package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"doggy-daycare/internal/domain/billing"

	"github.com/shopspring/decimal"
)

type billingRepo struct {
	s *Store
}

const invoiceColumns = `
	i.id, i.booking_id, i.client_id, i.invoice_number, i.issue_date, i.due_date, i.status,
	i.subtotal, i.gst_amount, i.total, i.balance_due, i.attributes, i.created_at`

// scanInvoice lee invoiceColumns más las columnas extra que pida el caller.
func scanInvoice(row rowScanner, extra ...any) (billing.Invoice, error) {
	var inv billing.Invoice
	var status string
	var a jsonMap
	dest := []any{
		&inv.ID, &inv.BookingID, &inv.ClientID, &inv.Number, &inv.IssueDate, &inv.DueDate, &status,
		&inv.Subtotal, &inv.GSTAmount, &inv.Total, &inv.BalanceDue, &a, &inv.CreatedAt,
	}
	err := row.Scan(append(dest, extra...)...)
	inv.Status = billing.Status(status)
	inv.IssueDate, inv.DueDate = inv.IssueDate.UTC(), inv.DueDate.UTC()
	inv.Attributes = a
	return inv, err
}

// Create inserta la factura y sus líneas. Número repetido => storage.ErrConflict.
func (r *billingRepo) Create(ctx context.Context, inv billing.Invoice) error {
	return r.s.WithinTx(ctx, func(ctx context.Context) error {
		q := r.s.q(ctx)
		if err := exec(ctx, q, `
			INSERT INTO invoices (
				id, booking_id, client_id, invoice_number, issue_date, due_date, status,
				subtotal, gst_amount, total, balance_due, attributes, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		`,
			inv.ID, inv.BookingID, inv.ClientID, inv.Number, inv.IssueDate, inv.DueDate, string(inv.Status),
			inv.Subtotal, inv.GSTAmount, inv.Total, inv.BalanceDue, attrs(inv.Attributes), inv.CreatedAt,
		); err != nil {
			return err
		}
		for _, li := range inv.LineItems {
			if err := exec(ctx, q, `
				INSERT INTO invoice_line_items (id, invoice_id, description, quantity, unit_price, gst_rate, total)
				VALUES ($1,$2,$3,$4,$5,$6,$7)
			`, li.ID, inv.ID, li.Description, li.Quantity, li.UnitPrice, li.GSTRate, li.Total); err != nil {
				return err
			}
		}
		return nil
	})
}

// full completa líneas y pagos en orden de alta.
func (r *billingRepo) full(ctx context.Context, inv billing.Invoice) (billing.Invoice, error) {
	q := r.s.q(ctx)

	rows, err := q.QueryContext(ctx, `
		SELECT id, invoice_id, description, quantity, unit_price, gst_rate, total
		FROM invoice_line_items
		WHERE invoice_id = $1
		ORDER BY seq
	`, inv.ID)
	lines, err := collect(rows, err, func(row rowScanner) (billing.LineItem, error) {
		var li billing.LineItem
		err := row.Scan(&li.ID, &li.InvoiceID, &li.Description, &li.Quantity, &li.UnitPrice, &li.GSTRate, &li.Total)
		return li, err
	})
	if err != nil {
		return billing.Invoice{}, err
	}

	rows, err = q.QueryContext(ctx, `
		SELECT id, invoice_id, amount, method, payment_date, reference, attributes, created_at
		FROM payments
		WHERE invoice_id = $1
		ORDER BY seq
	`, inv.ID)
	payments, err := collect(rows, err, func(row rowScanner) (billing.Payment, error) {
		var p billing.Payment
		var a jsonMap
		err := row.Scan(&p.ID, &p.InvoiceID, &p.Amount, &p.Method, &p.PaymentDate, &p.Reference, &a, &p.CreatedAt)
		p.PaymentDate = p.PaymentDate.UTC()
		p.Attributes = a
		return p, err
	})
	if err != nil {
		return billing.Invoice{}, err
	}

	inv.LineItems, inv.Payments = lines, payments
	return inv, nil
}

func (r *billingRepo) getWhere(ctx context.Context, where string, arg any) (billing.Invoice, error) {
	row := r.s.q(ctx).QueryRowContext(ctx, `SELECT `+invoiceColumns+` FROM invoices i WHERE `+where+` ORDER BY i.seq LIMIT 1`, arg)
	inv, err := scanInvoice(row)
	if err != nil {
		return billing.Invoice{}, mapErr(err)
	}
	return r.full(ctx, inv)
}

func (r *billingRepo) GetByID(ctx context.Context, id string) (billing.Invoice, error) {
	return r.getWhere(ctx, "i.id = $1", id)
}

func (r *billingRepo) GetByBookingID(ctx context.Context, bookingID string) (billing.Invoice, error) {
	return r.getWhere(ctx, "i.booking_id = $1", bookingID)
}

func (r *billingRepo) List(ctx context.Context, filter billing.ListFilter) ([]billing.Invoice, error) {
	statuses := make([]string, 0, len(filter.Statuses))
	for _, st := range filter.Statuses {
		statuses = append(statuses, string(st))
	}
	rows, err := r.s.q(ctx).QueryContext(ctx, `
		SELECT `+invoiceColumns+`, b.start_time, b.location_id
		FROM invoices i
		LEFT JOIN bookings b ON b.id = i.booking_id
		WHERE ($1 = '' OR i.client_id = $1)
		  AND (cardinality($2::text[]) = 0 OR i.status = ANY($2))
		ORDER BY i.issue_date DESC, i.seq DESC
	`, filter.ClientID, statuses)
	return collect(rows, err, func(row rowScanner) (billing.Invoice, error) {
		var start sql.NullTime
		var loc sql.NullString
		inv, err := scanInvoice(row, &start, &loc)
		inv.BookingStart = nullTime(start)
		if loc.Valid {
			inv.LocationID = &loc.String
		}
		return inv, err
	})
}

func (r *billingRepo) UpdateBalance(ctx context.Context, id string, balance decimal.Decimal, status billing.Status) error {
	return mustAffect(r.s.q(ctx).ExecContext(ctx, `
		UPDATE invoices SET balance_due = $2, status = $3 WHERE id = $1
	`, id, balance, string(status)))
}

// CreatePayment: factura inexistente => storage.ErrNotFound (FK).
func (r *billingRepo) CreatePayment(ctx context.Context, p billing.Payment) error {
	return exec(ctx, r.s.q(ctx), `
		INSERT INTO payments (id, invoice_id, amount, method, payment_date, reference, attributes, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, p.ID, p.InvoiceID, p.Amount, p.Method, p.PaymentDate, p.Reference, attrs(p.Attributes), p.CreatedAt)
}

func (r *billingRepo) NextSequence(ctx context.Context, name string) (int, error) {
	var n int
	err := r.s.q(ctx).QueryRowContext(ctx, `
		INSERT INTO metadata (key, value) VALUES ($1, 1)
		ON CONFLICT (key) DO UPDATE SET value = metadata.value + 1
		RETURNING value
	`, fmt.Sprintf("seq_%s", name)).Scan(&n)
	return n, mapErr(err)
}
