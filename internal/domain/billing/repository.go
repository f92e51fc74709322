package billing

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	// Create persiste la factura junto con sus líneas.
	Create(ctx context.Context, inv Invoice) error
	// GetByID devuelve la factura con líneas y pagos.
	GetByID(ctx context.Context, id string) (Invoice, error)
	GetByBookingID(ctx context.Context, bookingID string) (Invoice, error)
	// List: emisión más reciente primero, con datos de la reserva.
	List(ctx context.Context, filter ListFilter) ([]Invoice, error)
	UpdateBalance(ctx context.Context, id string, balance decimal.Decimal, status Status) error

	CreatePayment(ctx context.Context, p Payment) error

	// NextSequence incrementa y devuelve el contador metadata "seq_<name>".
	NextSequence(ctx context.Context, name string) (int, error)
}

type ListFilter struct {
	ClientID string
	Statuses []Status
}
