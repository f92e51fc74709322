package reports

import (
	"context"
	"time"

	"doggy-daycare/internal/domain/billing"

	"github.com/shopspring/decimal"
)

// Repository agrupa las consultas de solo lectura que cruzan módulos.
// Los rangos son semiabiertos: [from, to).
type Repository interface {
	OccupancyByDate(ctx context.Context, locationID string, from, to time.Time) ([]OccupancyRow, error)
	// RevenueTotals suma facturas por fecha de emisión; locationID filtra por la sede de la reserva.
	RevenueTotals(ctx context.Context, from, to time.Time, locationID *string) (RevenueTotals, error)
	PaymentsByMethod(ctx context.Context, from, to time.Time) ([]MethodTotal, error)
	// OutstandingInvoices: saldo > 0, por fecha de emisión.
	OutstandingInvoices(ctx context.Context) ([]billing.Invoice, error)
	// OutstandingTotal: saldo de facturas no pagadas de la sede o sin reserva.
	OutstandingTotal(ctx context.Context, locationID string) (decimal.Decimal, error)
}
