package reports

import (
	"context"
	"io"
	"strings"
	"time"

	"doggy-daycare/internal/domain/billing"
	"doggy-daycare/internal/domain/bookings"
	"doggy-daycare/internal/domain/catalog"
	"doggy-daycare/internal/domain/clients"
	"doggy-daycare/internal/domain/crm"
	"doggy-daycare/internal/domain/locations"
	"doggy-daycare/internal/platform/apperr"
	"doggy-daycare/internal/platform/dates"
	"doggy-daycare/internal/platform/logger"
	"doggy-daycare/internal/platform/money"
)

const (
	recentMessagesLimit = 5
	recentMessagesDays  = 7
)

type Locations interface {
	Get(ctx context.Context, id string) (locations.Location, error)
}

type Bookings interface {
	List(ctx context.Context, locationID string, day time.Time) ([]bookings.View, error)
	ListWaitlist(ctx context.Context, locationID string, day time.Time) ([]bookings.WaitlistEntry, error)
}

type Clients interface {
	Get(ctx context.Context, id string) (clients.Client, error)
	CountNewOn(ctx context.Context, day time.Time) (int, error)
}

type Messages interface {
	RecentMessages(ctx context.Context, since time.Time, limit int) ([]crm.Message, error)
}

type Invoices interface {
	Get(ctx context.Context, id string) (billing.Invoice, error)
}

type Packages interface {
	ListClientPackages(ctx context.Context, clientID string) ([]catalog.ClientPackage, error)
}

// AccountingSink publica el export en un sistema contable externo.
type AccountingSink interface {
	PushInvoice(ctx context.Context, inv XeroInvoice) error
}

// SpreadsheetWriter serializa reportes como planilla.
type SpreadsheetWriter interface {
	WriteOccupancy(w io.Writer, locationName string, rows []OccupancyRow) error
	WriteRevenue(w io.Writer, r Revenue) error
}

type Deps struct {
	Locations Locations
	Bookings  Bookings
	Clients   Clients
	Messages  Messages
	Invoices  Invoices
	Packages  Packages
	// Accounting nil => SyncToAccounting no está disponible.
	Accounting AccountingSink
}

type Service struct {
	repo Repository
	deps Deps
	log  logger.Logger
	now  func() time.Time
}

func NewService(repo Repository, deps Deps, log logger.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo: repo,
		deps: deps,
		log:  log,
		now:  now,
	}
}

// LocationDashboard arma la foto del día. day nil => hoy en la zona de la sede.
func (s *Service) LocationDashboard(ctx context.Context, locationID string, day *time.Time) (Dashboard, error) {
	loc, err := s.deps.Locations.Get(ctx, locationID)
	if err != nil {
		return Dashboard{}, err
	}
	target := dates.LocalDay(s.now(), loc.Timezone)
	if day != nil {
		target = dates.Day(*day)
	}

	todays, err := s.deps.Bookings.List(ctx, loc.ID, target)
	if err != nil {
		return Dashboard{}, err
	}
	waitlist, err := s.deps.Bookings.ListWaitlist(ctx, loc.ID, target)
	if err != nil {
		return Dashboard{}, err
	}
	outstanding, err := s.repo.OutstandingTotal(ctx, loc.ID)
	if err != nil {
		return Dashboard{}, err
	}
	newClients, err := s.deps.Clients.CountNewOn(ctx, target)
	if err != nil {
		return Dashboard{}, err
	}
	messages, err := s.deps.Messages.RecentMessages(ctx, target.AddDate(0, 0, -recentMessagesDays), recentMessagesLimit)
	if err != nil {
		return Dashboard{}, err
	}

	occupancy := bookings.PetsBooked(todays)
	return Dashboard{
		Location:           loc,
		Date:               target.Format(dates.DayLayout),
		Bookings:           todays,
		Waitlist:           waitlist,
		Occupancy:          occupancy,
		Capacity:           loc.Capacity,
		Available:          max(loc.Capacity-occupancy, 0),
		OutstandingBalance: money.Round2(outstanding),
		NewClientsToday:    newClients,
		RecentMessages:     messages,
	}, nil
}

// OccupancyReport: mascotas por día entre from y to inclusive.
func (s *Service) OccupancyReport(ctx context.Context, locationID string, from, to time.Time) ([]OccupancyRow, error) {
	start, end, err := dayRange(from, to)
	if err != nil {
		return nil, err
	}
	if _, err := s.deps.Locations.Get(ctx, locationID); err != nil {
		return nil, err
	}
	return s.repo.OccupancyByDate(ctx, strings.TrimSpace(locationID), start, end)
}

// RevenueReport: facturado por fecha de emisión y cobrado por medio de pago.
func (s *Service) RevenueReport(ctx context.Context, from, to time.Time, locationID *string) (Revenue, error) {
	start, end, err := dayRange(from, to)
	if err != nil {
		return Revenue{}, err
	}
	totals, err := s.repo.RevenueTotals(ctx, start, end, locationID)
	if err != nil {
		return Revenue{}, err
	}
	payments, err := s.repo.PaymentsByMethod(ctx, start, end)
	if err != nil {
		return Revenue{}, err
	}
	return Revenue{
		From:         start,
		To:           dates.Day(to),
		LocationID:   locationID,
		Revenue:      money.Round2(totals.Revenue),
		GSTCollected: money.Round2(totals.GSTCollected),
		Payments:     payments,
	}, nil
}

func (s *Service) OutstandingBalances(ctx context.Context) ([]billing.Invoice, error) {
	return s.repo.OutstandingInvoices(ctx)
}

// PackageUsageReport lista los pases del cliente y sus créditos disponibles.
func (s *Service) PackageUsageReport(ctx context.Context, clientID string) (PackageUsage, error) {
	pkgs, err := s.deps.Packages.ListClientPackages(ctx, clientID)
	if err != nil {
		return PackageUsage{}, err
	}
	total := 0
	for _, p := range pkgs {
		total += p.RemainingCredits
	}
	return PackageUsage{
		ClientID:       strings.TrimSpace(clientID),
		Packages:       pkgs,
		TotalAvailable: total,
	}, nil
}

// ExportForXero arma el payload ACCREC de la factura. El impuesto por línea
// usa la tasa de la línea (0 para líneas exentas).
func (s *Service) ExportForXero(ctx context.Context, invoiceID string) (XeroInvoice, error) {
	inv, err := s.deps.Invoices.Get(ctx, invoiceID)
	if err != nil {
		return XeroInvoice{}, err
	}
	contact, err := s.deps.Clients.Get(ctx, inv.ClientID)
	if err != nil {
		return XeroInvoice{}, err
	}

	items := make([]XeroLineItem, 0, len(inv.LineItems))
	for _, li := range inv.LineItems {
		items = append(items, XeroLineItem{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitAmount:  li.UnitPrice,
			TaxAmount:   money.Round2(li.Total.Mul(li.GSTRate)),
		})
	}
	return XeroInvoice{
		Type:          XeroTypeReceivable,
		InvoiceNumber: inv.Number,
		Contact: XeroContact{
			Name:         contact.FullName(),
			EmailAddress: contact.Email,
		},
		Date:            inv.IssueDate.Format(dates.DayLayout),
		DueDate:         inv.DueDate.Format(dates.DayLayout),
		LineAmountTypes: XeroAmountsInclusive,
		LineItems:       items,
		AmountDue:       inv.BalanceDue,
	}, nil
}

// SyncToAccounting exporta la factura y la publica en el sistema contable.
func (s *Service) SyncToAccounting(ctx context.Context, invoiceID string) (XeroInvoice, error) {
	if s.deps.Accounting == nil {
		return XeroInvoice{}, apperr.Validation("Accounting integration is not configured")
	}
	payload, err := s.ExportForXero(ctx, invoiceID)
	if err != nil {
		return XeroInvoice{}, err
	}
	if err := s.deps.Accounting.PushInvoice(ctx, payload); err != nil {
		s.log.Error("accounting push failed", map[string]any{
			"invoice_id": invoiceID,
			"err":        err,
		})
		return XeroInvoice{}, err
	}
	s.log.Info("invoice pushed to accounting", map[string]any{
		"invoice_id": invoiceID,
		"number":     payload.InvoiceNumber,
	})
	return payload, nil
}

// dayRange convierte [from, to] en días a un rango semiabierto.
func dayRange(from, to time.Time) (time.Time, time.Time, error) {
	start, end := dates.Day(from), dates.Day(to)
	if end.Before(start) {
		return time.Time{}, time.Time{}, apperr.FieldValidation("end_date", "end_date must not be before start_date")
	}
	return start, end.AddDate(0, 0, 1), nil
}
