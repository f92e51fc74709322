// Package daycare arma el sistema completo: cada servicio de dominio
// cableado sobre un único store inyectado.
package daycare

import (
	"time"

	"doggy-daycare/internal/domain/activity"
	"doggy-daycare/internal/domain/billing"
	"doggy-daycare/internal/domain/bookings"
	"doggy-daycare/internal/domain/catalog"
	"doggy-daycare/internal/domain/clients"
	"doggy-daycare/internal/domain/crm"
	"doggy-daycare/internal/domain/documents"
	"doggy-daycare/internal/domain/inventory"
	"doggy-daycare/internal/domain/locations"
	"doggy-daycare/internal/domain/pets"
	"doggy-daycare/internal/domain/reports"
	"doggy-daycare/internal/domain/staff"
	"doggy-daycare/internal/domain/users"
	"doggy-daycare/internal/platform/logger"
	"doggy-daycare/internal/ports/storage"
)

// Store es lo que debe proveer un adapter de persistencia (memory, postgres).
type Store interface {
	storage.TxManager

	Locations() locations.Repository
	Users() users.Repository
	Clients() clients.Repository
	Pets() pets.Repository
	Activity() activity.Repository
	Catalog() catalog.Repository
	Inventory() inventory.Repository
	Bookings() bookings.Repository
	Billing() billing.Repository
	CRM() crm.Repository
	Documents() documents.Repository
	Staff() staff.Repository
	Reports() reports.Repository
}

type Options struct {
	// Now reemplaza el reloj (tests). nil => time.Now.
	Now    func() time.Time
	Logger logger.Logger

	// Dispatcher nil => las notificaciones solo se registran.
	Dispatcher crm.Dispatcher
	// Accounting nil => sin push contable.
	Accounting reports.AccountingSink

	// PasswordCost para bcrypt; <= 0 usa el default.
	PasswordCost int
}

type System struct {
	Users     *users.Service
	Locations *locations.Service
	Clients   *clients.Service
	Pets      *pets.Service
	Activity  *activity.Service
	Catalog   *catalog.Service
	Inventory *inventory.Service
	Bookings  *bookings.Service
	Billing   *billing.Service
	CRM       *crm.Service
	Documents *documents.Service
	Staff     *staff.Service
	Reports   *reports.Service
}

func New(store Store, opts Options) *System {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	sys := &System{}
	sys.Users = users.NewService(store.Users(), now, opts.PasswordCost)
	sys.Locations = locations.NewService(store.Locations(), now)
	sys.Clients = clients.NewService(store.Clients(), now)
	sys.Pets = pets.NewService(store.Pets(), sys.Clients, now)
	sys.Activity = activity.NewService(store.Activity(), sys.Pets, now)
	sys.Catalog = catalog.NewService(store.Catalog(), sys.Clients, store, now)
	sys.Inventory = inventory.NewService(store.Inventory(), store, now)
	sys.Billing = billing.NewService(store.Billing(), store, log.With(map[string]any{"module": "billing"}), now)
	sys.Bookings = bookings.NewService(store.Bookings(), bookings.Deps{
		Locations: sys.Locations,
		Clients:   sys.Clients,
		Pets:      sys.Pets,
		Catalog:   sys.Catalog,
		Invoices:  sys.Billing,
	}, store, log.With(map[string]any{"module": "bookings"}), now)
	sys.CRM = crm.NewService(store.CRM(), sys.Clients, opts.Dispatcher, log.With(map[string]any{"module": "crm"}), now)
	sys.Documents = documents.NewService(store.Documents(), sys.Clients, now)
	sys.Staff = staff.NewService(store.Staff(), sys.Users, sys.Locations, now)
	sys.Reports = reports.NewService(store.Reports(), reports.Deps{
		Locations:  sys.Locations,
		Bookings:   sys.Bookings,
		Clients:    sys.Clients,
		Messages:   sys.CRM,
		Invoices:   sys.Billing,
		Packages:   sys.Catalog,
		Accounting: opts.Accounting,
	}, log.With(map[string]any{"module": "reports"}), now)
	return sys
}
