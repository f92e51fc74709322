// Package memory implementa los repositorios en memoria. Todas las tablas
// viven en un único Store protegido por un mutex, así los repos pueden
// resolver joins (nombres) y las transacciones se emulan con snapshot/restore.
package memory

import (
	"context"
	"errors"
	"maps"
	"sort"
	"strings"
	"sync"

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
)

var errIDRequired = errors.New("id required")

// entry guarda la fila junto con su orden de inserción.
type entry[T any] struct {
	seq int64
	val T
}

type table[T any] map[string]entry[T]

// rows devuelve las filas en orden de inserción.
func (t table[T]) rows() []T {
	list := make([]entry[T], 0, len(t))
	for _, e := range t {
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].seq < list[j].seq })

	out := make([]T, 0, len(list))
	for _, e := range list {
		out = append(out, e.val)
	}
	return out
}

func (t table[T]) get(id string) (T, bool) {
	e, ok := t[id]
	return e.val, ok
}

// replace actualiza la fila conservando su posición.
func (t table[T]) replace(id string, v T) bool {
	e, ok := t[id]
	if !ok {
		return false
	}
	e.val = v
	t[id] = e
	return true
}

type tables struct {
	locations    table[locations.Location]
	users        table[users.User]
	clients      table[clients.Client]
	pets         table[pets.Pet]
	vaccinations table[pets.Vaccination]
	notes        table[activity.Note]
	logs         table[activity.Log]

	offerings      table[catalog.Offering]
	packages       table[catalog.DaycarePackage]
	clientPackages table[catalog.ClientPackage]

	items        table[inventory.Item]
	transactions table[inventory.Transaction]

	bookings        table[bookings.Booking]
	bookingPets     table[bookings.BookingPet]
	bookingServices table[bookings.BookingService]
	checkIns        table[bookings.CheckIn]
	waitlist        table[bookings.WaitlistEntry]
	recurring       table[bookings.RecurringBooking]

	invoices  table[billing.Invoice]
	lineItems table[billing.LineItem]
	payments  table[billing.Payment]

	notifications table[crm.Notification]
	messages      table[crm.Message]

	documents   table[documents.Document]
	assignments table[documents.Assignment]

	employees    table[staff.Employee]
	shifts       table[staff.Shift]
	clockEntries table[staff.ClockEntry]

	metadata map[string]int
}

func newTables() tables {
	return tables{
		locations:       table[locations.Location]{},
		users:           table[users.User]{},
		clients:         table[clients.Client]{},
		pets:            table[pets.Pet]{},
		vaccinations:    table[pets.Vaccination]{},
		notes:           table[activity.Note]{},
		logs:            table[activity.Log]{},
		offerings:       table[catalog.Offering]{},
		packages:        table[catalog.DaycarePackage]{},
		clientPackages:  table[catalog.ClientPackage]{},
		items:           table[inventory.Item]{},
		transactions:    table[inventory.Transaction]{},
		bookings:        table[bookings.Booking]{},
		bookingPets:     table[bookings.BookingPet]{},
		bookingServices: table[bookings.BookingService]{},
		checkIns:        table[bookings.CheckIn]{},
		waitlist:        table[bookings.WaitlistEntry]{},
		recurring:       table[bookings.RecurringBooking]{},
		invoices:        table[billing.Invoice]{},
		lineItems:       table[billing.LineItem]{},
		payments:        table[billing.Payment]{},
		notifications:   table[crm.Notification]{},
		messages:        table[crm.Message]{},
		documents:       table[documents.Document]{},
		assignments:     table[documents.Assignment]{},
		employees:       table[staff.Employee]{},
		shifts:          table[staff.Shift]{},
		clockEntries:    table[staff.ClockEntry]{},
		metadata:        map[string]int{},
	}
}

// clone copia cada tabla. Las filas se reemplazan enteras al escribir, así
// que una copia superficial alcanza para restaurar.
func (t tables) clone() tables {
	return tables{
		locations:       maps.Clone(t.locations),
		users:           maps.Clone(t.users),
		clients:         maps.Clone(t.clients),
		pets:            maps.Clone(t.pets),
		vaccinations:    maps.Clone(t.vaccinations),
		notes:           maps.Clone(t.notes),
		logs:            maps.Clone(t.logs),
		offerings:       maps.Clone(t.offerings),
		packages:        maps.Clone(t.packages),
		clientPackages:  maps.Clone(t.clientPackages),
		items:           maps.Clone(t.items),
		transactions:    maps.Clone(t.transactions),
		bookings:        maps.Clone(t.bookings),
		bookingPets:     maps.Clone(t.bookingPets),
		bookingServices: maps.Clone(t.bookingServices),
		checkIns:        maps.Clone(t.checkIns),
		waitlist:        maps.Clone(t.waitlist),
		recurring:       maps.Clone(t.recurring),
		invoices:        maps.Clone(t.invoices),
		lineItems:       maps.Clone(t.lineItems),
		payments:        maps.Clone(t.payments),
		notifications:   maps.Clone(t.notifications),
		messages:        maps.Clone(t.messages),
		documents:       maps.Clone(t.documents),
		assignments:     maps.Clone(t.assignments),
		employees:       maps.Clone(t.employees),
		shifts:          maps.Clone(t.shifts),
		clockEntries:    maps.Clone(t.clockEntries),
		metadata:        maps.Clone(t.metadata),
	}
}

type Store struct {
	mu  sync.Mutex
	seq int64
	t   tables
}

func NewStore() *Store {
	return &Store{t: newTables()}
}

type txKey struct{}

// lock toma el mutex salvo que ctx ya esté dentro de una transacción de
// este mismo store (en ese caso el lock ya está tomado).
func (s *Store) lock(ctx context.Context) func() {
	if owner, _ := ctx.Value(txKey{}).(*Store); owner == s {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// WithinTx serializa fn contra el resto del store y deshace sus escrituras
// si devuelve error.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if owner, _ := ctx.Value(txKey{}).(*Store); owner == s {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.t.clone()
	seq := s.seq
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.t = snapshot
		s.seq = seq
		return err
	}
	return nil
}

func (s *Store) next() int64 {
	s.seq++
	return s.seq
}

// insert agrega una fila nueva; falla si el id falta o ya existe.
func insert[T any](s *Store, t table[T], id string, v T) error {
	if strings.TrimSpace(id) == "" {
		return errIDRequired
	}
	if _, exists := t[id]; exists {
		return errors.New("row already exists")
	}
	t[id] = entry[T]{seq: s.next(), val: v}
	return nil
}

func (s *Store) Locations() locations.Repository { return &locationRepo{s: s} }
func (s *Store) Users() users.Repository         { return &userRepo{s: s} }
func (s *Store) Clients() clients.Repository     { return &clientRepo{s: s} }
func (s *Store) Pets() pets.Repository           { return &petRepo{s: s} }
func (s *Store) Activity() activity.Repository   { return &activityRepo{s: s} }
func (s *Store) Catalog() catalog.Repository     { return &catalogRepo{s: s} }
func (s *Store) Inventory() inventory.Repository { return &inventoryRepo{s: s} }
func (s *Store) Bookings() bookings.Repository   { return &bookingRepo{s: s} }
func (s *Store) Billing() billing.Repository     { return &billingRepo{s: s} }
func (s *Store) CRM() crm.Repository             { return &crmRepo{s: s} }
func (s *Store) Documents() documents.Repository { return &documentRepo{s: s} }
func (s *Store) Staff() staff.Repository         { return &staffRepo{s: s} }
func (s *Store) Reports() reports.Repository     { return &reportRepo{s: s} }
