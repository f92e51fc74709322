package daycare_test

import (
	"context"
	"testing"
	"time"

	"doggy-daycare/internal/adapters/storage/memory"
	"doggy-daycare/internal/daycare"
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
	"doggy-daycare/internal/domain/staff"
	"doggy-daycare/internal/domain/users"
	"doggy-daycare/internal/platform/apperr"

	"github.com/davecgh/go-spew/spew"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var today = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return today.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertMoney(t *testing.T, want string, got decimal.Decimal, msg ...any) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s %v", want, got.String(), msg)
}

func ptr[T any](v T) *T { return &v }

type fixture struct {
	sys *daycare.System

	location locations.Location
	manager  users.User
	client   clients.Client
	rex      pets.Pet
	molly    pets.Pet
	otis     pets.Pet
	grooming catalog.Offering
	pass     catalog.DaycarePackage
	credits  catalog.ClientPackage
	waiver   documents.Document
}

func setup(t *testing.T, opts daycare.Options) *fixture {
	t.Helper()
	ctx := context.Background()

	if opts.Now == nil {
		opts.Now = func() time.Time { return at(7, 0) }
	}
	opts.PasswordCost = bcrypt.MinCost

	f := &fixture{sys: daycare.New(memory.NewStore(), opts)}
	var err error

	f.location, err = f.sys.Locations.Create(ctx, locations.CreateInput{
		Name:              "Sydney CBD",
		Capacity:          2,
		BaseDaycareRate:   dec("65"),
		SecondPetDiscount: dec("20"),
		Timezone:          "Australia/Sydney",
		Address:           "1 Market St",
		Suburb:            "Sydney",
		State:             "NSW",
		Postcode:          "2000",
	})
	require.NoError(t, err)

	f.manager, err = f.sys.Users.Register(ctx, users.RegisterInput{
		Email:    "Manager@Example.com",
		Password: "Password!23",
		Role:     users.RoleManager,
		Name:     "Casey Manager",
	})
	require.NoError(t, err)

	f.client, err = f.sys.Clients.Register(ctx, clients.RegisterInput{
		FirstName: "Jordan",
		LastName:  "River",
		Phone:     "0400000000",
		Email:     "jordan@example.com",
		Address:   "12 Pet Lane",
		Suburb:    "Sydney",
		State:     "NSW",
		Postcode:  "2001",
	})
	require.NoError(t, err)

	expiry := today.AddDate(0, 0, 180)
	for _, p := range []struct {
		dst   *pets.Pet
		name  string
		breed string
	}{
		{&f.rex, "Rex", "Kelpie"},
		{&f.molly, "Molly", "Border Collie"},
		{&f.otis, "Otis", "Beagle"},
	} {
		*p.dst, err = f.sys.Pets.Add(ctx, pets.AddInput{ClientID: f.client.ID, Name: p.name, Breed: p.breed})
		require.NoError(t, err)
		_, err = f.sys.Pets.RecordVaccination(ctx, pets.VaccinationInput{
			PetID:       p.dst.ID,
			VaccineName: "C5",
			ExpiryDate:  expiry,
		})
		require.NoError(t, err)
	}

	f.grooming, err = f.sys.Catalog.CreateOffering(ctx, catalog.OfferingInput{
		Name:                   "Grooming",
		Price:                  dec("25"),
		Description:            "Wash & dry",
		DefaultDurationMinutes: 45,
		GSTApplicable:          ptr(true),
		LocationID:             &f.location.ID,
	})
	require.NoError(t, err)

	f.pass, err = f.sys.Catalog.CreatePackage(ctx, catalog.PackageInput{
		Name:         "10 Day Pass",
		Description:  "Pre-paid pass",
		LocationID:   &f.location.ID,
		TotalCredits: 10,
		Price:        dec("590"),
		ValidDays:    ptr(365),
	})
	require.NoError(t, err)

	f.credits, err = f.sys.Catalog.SellPackage(ctx, catalog.SellInput{
		ClientID:     f.client.ID,
		PackageID:    f.pass.ID,
		PurchaseDate: today,
		ExpiryDate:   ptr(today.AddDate(0, 0, 365)),
	})
	require.NoError(t, err)

	f.waiver, err = f.sys.Documents.Create(ctx, documents.CreateInput{
		Name:        "Daycare Waiver",
		Description: "General liability waiver",
		Content:     "I agree to the terms.",
	})
	require.NoError(t, err)

	return f
}

func (f *fixture) book(t *testing.T, in bookings.CreateInput) bookings.Result {
	t.Helper()
	if in.LocationID == "" {
		in.LocationID = f.location.ID
	}
	if in.ClientID == "" {
		in.ClientID = f.client.ID
	}
	if in.StartTime.IsZero() {
		in.StartTime, in.EndTime = at(8, 0), at(17, 0)
	}
	res, err := f.sys.Bookings.Create(context.Background(), in)
	require.NoError(t, err)
	return res
}

func TestEndToEndBookingFlow(t *testing.T) {
	ctx := context.Background()
	f := setup(t, daycare.Options{})
	start, end := at(8, 0), at(17, 0)

	res := f.book(t, bookings.CreateInput{
		PetIDs:           []string{f.rex.ID, f.molly.ID},
		CreatedBy:        &f.manager.ID,
		Services:         []bookings.ServiceRequest{{ServiceID: f.grooming.ID, Quantity: 1}},
		DepositAmount:    dec("5"),
		UsePackageCredit: true,
		RecurrenceRule:   ptr("RRULE:FREQ=WEEKLY;COUNT=4"),
	})
	require.Equal(t, bookings.ResultBooked, res.Status)
	booking := res.Booking
	require.NotNil(t, booking.Invoice, spew.Sdump(booking))

	inv := booking.Invoice
	assertMoney(t, "25", inv.Subtotal)
	assertMoney(t, "2.5", inv.GSTAmount)
	assertMoney(t, "27.5", inv.Total)
	assertMoney(t, "22.5", inv.BalanceDue, "el depósito ya se descontó")
	assert.Equal(t, "INV-2026-00001", inv.Number)
	assert.Equal(t, today, inv.IssueDate)
	assert.Equal(t, today.AddDate(0, 0, 7), inv.DueDate)
	require.Len(t, inv.Payments, 1)
	assert.Equal(t, billing.MethodDeposit, inv.Payments[0].Method)
	assert.Equal(t, billing.DepositReference, inv.Payments[0].Reference)

	// Los créditos del pase bajan uno por mascota.
	cp, err := f.sys.Catalog.GetClientPackage(ctx, f.credits.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, cp.RemainingCredits)
	for _, bp := range booking.Pets {
		assert.True(t, bp.Price.IsZero())
		assert.False(t, bp.GSTApplicable)
		require.NotNil(t, bp.PackageID)
		assert.Equal(t, f.credits.ID, *bp.PackageID)
	}

	// Check-in de ambas mascotas.
	ci, err := f.sys.Bookings.CheckIn(ctx, bookings.CheckInInput{
		BookingID:    booking.ID,
		PetID:        f.rex.ID,
		StaffUserID:  &f.manager.ID,
		CheckInTime:  start,
		WaiverSigned: true,
	})
	require.NoError(t, err)
	assert.True(t, ci.WaiverSigned)
	assert.True(t, ci.HealthCheckPassed)

	_, err = f.sys.Bookings.CheckIn(ctx, bookings.CheckInInput{
		BookingID:   booking.ID,
		PetID:       f.molly.ID,
		StaffUserID: &f.manager.ID,
		CheckInTime: start,
	})
	require.NoError(t, err)

	got, err := f.sys.Bookings.Get(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, bookings.StatusCheckedIn, got.Status)

	// Sede llena: la tercera mascota va a lista de espera.
	wl := f.book(t, bookings.CreateInput{PetIDs: []string{f.otis.ID}})
	assert.Equal(t, bookings.ResultWaitlisted, wl.Status)
	assert.Nil(t, wl.Booking)
	require.Len(t, wl.WaitlistIDs, 1)

	entries, err := f.sys.Bookings.ListWaitlist(ctx, f.location.ID, today)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Otis", entries[0].PetName)
	assert.Equal(t, "Jordan River", entries[0].ClientName)

	// Salida de ambas: recién con la última se completa la reserva.
	_, err = f.sys.Bookings.CheckOut(ctx, bookings.CheckOutInput{BookingID: booking.ID, PetID: f.rex.ID, CheckOutTime: end})
	require.NoError(t, err)
	got, err = f.sys.Bookings.Get(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, bookings.StatusCheckedIn, got.Status)

	out, err := f.sys.Bookings.CheckOut(ctx, bookings.CheckOutInput{BookingID: booking.ID, PetID: f.molly.ID, CheckOutTime: end})
	require.NoError(t, err)
	require.NotNil(t, out.CheckOutTime)
	got, err = f.sys.Bookings.Get(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, bookings.StatusCompleted, got.Status)
	assert.Len(t, got.CheckIns, 2)

	// Se salda la factura.
	paid, err := f.sys.Billing.RecordPayment(ctx, billing.PaymentInput{
		InvoiceID:   inv.ID,
		Amount:      dec("22.5"),
		Method:      "card",
		PaymentDate: today,
		Reference:   "PAY123",
	})
	require.NoError(t, err)
	assert.True(t, paid.BalanceDue.IsZero())
	assert.Equal(t, billing.StatusPaid, paid.Status)

	// Con la reserva completada hay lugar para promover la espera.
	promoted, err := f.sys.Bookings.PromoteWaitlist(ctx, entries[0].ID)
	require.NoError(t, err)
	require.NotNil(t, promoted.Booking)
	require.NotNil(t, promoted.Booking.Invoice)
	assertMoney(t, "71.5", promoted.Booking.Invoice.Total)
	assert.Equal(t, "INV-2026-00002", promoted.Booking.Invoice.Number)

	_, err = f.sys.Bookings.PromoteWaitlist(ctx, entries[0].ID)
	require.Error(t, err)
	assert.Equal(t, "Waitlist entry already converted", apperr.Message(err))

	// Notificaciones y mensajes.
	n, err := f.sys.CRM.SendNotification(ctx, crm.NotificationInput{
		ClientID:     f.client.ID,
		Channel:      "email",
		TemplateCode: "booking_confirmation",
		Content:      "Your booking is confirmed",
	})
	require.NoError(t, err)
	assert.Equal(t, crm.NotificationSent, n.Status)

	msg, err := f.sys.CRM.LogMessage(ctx, crm.MessageInput{
		ClientID:         f.client.ID,
		Direction:        crm.Outbound,
		Channel:          "sms",
		Content:          "Rex had a great day!",
		StaffUserID:      &f.manager.ID,
		RelatedBookingID: &booking.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, crm.Outbound, msg.Direction)
	assert.Equal(t, "Casey Manager", msg.StaffName)

	// Documentos.
	asg, err := f.sys.Documents.Assign(ctx, documents.AssignInput{
		DocumentID: f.waiver.ID,
		ClientID:   f.client.ID,
		DueDate:    &today,
	})
	require.NoError(t, err)
	done, err := f.sys.Documents.Complete(ctx, documents.CompleteInput{
		AssignmentID: asg.ID,
		SignedAt:     today,
		CapturedData: map[string]string{"signature": "Jordan"},
	})
	require.NoError(t, err)
	assert.Equal(t, documents.StatusCompleted, done.Status)

	// Registro de actividad.
	act, err := f.sys.Activity.LogActivity(ctx, activity.LogInput{
		PetID:        f.rex.ID,
		ActivityType: "Feeding",
		Details:      "Fed chicken meal",
		BookingID:    &booking.ID,
		LoggedBy:     &f.manager.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, activity.ActivityType("feeding"), act.ActivityType)

	// Inventario.
	item, err := f.sys.Inventory.CreateItem(ctx, inventory.CreateInput{
		Name:      "Dog Treats",
		SKU:       "TREATS-001",
		Quantity:  20,
		UnitCost:  dec("5"),
		UnitPrice: dec("9.5"),
	})
	require.NoError(t, err)
	item, err = f.sys.Inventory.Adjust(ctx, inventory.AdjustInput{
		ItemID:           item.ID,
		QuantityChange:   -2,
		Reason:           "Sold",
		StaffUserID:      &f.manager.ID,
		RelatedInvoiceID: &inv.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 18, item.Quantity)

	// Staff.
	emp, err := f.sys.Staff.CreateEmployee(ctx, staff.EmployeeInput{
		UserID:     f.manager.ID,
		Position:   "Supervisor",
		HourlyRate: dec("32.5"),
		StartedOn:  today,
	})
	require.NoError(t, err)
	shift, err := f.sys.Staff.ScheduleShift(ctx, staff.ShiftInput{
		EmployeeID: emp.ID,
		LocationID: f.location.ID,
		StartTime:  start,
		EndTime:    end,
	})
	require.NoError(t, err)
	assert.Equal(t, emp.ID, shift.EmployeeID)
	entry, err := f.sys.Staff.ClockIn(ctx, emp.ID, start)
	require.NoError(t, err)
	entry, err = f.sys.Staff.ClockOut(ctx, entry.ID, end)
	require.NoError(t, err)
	assert.NotNil(t, entry.ClockOut)

	// Reportes.
	occ, err := f.sys.Reports.OccupancyReport(ctx, f.location.ID, today, today)
	require.NoError(t, err)
	require.Len(t, occ, 1)
	assert.Equal(t, 3, occ[0].Pets)

	rev, err := f.sys.Reports.RevenueReport(ctx, today, today, &f.location.ID)
	require.NoError(t, err)
	assertMoney(t, "99", rev.Revenue)
	assertMoney(t, "9", rev.GSTCollected)
	require.Len(t, rev.Payments, 2)
	assert.Equal(t, "card", rev.Payments[0].Method)
	assertMoney(t, "22.5", rev.Payments[0].Total)
	assert.Equal(t, "deposit", rev.Payments[1].Method)

	outstanding, err := f.sys.Reports.OutstandingBalances(ctx)
	require.NoError(t, err)
	for _, o := range outstanding {
		assert.True(t, o.BalanceDue.IsPositive())
	}

	xero, err := f.sys.Reports.ExportForXero(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jordan River", xero.Contact.Name)
	assert.Equal(t, "ACCREC", xero.Type)
	assert.Equal(t, "2026-03-02", xero.Date)
	assert.Equal(t, "2026-03-09", xero.DueDate)
	assert.True(t, xero.AmountDue.IsZero())

	cal, err := f.sys.Bookings.CalendarView(ctx, f.location.ID, today)
	require.NoError(t, err)
	assert.Contains(t, cal.Bookings, "2026-03-02")
	assert.Len(t, cal.Bookings["2026-03-02"], 2)
}

func TestBooking_RejectsExpiredVaccination(t *testing.T) {
	ctx := context.Background()
	f := setup(t, daycare.Options{})

	nova, err := f.sys.Pets.Add(ctx, pets.AddInput{ClientID: f.client.ID, Name: "Nova"})
	require.NoError(t, err)
	_, err = f.sys.Pets.RecordVaccination(ctx, pets.VaccinationInput{
		PetID:       nova.ID,
		VaccineName: "C5",
		ExpiryDate:  today.AddDate(0, 0, -1),
	})
	require.NoError(t, err)

	_, err = f.sys.Bookings.Create(ctx, bookings.CreateInput{
		LocationID: f.location.ID,
		ClientID:   f.client.ID,
		StartTime:  at(9, 0),
		EndTime:    at(11, 0),
		PetIDs:     []string{nova.ID},
	})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, "Pet has expired vaccinations", apperr.Message(err))
}

func TestBooking_RejectsMissingVaccination(t *testing.T) {
	ctx := context.Background()
	f := setup(t, daycare.Options{})

	nova, err := f.sys.Pets.Add(ctx, pets.AddInput{ClientID: f.client.ID, Name: "Nova"})
	require.NoError(t, err)

	_, err = f.sys.Bookings.Create(ctx, bookings.CreateInput{
		LocationID: f.location.ID,
		ClientID:   f.client.ID,
		StartTime:  at(9, 0),
		EndTime:    at(11, 0),
		PetIDs:     []string{nova.ID},
	})
	assert.Equal(t, "Pet is missing vaccination records", apperr.Message(err))
}

func TestBooking_VaccinationExpiringThatDayStillCovers(t *testing.T) {
	ctx := context.Background()
	f := setup(t, daycare.Options{})

	nova, err := f.sys.Pets.Add(ctx, pets.AddInput{ClientID: f.client.ID, Name: "Nova"})
	require.NoError(t, err)
	_, err = f.sys.Pets.RecordVaccination(ctx, pets.VaccinationInput{PetID: nova.ID, VaccineName: "C5", ExpiryDate: today})
	require.NoError(t, err)

	// El vencimiento es la medianoche del día: una reserva que empieza
	// justo a esa hora pasa, una más tarde no.
	_, err = f.sys.Bookings.Create(ctx, bookings.CreateInput{
		LocationID: f.location.ID, ClientID: f.client.ID,
		StartTime: today, EndTime: at(1, 0), PetIDs: []string{nova.ID},
	})
	require.NoError(t, err)

	_, err = f.sys.Bookings.Create(ctx, bookings.CreateInput{
		LocationID: f.location.ID, ClientID: f.client.ID,
		StartTime: at(9, 0), EndTime: at(11, 0), PetIDs: []string{nova.ID},
	})
	assert.Equal(t, "Pet has expired vaccinations", apperr.Message(err))
}

func TestBooking_EndMustFollowStart(t *testing.T) {
	ctx := context.Background()
	f := setup(t, daycare.Options{})

	_, err := f.sys.Bookings.Create(ctx, bookings.CreateInput{
		LocationID: f.location.ID,
		ClientID:   f.client.ID,
		StartTime:  at(17, 0),
		EndTime:    at(8, 0),
		PetIDs:     []string{f.rex.ID},
	})
	assert.Equal(t, "End time must be after start time", apperr.Message(err))
}

func TestBooking_RejectsNegativeDeposit(t *testing.T) {
	ctx := context.Background()
	f := setup(t, daycare.Options{})

	_, err := f.sys.Bookings.Create(ctx, bookings.CreateInput{
		LocationID:    f.location.ID,
		ClientID:      f.client.ID,
		StartTime:     at(8, 0),
		EndTime:       at(17, 0),
		PetIDs:        []string{f.rex.ID},
		DepositAmount: dec("-50"),
	})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, "deposit_amount must be at least 0", apperr.Message(err))

	list, err := f.sys.Bookings.ListForClient(ctx, bookings.ClientQuery{ClientID: f.client.ID})
	require.NoError(t, err)
	assert.Empty(t, list)

	// tampoco entra por la emisión directa de la factura
	_, err = f.sys.Billing.Issue(ctx, billing.IssueInput{
		ClientID:  f.client.ID,
		IssueDate: today,
		Lines:     []billing.Line{{Description: "Bath", Quantity: 1, UnitPrice: dec("20")}},
		Deposit:   dec("-5"),
	})
	assert.Equal(t, "deposit_amount must be at least 0", apperr.Message(err))

	invoices, err := f.sys.Billing.List(ctx, billing.ListFilter{ClientID: f.client.ID})
	require.NoError(t, err)
	assert.Empty(t, invoices)
}

func TestBooking_PetMustBelongToClient(t *testing.T) {
	ctx := context.Background()
	f := setup(t, daycare.Options{})

	other, err := f.sys.Clients.Register(ctx, clients.RegisterInput{
		FirstName: "Sam", LastName: "Lake", Phone: "0411111111", Email: "sam@example.com",
	})
	require.NoError(t, err)

	_, err = f.sys.Bookings.Create(ctx, bookings.CreateInput{
		LocationID: f.location.ID,
		ClientID:   other.ID,
		StartTime:  at(8, 0),
		EndTime:    at(17, 0),
		PetIDs:     []string{f.rex.ID},
	})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestBooking_CapacityWaitlistsWholeRequest(t *testing.T) {
	ctx := context.Background()
	f := setup(t, daycare.Options{})

	first := f.book(t, bookings.CreateInput{PetIDs: []string{f.rex.ID, f.molly.ID}})
	require.Equal(t, bookings.ResultBooked, first.Status)

	// Solapado parcial: sigue contando.
	res := f.book(t, bookings.CreateInput{
		PetIDs:    []string{f.otis.ID},
		StartTime: at(16, 0),
		EndTime:   at(18, 0),
	})
	assert.Equal(t, bookings.ResultWaitlisted, res.Status)

	// Empieza justo cuando termina la otra: no se solapa.
	res = f.book(t, bookings.CreateInput{
		PetIDs:    []string{f.otis.ID},
		StartTime: at(17, 0),
		EndTime:   at(19, 0),
	})
	assert.Equal(t, bookings.ResultBooked, res.Status)

	list, err := f.sys.Bookings.List(ctx, f.location.ID, today)
	require.NoError(t, err)
	assert.Len(t, list, 2, "la espera no crea reservas")
}

func TestBooking_MultiPetPricingAndGST(t *testing.T) {
	f := setup(t, daycare.Options{})

	res := f.book(t, bookings.CreateInput{
		PetIDs:   []string{f.rex.ID, f.molly.ID},
		Services: []bookings.ServiceRequest{{ServiceID: f.grooming.ID, Quantity: 2}},
	})
	require.Equal(t, bookings.ResultBooked, res.Status)

	// 65 + 52 (20% off) + 2 × 25 = 167; GST 16.70; total 183.70
	inv := res.Booking.Invoice
	assertMoney(t, "167", inv.Subtotal)
	assertMoney(t, "16.7", inv.GSTAmount)
	assertMoney(t, "183.7", inv.Total)
	assertMoney(t, "183.7", inv.BalanceDue)
	assert.Equal(t, billing.StatusIssued, inv.Status)
	require.Len(t, inv.LineItems, 3)

	prices := map[string]decimal.Decimal{}
	for _, bp := range res.Booking.Pets {
		prices[bp.PetName] = bp.Price
	}
	assertMoney(t, "65", prices["Rex"])
	assertMoney(t, "52", prices["Molly"])
}

func TestBooking_UnregisteredLocationChargesNoGST(t *testing.T) {
	ctx := context.Background()
	f := setup(t, daycare.Options{})

	loc, err := f.sys.Locations.Create(ctx, locations.CreateInput{
		Name:            "Small Town",
		Capacity:        5,
		BaseDaycareRate: dec("40"),
		GSTRegistered:   ptr(false),
	})
	require.NoError(t, err)

	res := f.book(t, bookings.CreateInput{LocationID: loc.ID, PetIDs: []string{f.rex.ID}})
	inv := res.Booking.Invoice
	assert.True(t, inv.GSTAmount.IsZero())
	assertMoney(t, "40", inv.Total)
}

func TestBooking_PackageCreditErrorsRollBack(t *testing.T) {
	ctx := context.Background()
	f := setup(t, daycare.Options{})

	_, err := f.sys.Catalog.AdjustClientPackage(ctx, f.credits.ID, -9)
	require.NoError(t, err)

	// Queda 1 crédito y se piden 2: falla la segunda mascota y no queda nada escrito.
	_, err = f.sys.Bookings.Create(ctx, bookings.CreateInput{
		LocationID:       f.location.ID,
		ClientID:         f.client.ID,
		StartTime:        at(8, 0),
		EndTime:          at(17, 0),
		PetIDs:           []string{f.rex.ID, f.molly.ID},
		UsePackageCredit: true,
	})
	require.Error(t, err)
	assert.Equal(t, "Selected package has no remaining credits", apperr.Message(err))

	cp, err := f.sys.Catalog.GetClientPackage(ctx, f.credits.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, cp.RemainingCredits)

	list, err := f.sys.Bookings.List(ctx, f.location.ID, today)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = f.sys.Catalog.AdjustClientPackage(ctx, f.credits.ID, -2)
	assert.Equal(t, "Package does not have enough credits", apperr.Message(err))
}

func TestBooking_NoPackageAtAll(t *testing.T) {
	ctx := context.Background()
	f := setup(t, daycare.Options{})

	other, err := f.sys.Clients.Register(ctx, clients.RegisterInput{
		FirstName: "Sam", LastName: "Lake", Phone: "0411111111", Email: "sam@example.com",
	})
	require.NoError(t, err)
	dog, err := f.sys.Pets.Add(ctx, pets.AddInput{ClientID: other.ID, Name: "Biscuit"})
	require.NoError(t, err)
	_, err = f.sys.Pets.RecordVaccination(ctx, pets.VaccinationInput{PetID: dog.ID, VaccineName: "C5", ExpiryDate: today.AddDate(1, 0, 0)})
	require.NoError(t, err)

	_, err = f.sys.Bookings.Create(ctx, bookings.CreateInput{
		LocationID:       f.location.ID,
		ClientID:         other.ID,
		StartTime:        at(8, 0),
		EndTime:          at(17, 0),
		PetIDs:           []string{dog.ID},
		UsePackageCredit: true,
	})
	assert.Equal(t, "Client has no available package credits", apperr.Message(err))
}

func TestPayment_PartialKeepsStatus(t *testing.T) {
	ctx := context.Background()
	f := setup(t, daycare.Options{})

	res := f.book(t, bookings.CreateInput{PetIDs: []string{f.rex.ID}})
	inv := res.Booking.Invoice
	assertMoney(t, "71.5", inv.Total)

	partial, err := f.sys.Billing.RecordPayment(ctx, billing.PaymentInput{
		InvoiceID: inv.ID, Amount: dec("30"), Method: "cash", PaymentDate: today,
	})
	require.NoError(t, err)
	assertMoney(t, "41.5", partial.BalanceDue)
	assert.Equal(t, billing.StatusIssued, partial.Status)

	_, err = f.sys.Billing.RecordPayment(ctx, billing.PaymentInput{
		InvoiceID: inv.ID, Amount: dec("0"), Method: "cash", PaymentDate: today,
	})
	assert.True(t, apperr.IsValidation(err))

	_, err = f.sys.Billing.RecordPayment(ctx, billing.PaymentInput{
		InvoiceID: "missing", Amount: dec("1"), Method: "cash", PaymentDate: today,
	})
	assert.True(t, apperr.IsNotFound(err))
	assert.Equal(t, "Invoice not found", apperr.Message(err))
}

func TestCheckInOut_Errors(t *testing.T) {
	ctx := context.Background()
	f := setup(t, daycare.Options{})

	res := f.book(t, bookings.CreateInput{PetIDs: []string{f.rex.ID}})

	_, err := f.sys.Bookings.CheckIn(ctx, bookings.CheckInInput{
		BookingID: res.Booking.ID, PetID: f.molly.ID, CheckInTime: at(8, 0),
	})
	assert.Equal(t, "Pet is not part of this booking", apperr.Message(err))

	_, err = f.sys.Bookings.CheckOut(ctx, bookings.CheckOutInput{
		BookingID: res.Booking.ID, PetID: f.rex.ID, CheckOutTime: at(17, 0),
	})
	assert.Equal(t, "Pet has not been checked in", apperr.Message(err))
}

func TestPromoteWaitlist_StillFullStaysPending(t *testing.T) {
	ctx := context.Background()
	f := setup(t, daycare.Options{})

	f.book(t, bookings.CreateInput{PetIDs: []string{f.rex.ID, f.molly.ID}})
	wl := f.book(t, bookings.CreateInput{PetIDs: []string{f.otis.ID}})
	require.Equal(t, bookings.ResultWaitlisted, wl.Status)

	_, err := f.sys.Bookings.PromoteWaitlist(ctx, wl.WaitlistIDs[0])
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	e, err := f.sys.Bookings.GetWaitlist(ctx, wl.WaitlistIDs[0])
	require.NoError(t, err)
	assert.Equal(t, bookings.WaitlistPending, e.Status)
}

func TestRecurrenceRuleCreatesTemplate(t *testing.T) {
	ctx := context.Background()
	f := setup(t, daycare.Options{})

	rb, err := f.sys.Bookings.CreateRecurring(ctx, bookings.RecurringInput{
		LocationID: f.location.ID,
		ClientID:   f.client.ID,
		Rule:       "RRULE:FREQ=WEEKLY;BYDAY=MO,WE",
		StartDate:  today,
		StartTime:  "8:00",
		EndTime:    "17:30",
	})
	require.NoError(t, err)
	assert.Equal(t, "08:00", rb.StartTime)
	assert.Equal(t, "17:30", rb.EndTime)

	_, err = f.sys.Bookings.CreateRecurring(ctx, bookings.RecurringInput{
		LocationID: f.location.ID,
		ClientID:   f.client.ID,
		Rule:       "RRULE:FREQ=DAILY",
		StartDate:  today,
		StartTime:  "17:00",
		EndTime:    "08:00",
	})
	assert.Equal(t, "End time must be after start time", apperr.Message(err))
}

func TestLoginAndRoles(t *testing.T) {
	ctx := context.Background()
	f := setup(t, daycare.Options{})

	assert.Equal(t, "manager@example.com", f.manager.Email)
	assert.Len(t, f.manager.APIKey, 32)

	res, err := f.sys.Users.Login(ctx, "MANAGER@example.com", "Password!23")
	require.NoError(t, err)
	assert.Equal(t, f.manager.APIKey, res.APIKey)
	assert.Equal(t, users.RoleManager, res.Role)

	_, err = f.sys.Users.Login(ctx, "manager@example.com", "wrong-password")
	assert.True(t, apperr.IsAuthorization(err))
	assert.Equal(t, "Invalid credentials", apperr.Message(err))

	_, err = f.sys.Users.RequireRole(ctx, f.manager.APIKey, users.RoleAdmin, users.RoleManager)
	assert.NoError(t, err)
	_, err = f.sys.Users.RequireRole(ctx, f.manager.APIKey, users.RoleAdmin)
	assert.Equal(t, "User does not have permission to perform this action", apperr.Message(err))

	_, err = f.sys.Users.Register(ctx, users.RegisterInput{
		Email: "manager@example.com", Password: "Password!23", Role: users.RoleStaff,
	})
	assert.Equal(t, "Email already registered", apperr.Message(err))
}

func TestLocationDashboard(t *testing.T) {
	ctx := context.Background()
	f := setup(t, daycare.Options{Now: func() time.Time { return at(12, 0) }})

	f.book(t, bookings.CreateInput{PetIDs: []string{f.rex.ID, f.molly.ID}})
	f.book(t, bookings.CreateInput{PetIDs: []string{f.otis.ID}})

	_, err := f.sys.CRM.LogMessage(ctx, crm.MessageInput{
		ClientID: f.client.ID, Direction: crm.Inbound, Channel: "sms", Content: "Running late",
	})
	require.NoError(t, err)

	d, err := f.sys.Reports.LocationDashboard(ctx, f.location.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", d.Date)
	assert.Len(t, d.Bookings, 1)
	assert.Len(t, d.Waitlist, 1)
	assert.Equal(t, 2, d.Occupancy)
	assert.Equal(t, 2, d.Capacity)
	assert.Equal(t, 0, d.Available)
	// 65 + 52 = 117 + GST 11.70
	assertMoney(t, "128.7", d.OutstandingBalance)
	assert.Equal(t, 1, d.NewClientsToday)
	require.Len(t, d.RecentMessages, 1)
	assert.Equal(t, "Jordan River", d.RecentMessages[0].ClientName)
}

func TestLocationDashboard_TodayInLocationZone(t *testing.T) {
	ctx := context.Background()
	// 14:00 UTC del 2 de marzo ya es 3 de marzo en Sydney.
	f := setup(t, daycare.Options{Now: func() time.Time { return at(14, 0) }})

	d, err := f.sys.Reports.LocationDashboard(ctx, f.location.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-03", d.Date)
}

func TestPackageUsageReport(t *testing.T) {
	ctx := context.Background()
	f := setup(t, daycare.Options{})

	f.book(t, bookings.CreateInput{PetIDs: []string{f.rex.ID}, UsePackageCredit: true})

	u, err := f.sys.Reports.PackageUsageReport(ctx, f.client.ID)
	require.NoError(t, err)
	require.Len(t, u.Packages, 1)
	assert.Equal(t, 9, u.TotalAvailable)
	assert.Equal(t, "10 Day Pass", u.Packages[0].PackageName)
}

func TestInventoryCannotGoNegative(t *testing.T) {
	ctx := context.Background()
	f := setup(t, daycare.Options{})

	item, err := f.sys.Inventory.CreateItem(ctx, inventory.CreateInput{Name: "Shampoo", SKU: "SH-1", Quantity: 1})
	require.NoError(t, err)

	_, err = f.sys.Inventory.Adjust(ctx, inventory.AdjustInput{ItemID: item.ID, QuantityChange: -2, Reason: "Used"})
	assert.Equal(t, "Inventory cannot be negative", apperr.Message(err))

	txs, err := f.sys.Inventory.ListTransactions(ctx, item.ID)
	require.NoError(t, err)
	assert.Empty(t, txs, "el ajuste fallido no deja transacción")

	_, err = f.sys.Inventory.CreateItem(ctx, inventory.CreateInput{Name: "Shampoo 2", SKU: "SH-1"})
	assert.Equal(t, "SKU already exists", apperr.Message(err))
}
