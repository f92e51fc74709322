package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"doggy-daycare/internal/domain/bookings"
	"doggy-daycare/internal/domain/catalog"
	"doggy-daycare/internal/domain/clients"
	"doggy-daycare/internal/domain/inventory"
	"doggy-daycare/internal/domain/locations"
	"doggy-daycare/internal/domain/pets"
	"doggy-daycare/internal/ports/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func hour(h int) time.Time { return testDay.Add(time.Duration(h) * time.Hour) }

// seedClient crea una sede y un cliente propios del test.
func seedClient(t *testing.T, s *Store) (locations.Location, clients.Client) {
	t.Helper()
	ctx := context.Background()

	loc := locations.Location{ID: uuid.NewString(), Name: "Bondi", Capacity: 10, CreatedAt: time.Now().UTC()}
	require.NoError(t, s.Locations().Create(ctx, loc))

	c := clients.Client{
		ID: uuid.NewString(), FirstName: "Jordan", LastName: "River",
		Phone: "0400000000", Email: "jordan@example.com", CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, s.Clients().Create(ctx, c))
	return loc, c
}

func seedClientPackage(t *testing.T, s *Store, clientID string, credits int, purchase time.Time) catalog.ClientPackage {
	t.Helper()
	ctx := context.Background()

	pkg := catalog.DaycarePackage{
		ID: uuid.NewString(), Name: "10 Day Pass", TotalCredits: 10,
		Price: decimal.RequireFromString("550"), Attributes: map[string]string{}, CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, s.Catalog().CreatePackage(ctx, pkg))

	cp := catalog.ClientPackage{
		ID: uuid.NewString(), ClientID: clientID, PackageID: pkg.ID,
		RemainingCredits: credits, PurchaseDate: purchase,
	}
	require.NoError(t, s.Catalog().CreateClientPackage(ctx, cp))
	return cp
}

func TestCatalog_AddCreditsConcurrentRedeemsOnce(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()
	_, c := seedClient(t, s)
	cp := seedClientPackage(t, s, c.ID, 1, testDay)

	const workers = 2
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.WithinTx(ctx, func(ctx context.Context) error {
				return s.Catalog().AddCredits(ctx, cp.ID, -1)
			})
		}()
	}
	wg.Wait()
	close(errs)

	var ok, insufficient int
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		require.ErrorIs(t, err, storage.ErrInsufficient)
		insufficient++
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, insufficient)

	got, err := s.Catalog().GetClientPackage(ctx, cp.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.RemainingCredits)

	assert.ErrorIs(t, s.Catalog().AddCredits(ctx, uuid.NewString(), -1), storage.ErrNotFound)
}

func TestCatalog_ListClientPackagesNewestFirst(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()
	_, c := seedClient(t, s)

	older := seedClientPackage(t, s, c.ID, 5, testDay.AddDate(0, -1, 0))
	sameDayFirst := seedClientPackage(t, s, c.ID, 5, testDay)
	sameDaySecond := seedClientPackage(t, s, c.ID, 5, testDay)

	list, err := s.Catalog().ListClientPackages(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{sameDayFirst.ID, sameDaySecond.ID, older.ID},
		[]string{list[0].ID, list[1].ID, list[2].ID})
	assert.Equal(t, "10 Day Pass", list[0].PackageName)
	assert.Equal(t, 10, list[0].TotalCredits)
}

func TestInventory_AddQuantityNeverNegative(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()

	it := inventory.Item{
		ID: uuid.NewString(), Name: "Shampoo", SKU: "SH-" + uuid.NewString(), Quantity: 1,
		Attributes: map[string]string{}, CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, s.Inventory().CreateItem(ctx, it))

	assert.ErrorIs(t, s.Inventory().AddQuantity(ctx, it.ID, -2), storage.ErrInsufficient)
	require.NoError(t, s.Inventory().AddQuantity(ctx, it.ID, -1))

	got, err := s.Inventory().GetItem(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)
}

func TestBookings_CountBookedPetsOverlap(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()
	loc, c := seedClient(t, s)

	petIDs := make([]string, 4)
	for i := range petIDs {
		p := pets.Pet{ID: uuid.NewString(), ClientID: c.ID, Name: "Pet", CreatedAt: time.Now().UTC()}
		require.NoError(t, s.Pets().Create(ctx, p))
		petIDs[i] = p.ID
	}

	book := func(start, end time.Time, status bookings.Status, ids ...string) {
		t.Helper()
		b := bookings.Booking{
			ID: uuid.NewString(), LocationID: loc.ID, ClientID: c.ID,
			StartTime: start, EndTime: end, Status: status,
			CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
		}
		lines := make([]bookings.BookingPet, 0, len(ids))
		for _, id := range ids {
			lines = append(lines, bookings.BookingPet{
				ID: uuid.NewString(), BookingID: b.ID, PetID: id, Status: bookings.PetStatusBooked,
			})
		}
		require.NoError(t, s.Bookings().Create(ctx, b, lines, nil))
	}

	book(hour(8), hour(17), bookings.StatusReserved, petIDs[0], petIDs[1])
	book(hour(17), hour(18), bookings.StatusCheckedIn, petIDs[2])
	// completada: no ocupa lugar
	book(hour(8), hour(17), bookings.StatusCompleted, petIDs[3])

	n, err := s.Bookings().CountBookedPets(ctx, loc.ID, hour(8), hour(17))
	require.NoError(t, err)
	assert.Equal(t, 2, n, "la reserva que empieza a las 17 no se solapa")

	n, err = s.Bookings().CountBookedPets(ctx, loc.ID, hour(16), hour(18))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = s.Bookings().CountBookedPets(ctx, loc.ID, hour(18), hour(20))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
