package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"doggy-daycare/internal/domain/catalog"
	"doggy-daycare/internal/domain/inventory"
	"doggy-daycare/internal/domain/locations"
	"doggy-daycare/internal/ports/storage"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithinTx_RollsBackOnError(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithinTx(ctx, func(ctx context.Context) error {
		require.NoError(t, s.Locations().Create(ctx, locations.Location{ID: "loc-1", Name: "Bondi"}))
		_, err := s.Billing().NextSequence(ctx, "invoice_2026")
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Locations().GetByID(ctx, "loc-1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	n, err := s.Billing().NextSequence(ctx, "invoice_2026")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "la secuencia también vuelve atrás")
}

func TestWithinTx_NestedRunsInline(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	err := s.WithinTx(ctx, func(ctx context.Context) error {
		return s.WithinTx(ctx, func(ctx context.Context) error {
			return s.Locations().Create(ctx, locations.Location{ID: "loc-1", Name: "Bondi"})
		})
	})
	require.NoError(t, err)

	_, err = s.Locations().GetByID(ctx, "loc-1")
	assert.NoError(t, err)
}

func TestLocations_ListByName(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for _, l := range []locations.Location{
		{ID: "2", Name: "Surry Hills", CreatedAt: now},
		{ID: "1", Name: "bondi", CreatedAt: now},
		{ID: "3", Name: "Manly", CreatedAt: now},
	} {
		require.NoError(t, s.Locations().Create(ctx, l))
	}

	got, err := s.Locations().List(ctx)
	require.NoError(t, err)
	names := []string{got[0].Name, got[1].Name, got[2].Name}
	assert.Equal(t, []string{"bondi", "Manly", "Surry Hills"}, names, spew.Sdump(got))
}

func TestInsert_RejectsDuplicates(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.Locations().Create(ctx, locations.Location{ID: "loc-1"}))
	assert.Error(t, s.Locations().Create(ctx, locations.Location{ID: "loc-1"}))
	assert.ErrorIs(t, s.Locations().Create(ctx, locations.Location{}), errIDRequired)
}

func TestGuardedAdds_NeverGoNegative(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.Catalog().CreateClientPackage(ctx, catalog.ClientPackage{ID: "cp-1", ClientID: "c-1", RemainingCredits: 1}))
	require.NoError(t, s.Catalog().AddCredits(ctx, "cp-1", -1))
	assert.ErrorIs(t, s.Catalog().AddCredits(ctx, "cp-1", -1), storage.ErrInsufficient)
	assert.ErrorIs(t, s.Catalog().AddCredits(ctx, "missing", 1), storage.ErrNotFound)

	cp, err := s.Catalog().GetClientPackage(ctx, "cp-1")
	require.NoError(t, err)
	assert.Equal(t, 0, cp.RemainingCredits)

	require.NoError(t, s.Inventory().CreateItem(ctx, inventory.Item{ID: "it-1", SKU: "SH-1", Quantity: 2}))
	assert.ErrorIs(t, s.Inventory().AddQuantity(ctx, "it-1", -3), storage.ErrInsufficient)
	require.NoError(t, s.Inventory().AddQuantity(ctx, "it-1", 4))

	it, err := s.Inventory().GetItem(ctx, "it-1")
	require.NoError(t, err)
	assert.Equal(t, 6, it.Quantity)
}
