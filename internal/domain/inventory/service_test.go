package inventory

import (
	"context"
	"testing"

	"doggy-daycare/internal/platform/apperr"
	"doggy-daycare/internal/ports/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drainedRepo muestra stock pero el ajuste condicional ya no entra.
type drainedRepo struct {
	Repository
	item Item
	txs  []Transaction
}

func (r *drainedRepo) GetItem(context.Context, string) (Item, error) { return r.item, nil }

func (r *drainedRepo) AddQuantity(context.Context, string, int) error {
	return storage.ErrInsufficient
}

func (r *drainedRepo) CreateTransaction(_ context.Context, t Transaction) error {
	r.txs = append(r.txs, t)
	return nil
}

type inlineTx struct{}

func (inlineTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func TestAdjust_ConditionalUpdateRejects(t *testing.T) {
	repo := &drainedRepo{item: Item{ID: "it-1", Name: "Shampoo", Quantity: 5}}
	svc := NewService(repo, inlineTx{}, nil)

	_, err := svc.Adjust(context.Background(), AdjustInput{ItemID: "it-1", QuantityChange: -1, Reason: "Used"})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, "Inventory cannot be negative", apperr.Message(err))
	assert.Empty(t, repo.txs)
}
