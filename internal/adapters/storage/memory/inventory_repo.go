package memory

import (
	"context"
	"sort"
	"strings"

	"doggy-daycare/internal/domain/inventory"
	"doggy-daycare/internal/ports/storage"
)

type inventoryRepo struct {
	s *Store
}

func (r *inventoryRepo) CreateItem(ctx context.Context, it inventory.Item) error {
	defer r.s.lock(ctx)()
	for _, e := range r.s.t.items {
		if strings.EqualFold(e.val.SKU, it.SKU) {
			return storage.ErrConflict
		}
	}
	return insert(r.s, r.s.t.items, it.ID, it)
}

func (r *inventoryRepo) GetItem(ctx context.Context, id string) (inventory.Item, error) {
	defer r.s.lock(ctx)()
	it, ok := r.s.t.items.get(id)
	if !ok {
		return inventory.Item{}, storage.ErrNotFound
	}
	return it, nil
}

func (r *inventoryRepo) ListItems(ctx context.Context) ([]inventory.Item, error) {
	defer r.s.lock(ctx)()
	out := r.s.t.items.rows()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *inventoryRepo) AddQuantity(ctx context.Context, id string, delta int) error {
	defer r.s.lock(ctx)()
	it, ok := r.s.t.items.get(id)
	if !ok {
		return storage.ErrNotFound
	}
	if it.Quantity+delta < 0 {
		return storage.ErrInsufficient
	}
	it.Quantity += delta
	r.s.t.items.replace(id, it)
	return nil
}

func (r *inventoryRepo) CreateTransaction(ctx context.Context, t inventory.Transaction) error {
	defer r.s.lock(ctx)()
	return insert(r.s, r.s.t.transactions, t.ID, t)
}

func (r *inventoryRepo) ListTransactions(ctx context.Context, itemID string) ([]inventory.Transaction, error) {
	defer r.s.lock(ctx)()
	rows := r.s.t.transactions.rows()
	out := make([]inventory.Transaction, 0)
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i].ItemID == itemID {
			out = append(out, rows[i])
		}
	}
	return out, nil
}
