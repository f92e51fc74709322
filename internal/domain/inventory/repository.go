package inventory

import "context"

type Repository interface {
	// CreateItem devuelve storage.ErrConflict si el SKU ya existe.
	CreateItem(ctx context.Context, it Item) error
	GetItem(ctx context.Context, id string) (Item, error)
	ListItems(ctx context.Context) ([]Item, error)
	// AddQuantity suma delta al stock de forma atómica; storage.ErrInsufficient
	// si quedaría negativo.
	AddQuantity(ctx context.Context, id string, delta int) error

	CreateTransaction(ctx context.Context, t Transaction) error
	ListTransactions(ctx context.Context, itemID string) ([]Transaction, error)
}
