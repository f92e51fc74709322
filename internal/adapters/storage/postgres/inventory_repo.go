package postgres

import (
	"context"

	"doggy-daycare/internal/domain/inventory"
)

type inventoryRepo struct {
	s *Store
}

const itemColumns = `id, name, sku, quantity, unit_cost, unit_price, taxable, attributes, created_at`

func scanItem(row rowScanner) (inventory.Item, error) {
	var it inventory.Item
	var a jsonMap
	err := row.Scan(&it.ID, &it.Name, &it.SKU, &it.Quantity, &it.UnitCost, &it.UnitPrice, &it.Taxable, &a, &it.CreatedAt)
	it.Attributes = a
	return it, err
}

// CreateItem: el índice único sobre lower(sku) produce storage.ErrConflict.
func (r *inventoryRepo) CreateItem(ctx context.Context, it inventory.Item) error {
	return exec(ctx, r.s.q(ctx), `
		INSERT INTO inventory_items (`+itemColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, it.ID, it.Name, it.SKU, it.Quantity, it.UnitCost, it.UnitPrice, it.Taxable, attrs(it.Attributes), it.CreatedAt)
}

func (r *inventoryRepo) GetItem(ctx context.Context, id string) (inventory.Item, error) {
	row := r.s.q(ctx).QueryRowContext(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id)
	it, err := scanItem(row)
	if err != nil {
		return inventory.Item{}, mapErr(err)
	}
	return it, nil
}

func (r *inventoryRepo) ListItems(ctx context.Context) ([]inventory.Item, error) {
	rows, err := r.s.q(ctx).QueryContext(ctx, `SELECT `+itemColumns+` FROM inventory_items ORDER BY name, seq`)
	return collect(rows, err, scanItem)
}

func (r *inventoryRepo) AddQuantity(ctx context.Context, id string, delta int) error {
	return r.s.addGuarded(ctx, "inventory_items", "quantity", id, delta)
}

const transactionColumns = `id, item_id, quantity_change, reason, staff_user_id, related_invoice_id, created_at`

func (r *inventoryRepo) CreateTransaction(ctx context.Context, t inventory.Transaction) error {
	return exec(ctx, r.s.q(ctx), `
		INSERT INTO inventory_transactions (`+transactionColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, t.ID, t.ItemID, t.QuantityChange, t.Reason, t.StaffUserID, t.RelatedInvoiceID, t.CreatedAt)
}

func (r *inventoryRepo) ListTransactions(ctx context.Context, itemID string) ([]inventory.Transaction, error) {
	rows, err := r.s.q(ctx).QueryContext(ctx, `
		SELECT `+transactionColumns+`
		FROM inventory_transactions
		WHERE item_id = $1
		ORDER BY seq DESC
	`, itemID)
	return collect(rows, err, func(row rowScanner) (inventory.Transaction, error) {
		var t inventory.Transaction
		err := row.Scan(&t.ID, &t.ItemID, &t.QuantityChange, &t.Reason, &t.StaffUserID, &t.RelatedInvoiceID, &t.CreatedAt)
		return t, err
	})
}
