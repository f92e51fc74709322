// Package storage define lo que los servicios esperan de cualquier adapter
// de persistencia, más allá de los repositorios de cada módulo.
package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrConflict: violación de unicidad (email, sku, número de factura).
	ErrConflict = errors.New("conflict")
	// ErrInsufficient: el ajuste dejaría un saldo (créditos, stock) negativo.
	// El adapter lo decide en la misma sentencia que escribe.
	ErrInsufficient = errors.New("insufficient balance")
)

// TxManager ejecuta fn dentro de una transacción. La transacción viaja en
// el ctx que recibe fn; los repos la toman de ahí. Si fn devuelve error se
// hace rollback. Llamadas anidadas reutilizan la transacción externa.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
