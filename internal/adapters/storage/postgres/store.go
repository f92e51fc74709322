// Package postgres implementa los repositorios sobre Postgres (pgx vía
// database/sql). La transacción activa viaja en el ctx; cada repo la toma
// con q(ctx).
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
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
	"doggy-daycare/internal/ports/storage"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// querier es lo común entre *sql.DB y *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) q(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return s.db
}

// WithinTx implementa storage.TxManager. Si ctx ya trae una transacción,
// fn corre dentro de ella.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
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

// mapErr traduce errores de Postgres a los de storage.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return storage.ErrConflict
		case codeForeignKeyViolation:
			return storage.ErrNotFound
		}
	}
	return err
}

// mustAffect devuelve storage.ErrNotFound si el UPDATE no tocó filas.
func mustAffect(res sql.Result, err error) error {
	if err != nil {
		return mapErr(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// addGuarded suma delta a column en una sola sentencia, condicionada a que
// el resultado no quede negativo. Sin filas afectadas distingue fila
// inexistente (ErrNotFound) de saldo insuficiente (ErrInsufficient).
// table y column son constantes del paquete, nunca entrada de usuario.
func (s *Store) addGuarded(ctx context.Context, table, column, id string, delta int) error {
	q := s.q(ctx)
	err := mustAffect(q.ExecContext(ctx, fmt.Sprintf(
		`UPDATE %[1]s SET %[2]s = %[2]s + $2 WHERE id = $1 AND %[2]s + $2 >= 0`, table, column,
	), id, delta))
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	var exists bool
	if err := q.QueryRowContext(ctx, fmt.Sprintf(
		`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, table,
	), id).Scan(&exists); err != nil {
		return mapErr(err)
	}
	if exists {
		return storage.ErrInsufficient
	}
	return storage.ErrNotFound
}

// exec ejecuta sin esperar filas y mapea el error.
func exec(ctx context.Context, q querier, query string, args ...any) error {
	_, err := q.ExecContext(ctx, query, args...)
	return mapErr(err)
}

// attrs serializa un mapa de atributos como JSONB.
func attrs(m map[string]string) string {
	if len(m) == 0 {
		return "{}"
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// jsonMap es el destino de Scan para columnas JSONB de atributos.
type jsonMap map[string]string

func (m *jsonMap) Scan(src any) error {
	out := map[string]string{}
	switch v := src.(type) {
	case nil:
	case []byte:
		if err := json.Unmarshal(v, &out); err != nil {
			return err
		}
	case string:
		if err := json.Unmarshal([]byte(v), &out); err != nil {
			return err
		}
	default:
		return errors.New("jsonMap: unsupported type")
	}
	*m = out
	return nil
}

// nullTime: columnas DATE/TIMESTAMPTZ opcionales.
func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// rowScanner permite compartir funciones scan entre *sql.Row y *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// collect recorre rows aplicando scan a cada fila.
func collect[T any](rows *sql.Rows, err error, scan func(rowScanner) (T, error)) ([]T, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
