package postgres

import (
	"context"
	"time"

	"doggy-daycare/internal/domain/clients"
)

type clientRepo struct {
	s *Store
}

const clientColumns = `
	c.id, c.user_id, c.first_name, c.last_name, c.phone, c.email,
	c.address, c.suburb, c.state, c.postcode,
	c.emergency_contact_name, c.emergency_contact_phone,
	c.marketing_opt_in, c.notes, c.created_at`

func scanClient(row rowScanner, extra ...any) (clients.Client, error) {
	var c clients.Client
	dest := []any{
		&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.Phone, &c.Email,
		&c.Address, &c.Suburb, &c.State, &c.Postcode,
		&c.EmergencyContactName, &c.EmergencyContactPhone,
		&c.MarketingOptIn, &c.Notes, &c.CreatedAt,
	}
	err := row.Scan(append(dest, extra...)...)
	return c, err
}

func (r *clientRepo) Create(ctx context.Context, c clients.Client) error {
	return exec(ctx, r.s.q(ctx), `
		INSERT INTO clients (
			id, user_id, first_name, last_name, phone, email,
			address, suburb, state, postcode,
			emergency_contact_name, emergency_contact_phone,
			marketing_opt_in, notes, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		c.ID, c.UserID, c.FirstName, c.LastName, c.Phone, c.Email,
		c.Address, c.Suburb, c.State, c.Postcode,
		c.EmergencyContactName, c.EmergencyContactPhone,
		c.MarketingOptIn, c.Notes, c.CreatedAt,
	)
}

func (r *clientRepo) GetByID(ctx context.Context, id string) (clients.Client, error) {
	row := r.s.q(ctx).QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients c WHERE c.id = $1`, id)
	c, err := scanClient(row)
	if err != nil {
		return clients.Client{}, mapErr(err)
	}
	return c, nil
}

// List completa LoginEmail con el email del usuario vinculado, o el propio.
func (r *clientRepo) List(ctx context.Context) ([]clients.Client, error) {
	rows, err := r.s.q(ctx).QueryContext(ctx, `
		SELECT `+clientColumns+`, COALESCE(NULLIF(u.email, ''), c.email)
		FROM clients c
		LEFT JOIN users u ON u.id = c.user_id
		ORDER BY lower(c.last_name), lower(c.first_name), c.seq
	`)
	return collect(rows, err, func(row rowScanner) (clients.Client, error) {
		var login string
		c, err := scanClient(row, &login)
		c.LoginEmail = login
		return c, err
	})
}

func (r *clientRepo) CountCreatedOn(ctx context.Context, day time.Time) (int, error) {
	var n int
	err := r.s.q(ctx).QueryRowContext(ctx, `
		SELECT COUNT(*) FROM clients WHERE created_at >= $1 AND created_at < $2
	`, day, day.AddDate(0, 0, 1)).Scan(&n)
	return n, err
}
