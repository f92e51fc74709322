package postgres

import (
	"context"

	"doggy-daycare/internal/domain/users"
	"doggy-daycare/internal/ports/storage"
)

type userRepo struct {
	s *Store
}

const userColumns = `
	id, email, password_hash, api_key, role,
	location_id, name, phone, is_active, created_at`

func scanUser(row rowScanner) (users.User, error) {
	var u users.User
	var role string
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.APIKey, &role,
		&u.LocationID, &u.Name, &u.Phone, &u.Active, &u.CreatedAt,
	)
	u.Role = users.Role(role)
	return u, err
}

// Create devuelve storage.ErrConflict si el email (sin distinguir mayúsculas) ya existe.
func (r *userRepo) Create(ctx context.Context, u users.User) error {
	return exec(ctx, r.s.q(ctx), `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		u.ID, u.Email, u.PasswordHash, u.APIKey, string(u.Role),
		u.LocationID, u.Name, u.Phone, u.Active, u.CreatedAt,
	)
}

func (r *userRepo) get(ctx context.Context, where string, arg any) (users.User, error) {
	row := r.s.q(ctx).QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg)
	u, err := scanUser(row)
	if err != nil {
		return users.User{}, mapErr(err)
	}
	return u, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	return r.get(ctx, `id = $1`, id)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return r.get(ctx, `lower(email) = lower($1)`, email)
}

func (r *userRepo) GetByAPIKey(ctx context.Context, apiKey string) (users.User, error) {
	if apiKey == "" {
		return users.User{}, storage.ErrNotFound
	}
	return r.get(ctx, `api_key = $1`, apiKey)
}

func (r *userRepo) List(ctx context.Context, locationID *string) ([]users.User, error) {
	rows, err := r.s.q(ctx).QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE is_active
		  AND ($1::text IS NULL OR location_id IS NULL OR location_id = $1)
		ORDER BY role, name, seq
	`, locationID)
	return collect(rows, err, scanUser)
}
