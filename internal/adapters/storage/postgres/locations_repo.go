package postgres

import (
	"context"

	"doggy-daycare/internal/domain/locations"
)

type locationRepo struct {
	s *Store
}

const locationColumns = `
	id, name, timezone,
	address, suburb, state, postcode,
	capacity, base_daycare_rate, second_pet_discount, gst_registered,
	created_at`

func scanLocation(row rowScanner) (locations.Location, error) {
	var l locations.Location
	err := row.Scan(
		&l.ID, &l.Name, &l.Timezone,
		&l.Address, &l.Suburb, &l.State, &l.Postcode,
		&l.Capacity, &l.BaseDaycareRate, &l.SecondPetDiscount, &l.GSTRegistered,
		&l.CreatedAt,
	)
	return l, err
}

func (r *locationRepo) Create(ctx context.Context, l locations.Location) error {
	return exec(ctx, r.s.q(ctx), `
		INSERT INTO locations (`+locationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		l.ID, l.Name, l.Timezone,
		l.Address, l.Suburb, l.State, l.Postcode,
		l.Capacity, l.BaseDaycareRate, l.SecondPetDiscount, l.GSTRegistered,
		l.CreatedAt,
	)
}

func (r *locationRepo) GetByID(ctx context.Context, id string) (locations.Location, error) {
	row := r.s.q(ctx).QueryRowContext(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = $1`, id)
	l, err := scanLocation(row)
	if err != nil {
		return locations.Location{}, mapErr(err)
	}
	return l, nil
}

func (r *locationRepo) List(ctx context.Context) ([]locations.Location, error) {
	rows, err := r.s.q(ctx).QueryContext(ctx, `
		SELECT `+locationColumns+`
		FROM locations
		ORDER BY lower(name), seq
	`)
	return collect(rows, err, scanLocation)
}
