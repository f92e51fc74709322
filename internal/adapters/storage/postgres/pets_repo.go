package postgres

import (
	"context"
	"database/sql"
	"time"

	"doggy-daycare/internal/domain/pets"
)

type petRepo struct {
	s *Store
}

const petColumns = `
	p.id, p.client_id,
	p.name, p.breed, p.birth_date, p.gender, p.colour,
	p.medical_notes, p.feeding_instructions, p.behaviour_flags, p.allergies,
	p.photo_url, p.archived, p.created_at`

func scanPet(row rowScanner, extra ...any) (pets.Pet, error) {
	var p pets.Pet
	var bd sql.NullTime
	var gender string
	dest := []any{
		&p.ID, &p.ClientID,
		&p.Name, &p.Breed, &bd, &gender, &p.Colour,
		&p.MedicalNotes, &p.FeedingInstructions, &p.BehaviourFlags, &p.Allergies,
		&p.PhotoURL, &p.Archived, &p.CreatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return pets.Pet{}, err
	}
	// birth_date es DATE: pgx lo mapea a medianoche UTC
	p.BirthDate = nullTime(bd)
	p.Gender = pets.Gender(gender)
	return p, nil
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	return exec(ctx, r.s.q(ctx), `
		INSERT INTO pets (
			id, client_id,
			name, breed, birth_date, gender, colour,
			medical_notes, feeding_instructions, behaviour_flags, allergies,
			photo_url, archived, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		p.ID, p.ClientID,
		p.Name, p.Breed, toNullTime(p.BirthDate), string(p.Gender), p.Colour,
		p.MedicalNotes, p.FeedingInstructions, p.BehaviourFlags, p.Allergies,
		p.PhotoURL, p.Archived, p.CreatedAt,
	)
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	return mustAffect(r.s.q(ctx).ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			breed = $3,
			birth_date = $4,
			gender = $5,
			colour = $6,
			medical_notes = $7,
			feeding_instructions = $8,
			behaviour_flags = $9,
			allergies = $10,
			photo_url = $11,
			archived = $12
		WHERE id = $1
	`,
		p.ID,
		p.Name, p.Breed, toNullTime(p.BirthDate), string(p.Gender), p.Colour,
		p.MedicalNotes, p.FeedingInstructions, p.BehaviourFlags, p.Allergies,
		p.PhotoURL, p.Archived,
	))
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	row := r.s.q(ctx).QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets p WHERE p.id = $1`, id)
	p, err := scanPet(row)
	if err != nil {
		return pets.Pet{}, mapErr(err)
	}
	return p, nil
}

func (r *petRepo) List(ctx context.Context, filter pets.ListFilter) ([]pets.Pet, error) {
	rows, err := r.s.q(ctx).QueryContext(ctx, `
		SELECT `+petColumns+`, COALESCE(c.first_name || ' ' || c.last_name, '')
		FROM pets p
		LEFT JOIN clients c ON c.id = p.client_id
		WHERE ($1 = '' OR p.client_id = $1)
		  AND ($2 OR NOT p.archived)
		ORDER BY p.name, p.seq
	`, filter.ClientID, filter.IncludeArchived)
	return collect(rows, err, func(row rowScanner) (pets.Pet, error) {
		var owner string
		p, err := scanPet(row, &owner)
		p.OwnerName = owner
		return p, err
	})
}

const vaccinationColumns = `id, pet_id, vaccine_name, expiry_date, document_url, notes, created_at`

func scanVaccination(row rowScanner) (pets.Vaccination, error) {
	var v pets.Vaccination
	err := row.Scan(&v.ID, &v.PetID, &v.VaccineName, &v.ExpiryDate, &v.DocumentURL, &v.Notes, &v.CreatedAt)
	v.ExpiryDate = v.ExpiryDate.UTC()
	return v, err
}

func (r *petRepo) CreateVaccination(ctx context.Context, v pets.Vaccination) error {
	return exec(ctx, r.s.q(ctx), `
		INSERT INTO vaccinations (`+vaccinationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, v.ID, v.PetID, v.VaccineName, v.ExpiryDate, v.DocumentURL, v.Notes, v.CreatedAt)
}

func (r *petRepo) GetVaccination(ctx context.Context, id string) (pets.Vaccination, error) {
	row := r.s.q(ctx).QueryRowContext(ctx, `SELECT `+vaccinationColumns+` FROM vaccinations WHERE id = $1`, id)
	v, err := scanVaccination(row)
	if err != nil {
		return pets.Vaccination{}, mapErr(err)
	}
	return v, nil
}

func (r *petRepo) ListVaccinations(ctx context.Context, petID string) ([]pets.Vaccination, error) {
	rows, err := r.s.q(ctx).QueryContext(ctx, `
		SELECT `+vaccinationColumns+`
		FROM vaccinations
		WHERE pet_id = $1
		ORDER BY expiry_date DESC, seq
	`, petID)
	return collect(rows, err, scanVaccination)
}

func (r *petRepo) LatestExpiry(ctx context.Context, petID string) (*time.Time, error) {
	var latest sql.NullTime
	if err := r.s.q(ctx).QueryRowContext(ctx, `
		SELECT MAX(expiry_date) FROM vaccinations WHERE pet_id = $1
	`, petID).Scan(&latest); err != nil {
		return nil, err
	}
	return nullTime(latest), nil
}
