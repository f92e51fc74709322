package postgres

import (
	"context"
	"database/sql"

	"doggy-daycare/internal/domain/catalog"
)

type catalogRepo struct {
	s *Store
}

const offeringColumns = `
	id, name, description, default_duration_minutes, price,
	gst_applicable, location_id, allow_multiple_pets, attributes, created_at`

func scanOffering(row rowScanner) (catalog.Offering, error) {
	var o catalog.Offering
	var a jsonMap
	err := row.Scan(
		&o.ID, &o.Name, &o.Description, &o.DefaultDurationMinutes, &o.Price,
		&o.GSTApplicable, &o.LocationID, &o.AllowMultiplePets, &a, &o.CreatedAt,
	)
	o.Attributes = a
	return o, err
}

func (r *catalogRepo) CreateOffering(ctx context.Context, o catalog.Offering) error {
	return exec(ctx, r.s.q(ctx), `
		INSERT INTO services (`+offeringColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		o.ID, o.Name, o.Description, o.DefaultDurationMinutes, o.Price,
		o.GSTApplicable, o.LocationID, o.AllowMultiplePets, attrs(o.Attributes), o.CreatedAt,
	)
}

func (r *catalogRepo) GetOffering(ctx context.Context, id string) (catalog.Offering, error) {
	row := r.s.q(ctx).QueryRowContext(ctx, `SELECT `+offeringColumns+` FROM services WHERE id = $1`, id)
	o, err := scanOffering(row)
	if err != nil {
		return catalog.Offering{}, mapErr(err)
	}
	return o, nil
}

// ListOfferings: con sede incluye los globales (location_id NULL).
func (r *catalogRepo) ListOfferings(ctx context.Context, locationID *string) ([]catalog.Offering, error) {
	rows, err := r.s.q(ctx).QueryContext(ctx, `
		SELECT `+offeringColumns+`
		FROM services
		WHERE $1::text IS NULL OR location_id IS NULL OR location_id = $1
		ORDER BY name, seq
	`, locationID)
	return collect(rows, err, scanOffering)
}

const packageColumns = `
	id, name, description, location_id, total_credits, price,
	gst_inclusive, valid_days, attributes, created_at`

func scanPackage(row rowScanner) (catalog.DaycarePackage, error) {
	var p catalog.DaycarePackage
	var a jsonMap
	var validDays sql.NullInt64
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.LocationID, &p.TotalCredits, &p.Price,
		&p.GSTInclusive, &validDays, &a, &p.CreatedAt,
	)
	if validDays.Valid {
		v := int(validDays.Int64)
		p.ValidDays = &v
	}
	p.Attributes = a
	return p, err
}

func (r *catalogRepo) CreatePackage(ctx context.Context, p catalog.DaycarePackage) error {
	var validDays sql.NullInt64
	if p.ValidDays != nil {
		validDays = sql.NullInt64{Int64: int64(*p.ValidDays), Valid: true}
	}
	return exec(ctx, r.s.q(ctx), `
		INSERT INTO daycare_packages (`+packageColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		p.ID, p.Name, p.Description, p.LocationID, p.TotalCredits, p.Price,
		p.GSTInclusive, validDays, attrs(p.Attributes), p.CreatedAt,
	)
}

func (r *catalogRepo) GetPackage(ctx context.Context, id string) (catalog.DaycarePackage, error) {
	row := r.s.q(ctx).QueryRowContext(ctx, `SELECT `+packageColumns+` FROM daycare_packages WHERE id = $1`, id)
	p, err := scanPackage(row)
	if err != nil {
		return catalog.DaycarePackage{}, mapErr(err)
	}
	return p, nil
}

func (r *catalogRepo) ListPackages(ctx context.Context, locationID *string) ([]catalog.DaycarePackage, error) {
	rows, err := r.s.q(ctx).QueryContext(ctx, `
		SELECT `+packageColumns+`
		FROM daycare_packages
		WHERE $1::text IS NULL OR location_id IS NULL OR location_id = $1
		ORDER BY name, seq
	`, locationID)
	return collect(rows, err, scanPackage)
}

const clientPackageSelect = `
	SELECT
		cp.id, cp.client_id, cp.package_id, cp.remaining_credits,
		cp.purchase_date, cp.expiry_date, cp.attributes,
		COALESCE(p.name, ''), COALESCE(p.total_credits, 0)
	FROM client_packages cp
	LEFT JOIN daycare_packages p ON p.id = cp.package_id`

func scanClientPackage(row rowScanner) (catalog.ClientPackage, error) {
	var cp catalog.ClientPackage
	var expiry sql.NullTime
	var a jsonMap
	err := row.Scan(
		&cp.ID, &cp.ClientID, &cp.PackageID, &cp.RemainingCredits,
		&cp.PurchaseDate, &expiry, &a,
		&cp.PackageName, &cp.TotalCredits,
	)
	cp.PurchaseDate = cp.PurchaseDate.UTC()
	cp.ExpiryDate = nullTime(expiry)
	cp.Attributes = a
	return cp, err
}

func (r *catalogRepo) CreateClientPackage(ctx context.Context, cp catalog.ClientPackage) error {
	return exec(ctx, r.s.q(ctx), `
		INSERT INTO client_packages (
			id, client_id, package_id, remaining_credits,
			purchase_date, expiry_date, attributes
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		cp.ID, cp.ClientID, cp.PackageID, cp.RemainingCredits,
		cp.PurchaseDate, toNullTime(cp.ExpiryDate), attrs(cp.Attributes),
	)
}

func (r *catalogRepo) GetClientPackage(ctx context.Context, id string) (catalog.ClientPackage, error) {
	row := r.s.q(ctx).QueryRowContext(ctx, clientPackageSelect+` WHERE cp.id = $1`, id)
	cp, err := scanClientPackage(row)
	if err != nil {
		return catalog.ClientPackage{}, mapErr(err)
	}
	return cp, nil
}

func (r *catalogRepo) ListClientPackages(ctx context.Context, clientID string) ([]catalog.ClientPackage, error) {
	rows, err := r.s.q(ctx).QueryContext(ctx, clientPackageSelect+`
		WHERE cp.client_id = $1
		ORDER BY cp.purchase_date DESC, cp.seq
	`, clientID)
	return collect(rows, err, scanClientPackage)
}

func (r *catalogRepo) AddCredits(ctx context.Context, id string, delta int) error {
	return r.s.addGuarded(ctx, "client_packages", "remaining_credits", id, delta)
}
