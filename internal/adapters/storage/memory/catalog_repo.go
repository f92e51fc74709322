package memory

import (
	"context"
	"sort"

	"doggy-daycare/internal/domain/catalog"
	"doggy-daycare/internal/ports/storage"
)

type catalogRepo struct {
	s *Store
}

// forLocation: sin filtro todo; con filtro la sede más los globales.
func forLocation(rowLocation, filter *string) bool {
	return filter == nil || rowLocation == nil || *rowLocation == *filter
}

func (r *catalogRepo) CreateOffering(ctx context.Context, o catalog.Offering) error {
	defer r.s.lock(ctx)()
	return insert(r.s, r.s.t.offerings, o.ID, o)
}

func (r *catalogRepo) GetOffering(ctx context.Context, id string) (catalog.Offering, error) {
	defer r.s.lock(ctx)()
	o, ok := r.s.t.offerings.get(id)
	if !ok {
		return catalog.Offering{}, storage.ErrNotFound
	}
	return o, nil
}

func (r *catalogRepo) ListOfferings(ctx context.Context, locationID *string) ([]catalog.Offering, error) {
	defer r.s.lock(ctx)()
	out := make([]catalog.Offering, 0)
	for _, o := range r.s.t.offerings.rows() {
		if forLocation(o.LocationID, locationID) {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *catalogRepo) CreatePackage(ctx context.Context, p catalog.DaycarePackage) error {
	defer r.s.lock(ctx)()
	return insert(r.s, r.s.t.packages, p.ID, p)
}

func (r *catalogRepo) GetPackage(ctx context.Context, id string) (catalog.DaycarePackage, error) {
	defer r.s.lock(ctx)()
	p, ok := r.s.t.packages.get(id)
	if !ok {
		return catalog.DaycarePackage{}, storage.ErrNotFound
	}
	return p, nil
}

func (r *catalogRepo) ListPackages(ctx context.Context, locationID *string) ([]catalog.DaycarePackage, error) {
	defer r.s.lock(ctx)()
	out := make([]catalog.DaycarePackage, 0)
	for _, p := range r.s.t.packages.rows() {
		if forLocation(p.LocationID, locationID) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *catalogRepo) CreateClientPackage(ctx context.Context, cp catalog.ClientPackage) error {
	defer r.s.lock(ctx)()
	return insert(r.s, r.s.t.clientPackages, cp.ID, cp)
}

func (r *catalogRepo) withPackage(cp catalog.ClientPackage) catalog.ClientPackage {
	if p, ok := r.s.t.packages.get(cp.PackageID); ok {
		cp.PackageName = p.Name
		cp.TotalCredits = p.TotalCredits
	}
	return cp
}

func (r *catalogRepo) GetClientPackage(ctx context.Context, id string) (catalog.ClientPackage, error) {
	defer r.s.lock(ctx)()
	cp, ok := r.s.t.clientPackages.get(id)
	if !ok {
		return catalog.ClientPackage{}, storage.ErrNotFound
	}
	return r.withPackage(cp), nil
}

func (r *catalogRepo) ListClientPackages(ctx context.Context, clientID string) ([]catalog.ClientPackage, error) {
	defer r.s.lock(ctx)()
	out := make([]catalog.ClientPackage, 0)
	for _, cp := range r.s.t.clientPackages.rows() {
		if cp.ClientID == clientID {
			out = append(out, r.withPackage(cp))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PurchaseDate.After(out[j].PurchaseDate) })
	return out, nil
}

func (r *catalogRepo) AddCredits(ctx context.Context, id string, delta int) error {
	defer r.s.lock(ctx)()
	cp, ok := r.s.t.clientPackages.get(id)
	if !ok {
		return storage.ErrNotFound
	}
	if cp.RemainingCredits+delta < 0 {
		return storage.ErrInsufficient
	}
	cp.RemainingCredits += delta
	r.s.t.clientPackages.replace(id, cp)
	return nil
}
