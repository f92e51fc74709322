package pets

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	// List ordena por nombre y completa OwnerName.
	List(ctx context.Context, filter ListFilter) ([]Pet, error)

	CreateVaccination(ctx context.Context, v Vaccination) error
	GetVaccination(ctx context.Context, id string) (Vaccination, error)
	// ListVaccinations ordena por vencimiento descendente.
	ListVaccinations(ctx context.Context, petID string) ([]Vaccination, error)
	// LatestExpiry devuelve el mayor vencimiento, o nil si no hay registros.
	LatestExpiry(ctx context.Context, petID string) (*time.Time, error)
}

type ListFilter struct {
	ClientID        string
	IncludeArchived bool
}
