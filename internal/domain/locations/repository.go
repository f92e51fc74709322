package locations

import "context"

type Repository interface {
	Create(ctx context.Context, l Location) error
	GetByID(ctx context.Context, id string) (Location, error)
	// List ordena por nombre.
	List(ctx context.Context) ([]Location, error)
}
