package clients

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, c Client) error
	GetByID(ctx context.Context, id string) (Client, error)
	// List ordena por apellido y nombre, completando LoginEmail.
	List(ctx context.Context) ([]Client, error)
	// CountCreatedOn cuenta clientes dados de alta en el día [day, day+24h).
	CountCreatedOn(ctx context.Context, day time.Time) (int, error)
}
