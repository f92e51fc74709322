package catalog

import "context"

type Repository interface {
	CreateOffering(ctx context.Context, o Offering) error
	GetOffering(ctx context.Context, id string) (Offering, error)
	// ListOfferings con locationID incluye los globales (sin sede). Orden por nombre.
	ListOfferings(ctx context.Context, locationID *string) ([]Offering, error)

	CreatePackage(ctx context.Context, p DaycarePackage) error
	GetPackage(ctx context.Context, id string) (DaycarePackage, error)
	ListPackages(ctx context.Context, locationID *string) ([]DaycarePackage, error)

	CreateClientPackage(ctx context.Context, cp ClientPackage) error
	GetClientPackage(ctx context.Context, id string) (ClientPackage, error)
	// ListClientPackages: compra más reciente primero, con nombre y créditos del pase.
	ListClientPackages(ctx context.Context, clientID string) ([]ClientPackage, error)
	// AddCredits suma delta a remaining_credits de forma atómica. Devuelve
	// storage.ErrInsufficient si el resultado quedaría negativo.
	AddCredits(ctx context.Context, id string, delta int) error
}
