package interfaces

import (
	"context"

	"evdealer/internal/domain/entities"
)

// ICatalogService is the read-only catalog collaborator.
//
// Lookups return a zero value (empty ID) when no record matches; any error is
// a transport/service failure. Nested objects may be partially populated.
type ICatalogService interface {
	GetUnit(ctx context.Context, id string) (entities.Unit, error)
	GetVariant(ctx context.Context, id string) (entities.Variant, error)
	GetModel(ctx context.Context, id string) (entities.Model, error)
	GetBrand(ctx context.Context, id string) (entities.Brand, error)
	ListColors(ctx context.Context) ([]entities.Color, error)
	ListVariants(ctx context.Context) ([]entities.Variant, error)
	ListInventory(ctx context.Context, filter entities.InventoryFilter) ([]entities.Unit, error)
}
