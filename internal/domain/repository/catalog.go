package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// CatalogRepository provides read-only access to occasions and bouquets.
type CatalogRepository interface {
	Occasions(ctx context.Context) ([]model.Occasion, error)
	BouquetsByOccasion(ctx context.Context, occasionID string) ([]model.Bouquet, error)
	Bouquet(ctx context.Context, id string) (*model.Bouquet, error)
	Featured(ctx context.Context) ([]model.Bouquet, error)
	// FindBouquetsByIDs returns bouquets that exist among ids, in no particular order.
	FindBouquetsByIDs(ctx context.Context, ids []string) ([]model.Bouquet, error)
}
