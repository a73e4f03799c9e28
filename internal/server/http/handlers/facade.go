package handlers

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, username, password string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	ParseToken(token string) (pkgAuth.Identity, error)
}

// CatalogFacade provides read-only catalog and user lookups.
type CatalogFacade interface {
	Users(ctx context.Context) ([]model.User, error)
	Me(ctx context.Context) (*model.User, error)
	Occasions(ctx context.Context) ([]model.Occasion, error)
	Bouquets(ctx context.Context, occasionID string) ([]model.Bouquet, error)
	Bouquet(ctx context.Context, id string) (*model.Bouquet, error)
	Featured(ctx context.Context) ([]model.Bouquet, error)
}

// OrderFacade covers checkout and order submission.
type OrderFacade interface {
	Checkout(ctx context.Context, productIDs []string, origin string) (*model.CheckoutSession, error)
	AddOrder(ctx context.Context, productIDs []string) (*model.Order, error)
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	AuthFacade
	CatalogFacade
	OrderFacade
}
