package app

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
	"github.com/polkiloo/storefront/internal/usecase"
)

// StorefrontFacade is the single entry point the transport layer talks to.
type StorefrontFacade struct {
	auth     *usecase.AuthUseCase
	catalog  *usecase.CatalogUseCase
	orders   *usecase.OrderUseCase
	checkout *usecase.CheckoutUseCase
}

func NewStorefrontFacade(auth *usecase.AuthUseCase, catalog *usecase.CatalogUseCase, orders *usecase.OrderUseCase, checkout *usecase.CheckoutUseCase) *StorefrontFacade {
	return &StorefrontFacade{auth: auth, catalog: catalog, orders: orders, checkout: checkout}
}

func (f *StorefrontFacade) Register(ctx context.Context, email, username, password string) (*model.User, string, error) {
	return f.auth.Register(ctx, email, username, password)
}

func (f *StorefrontFacade) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Login(ctx, email, password)
}

func (f *StorefrontFacade) ParseToken(token string) (pkgAuth.Identity, error) {
	return f.auth.ParseToken(token)
}

func (f *StorefrontFacade) Users(ctx context.Context) ([]model.User, error) {
	return f.catalog.Users(ctx)
}

func (f *StorefrontFacade) Me(ctx context.Context) (*model.User, error) {
	return f.catalog.Me(ctx)
}

func (f *StorefrontFacade) Occasions(ctx context.Context) ([]model.Occasion, error) {
	return f.catalog.Occasions(ctx)
}

func (f *StorefrontFacade) Bouquets(ctx context.Context, occasionID string) ([]model.Bouquet, error) {
	return f.catalog.Bouquets(ctx, occasionID)
}

func (f *StorefrontFacade) Bouquet(ctx context.Context, id string) (*model.Bouquet, error) {
	return f.catalog.Bouquet(ctx, id)
}

func (f *StorefrontFacade) Featured(ctx context.Context) ([]model.Bouquet, error) {
	return f.catalog.Featured(ctx)
}

func (f *StorefrontFacade) Checkout(ctx context.Context, productIDs []string, origin string) (*model.CheckoutSession, error) {
	return f.checkout.Checkout(ctx, productIDs, origin)
}

func (f *StorefrontFacade) AddOrder(ctx context.Context, productIDs []string) (*model.Order, error) {
	return f.orders.AddOrder(ctx, productIDs)
}
