package test

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn func(context.Context, string, string, string) (*model.User, string, error)
	LoginFn    func(context.Context, string, string) (*model.User, string, error)
	ParseFn    func(string) (pkgAuth.Identity, error)
}

// Register returns a user and token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, email, username, password string) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, email, username, password)
	}
	return &model.User{ID: 1, Email: email, Username: username}, "token", nil
}

// Login returns a user and token for successful login scenarios.
func (s AuthFacadeStub) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, email, password)
	}
	return &model.User{ID: 1, Email: email, Username: "user"}, "token", nil
}

// ParseToken returns identity for an authenticated user.
func (s AuthFacadeStub) ParseToken(token string) (pkgAuth.Identity, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return pkgAuth.Identity{UserID: 1}, nil
}

// CatalogFacadeStub provides controllable catalog reads.
type CatalogFacadeStub struct {
	UsersFn     func(context.Context) ([]model.User, error)
	MeFn        func(context.Context) (*model.User, error)
	OccasionsFn func(context.Context) ([]model.Occasion, error)
	BouquetsFn  func(context.Context, string) ([]model.Bouquet, error)
	BouquetFn   func(context.Context, string) (*model.Bouquet, error)
	FeaturedFn  func(context.Context) ([]model.Bouquet, error)
}

func (s CatalogFacadeStub) Users(ctx context.Context) ([]model.User, error) {
	if s.UsersFn != nil {
		return s.UsersFn(ctx)
	}
	return []model.User{{ID: 1, Email: "a@example.com", Username: "a"}}, nil
}

func (s CatalogFacadeStub) Me(ctx context.Context) (*model.User, error) {
	if s.MeFn != nil {
		return s.MeFn(ctx)
	}
	return &model.User{ID: 1, Email: "a@example.com", Username: "a"}, nil
}

func (s CatalogFacadeStub) Occasions(ctx context.Context) ([]model.Occasion, error) {
	if s.OccasionsFn != nil {
		return s.OccasionsFn(ctx)
	}
	return []model.Occasion{{ID: "o1", Name: "Birthday"}}, nil
}

func (s CatalogFacadeStub) Bouquets(ctx context.Context, occasionID string) ([]model.Bouquet, error) {
	if s.BouquetsFn != nil {
		return s.BouquetsFn(ctx, occasionID)
	}
	return []model.Bouquet{{ID: "p1", Name: "Roses", Occasion: &model.Occasion{ID: occasionID}}}, nil
}

func (s CatalogFacadeStub) Bouquet(ctx context.Context, id string) (*model.Bouquet, error) {
	if s.BouquetFn != nil {
		return s.BouquetFn(ctx, id)
	}
	return &model.Bouquet{ID: id, Name: "Roses"}, nil
}

func (s CatalogFacadeStub) Featured(ctx context.Context) ([]model.Bouquet, error) {
	if s.FeaturedFn != nil {
		return s.FeaturedFn(ctx)
	}
	return []model.Bouquet{{ID: "p1", Name: "Roses", Featured: true}}, nil
}

// OrderFacadeStub provides controllable checkout and order behaviour.
type OrderFacadeStub struct {
	CheckoutFn func(context.Context, []string, string) (*model.CheckoutSession, error)
	AddOrderFn func(context.Context, []string) (*model.Order, error)
}

// Checkout delegates to provided function or returns a default session.
func (s OrderFacadeStub) Checkout(ctx context.Context, productIDs []string, origin string) (*model.CheckoutSession, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, productIDs, origin)
	}
	return &model.CheckoutSession{ID: "cs_1", URL: "https://pay.example/cs_1"}, nil
}

// AddOrder delegates to provided function or echoes the ids back.
func (s OrderFacadeStub) AddOrder(ctx context.Context, productIDs []string) (*model.Order, error) {
	if s.AddOrderFn != nil {
		return s.AddOrderFn(ctx, productIDs)
	}
	return &model.Order{ID: "order-1", UserID: 1, ProductIDs: productIDs}, nil
}

// StorefrontFacadeStub aggregates facade dependencies for HTTP layer tests.
type StorefrontFacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	OrderFacadeStub
}
