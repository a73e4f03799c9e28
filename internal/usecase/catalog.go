package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
)

// CatalogUseCase serves read-only lookups of occasions, bouquets and users.
type CatalogUseCase struct {
	users   repository.UserRepository
	orders  repository.OrderRepository
	catalog repository.CatalogRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(users repository.UserRepository, orders repository.OrderRepository, catalog repository.CatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{users: users, orders: orders, catalog: catalog}
}

// Users returns every user with their order history populated.
func (u *CatalogUseCase) Users(ctx context.Context) ([]model.User, error) {
	users, err := u.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if err := u.attachOrders(ctx, &users[i]); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// Me returns the caller's profile. Requires an identity in ctx.
func (u *CatalogUseCase) Me(ctx context.Context) (*model.User, error) {
	identity, ok := pkgAuth.IdentityFrom(ctx)
	if !ok {
		return nil, domainErrors.ErrUnauthenticated
	}

	usr, err := u.users.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUnauthenticated
		}
		return nil, err
	}
	if err := u.attachOrders(ctx, usr); err != nil {
		return nil, err
	}
	return usr, nil
}

func (u *CatalogUseCase) Occasions(ctx context.Context) ([]model.Occasion, error) {
	return u.catalog.Occasions(ctx)
}

func (u *CatalogUseCase) Bouquets(ctx context.Context, occasionID string) ([]model.Bouquet, error) {
	return u.catalog.BouquetsByOccasion(ctx, occasionID)
}

func (u *CatalogUseCase) Bouquet(ctx context.Context, id string) (*model.Bouquet, error) {
	return u.catalog.Bouquet(ctx, id)
}

func (u *CatalogUseCase) Featured(ctx context.Context) ([]model.Bouquet, error) {
	return u.catalog.Featured(ctx)
}

func (u *CatalogUseCase) attachOrders(ctx context.Context, usr *model.User) error {
	orders, err := u.orders.ListByUser(ctx, usr.ID)
	if err != nil {
		return err
	}
	if err := populateOrders(ctx, u.catalog, orders); err != nil {
		return err
	}
	usr.Orders = orders
	return nil
}

// populateOrders resolves product references of stored orders. References that
// no longer resolve are left out of Products.
func populateOrders(ctx context.Context, catalog repository.CatalogRepository, orders []model.Order) error {
	var ids []string
	for _, o := range orders {
		ids = append(ids, o.ProductIDs...)
	}
	if len(ids) == 0 {
		return nil
	}

	found, err := catalog.FindBouquetsByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return err
	}
	byID := make(map[string]model.Bouquet, len(found))
	for _, b := range found {
		byID[b.ID] = b
	}

	for i := range orders {
		products := make([]model.Bouquet, 0, len(orders[i].ProductIDs))
		for _, id := range orders[i].ProductIDs {
			if b, ok := byID[id]; ok {
				products = append(products, b)
			}
		}
		orders[i].Products = products
	}
	return nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
