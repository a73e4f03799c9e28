package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
)

// BuildOrder materializes an order from requested product ids. Every id must
// resolve; duplicates are kept as separate entries in input order. The whole
// list is resolved before the order is returned.
func BuildOrder(ctx context.Context, catalog repository.CatalogRepository, productIDs []string) (*model.Order, error) {
	if len(productIDs) == 0 {
		return nil, domainErrors.ErrEmptyOrder
	}
	for _, id := range productIDs {
		if strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("%w: empty id", domainErrors.ErrProductNotFound)
		}
	}

	found, err := catalog.FindBouquetsByIDs(ctx, uniqueIDs(productIDs))
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Bouquet, len(found))
	for _, b := range found {
		byID[b.ID] = b
	}

	products := make([]model.Bouquet, 0, len(productIDs))
	for _, id := range productIDs {
		b, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domainErrors.ErrProductNotFound, id)
		}
		products = append(products, b)
	}

	return &model.Order{
		ID:         uuid.NewString(),
		ProductIDs: append([]string(nil), productIDs...),
		Products:   products,
	}, nil
}

// OrderObserver is notified about committed orders.
type OrderObserver interface {
	OrderCommitted()
}

// OrderUseCase attaches confirmed orders to the caller's history.
type OrderUseCase struct {
	orders   repository.OrderRepository
	catalog  repository.CatalogRepository
	observer OrderObserver
	logger   *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, catalog repository.CatalogRepository, observer OrderObserver, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{orders: orders, catalog: catalog, observer: observer, logger: logger}
}

// AddOrder builds an order and appends it to the history of the identity in ctx.
// It never contacts the payment processor.
func (u *OrderUseCase) AddOrder(ctx context.Context, productIDs []string) (*model.Order, error) {
	identity, ok := pkgAuth.IdentityFrom(ctx)
	if !ok {
		return nil, domainErrors.ErrUnauthenticated
	}

	order, err := BuildOrder(ctx, u.catalog, productIDs)
	if err != nil {
		return nil, err
	}

	if err := u.orders.AppendToUser(ctx, identity.UserID, order); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUnauthenticated
		}
		return nil, err
	}

	if u.observer != nil {
		u.observer.OrderCommitted()
	}
	u.logger.Info("order committed",
		slog.String("order", order.ID),
		slog.Int64("user", identity.UserID),
		slog.Int("products", len(order.ProductIDs)),
	)
	return order, nil
}
