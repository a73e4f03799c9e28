package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/gateway"
	"github.com/polkiloo/storefront/internal/domain/repository"
	"github.com/polkiloo/storefront/internal/metrics"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewCatalogUseCase,
	newOrderUseCase,
	newCheckoutUseCase,
)

type orderParams struct {
	fx.In

	Orders  repository.OrderRepository
	Catalog repository.CatalogRepository
	Metrics *metrics.Metrics `optional:"true"`
	Logger  *slog.Logger
}

func newOrderUseCase(p orderParams) *OrderUseCase {
	var observer OrderObserver
	if p.Metrics != nil {
		observer = p.Metrics
	}
	return NewOrderUseCase(p.Orders, p.Catalog, observer, p.Logger)
}

type checkoutParams struct {
	fx.In

	Catalog  repository.CatalogRepository
	Payments gateway.PaymentGateway
	Config   *config.Config
	Logger   *slog.Logger
}

func newCheckoutUseCase(p checkoutParams) *CheckoutUseCase {
	return NewCheckoutUseCase(p.Catalog, p.Payments, CheckoutOptions{
		Currency:    p.Config.Currency,
		Concurrency: p.Config.CheckoutConcurrency,
	}, p.Logger)
}
