package payment

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/gateway"
	"github.com/polkiloo/storefront/internal/metrics"
)

// Module exposes the payment gateway implementation to the fx graph.
var Module = fx.Provide(newGateway)

type gatewayParams struct {
	fx.In

	Config  *config.Config
	Metrics *metrics.Metrics `optional:"true"`
	Logger  *slog.Logger
}

func newGateway(p gatewayParams) (gateway.PaymentGateway, error) {
	var observer CallObserver
	if p.Metrics != nil {
		observer = p.Metrics
	}
	return NewStripeGateway(p.Config.StripeSecretKey, p.Config.StripeAPIURL, observer, p.Logger)
}
