package payment

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// CallObserver receives one notification per provider call.
type CallObserver interface {
	ObserveGatewayCall(operation string, err error)
}

// StripeGateway registers products, prices and checkout sessions with Stripe.
type StripeGateway struct {
	api      *client.API
	observer CallObserver
	logger   *slog.Logger
}

// NewStripeGateway creates a gateway authenticated with secretKey. A non-empty
// apiURL points every backend at that base URL with retries disabled, which is
// how tests and local mocks are wired.
func NewStripeGateway(secretKey, apiURL string, observer CallObserver, logger *slog.Logger) (*StripeGateway, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("stripe secret key is empty")
	}

	var backends *stripe.Backends
	if apiURL != "" {
		parsed, err := url.Parse(apiURL)
		if err != nil {
			return nil, fmt.Errorf("parse stripe url: %w", err)
		}
		if !parsed.IsAbs() {
			return nil, fmt.Errorf("stripe url must be absolute")
		}
		backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
			URL:               stripe.String(apiURL),
			MaxNetworkRetries: stripe.Int64(0),
			LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
		})
		backends = &stripe.Backends{API: backend, Connect: backend, Uploads: backend}
	}

	return &StripeGateway{
		api:      client.New(secretKey, backends),
		observer: observer,
		logger:   logger,
	}, nil
}

// CreateProduct registers a product and returns its identifier.
func (g *StripeGateway) CreateProduct(ctx context.Context, name, description string) (string, error) {
	params := &stripe.ProductParams{Name: stripe.String(name)}
	if description != "" {
		params.Description = stripe.String(description)
	}
	params.Context = ctx

	product, err := g.api.Products.New(params)
	g.observe("create_product", err)
	if err != nil {
		return "", fmt.Errorf("create product %q: %w", name, err)
	}
	return product.ID, nil
}

// CreatePrice registers a unit price in minor units for a product.
func (g *StripeGateway) CreatePrice(ctx context.Context, productID string, unitAmount int64, currency string) (string, error) {
	params := &stripe.PriceParams{
		Product:    stripe.String(productID),
		UnitAmount: stripe.Int64(unitAmount),
		Currency:   stripe.String(currency),
	}
	params.Context = ctx

	price, err := g.api.Prices.New(params)
	g.observe("create_price", err)
	if err != nil {
		return "", fmt.Errorf("create price for %s: %w", productID, err)
	}
	return price.ID, nil
}

// CreateCheckoutSession opens a hosted checkout session.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req model.SessionRequest) (*model.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(req.Mode)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	for _, method := range req.PaymentMethods {
		params.PaymentMethodTypes = append(params.PaymentMethodTypes, stripe.String(string(method)))
	}
	for _, item := range req.LineItems {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			Price:    stripe.String(item.PriceID),
			Quantity: stripe.Int64(item.Quantity),
		})
	}
	params.Context = ctx

	session, err := g.api.CheckoutSessions.New(params)
	g.observe("create_checkout_session", err)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return &model.CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

func (g *StripeGateway) observe(operation string, err error) {
	if err != nil {
		g.logger.Error("payment provider call failed", slog.String("operation", operation), slog.Any("error", err))
	}
	if g.observer != nil {
		g.observer.ObserveGatewayCall(operation, err)
	}
}
