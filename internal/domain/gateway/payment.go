package gateway

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// PaymentGateway is the external payment processor boundary.
// Retries, if any, belong to the implementation; callers treat every error as terminal.
type PaymentGateway interface {
	CreateProduct(ctx context.Context, name, description string) (string, error)
	CreatePrice(ctx context.Context, productID string, unitAmount int64, currency string) (string, error)
	CreateCheckoutSession(ctx context.Context, req model.SessionRequest) (*model.CheckoutSession, error)
}
