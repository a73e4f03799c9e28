package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/gateway"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

const (
	successPath = "/success?session_id={CHECKOUT_SESSION_ID}"
	cancelPath  = "/"
)

// CheckoutUseCase turns a cart into a hosted payment session.
type CheckoutUseCase struct {
	catalog     repository.CatalogRepository
	payments    gateway.PaymentGateway
	currency    string
	concurrency int
	logger      *slog.Logger
}

// CheckoutOptions tunes processor interaction.
type CheckoutOptions struct {
	Currency string
	// Concurrency bounds in-flight product registrations. 1 registers strictly in order.
	Concurrency int
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(catalog repository.CatalogRepository, payments gateway.PaymentGateway, opts CheckoutOptions, logger *slog.Logger) *CheckoutUseCase {
	if opts.Currency == "" {
		opts.Currency = "usd"
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	return &CheckoutUseCase{
		catalog:     catalog,
		payments:    payments,
		currency:    opts.Currency,
		concurrency: opts.Concurrency,
		logger:      logger,
	}
}

// Checkout resolves productIDs, registers one product and price per entry and
// opens a single card-only payment session redirecting back to origin.
// Records already created at the processor are not removed when a later call fails.
func (u *CheckoutUseCase) Checkout(ctx context.Context, productIDs []string, origin string) (*model.CheckoutSession, error) {
	origin, err := NormalizeOrigin(origin)
	if err != nil {
		return nil, err
	}

	order, err := BuildOrder(ctx, u.catalog, productIDs)
	if err != nil {
		return nil, err
	}

	items, err := u.registerLineItems(ctx, order.Products)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		u.reportOrphans(int64(2*len(items)), err)
		return nil, err
	}

	session, err := u.payments.CreateCheckoutSession(ctx, model.SessionRequest{
		LineItems:      items,
		SuccessURL:     origin + successPath,
		CancelURL:      origin + cancelPath,
		Mode:           model.CheckoutModePayment,
		PaymentMethods: []model.PaymentMethod{model.PaymentMethodCard},
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		} else {
			err = fmt.Errorf("open checkout session: %w: %w", domainErrors.ErrUpstreamPayment, err)
		}
		u.reportOrphans(int64(2*len(items)), err)
		return nil, err
	}

	u.logger.Info("checkout session opened",
		slog.String("session", session.ID),
		slog.String("order", order.ID),
		slog.Int("line_items", len(items)),
	)
	return session, nil
}

// registerLineItems creates a product/price pair per entry. Results are indexed
// by position so line items follow input order whatever the concurrency.
func (u *CheckoutUseCase) registerLineItems(ctx context.Context, products []model.Bouquet) ([]model.LineItem, error) {
	items := make([]model.LineItem, len(products))
	var created atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.concurrency)
	for i, product := range products {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			productRef, err := u.payments.CreateProduct(gctx, product.Name, product.Description)
			if err != nil {
				return u.upstreamError(ctx, "register product "+product.ID, err)
			}
			created.Add(1)

			priceRef, err := u.payments.CreatePrice(gctx, productRef, model.MinorUnits(product.Price), u.currency)
			if err != nil {
				return u.upstreamError(ctx, "register price for "+product.ID, err)
			}
			created.Add(1)

			items[i] = model.LineItem{PriceID: priceRef, Quantity: 1}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		u.reportOrphans(created.Load(), err)
		return nil, err
	}
	return items, nil
}

// reportOrphans logs processor records created for a checkout that did not
// reach an open session. Every registered line item leaves a product and a price.
func (u *CheckoutUseCase) reportOrphans(n int64, cause error) {
	if n == 0 {
		return
	}
	u.logger.Warn("checkout aborted, processor records left behind",
		slog.Int64("orphaned", n),
		slog.Any("error", cause),
	)
}

// upstreamError keeps cancellation of the caller's request distinguishable from processor failures.
func (u *CheckoutUseCase) upstreamError(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("%s: %w: %w", op, domainErrors.ErrUpstreamPayment, err)
}

// NormalizeOrigin reduces raw to scheme://host[:port]. Only absolute http and
// https origins are accepted.
func NormalizeOrigin(raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", fmt.Errorf("%w: %q", domainErrors.ErrInvalidOrigin, raw)
	}
	return parsed.Scheme + "://" + parsed.Host, nil
}
