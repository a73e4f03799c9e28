package test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/polkiloo/storefront/internal/domain/gateway"
	"github.com/polkiloo/storefront/internal/domain/model"
)

// PriceCall records a CreatePrice invocation.
type PriceCall struct {
	ProductRef string
	Name       string
	UnitAmount int64
	Currency   string
}

// PaymentGatewayStub imitates the processor in memory. Price ids have the form
// "price:<product name>:<unit amount>" so tests can map line items back to products.
type PaymentGatewayStub struct {
	mu       sync.Mutex
	products map[string]string
	Products []string
	Prices   []PriceCall
	Sessions []model.SessionRequest

	// FailProductAt makes the n-th (1-based) CreateProduct call fail.
	FailProductAt int
	FailPriceAt   int
	SessionErr    error
	// Delay is applied to every registration call and honours ctx.
	Delay time.Duration
}

// Calls returns the total number of processor calls issued.
func (s *PaymentGatewayStub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Products) + len(s.Prices) + len(s.Sessions)
}

func (s *PaymentGatewayStub) wait(ctx context.Context) error {
	if s.Delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(s.Delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *PaymentGatewayStub) CreateProduct(ctx context.Context, name, description string) (string, error) {
	if err := s.wait(ctx); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Products = append(s.Products, name)
	if s.FailProductAt > 0 && len(s.Products) == s.FailProductAt {
		return "", fmt.Errorf("product %q rejected", name)
	}
	if s.products == nil {
		s.products = make(map[string]string)
	}
	ref := fmt.Sprintf("prod_%d", len(s.Products))
	s.products[ref] = name
	return ref, nil
}

func (s *PaymentGatewayStub) CreatePrice(ctx context.Context, productRef string, unitAmount int64, currency string) (string, error) {
	if err := s.wait(ctx); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	name := s.products[productRef]
	s.Prices = append(s.Prices, PriceCall{ProductRef: productRef, Name: name, UnitAmount: unitAmount, Currency: currency})
	if s.FailPriceAt > 0 && len(s.Prices) == s.FailPriceAt {
		return "", fmt.Errorf("price for %s rejected", productRef)
	}
	return fmt.Sprintf("price:%s:%d", name, unitAmount), nil
}

func (s *PaymentGatewayStub) CreateCheckoutSession(ctx context.Context, req model.SessionRequest) (*model.CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sessions = append(s.Sessions, req)
	if s.SessionErr != nil {
		return nil, s.SessionErr
	}
	id := fmt.Sprintf("cs_%d", len(s.Sessions))
	return &model.CheckoutSession{ID: id, URL: "https://pay.example/" + id}, nil
}

var _ gateway.PaymentGateway = (*PaymentGatewayStub)(nil)
