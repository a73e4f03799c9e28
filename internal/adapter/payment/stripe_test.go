package payment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/polkiloo/storefront/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type recordedCall struct {
	path string
	form url.Values
}

type fakeProvider struct {
	mu     sync.Mutex
	calls  []recordedCall
	failOn string
}

func (f *fakeProvider) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if r.Header.Get("Authorization") != "Bearer sk_test_123" {
			t.Errorf("unexpected authorization header %q", r.Header.Get("Authorization"))
		}
		f.mu.Lock()
		f.calls = append(f.calls, recordedCall{path: r.URL.Path, form: r.PostForm})
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == f.failOn {
			w.WriteHeader(http.StatusPaymentRequired)
			_, _ = io.WriteString(w, `{"error":{"type":"invalid_request_error","message":"rejected"}}`)
			return
		}
		switch r.URL.Path {
		case "/v1/products":
			_, _ = io.WriteString(w, `{"id":"prod_1","object":"product"}`)
		case "/v1/prices":
			_, _ = io.WriteString(w, `{"id":"price_1","object":"price"}`)
		case "/v1/checkout/sessions":
			_, _ = io.WriteString(w, `{"id":"cs_1","object":"checkout.session","url":"https://pay.example/cs_1"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":{"type":"invalid_request_error","message":"unknown"}}`)
		}
	})
}

type observerStub struct {
	mu    sync.Mutex
	calls map[string]int
	fails int
}

func (o *observerStub) ObserveGatewayCall(operation string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.calls == nil {
		o.calls = map[string]int{}
	}
	o.calls[operation]++
	if err != nil {
		o.fails++
	}
}

func newTestGateway(t *testing.T, provider *fakeProvider, observer CallObserver) *StripeGateway {
	t.Helper()
	srv := httptest.NewServer(provider.handler(t))
	t.Cleanup(srv.Close)
	gw, err := NewStripeGateway("sk_test_123", srv.URL, observer, testLogger())
	if err != nil {
		t.Fatalf("failed to create gateway: %v", err)
	}
	return gw
}

func TestNewStripeGatewayValidatesInput(t *testing.T) {
	if _, err := NewStripeGateway("", "", nil, testLogger()); err == nil {
		t.Fatal("expected error for empty key")
	}
	if _, err := NewStripeGateway("sk_test_123", "://bad", nil, testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewStripeGateway("sk_test_123", "/relative", nil, testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
	if _, err := NewStripeGateway("sk_test_123", "", nil, testLogger()); err != nil {
		t.Fatalf("expected default backends to be accepted: %v", err)
	}
}

func TestCreateProduct(t *testing.T) {
	provider := &fakeProvider{}
	observer := &observerStub{}
	gw := newTestGateway(t, provider, observer)

	id, err := gw.CreateProduct(context.Background(), "Roses", "Red roses")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "prod_1" {
		t.Fatalf("unexpected product id %q", id)
	}
	if len(provider.calls) != 1 {
		t.Fatalf("expected one call, got %d", len(provider.calls))
	}
	form := provider.calls[0].form
	if form.Get("name") != "Roses" || form.Get("description") != "Red roses" {
		t.Fatalf("unexpected form: %v", form)
	}
	if observer.calls["create_product"] != 1 || observer.fails != 0 {
		t.Fatalf("unexpected observations: %+v", observer)
	}
}

func TestCreateProductOmitsEmptyDescription(t *testing.T) {
	provider := &fakeProvider{}
	gw := newTestGateway(t, provider, nil)

	if _, err := gw.CreateProduct(context.Background(), "Tulips", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := provider.calls[0].form["description"]; ok {
		t.Fatalf("description should be omitted, got %v", provider.calls[0].form)
	}
}

func TestCreatePrice(t *testing.T) {
	provider := &fakeProvider{}
	gw := newTestGateway(t, provider, nil)

	id, err := gw.CreatePrice(context.Background(), "prod_1", 1250, "usd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "price_1" {
		t.Fatalf("unexpected price id %q", id)
	}
	form := provider.calls[0].form
	if form.Get("product") != "prod_1" || form.Get("unit_amount") != "1250" || form.Get("currency") != "usd" {
		t.Fatalf("unexpected form: %v", form)
	}
}

func TestCreateCheckoutSession(t *testing.T) {
	provider := &fakeProvider{}
	gw := newTestGateway(t, provider, nil)

	session, err := gw.CreateCheckoutSession(context.Background(), model.SessionRequest{
		LineItems:      []model.LineItem{{PriceID: "price_a", Quantity: 1}, {PriceID: "price_b", Quantity: 1}},
		SuccessURL:     "http://shop.example/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:      "http://shop.example/",
		Mode:           model.CheckoutModePayment,
		PaymentMethods: []model.PaymentMethod{model.PaymentMethodCard},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.ID != "cs_1" || session.URL != "https://pay.example/cs_1" {
		t.Fatalf("unexpected session: %+v", session)
	}

	form := provider.calls[0].form
	expected := map[string]string{
		"mode":                    "payment",
		"payment_method_types[0]": "card",
		"line_items[0][price]":    "price_a",
		"line_items[0][quantity]": "1",
		"line_items[1][price]":    "price_b",
		"line_items[1][quantity]": "1",
		"success_url":             "http://shop.example/success?session_id={CHECKOUT_SESSION_ID}",
		"cancel_url":              "http://shop.example/",
	}
	for key, want := range expected {
		if got := form.Get(key); got != want {
			t.Fatalf("form[%s] = %q, want %q", key, got, want)
		}
	}
}

func TestProviderErrorsAreReturned(t *testing.T) {
	provider := &fakeProvider{failOn: "/v1/prices"}
	observer := &observerStub{}
	gw := newTestGateway(t, provider, observer)

	if _, err := gw.CreatePrice(context.Background(), "prod_1", 100, "usd"); err == nil {
		t.Fatal("expected provider error")
	}
	if observer.fails != 1 {
		t.Fatalf("expected failure to be observed, got %+v", observer)
	}
	if len(provider.calls) != 1 {
		t.Fatalf("expected no retries, got %d calls", len(provider.calls))
	}
}

func TestCanceledContextStopsCall(t *testing.T) {
	provider := &fakeProvider{}
	gw := newTestGateway(t, provider, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := gw.CreateProduct(ctx, "Roses", "")
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
	if !errors.Is(err, context.Canceled) && len(provider.calls) != 0 {
		t.Fatalf("expected call to be aborted, got %v", err)
	}
}
