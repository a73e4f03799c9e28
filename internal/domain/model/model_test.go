package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		price string
		want  int64
	}{
		{"12.50", 1250},
		{"3.00", 300},
		{"0.29", 29},
		{"0.57", 57},
		{"19.99", 1999},
		{"1.005", 101},
		{"4.994", 499},
		{"123456789.01", 12345678901},
		{"0", 0},
	}

	for _, tc := range cases {
		t.Run(tc.price, func(t *testing.T) {
			if got := MinorUnits(decimal.RequireFromString(tc.price)); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestOrderTotal(t *testing.T) {
	order := Order{Products: []Bouquet{
		{ID: "p1", Price: decimal.RequireFromString("12.50")},
		{ID: "p2", Price: decimal.RequireFromString("3.00")},
		{ID: "p1", Price: decimal.RequireFromString("12.50")},
	}}
	if got := order.Total(); !got.Equal(decimal.RequireFromString("28.00")) {
		t.Fatalf("unexpected total %s", got)
	}

	empty := Order{}
	if !empty.Total().IsZero() {
		t.Fatalf("expected zero total for empty order")
	}
}

func TestCheckoutEnumValues(t *testing.T) {
	cases := []struct {
		got   string
		value string
	}{
		{string(CheckoutModePayment), "payment"},
		{string(PaymentMethodCard), "card"},
	}
	for _, tc := range cases {
		if tc.got != tc.value {
			t.Fatalf("expected %s, got %s", tc.value, tc.got)
		}
	}
}
