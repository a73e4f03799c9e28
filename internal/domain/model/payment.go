package model

import "github.com/shopspring/decimal"

// CheckoutMode selects how the processor charges the session.
type CheckoutMode string

const CheckoutModePayment CheckoutMode = "payment"

// PaymentMethod names a processor payment method type.
type PaymentMethod string

const PaymentMethodCard PaymentMethod = "card"

// LineItem references a processor price record.
type LineItem struct {
	PriceID  string
	Quantity int64
}

// SessionRequest describes a checkout session to be opened at the processor.
type SessionRequest struct {
	LineItems      []LineItem
	SuccessURL     string
	CancelURL      string
	Mode           CheckoutMode
	PaymentMethods []PaymentMethod
}

// CheckoutSession is the processor handle returned to the client for redirect.
type CheckoutSession struct {
	ID  string
	URL string
}

var hundred = decimal.NewFromInt(100)

// MinorUnits converts a major-unit amount to the processor's integer minor units,
// rounding half away from zero.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}
