package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrProductNotFound    = errors.New("product not found")
	ErrEmptyOrder         = errors.New("order has no products")
	ErrInvalidOrigin      = errors.New("invalid request origin")
	ErrUpstreamPayment    = errors.New("payment processor error")
	ErrPersistence        = errors.New("persistence error")
)
