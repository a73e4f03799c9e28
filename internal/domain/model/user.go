package model

import "time"

// User represents a registered storefront customer together with their order history.
type User struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string
	Orders       []Order
	CreatedAt    time.Time
}
