package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// OrderRepository stores orders as references in a user's order history.
type OrderRepository interface {
	// AppendToUser atomically attaches order to the user's history.
	AppendToUser(ctx context.Context, userID int64, order *model.Order) error
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
}
