package dto

import (
	"time"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// UserResponse is the public view of a user. Credential hashes never leave the server.
type UserResponse struct {
	ID        int64           `json:"id"`
	Email     string          `json:"email"`
	Username  string          `json:"username"`
	Orders    []OrderResponse `json:"orders"`
	CreatedAt time.Time       `json:"createdAt"`
}

// OrderResponse is an order with its resolved products and derived total.
type OrderResponse struct {
	ID           string          `json:"id"`
	ProductIDs   []string        `json:"productIds"`
	Products     []model.Bouquet `json:"products"`
	Total        string          `json:"total"`
	PurchaseDate time.Time       `json:"purchaseDate"`
}

func NewUserResponse(u model.User) UserResponse {
	orders := make([]OrderResponse, 0, len(u.Orders))
	for _, o := range u.Orders {
		orders = append(orders, NewOrderResponse(o))
	}
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Orders:    orders,
		CreatedAt: u.CreatedAt,
	}
}

func NewOrderResponse(o model.Order) OrderResponse {
	products := o.Products
	if products == nil {
		products = []model.Bouquet{}
	}
	return OrderResponse{
		ID:           o.ID,
		ProductIDs:   o.ProductIDs,
		Products:     products,
		Total:        o.Total().StringFixed(2),
		PurchaseDate: o.PurchaseDate,
	}
}
