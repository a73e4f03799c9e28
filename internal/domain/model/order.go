package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a list of product references attached to a user.
// ProductIDs keeps the requested order, duplicates included; Products holds the resolved documents.
type Order struct {
	ID           string
	UserID       int64
	ProductIDs   []string
	Products     []Bouquet
	PurchaseDate time.Time
}

// Total sums prices of resolved products.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, p := range o.Products {
		total = total.Add(p.Price)
	}
	return total
}
