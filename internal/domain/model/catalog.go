package model

import "github.com/shopspring/decimal"

// Occasion groups bouquets in the catalog.
type Occasion struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Bouquet is a catalog product. Price is kept in major currency units.
type Bouquet struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `json:"price"`
	Featured    bool            `json:"featured"`
	Occasion    *Occasion       `json:"occasion,omitempty"`
}
