package models

import "time"

// Product is a catalog item. Prices are stored in cents to avoid floating
// point in money arithmetic.
type Product struct {
	ID          int64
	Name        string
	Description string
	PriceCents  int64
	CreatedAt   time.Time
}
