// Package products provides the repository contract and PostgreSQL
// implementation for the product catalog.
package products

import (
	"context"

	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
)

// Repository defines read operations over the product catalog.
type Repository interface {
	// List returns all catalog products, oldest first.
	List(ctx context.Context) ([]*models.Product, error)

	// Exists reports whether a product with the given ID is in the catalog.
	Exists(ctx context.Context, productID int64) (bool, error)
}
