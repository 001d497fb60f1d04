// Package carts provides the session-store-backed shopping cart. Carts are
// keyed by the authenticated user and owned by the store collaborator, not
// by process memory.
package carts

import (
	"context"

	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
)

// Repository defines per-user cart operations.
type Repository interface {
	// AddItem adds quantity of productID to the user's cart, merging with
	// any existing line for the same product.
	AddItem(ctx context.Context, userID string, productID int64, quantity int64) error

	// Items returns the full cart for the user, in ascending product order.
	Items(ctx context.Context, userID string) ([]models.CartItem, error)

	// RemoveItem deletes the line for productID from the user's cart.
	// Removing a product that is not in the cart returns
	// common.ErrorNotFound.
	RemoveItem(ctx context.Context, userID string, productID int64) error
}
