package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
	"github.com/dmitrijs2005/shopkeeper/internal/server/repositories/carts"
	"github.com/dmitrijs2005/shopkeeper/internal/server/repositories/repomanager"
)

// CartService manages per-user carts stored in the session store, checking
// product references against the catalog.
type CartService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	carts       carts.Repository
}

// NewCartService constructs a CartService.
func NewCartService(db *sql.DB, m repomanager.RepositoryManager, cartRepo carts.Repository) *CartService {
	return &CartService{db: db, repomanager: m, carts: cartRepo}
}

// AddItem puts quantity of productID into the user's cart, merging with an
// existing line. productID and quantity must be positive; the product must
// exist in the catalog.
func (s *CartService) AddItem(ctx context.Context, userID string, productID, quantity int64) ([]models.CartItem, error) {
	if productID <= 0 || quantity <= 0 {
		return nil, common.ErrValidation
	}

	exists, err := s.repomanager.Products(s.db).Exists(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("error checking product: %w", err)
	}
	if !exists {
		return nil, common.ErrorNotFound
	}

	if err := s.carts.AddItem(ctx, userID, productID, quantity); err != nil {
		return nil, fmt.Errorf("error adding cart item: %w", err)
	}
	return s.Items(ctx, userID)
}

// Items returns the user's full cart.
func (s *CartService) Items(ctx context.Context, userID string) ([]models.CartItem, error) {
	items, err := s.carts.Items(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error reading cart: %w", err)
	}
	return items, nil
}

// RemoveItem deletes the product's line from the user's cart. Removing a
// product that is not in the cart returns common.ErrorNotFound.
func (s *CartService) RemoveItem(ctx context.Context, userID string, productID int64) ([]models.CartItem, error) {
	if productID <= 0 {
		return nil, common.ErrValidation
	}

	if err := s.carts.RemoveItem(ctx, userID, productID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error removing cart item: %w", err)
	}
	return s.Items(ctx, userID)
}
