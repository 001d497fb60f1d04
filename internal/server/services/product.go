package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
	"github.com/dmitrijs2005/shopkeeper/internal/server/repositories/repomanager"
)

// ProductService exposes catalog reads.
type ProductService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewProductService constructs a ProductService.
func NewProductService(db *sql.DB, m repomanager.RepositoryManager) *ProductService {
	return &ProductService{db: db, repomanager: m}
}

// List returns the full product catalog.
func (s *ProductService) List(ctx context.Context) ([]*models.Product, error) {
	repo := s.repomanager.Products(s.db)
	result, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}
	return result, nil
}
