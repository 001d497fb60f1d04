package products

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/shopkeeper/internal/dbx"
	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
)

// PostgresRepository implements catalog reads over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns all catalog products, oldest first.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Product, error) {
	query := `
		SELECT id, name, description, price_cents, created_at
		FROM products
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select products: %w", err)
	}
	defer rows.Close()

	var result []*models.Product
	for rows.Next() {
		var item models.Product
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.PriceCents, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// Exists reports whether the product is in the catalog.
func (r *PostgresRepository) Exists(ctx context.Context, productID int64) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)
	`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}
