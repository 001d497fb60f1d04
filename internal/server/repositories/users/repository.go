// Package users declares the server-side repository contract for user
// accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
)

// Repository defines operations for creating and looking up users.
type Repository interface {
	// Create inserts a new user and returns it with the generated ID.
	// Inserting an email that already exists returns
	// common.ErrorAlreadyExists, backed by the unique index on email.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetUserByEmail returns the user with the given email, or
	// common.ErrorNotFound when absent. Emails are matched case-sensitively,
	// exactly as stored.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
