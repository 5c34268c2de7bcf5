// Package users declares the user store consumed by the auth service and
// ships PostgreSQL and in-memory implementations of it.
package users

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

// Repository is the user-record collaborator. Implementations enforce email
// uniqueness themselves and report a clash as common.ErrorAlreadyExists.
type Repository interface {
	// Create stores a new user and fills in ID and timestamps.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetUserByEmail returns common.ErrorNotFound when no user has the email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID returns common.ErrorNotFound when the user does not exist.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
