// Package users declares and implements the user side of the identity store.
package users

import (
	"context"

	"github.com/dmitrijs2005/userkeeper/internal/server/models"
)

// Repository persists users and their app grants.
type Repository interface {
	// Create inserts a user without grants. A taken login yields
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetUserByLogin loads a user with its grants, or common.ErrorNotFound.
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)

	// UpdatePassword replaces the stored hash, or returns common.ErrorNotFound.
	UpdatePassword(ctx context.Context, login string, passwordHash string) error

	// AddGrants links existing apps to the user. Already linked apps are skipped.
	AddGrants(ctx context.Context, login string, apps []string) error
}
