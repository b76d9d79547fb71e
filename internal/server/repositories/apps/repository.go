// Package apps declares and implements the app-grant side of the identity store.
package apps

import (
	"context"

	"github.com/dmitrijs2005/userkeeper/internal/server/models"
)

// Repository persists apps keyed by their unique name.
type Repository interface {
	// Create inserts an app; a taken name yields common.ErrorAlreadyExists.
	Create(ctx context.Context, name string) (*models.App, error)

	// GetByName returns the app or common.ErrorNotFound.
	GetByName(ctx context.Context, name string) (*models.App, error)

	// Ensure inserts the app unless it already exists.
	Ensure(ctx context.Context, name string) error

	// Delete removes the app and its grants. Missing apps are not an error.
	Delete(ctx context.Context, name string) error
}
