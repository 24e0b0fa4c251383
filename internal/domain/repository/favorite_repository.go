package repository

import (
	"context"
	"errors"

	"raices/internal/domain/entity"
)

// ErrFavoriteNotFound is returned when a favorite lookup matches no row.
var ErrFavoriteNotFound = errors.New("favorite not found")

// ErrFavoriteExists is returned when an insert collides with the unique
// (user, item) index. Callers treat it as "already favorited".
var ErrFavoriteExists = errors.New("favorite already exists")

// FavoriteRepository defines the standard operations for favorite persistence.
type FavoriteRepository interface {
	// FindByUserAndProperty retrieves the user's favorite of a property.
	FindByUserAndProperty(ctx context.Context, userID, propertyID int64) (*entity.Favorite, error)

	// FindByUserAndProject retrieves the user's favorite of a project.
	FindByUserAndProject(ctx context.Context, userID, projectID int64) (*entity.Favorite, error)

	// Create persists a new favorite. Returns ErrFavoriteExists if the
	// user already favorited the item.
	Create(ctx context.Context, favorite *entity.Favorite) error

	// Delete removes a favorite by its ID.
	Delete(ctx context.Context, id int64) error

	// ListByUser returns the user's favorites newest first, with the
	// referenced property or project (and its images) preloaded.
	ListByUser(ctx context.Context, userID int64) ([]entity.Favorite, error)
}
