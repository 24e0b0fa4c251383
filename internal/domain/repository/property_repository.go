package repository

import (
	"context"
	"errors"

	"raices/internal/domain/entity"
)

// ErrPropertyNotFound is returned when a property lookup matches no row.
var ErrPropertyNotFound = errors.New("property not found")

// ErrDuplicateSlug is returned when an insert or update collides with the
// unique slug index. Both property and project repositories share it.
var ErrDuplicateSlug = errors.New("slug already in use")

// PropertyFilter narrows property listings. Nil fields are ignored.
type PropertyFilter struct {
	// SellerID limits results to one seller's listings.
	SellerID *int64
	// IndependentOnly keeps only listings not attached to a project.
	IndependentOnly bool
}

// PropertyRepository defines the standard operations for property persistence.
type PropertyRepository interface {
	// Create persists a new property together with its images.
	Create(ctx context.Context, property *entity.Property) error

	// FindByID retrieves a property by its numeric ID, images included.
	FindByID(ctx context.Context, id int64) (*entity.Property, error)

	// FindBySlug retrieves a property by slug with images, seller contact
	// and project summary preloaded.
	FindBySlug(ctx context.Context, slug string) (*entity.Property, error)

	// ExistsBySlug reports whether any property already uses the slug.
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	// List returns the properties matching the filter, newest first.
	List(ctx context.Context, filter PropertyFilter) ([]entity.Property, error)

	// ListByProject returns every property attached to the given project.
	ListByProject(ctx context.Context, projectID int64) ([]entity.Property, error)

	// Update persists the given field changes on an existing property.
	// Keys are column names; nil values clear the column.
	Update(ctx context.Context, id int64, changes map[string]any) error

	// ReplaceImages swaps the property's image set for the given URLs.
	ReplaceImages(ctx context.Context, propertyID int64, urls []string) error

	// Delete removes a property and its images.
	Delete(ctx context.Context, id int64) error

	// DeleteByProject removes every property attached to the project,
	// images included. Used by the project cascade delete.
	DeleteByProject(ctx context.Context, projectID int64) error
}
