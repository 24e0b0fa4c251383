package repository

import (
	"context"
	"errors"

	"raices/internal/domain/entity"
)

// ErrProjectNotFound is returned when a project lookup matches no row.
var ErrProjectNotFound = errors.New("project not found")

// ProjectRepository defines the standard operations for project persistence.
type ProjectRepository interface {
	// Create persists a new project together with its gallery images.
	Create(ctx context.Context, project *entity.Project) error

	// FindByID retrieves a project by its numeric ID, images included.
	FindByID(ctx context.Context, id int64) (*entity.Project, error)

	// FindBySlug retrieves a project by slug with images, seller contact
	// and its properties (each with images) preloaded.
	FindBySlug(ctx context.Context, slug string) (*entity.Project, error)

	// ExistsBySlug reports whether any project already uses the slug.
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	// List returns projects newest first. A non-nil sellerID keeps only
	// that seller's projects.
	List(ctx context.Context, sellerID *int64) ([]entity.Project, error)

	// Update persists the given field changes on an existing project.
	// Keys are column names; nil values clear the column.
	Update(ctx context.Context, id int64, changes map[string]any) error

	// ReplaceImages swaps the project's gallery for the given URLs.
	ReplaceImages(ctx context.Context, projectID int64, urls []string) error

	// Delete removes a project and its gallery images. Attached
	// properties must be removed first; see PropertyRepository.DeleteByProject.
	Delete(ctx context.Context, id int64) error
}
