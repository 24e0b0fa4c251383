package usecase

import (
	"context"

	"raices/internal/domain/entity"
)

// --- Input DTOs ---

// CreateProjectInput defines the data required to create a development.
// SellerID comes from the session, never from the payload.
type CreateProjectInput struct {
	Name          string   `json:"nombre"`
	Slug          string   `json:"slug"`
	Description   string   `json:"descripcion"`
	Location      string   `json:"ubicacion"`
	Status        string   `json:"estado"`
	FeaturedImage string   `json:"imagenDestacada"`
	VideoURL      *string  `json:"videoUrl"`
	ImageURLs     []string `json:"imageUrls"`

	SellerID int64 `json:"-"`
}

// UpdateProjectInput carries a partial project change with three-state
// field semantics.
type UpdateProjectInput struct {
	Name          Optional[string]   `json:"nombre"`
	Slug          Optional[string]   `json:"slug"`
	Description   Optional[string]   `json:"descripcion"`
	Location      Optional[string]   `json:"ubicacion"`
	Status        Optional[string]   `json:"estado"`
	FeaturedImage Optional[string]   `json:"imagenDestacada"`
	VideoURL      Optional[string]   `json:"videoUrl"`
	ImageURLs     Optional[[]string] `json:"imageUrls"`

	ProjectID int64 `json:"-"`
	CallerID  int64 `json:"-"`
}

// ProjectUsecase defines the interface for development-related business operations.
type ProjectUsecase interface {
	Create(ctx context.Context, input *CreateProjectInput) (*entity.Project, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Project, error)
	List(ctx context.Context, sellerID *int64) ([]entity.Project, error)
	GetWithProperties(ctx context.Context, callerID, projectID int64) (*entity.Project, error)
	Update(ctx context.Context, input *UpdateProjectInput) (*entity.Project, error)
	Delete(ctx context.Context, callerID, projectID int64) error
	AddImages(ctx context.Context, callerID, projectID int64, urls []string) (*entity.Project, error)
}
