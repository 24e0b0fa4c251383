package usecase

import (
	"context"

	"raices/internal/domain/entity"
)

// --- Input DTOs ---

// CreatePropertyInput defines the data required to publish a listing.
// Numeric/boolean attributes come in leniently typed because clients send
// them as numbers or strings interchangeably. SellerID comes from the
// session, never from the payload.
type CreatePropertyInput struct {
	Name              string       `json:"nombre"`
	Slug              string       `json:"slug"`
	Type              string       `json:"tipo"`
	Price             LenientFloat `json:"precio"`
	Bedrooms          LenientInt   `json:"habitaciones"`
	Bathrooms         LenientInt   `json:"baños"`
	Parking           LenientInt   `json:"parqueos"`
	Area              LenientFloat `json:"metros2"`
	Status            string       `json:"estado"`
	Description       string       `json:"descripcion"`
	Location          string       `json:"ubicacion"`
	Floor             LenientInt   `json:"nivel"`
	Elevator          LenientBool  `json:"ascensor"`
	Furnished         LenientBool  `json:"amueblado"`
	Maintenance       LenientFloat `json:"mantenimiento"`
	YearBuilt         LenientInt   `json:"anoConstruccion"`
	LegalFeesIncluded LenientBool  `json:"gastosLegalesIncluidos"`
	AvailableFrom     *string      `json:"disponibleDesde"`
	VideoURL          *string      `json:"videoUrl"`
	PropertyType      *string      `json:"tipoPropiedad"`
	ProjectID         LenientInt   `json:"proyectoId"`
	ImageURLs         []string     `json:"imageUrls"`

	SellerID int64 `json:"-"`
}

// UpdatePropertyInput carries a partial listing change. Every field is
// three-state: absent keeps the stored value, null clears it (where the
// column is nullable), a value replaces it with create-style coercion.
type UpdatePropertyInput struct {
	Name              Optional[string]       `json:"nombre"`
	Slug              Optional[string]       `json:"slug"`
	Type              Optional[string]       `json:"tipo"`
	Price             Optional[LenientFloat] `json:"precio"`
	Bedrooms          Optional[LenientInt]   `json:"habitaciones"`
	Bathrooms         Optional[LenientInt]   `json:"baños"`
	Parking           Optional[LenientInt]   `json:"parqueos"`
	Area              Optional[LenientFloat] `json:"metros2"`
	Status            Optional[string]       `json:"estado"`
	Description       Optional[string]       `json:"descripcion"`
	Location          Optional[string]       `json:"ubicacion"`
	Floor             Optional[LenientInt]   `json:"nivel"`
	Elevator          Optional[LenientBool]  `json:"ascensor"`
	Furnished         Optional[LenientBool]  `json:"amueblado"`
	Maintenance       Optional[LenientFloat] `json:"mantenimiento"`
	YearBuilt         Optional[LenientInt]   `json:"anoConstruccion"`
	LegalFeesIncluded Optional[LenientBool]  `json:"gastosLegalesIncluidos"`
	AvailableFrom     Optional[string]       `json:"disponibleDesde"`
	VideoURL          Optional[string]       `json:"videoUrl"`
	PropertyType      Optional[string]       `json:"tipoPropiedad"`
	ProjectID         Optional[LenientInt]   `json:"proyectoId"`
	ImageURLs         Optional[[]string]     `json:"imageUrls"`

	PropertyID int64 `json:"-"`
	CallerID   int64 `json:"-"`
}

// AddImagesInput carries the gallery URLs appended to an existing listing
// or development.
type AddImagesInput struct {
	ImageURLs []string `json:"imageUrls" validate:"required,min=1"`
}

// PropertyUsecase defines the interface for listing-related business operations.
type PropertyUsecase interface {
	Create(ctx context.Context, input *CreatePropertyInput) (*entity.Property, error)
	GetByID(ctx context.Context, id int64) (*entity.Property, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Property, error)
	ListIndependent(ctx context.Context) ([]entity.Property, error)
	ListByOwner(ctx context.Context, sellerID int64) ([]entity.Property, error)
	ListIndependentByOwner(ctx context.Context, sellerID int64) ([]entity.Property, error)
	ListByProject(ctx context.Context, callerID, projectID int64) ([]entity.Property, error)
	Update(ctx context.Context, input *UpdatePropertyInput) (*entity.Property, error)
	Delete(ctx context.Context, callerID, propertyID int64) error
	AddImages(ctx context.Context, callerID, propertyID int64, urls []string) (*entity.Property, error)
}
