package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "raices/internal/delivery/context"
	"raices/internal/domain/entity"
	domainerrors "raices/internal/domain/errors"
	"raices/internal/domain/repository"
	"raices/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// availableFromLayouts are the accepted formats for the disponibleDesde
// field. Clients send either a plain date or a full timestamp.
var availableFromLayouts = []string{time.RFC3339, "2006-01-02"}

// propertyService implements the PropertyUsecase interface.
type propertyService struct {
	txManager    repository.TransactionManager
	propertyRepo repository.PropertyRepository
	projectRepo  repository.ProjectRepository
	logger       *slog.Logger
}

// PropertyServiceParams holds dependencies for PropertyService, injected by Fx.
type PropertyServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	PropertyRepo repository.PropertyRepository
	ProjectRepo  repository.ProjectRepository
	Logger       *slog.Logger
}

// NewPropertyService is the constructor for propertyService.
func NewPropertyService(params PropertyServiceParams) usecase.PropertyUsecase {
	return &propertyService{
		txManager:    params.TxManager,
		propertyRepo: params.PropertyRepo,
		projectRepo:  params.ProjectRepo,
		logger:       params.Logger,
	}
}

func (srv *propertyService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create publishes a new listing owned by the calling seller.
func (srv *propertyService) Create(ctx context.Context, input *usecase.CreatePropertyInput) (*entity.Property, error) {
	srv.log(ctx).Info("Creating property", slog.String("slug", input.Slug), slog.Any("sellerID", input.SellerID))

	if missing := missingRequired(map[string]string{
		"nombre":      input.Name,
		"slug":        input.Slug,
		"tipo":        input.Type,
		"estado":      input.Status,
		"descripcion": input.Description,
		"ubicacion":   input.Location,
	}); len(missing) > 0 {
		return nil, errors.Wrap(
			domainerrors.ErrValidationFailed.WithDetails("campos requeridos: "+strings.Join(missing, ", ")),
			"missing required property fields",
		)
	}

	imageURLs := cleanURLs(input.ImageURLs)
	if len(imageURLs) == 0 {
		return nil, errors.Wrap(domainerrors.ErrPropertyImagesRequired, "property creation without images")
	}

	if input.Price.Value == nil || *input.Price.Value <= 0 {
		return nil, errors.Wrap(
			domainerrors.ErrValidationFailed.WithDetails("el precio debe ser un número mayor que cero"),
			"invalid property price",
		)
	}

	availableFrom, err := parseAvailableFrom(input.AvailableFrom)
	if err != nil {
		return nil, err
	}

	// Fast path; the unique index still backstops concurrent creates.
	if taken, err := srv.propertyRepo.ExistsBySlug(ctx, input.Slug); err != nil {
		return nil, errors.Wrap(err, "failed to check property slug availability")
	} else if taken {
		return nil, errors.Wrap(domainerrors.ErrPropertySlugTaken, "slug already used by another property")
	}

	projectID, err := srv.resolveProjectAttachment(ctx, input.ProjectID.Value, input.SellerID)
	if err != nil {
		return nil, err
	}

	property := &entity.Property{
		Name:              strings.TrimSpace(input.Name),
		Slug:              strings.TrimSpace(input.Slug),
		Type:              strings.TrimSpace(input.Type),
		Price:             *input.Price.Value,
		Bedrooms:          input.Bedrooms.Value,
		Bathrooms:         input.Bathrooms.Value,
		Parking:           input.Parking.Value,
		Area:              input.Area.Value,
		Status:            strings.TrimSpace(input.Status),
		Description:       strings.TrimSpace(input.Description),
		Location:          strings.TrimSpace(input.Location),
		Floor:             input.Floor.Value,
		Elevator:          input.Elevator.Value,
		Furnished:         input.Furnished.Value,
		Maintenance:       input.Maintenance.Value,
		YearBuilt:         input.YearBuilt.Value,
		LegalFeesIncluded: input.LegalFeesIncluded.Value,
		AvailableFrom:     availableFrom,
		VideoURL:          trimPtr(input.VideoURL),
		PropertyType:      trimPtr(input.PropertyType),
		SellerID:          input.SellerID,
		ProjectID:         projectID,
		Images:            imagesFromURLs(imageURLs),
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.PropertyRepo().Create(ctx, property); err != nil {
			return srv.translatePropertyWriteError(err)
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to create property", slog.String("slug", input.Slug), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Property created", slog.Any("propertyID", property.ID))

	return srv.propertyRepo.FindByID(ctx, property.ID)
}

// GetByID returns a listing with its images.
func (srv *propertyService) GetByID(ctx context.Context, id int64) (*entity.Property, error) {
	property, err := srv.propertyRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return nil, errors.Wrap(domainerrors.ErrPropertyNotFound, "no property with that id")
		}

		return nil, errors.Wrap(err, "failed to load property")
	}

	return property, nil
}

// GetBySlug returns the public detail view of a listing, seller contact
// and project summary included.
func (srv *propertyService) GetBySlug(ctx context.Context, slug string) (*entity.Property, error) {
	property, err := srv.propertyRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return nil, errors.Wrap(domainerrors.ErrPropertyNotFound, "no property with that slug")
		}

		return nil, errors.Wrap(err, "failed to load property by slug")
	}

	return property, nil
}

// ListIndependent returns every listing not attached to a project.
func (srv *propertyService) ListIndependent(ctx context.Context) ([]entity.Property, error) {
	properties, err := srv.propertyRepo.List(ctx, repository.PropertyFilter{IndependentOnly: true})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list independent properties")
	}

	return properties, nil
}

// ListByOwner returns every listing of one seller, grouped or not.
func (srv *propertyService) ListByOwner(ctx context.Context, sellerID int64) ([]entity.Property, error) {
	properties, err := srv.propertyRepo.List(ctx, repository.PropertyFilter{SellerID: &sellerID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list seller properties")
	}

	return properties, nil
}

// ListIndependentByOwner returns a seller's listings that are not attached
// to any project.
func (srv *propertyService) ListIndependentByOwner(ctx context.Context, sellerID int64) ([]entity.Property, error) {
	properties, err := srv.propertyRepo.List(ctx, repository.PropertyFilter{SellerID: &sellerID, IndependentOnly: true})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list seller independent properties")
	}

	return properties, nil
}

// ListByProject returns the listings grouped under one of the caller's
// projects.
func (srv *propertyService) ListByProject(ctx context.Context, callerID, projectID int64) ([]entity.Property, error) {
	project, err := srv.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProjectNotFound, "no project with that id")
		}

		return nil, errors.Wrap(err, "failed to load project")
	}

	if !project.OwnedBy(callerID) {
		srv.log(ctx).Warn("Blocked cross-seller project listing access", slog.Any("projectID", projectID), slog.Any("userID", callerID))

		return nil, errors.Wrap(domainerrors.ErrNotOwner, "project belongs to another seller")
	}

	properties, err := srv.propertyRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list project properties")
	}

	return properties, nil
}

// Update applies a partial change to one of the caller's listings. Absent
// fields keep their value, explicit nulls clear nullable attributes.
func (srv *propertyService) Update(ctx context.Context, input *usecase.UpdatePropertyInput) (*entity.Property, error) {
	existing, err := srv.loadOwned(ctx, input.PropertyID, input.CallerID)
	if err != nil {
		return nil, err
	}

	changes, err := srv.buildPropertyChanges(ctx, input, existing)
	if err != nil {
		return nil, err
	}

	var replaceImages []string
	if input.ImageURLs.Defined {
		urls := cleanURLs(derefSlice(input.ImageURLs.Value))
		if len(urls) == 0 {
			return nil, errors.Wrap(domainerrors.ErrPropertyImagesRequired, "property update would leave no images")
		}
		replaceImages = urls
	}

	if len(changes) == 0 && replaceImages == nil {
		return existing, nil
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		propertyRepo := repoFactory.PropertyRepo()

		if len(changes) > 0 {
			if err := propertyRepo.Update(ctx, input.PropertyID, changes); err != nil {
				return srv.translatePropertyWriteError(err)
			}
		}
		if replaceImages != nil {
			if err := propertyRepo.ReplaceImages(ctx, input.PropertyID, replaceImages); err != nil {
				return errors.Wrap(err, "failed to replace property images")
			}
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to update property", slog.Any("propertyID", input.PropertyID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Property updated", slog.Any("propertyID", input.PropertyID))

	return srv.propertyRepo.FindByID(ctx, input.PropertyID)
}

// Delete removes one of the caller's listings, images included.
func (srv *propertyService) Delete(ctx context.Context, callerID, propertyID int64) error {
	if _, err := srv.loadOwned(ctx, propertyID, callerID); err != nil {
		return err
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.PropertyRepo().Delete(ctx, propertyID); err != nil {
			return errors.Wrap(err, "failed to delete property")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to delete property", slog.Any("propertyID", propertyID), slog.Any("error", err))

		return err
	}

	srv.log(ctx).Info("Property deleted", slog.Any("propertyID", propertyID))

	return nil
}

// AddImages appends media to one of the caller's listings.
func (srv *propertyService) AddImages(ctx context.Context, callerID, propertyID int64, urls []string) (*entity.Property, error) {
	existing, err := srv.loadOwned(ctx, propertyID, callerID)
	if err != nil {
		return nil, err
	}

	added := cleanURLs(urls)
	if len(added) == 0 {
		return nil, errors.Wrap(
			domainerrors.ErrValidationFailed.WithDetails("debe enviar al menos una URL de imagen"),
			"no image urls to add",
		)
	}

	combined := make([]string, 0, len(existing.Images)+len(added))
	for _, image := range existing.Images {
		combined = append(combined, image.URL)
	}
	combined = append(combined, added...)

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.PropertyRepo().ReplaceImages(ctx, propertyID, combined); err != nil {
			return errors.Wrap(err, "failed to add property images")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to add property images", slog.Any("propertyID", propertyID), slog.Any("error", err))

		return nil, err
	}

	return srv.propertyRepo.FindByID(ctx, propertyID)
}

// loadOwned fetches a property and enforces that the caller owns it.
func (srv *propertyService) loadOwned(ctx context.Context, propertyID, callerID int64) (*entity.Property, error) {
	existing, err := srv.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return nil, errors.Wrap(domainerrors.ErrPropertyNotFound, "no property with that id")
		}

		return nil, errors.Wrap(err, "failed to load property")
	}

	if !existing.OwnedBy(callerID) {
		srv.log(ctx).Warn("Blocked cross-seller property access", slog.Any("propertyID", propertyID), slog.Any("userID", callerID))

		return nil, errors.Wrap(domainerrors.ErrNotOwner, "property belongs to another seller")
	}

	return existing, nil
}

// buildPropertyChanges converts the three-state input into a column change
// set, validating the fields that may not be cleared.
func (srv *propertyService) buildPropertyChanges(
	ctx context.Context,
	input *usecase.UpdatePropertyInput,
	existing *entity.Property,
) (map[string]any, error) {
	changes := map[string]any{}

	requiredStrings := []struct {
		field  usecase.Optional[string]
		column string
	}{
		{input.Name, "nombre"},
		{input.Type, "tipo"},
		{input.Status, "estado"},
		{input.Description, "descripcion"},
		{input.Location, "ubicacion"},
	}
	for _, item := range requiredStrings {
		if !item.field.Defined {
			continue
		}
		if item.field.Value == nil || strings.TrimSpace(*item.field.Value) == "" {
			return nil, errors.Wrap(
				domainerrors.ErrValidationFailed.WithDetails("el campo "+item.column+" no puede quedar vacío"),
				"attempt to clear a required property field",
			)
		}
		changes[item.column] = strings.TrimSpace(*item.field.Value)
	}

	if input.Slug.Defined {
		if input.Slug.Value == nil || strings.TrimSpace(*input.Slug.Value) == "" {
			return nil, errors.Wrap(
				domainerrors.ErrValidationFailed.WithDetails("el campo slug no puede quedar vacío"),
				"attempt to clear the property slug",
			)
		}
		slug := strings.TrimSpace(*input.Slug.Value)
		if slug != existing.Slug {
			if taken, err := srv.propertyRepo.ExistsBySlug(ctx, slug); err != nil {
				return nil, errors.Wrap(err, "failed to check property slug availability")
			} else if taken {
				return nil, errors.Wrap(domainerrors.ErrPropertySlugTaken, "slug already used by another property")
			}
		}
		changes["slug"] = slug
	}

	if input.Price.Defined {
		if input.Price.Value == nil || input.Price.Value.Value == nil || *input.Price.Value.Value <= 0 {
			return nil, errors.Wrap(
				domainerrors.ErrValidationFailed.WithDetails("el precio debe ser un número mayor que cero"),
				"invalid property price in update",
			)
		}
		changes["precio"] = *input.Price.Value.Value
	}

	// Nullable numeric and boolean attributes: an explicit null clears
	// the column, an unparsable value collapses to null too.
	setLenientInt(changes, "habitaciones", input.Bedrooms)
	setLenientInt(changes, "banos", input.Bathrooms)
	setLenientInt(changes, "parqueos", input.Parking)
	setLenientFloat(changes, "metros2", input.Area)
	setLenientInt(changes, "nivel", input.Floor)
	setLenientBool(changes, "ascensor", input.Elevator)
	setLenientBool(changes, "amueblado", input.Furnished)
	setLenientFloat(changes, "mantenimiento", input.Maintenance)
	setLenientInt(changes, "ano_construccion", input.YearBuilt)
	setLenientBool(changes, "gastos_legales_incluidos", input.LegalFeesIncluded)

	if input.AvailableFrom.Defined {
		if input.AvailableFrom.Value == nil {
			changes["disponible_desde"] = nil
		} else {
			parsed, err := parseAvailableFrom(input.AvailableFrom.Value)
			if err != nil {
				return nil, err
			}
			changes["disponible_desde"] = parsed
		}
	}

	setOptionalString(changes, "video_url", input.VideoURL)
	setOptionalString(changes, "tipo_propiedad", input.PropertyType)

	if input.ProjectID.Defined {
		if input.ProjectID.Value == nil || input.ProjectID.Value.Value == nil {
			changes["proyecto_id"] = nil
		} else {
			projectID, err := srv.resolveProjectAttachment(ctx, input.ProjectID.Value.Value, input.CallerID)
			if err != nil {
				return nil, err
			}
			changes["proyecto_id"] = projectID
		}
	}

	return changes, nil
}

// resolveProjectAttachment verifies that the target project exists and
// belongs to the seller. A nil projectID means an independent listing.
func (srv *propertyService) resolveProjectAttachment(ctx context.Context, projectID *int64, sellerID int64) (*int64, error) {
	if projectID == nil {
		return nil, nil
	}

	project, err := srv.projectRepo.FindByID(ctx, *projectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProjectNotFound, "target project does not exist")
		}

		return nil, errors.Wrap(err, "failed to load target project")
	}

	if !project.OwnedBy(sellerID) {
		srv.log(ctx).Warn("Blocked attachment to another seller's project", slog.Any("projectID", *projectID), slog.Any("userID", sellerID))

		return nil, errors.Wrap(domainerrors.ErrProjectOwnershipViolation, "target project belongs to another seller")
	}

	return projectID, nil
}

// translatePropertyWriteError maps storage sentinels raised during property
// writes onto their user-facing domain errors.
func (srv *propertyService) translatePropertyWriteError(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateSlug):
		return errors.Wrap(domainerrors.ErrPropertySlugTaken, "slug already used by another property")
	case errors.Is(err, repository.ErrProjectNotFound):
		return errors.Wrap(domainerrors.ErrProjectNotFound, "target project does not exist")
	case errors.Is(err, repository.ErrPropertyNotFound):
		return errors.Wrap(domainerrors.ErrPropertyNotFound, "property no longer exists")
	default:
		return errors.Wrap(err, "property write failed")
	}
}

// --- shared input helpers ---

// missingRequired returns the names of blank required fields, in a stable
// order for the error detail.
func missingRequired(fields map[string]string) []string {
	order := []string{"nombre", "slug", "tipo", "estado", "descripcion", "ubicacion", "imagenDestacada"}

	var missing []string
	for _, name := range order {
		value, ok := fields[name]
		if ok && strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}

	return missing
}

// cleanURLs trims the given URLs and drops blank entries.
func cleanURLs(urls []string) []string {
	cleaned := make([]string, 0, len(urls))
	for _, url := range urls {
		if trimmed := strings.TrimSpace(url); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}

	return cleaned
}

// imagesFromURLs builds the image rows persisted alongside a new parent.
func imagesFromURLs(urls []string) []entity.Image {
	images := make([]entity.Image, 0, len(urls))
	for _, url := range urls {
		images = append(images, entity.Image{URL: url})
	}

	return images
}

// parseAvailableFrom parses the optional disponibleDesde value. A blank
// value means "not provided"; an unparsable one rejects the request.
func parseAvailableFrom(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}

	trimmed := strings.TrimSpace(*raw)
	for _, layout := range availableFromLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return &parsed, nil
		}
	}

	return nil, errors.Wrap(
		domainerrors.ErrValidationFailed.WithDetails("disponibleDesde no es una fecha válida"),
		"unparsable disponibleDesde value",
	)
}

// derefSlice unwraps an optional slice pointer into a slice.
func derefSlice(value *[]string) []string {
	if value == nil {
		return nil
	}

	return *value
}

func setLenientInt(changes map[string]any, column string, field usecase.Optional[usecase.LenientInt]) {
	if !field.Defined {
		return
	}
	if field.Value == nil || field.Value.Value == nil {
		changes[column] = nil

		return
	}
	changes[column] = *field.Value.Value
}

func setLenientFloat(changes map[string]any, column string, field usecase.Optional[usecase.LenientFloat]) {
	if !field.Defined {
		return
	}
	if field.Value == nil || field.Value.Value == nil {
		changes[column] = nil

		return
	}
	changes[column] = *field.Value.Value
}

func setLenientBool(changes map[string]any, column string, field usecase.Optional[usecase.LenientBool]) {
	if !field.Defined {
		return
	}
	if field.Value == nil || field.Value.Value == nil {
		changes[column] = nil

		return
	}
	changes[column] = *field.Value.Value
}

// setOptionalString applies a three-state string change to a nullable
// column, collapsing blank values to null.
func setOptionalString(changes map[string]any, column string, field usecase.Optional[string]) {
	if !field.Defined {
		return
	}
	if field.Value == nil || strings.TrimSpace(*field.Value) == "" {
		changes[column] = nil

		return
	}
	changes[column] = strings.TrimSpace(*field.Value)
}
