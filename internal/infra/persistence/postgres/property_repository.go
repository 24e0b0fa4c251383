package postgres

import (
	"context"

	"raices/internal/domain/entity"
	domainerrors "raices/internal/domain/errors"
	"raices/internal/domain/repository"
	"raices/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// propertyRepository implements the repository.PropertyRepository interface using GORM.
type propertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository is the constructor for propertyRepository.
func NewPropertyRepository(db *gorm.DB) repository.PropertyRepository {
	return &propertyRepository{db: db}
}

// Create persists a new property together with its images.
func (repo *propertyRepository) Create(ctx context.Context, property *entity.Property) error {
	propertyM := fromPropertyDomain(property)

	if err := repo.db.WithContext(ctx).Create(propertyM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateSlug
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProjectNotFound
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required property fields")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create property")
	}

	property.ID = propertyM.ID
	property.CreatedAt = propertyM.CreatedAt
	property.UpdatedAt = propertyM.UpdatedAt
	for i := range propertyM.Images {
		property.Images[i].ID = propertyM.Images[i].ID
		property.Images[i].PropertyID = propertyM.Images[i].PropertyID
	}

	return nil
}

// FindByID retrieves a property by its numeric ID with images, seller
// contact and project summary preloaded, same shape as FindBySlug.
func (repo *propertyRepository) FindByID(ctx context.Context, id int64) (*entity.Property, error) {
	var propertyM model.PropertyModel
	err := repo.db.WithContext(ctx).
		Preload("Images").
		Preload("Seller").
		Preload("Project").
		First(&propertyM, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPropertyNotFound
		}

		return nil, errors.Wrap(err, "failed to find property by id")
	}

	return toPropertyDomain(&propertyM), nil
}

// FindBySlug retrieves a property by slug with images, seller contact and
// project summary preloaded.
func (repo *propertyRepository) FindBySlug(ctx context.Context, slug string) (*entity.Property, error) {
	var propertyM model.PropertyModel
	err := repo.db.WithContext(ctx).
		Preload("Images").
		Preload("Seller").
		Preload("Project").
		Where("slug = ?", slug).
		First(&propertyM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPropertyNotFound
		}

		return nil, errors.Wrap(err, "failed to find property by slug")
	}

	return toPropertyDomain(&propertyM), nil
}

// ExistsBySlug reports whether any property already uses the slug.
func (repo *propertyRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.PropertyModel{}).
		Where("slug = ?", slug).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check property slug")
	}

	return count > 0, nil
}

// List returns the properties matching the filter, newest first.
func (repo *propertyRepository) List(ctx context.Context, filter repository.PropertyFilter) ([]entity.Property, error) {
	query := repo.db.WithContext(ctx).
		Preload("Images").
		Preload("Seller").
		Order("created_at DESC")

	if filter.SellerID != nil {
		query = query.Where("usuario_vendedor_id = ?", *filter.SellerID)
	}
	if filter.IndependentOnly {
		query = query.Where("proyecto_id IS NULL")
	}

	var models []model.PropertyModel
	if err := query.Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list properties")
	}

	return toPropertyDomainSlice(models), nil
}

// ListByProject returns every property attached to the given project.
func (repo *propertyRepository) ListByProject(ctx context.Context, projectID int64) ([]entity.Property, error) {
	var models []model.PropertyModel
	err := repo.db.WithContext(ctx).
		Preload("Images").
		Where("proyecto_id = ?", projectID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list properties by project")
	}

	return toPropertyDomainSlice(models), nil
}

// Update persists the given field changes on an existing property.
func (repo *propertyRepository) Update(ctx context.Context, id int64, changes map[string]any) error {
	if len(changes) == 0 {
		return nil
	}

	result := repo.db.WithContext(ctx).
		Model(&model.PropertyModel{}).
		Where("id = ?", id).
		Updates(changes)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateSlug
		}
		if isForeignKeyConstraintViolation(result.Error) {
			return repository.ErrProjectNotFound
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update property")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPropertyNotFound
	}

	return nil
}

// ReplaceImages swaps the property's image set for the given URLs.
func (repo *propertyRepository) ReplaceImages(ctx context.Context, propertyID int64, urls []string) error {
	err := repo.db.WithContext(ctx).
		Where("propiedad_id = ?", propertyID).
		Delete(&model.ImageModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete property images")
	}

	if len(urls) == 0 {
		return nil
	}

	images := make([]model.ImageModel, 0, len(urls))
	for _, url := range urls {
		id := propertyID
		images = append(images, model.ImageModel{URL: url, PropertyID: &id})
	}

	if err := repo.db.WithContext(ctx).Create(&images).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to insert property images")
	}

	return nil
}

// Delete removes a property and its images.
func (repo *propertyRepository) Delete(ctx context.Context, id int64) error {
	err := repo.db.WithContext(ctx).
		Where("propiedad_id = ?", id).
		Delete(&model.ImageModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete property images")
	}

	result := repo.db.WithContext(ctx).Delete(&model.PropertyModel{}, id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete property")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPropertyNotFound
	}

	return nil
}

// DeleteByProject removes every property attached to the project, images included.
func (repo *propertyRepository) DeleteByProject(ctx context.Context, projectID int64) error {
	err := repo.db.WithContext(ctx).
		Where("propiedad_id IN (?)", repo.db.
			Model(&model.PropertyModel{}).
			Select("id").
			Where("proyecto_id = ?", projectID),
		).
		Delete(&model.ImageModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete project property images")
	}

	err = repo.db.WithContext(ctx).
		Where("proyecto_id = ?", projectID).
		Delete(&model.PropertyModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete project properties")
	}

	return nil
}

// --- Mapper Functions ---

// toPropertyDomain converts a GORM PropertyModel to a domain Property entity.
func toPropertyDomain(data *model.PropertyModel) *entity.Property {
	if data == nil {
		return nil
	}

	property := &entity.Property{
		ID:                data.ID,
		Name:              data.Name,
		Slug:              data.Slug,
		Type:              data.Type,
		Price:             data.Price,
		Bedrooms:          data.Bedrooms,
		Bathrooms:         data.Bathrooms,
		Parking:           data.Parking,
		Area:              data.Area,
		Status:            data.Status,
		Description:       data.Description,
		Location:          data.Location,
		Floor:             data.Floor,
		Elevator:          data.Elevator,
		Furnished:         data.Furnished,
		Maintenance:       data.Maintenance,
		YearBuilt:         data.YearBuilt,
		LegalFeesIncluded: data.LegalFeesIncluded,
		AvailableFrom:     data.AvailableFrom,
		VideoURL:          data.VideoURL,
		PropertyType:      data.PropertyType,
		SellerID:          data.SellerID,
		ProjectID:         data.ProjectID,
		Images:            toImageDomainSlice(data.Images),
		Seller:            toContactSummary(data.Seller),
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}

	if data.Project != nil {
		property.Project = &entity.ProjectSummary{
			ID:     data.Project.ID,
			Name:   data.Project.Name,
			Slug:   data.Project.Slug,
			Status: data.Project.Status,
		}
	}

	return property
}

func toPropertyDomainSlice(models []model.PropertyModel) []entity.Property {
	properties := make([]entity.Property, 0, len(models))
	for i := range models {
		properties = append(properties, *toPropertyDomain(&models[i]))
	}

	return properties
}

// fromPropertyDomain converts a domain Property entity to a GORM PropertyModel.
func fromPropertyDomain(data *entity.Property) *model.PropertyModel {
	if data == nil {
		return nil
	}

	images := make([]model.ImageModel, 0, len(data.Images))
	for _, img := range data.Images {
		images = append(images, model.ImageModel{URL: img.URL})
	}

	return &model.PropertyModel{
		ID:                data.ID,
		Name:              data.Name,
		Slug:              data.Slug,
		Type:              data.Type,
		Price:             data.Price,
		Bedrooms:          data.Bedrooms,
		Bathrooms:         data.Bathrooms,
		Parking:           data.Parking,
		Area:              data.Area,
		Status:            data.Status,
		Description:       data.Description,
		Location:          data.Location,
		Floor:             data.Floor,
		Elevator:          data.Elevator,
		Furnished:         data.Furnished,
		Maintenance:       data.Maintenance,
		YearBuilt:         data.YearBuilt,
		LegalFeesIncluded: data.LegalFeesIncluded,
		AvailableFrom:     data.AvailableFrom,
		VideoURL:          data.VideoURL,
		PropertyType:      data.PropertyType,
		SellerID:          data.SellerID,
		ProjectID:         data.ProjectID,
		Images:            images,
	}
}

func toImageDomainSlice(models []model.ImageModel) []entity.Image {
	images := make([]entity.Image, 0, len(models))
	for _, img := range models {
		images = append(images, entity.Image{
			ID:         img.ID,
			URL:        img.URL,
			PropertyID: img.PropertyID,
			ProjectID:  img.ProjectID,
			CreatedAt:  img.CreatedAt,
		})
	}

	return images
}
