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

// projectRepository implements the repository.ProjectRepository interface using GORM.
type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository is the constructor for projectRepository.
func NewProjectRepository(db *gorm.DB) repository.ProjectRepository {
	return &projectRepository{db: db}
}

// Create persists a new project together with its gallery images.
func (repo *projectRepository) Create(ctx context.Context, project *entity.Project) error {
	projectM := fromProjectDomain(project)

	if err := repo.db.WithContext(ctx).Create(projectM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateSlug
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required project fields")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create project")
	}

	project.ID = projectM.ID
	project.CreatedAt = projectM.CreatedAt
	project.UpdatedAt = projectM.UpdatedAt
	for i := range projectM.Images {
		project.Images[i].ID = projectM.Images[i].ID
		project.Images[i].ProjectID = projectM.Images[i].ProjectID
	}

	return nil
}

// FindByID retrieves a project by its numeric ID, images included.
func (repo *projectRepository) FindByID(ctx context.Context, id int64) (*entity.Project, error) {
	var projectM model.ProjectModel
	err := repo.db.WithContext(ctx).
		Preload("Images").
		First(&projectM, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProjectNotFound
		}

		return nil, errors.Wrap(err, "failed to find project by id")
	}

	return toProjectDomain(&projectM), nil
}

// FindBySlug retrieves a project by slug with images, seller contact and its
// properties (each with images) preloaded.
func (repo *projectRepository) FindBySlug(ctx context.Context, slug string) (*entity.Project, error) {
	var projectM model.ProjectModel
	err := repo.db.WithContext(ctx).
		Preload("Images").
		Preload("Seller").
		Preload("Properties", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Properties.Images").
		Where("slug = ?", slug).
		First(&projectM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProjectNotFound
		}

		return nil, errors.Wrap(err, "failed to find project by slug")
	}

	return toProjectDomain(&projectM), nil
}

// ExistsBySlug reports whether any project already uses the slug.
func (repo *projectRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.ProjectModel{}).
		Where("slug = ?", slug).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check project slug")
	}

	return count > 0, nil
}

// List returns projects newest first, optionally scoped to one seller.
func (repo *projectRepository) List(ctx context.Context, sellerID *int64) ([]entity.Project, error) {
	query := repo.db.WithContext(ctx).
		Preload("Images").
		Order("created_at DESC")

	if sellerID != nil {
		query = query.Where("usuario_vendedor_id = ?", *sellerID)
	}

	var models []model.ProjectModel
	if err := query.Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list projects")
	}

	projects := make([]entity.Project, 0, len(models))
	for i := range models {
		projects = append(projects, *toProjectDomain(&models[i]))
	}

	return projects, nil
}

// Update persists the given field changes on an existing project.
func (repo *projectRepository) Update(ctx context.Context, id int64, changes map[string]any) error {
	if len(changes) == 0 {
		return nil
	}

	result := repo.db.WithContext(ctx).
		Model(&model.ProjectModel{}).
		Where("id = ?", id).
		Updates(changes)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateSlug
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update project")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProjectNotFound
	}

	return nil
}

// ReplaceImages swaps the project's gallery for the given URLs.
func (repo *projectRepository) ReplaceImages(ctx context.Context, projectID int64, urls []string) error {
	err := repo.db.WithContext(ctx).
		Where("proyecto_id = ?", projectID).
		Delete(&model.ImageModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete project images")
	}

	if len(urls) == 0 {
		return nil
	}

	images := make([]model.ImageModel, 0, len(urls))
	for _, url := range urls {
		id := projectID
		images = append(images, model.ImageModel{URL: url, ProjectID: &id})
	}

	if err := repo.db.WithContext(ctx).Create(&images).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to insert project images")
	}

	return nil
}

// Delete removes a project and its gallery images.
func (repo *projectRepository) Delete(ctx context.Context, id int64) error {
	err := repo.db.WithContext(ctx).
		Where("proyecto_id = ?", id).
		Delete(&model.ImageModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete project images")
	}

	result := repo.db.WithContext(ctx).Delete(&model.ProjectModel{}, id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete project")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProjectNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toProjectDomain converts a GORM ProjectModel to a domain Project entity.
func toProjectDomain(data *model.ProjectModel) *entity.Project {
	if data == nil {
		return nil
	}

	return &entity.Project{
		ID:            data.ID,
		Name:          data.Name,
		Slug:          data.Slug,
		Description:   data.Description,
		Location:      data.Location,
		Status:        data.Status,
		FeaturedImage: data.FeaturedImage,
		VideoURL:      data.VideoURL,
		SellerID:      data.SellerID,
		Images:        toImageDomainSlice(data.Images),
		Properties:    toPropertyDomainSlice(data.Properties),
		Seller:        toContactSummary(data.Seller),
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

// fromProjectDomain converts a domain Project entity to a GORM ProjectModel.
func fromProjectDomain(data *entity.Project) *model.ProjectModel {
	if data == nil {
		return nil
	}

	images := make([]model.ImageModel, 0, len(data.Images))
	for _, img := range data.Images {
		images = append(images, model.ImageModel{URL: img.URL})
	}

	return &model.ProjectModel{
		ID:            data.ID,
		Name:          data.Name,
		Slug:          data.Slug,
		Description:   data.Description,
		Location:      data.Location,
		Status:        data.Status,
		FeaturedImage: data.FeaturedImage,
		VideoURL:      data.VideoURL,
		SellerID:      data.SellerID,
		Images:        images,
	}
}
