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

// favoriteRepository implements the repository.FavoriteRepository interface using GORM.
type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository is the constructor for favoriteRepository.
func NewFavoriteRepository(db *gorm.DB) repository.FavoriteRepository {
	return &favoriteRepository{db: db}
}

// FindByUserAndProperty retrieves the user's favorite of a property.
func (repo *favoriteRepository) FindByUserAndProperty(ctx context.Context, userID, propertyID int64) (*entity.Favorite, error) {
	var favoriteM model.FavoriteModel
	err := repo.db.WithContext(ctx).
		Where("usuario_id = ? AND propiedad_id = ?", userID, propertyID).
		First(&favoriteM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrFavoriteNotFound
		}

		return nil, errors.Wrap(err, "failed to find property favorite")
	}

	return toFavoriteDomain(&favoriteM), nil
}

// FindByUserAndProject retrieves the user's favorite of a project.
func (repo *favoriteRepository) FindByUserAndProject(ctx context.Context, userID, projectID int64) (*entity.Favorite, error) {
	var favoriteM model.FavoriteModel
	err := repo.db.WithContext(ctx).
		Where("usuario_id = ? AND proyecto_id = ?", userID, projectID).
		First(&favoriteM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrFavoriteNotFound
		}

		return nil, errors.Wrap(err, "failed to find project favorite")
	}

	return toFavoriteDomain(&favoriteM), nil
}

// Create persists a new favorite.
func (repo *favoriteRepository) Create(ctx context.Context, favorite *entity.Favorite) error {
	favoriteM := fromFavoriteDomain(favorite)

	if err := repo.db.WithContext(ctx).Create(favoriteM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			// Another request favorited the same item first.
			return repository.ErrFavoriteExists
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrFavoriteItemNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create favorite")
	}

	favorite.ID = favoriteM.ID
	favorite.CreatedAt = favoriteM.CreatedAt

	return nil
}

// Delete removes a favorite by its ID.
func (repo *favoriteRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).Delete(&model.FavoriteModel{}, id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete favorite")
	}
	if result.RowsAffected == 0 {
		return repository.ErrFavoriteNotFound
	}

	return nil
}

// ListByUser returns the user's favorites newest first, with the referenced
// property or project (and its images) preloaded.
func (repo *favoriteRepository) ListByUser(ctx context.Context, userID int64) ([]entity.Favorite, error) {
	var models []model.FavoriteModel
	err := repo.db.WithContext(ctx).
		Preload("Property.Images").
		Preload("Project.Images").
		Where("usuario_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list favorites")
	}

	favorites := make([]entity.Favorite, 0, len(models))
	for i := range models {
		favorites = append(favorites, *toFavoriteDomain(&models[i]))
	}

	return favorites, nil
}

// --- Mapper Functions ---

// toFavoriteDomain converts a GORM FavoriteModel to a domain Favorite entity.
func toFavoriteDomain(data *model.FavoriteModel) *entity.Favorite {
	if data == nil {
		return nil
	}

	return &entity.Favorite{
		ID:         data.ID,
		UserID:     data.UserID,
		PropertyID: data.PropertyID,
		ProjectID:  data.ProjectID,
		CreatedAt:  data.CreatedAt,
		Property:   toPropertyDomain(data.Property),
		Project:    toProjectDomain(data.Project),
	}
}

// fromFavoriteDomain converts a domain Favorite entity to a GORM FavoriteModel.
func fromFavoriteDomain(data *entity.Favorite) *model.FavoriteModel {
	if data == nil {
		return nil
	}

	return &model.FavoriteModel{
		ID:         data.ID,
		UserID:     data.UserID,
		PropertyID: data.PropertyID,
		ProjectID:  data.ProjectID,
	}
}
