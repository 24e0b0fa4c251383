package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "raices/internal/delivery/context"
	"raices/internal/domain/entity"
	domainerrors "raices/internal/domain/errors"
	"raices/internal/domain/repository"
	"raices/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// favoriteService implements the FavoriteUsecase interface.
type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	propertyRepo repository.PropertyRepository
	projectRepo  repository.ProjectRepository
	logger       *slog.Logger
}

// FavoriteServiceParams holds dependencies for FavoriteService, injected by Fx.
type FavoriteServiceParams struct {
	fx.In

	FavoriteRepo repository.FavoriteRepository
	PropertyRepo repository.PropertyRepository
	ProjectRepo  repository.ProjectRepository
	Logger       *slog.Logger
}

// NewFavoriteService is the constructor for favoriteService.
func NewFavoriteService(params FavoriteServiceParams) usecase.FavoriteUsecase {
	return &favoriteService{
		favoriteRepo: params.FavoriteRepo,
		propertyRepo: params.PropertyRepo,
		projectRepo:  params.ProjectRepo,
		logger:       params.Logger,
	}
}

func (srv *favoriteService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Toggle flips the favorite state of a property or project for the calling
// user. A second toggle of the same item removes the bookmark.
func (srv *favoriteService) Toggle(ctx context.Context, input *usecase.ToggleFavoriteInput) (*usecase.ToggleFavoriteOutput, error) {
	if input.ItemID.Value == nil || *input.ItemID.Value <= 0 {
		return nil, errors.Wrap(
			domainerrors.ErrValidationFailed.WithDetails("itemId debe ser un número positivo"),
			"invalid favorite item id",
		)
	}
	itemID := *input.ItemID.Value

	itemType := entity.FavoriteItemType(strings.ToLower(strings.TrimSpace(input.ItemType)))
	if !itemType.IsValid() {
		return nil, errors.Wrap(
			domainerrors.ErrValidationFailed.WithDetails("itemType debe ser propiedad o proyecto"),
			"invalid favorite item type",
		)
	}

	if err := srv.checkItemExists(ctx, itemType, itemID); err != nil {
		return nil, err
	}

	existing, err := srv.findFavorite(ctx, input.UserID, itemType, itemID)
	if err == nil {
		if err := srv.favoriteRepo.Delete(ctx, existing.ID); err != nil && !errors.Is(err, repository.ErrFavoriteNotFound) {
			return nil, errors.Wrap(err, "failed to remove favorite")
		}

		srv.log(ctx).Debug("Favorite removed", slog.Any("userID", input.UserID), slog.Any("itemID", itemID), slog.Any("itemType", itemType))

		return &usecase.ToggleFavoriteOutput{Favorited: false}, nil
	}
	if !errors.Is(err, repository.ErrFavoriteNotFound) {
		return nil, errors.Wrap(err, "failed to look up favorite")
	}

	favorite := &entity.Favorite{UserID: input.UserID}
	switch itemType {
	case entity.FavoriteProperty:
		favorite.PropertyID = &itemID
	case entity.FavoriteProject:
		favorite.ProjectID = &itemID
	}

	if err := srv.favoriteRepo.Create(ctx, favorite); err != nil {
		// A concurrent toggle may have inserted the row first; the
		// item is favorited either way.
		if errors.Is(err, repository.ErrFavoriteExists) {
			existing, findErr := srv.findFavorite(ctx, input.UserID, itemType, itemID)
			if findErr != nil {
				return nil, errors.Wrap(findErr, "failed to load concurrently created favorite")
			}

			return &usecase.ToggleFavoriteOutput{Favorited: true, Favorite: existing}, nil
		}
		if errors.Is(err, repository.ErrFavoriteNotFound) {
			return nil, errors.Wrap(domainerrors.ErrFavoriteItemNotFound, "favorite target vanished")
		}

		return nil, errors.Wrap(err, "failed to create favorite")
	}

	srv.log(ctx).Debug("Favorite added", slog.Any("userID", input.UserID), slog.Any("itemID", itemID), slog.Any("itemType", itemType))

	return &usecase.ToggleFavoriteOutput{Favorited: true, Favorite: favorite}, nil
}

// List returns the calling user's favorites newest first, each resolved to
// the bookmarked property or project.
func (srv *favoriteService) List(ctx context.Context, userID int64) ([]usecase.FavoriteItem, error) {
	favorites, err := srv.favoriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list favorites")
	}

	items := make([]usecase.FavoriteItem, 0, len(favorites))
	for i := range favorites {
		favorite := &favorites[i]

		item := usecase.FavoriteItem{
			ID:        favorite.ID,
			CreatedAt: favorite.CreatedAt,
			Type:      favorite.ItemType(),
		}
		switch {
		case favorite.Property != nil:
			item.Item = favorite.Property
		case favorite.Project != nil:
			item.Item = favorite.Project
		default:
			// The bookmarked row disappeared between the join and
			// now. Skip rather than surface a hole.
			continue
		}

		items = append(items, item)
	}

	return items, nil
}

// checkItemExists verifies the bookmarked item is real before toggling.
func (srv *favoriteService) checkItemExists(ctx context.Context, itemType entity.FavoriteItemType, itemID int64) error {
	switch itemType {
	case entity.FavoriteProperty:
		if _, err := srv.propertyRepo.FindByID(ctx, itemID); err != nil {
			if errors.Is(err, repository.ErrPropertyNotFound) {
				return errors.Wrap(domainerrors.ErrFavoriteItemNotFound, "no property with that id")
			}

			return errors.Wrap(err, "failed to load favorite property")
		}
	case entity.FavoriteProject:
		if _, err := srv.projectRepo.FindByID(ctx, itemID); err != nil {
			if errors.Is(err, repository.ErrProjectNotFound) {
				return errors.Wrap(domainerrors.ErrFavoriteItemNotFound, "no project with that id")
			}

			return errors.Wrap(err, "failed to load favorite project")
		}
	}

	return nil
}

// findFavorite dispatches the unique (user, item) lookup on the item type.
func (srv *favoriteService) findFavorite(ctx context.Context, userID int64, itemType entity.FavoriteItemType, itemID int64) (*entity.Favorite, error) {
	if itemType == entity.FavoriteProperty {
		return srv.favoriteRepo.FindByUserAndProperty(ctx, userID, itemID)
	}

	return srv.favoriteRepo.FindByUserAndProject(ctx, userID, itemID)
}
