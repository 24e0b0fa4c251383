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

// projectService implements the ProjectUsecase interface.
type projectService struct {
	txManager    repository.TransactionManager
	projectRepo  repository.ProjectRepository
	propertyRepo repository.PropertyRepository
	logger       *slog.Logger
}

// ProjectServiceParams holds dependencies for ProjectService, injected by Fx.
type ProjectServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	ProjectRepo  repository.ProjectRepository
	PropertyRepo repository.PropertyRepository
	Logger       *slog.Logger
}

// NewProjectService is the constructor for projectService.
func NewProjectService(params ProjectServiceParams) usecase.ProjectUsecase {
	return &projectService{
		txManager:    params.TxManager,
		projectRepo:  params.ProjectRepo,
		propertyRepo: params.PropertyRepo,
		logger:       params.Logger,
	}
}

func (srv *projectService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create registers a new development owned by the calling seller.
func (srv *projectService) Create(ctx context.Context, input *usecase.CreateProjectInput) (*entity.Project, error) {
	srv.log(ctx).Info("Creating project", slog.String("slug", input.Slug), slog.Any("sellerID", input.SellerID))

	if missing := missingRequired(map[string]string{
		"nombre":          input.Name,
		"slug":            input.Slug,
		"descripcion":     input.Description,
		"ubicacion":       input.Location,
		"estado":          input.Status,
		"imagenDestacada": input.FeaturedImage,
	}); len(missing) > 0 {
		return nil, errors.Wrap(
			domainerrors.ErrValidationFailed.WithDetails("campos requeridos: "+strings.Join(missing, ", ")),
			"missing required project fields",
		)
	}

	if taken, err := srv.projectRepo.ExistsBySlug(ctx, input.Slug); err != nil {
		return nil, errors.Wrap(err, "failed to check project slug availability")
	} else if taken {
		return nil, errors.Wrap(domainerrors.ErrProjectSlugTaken, "slug already used by another project")
	}

	project := &entity.Project{
		Name:          strings.TrimSpace(input.Name),
		Slug:          strings.TrimSpace(input.Slug),
		Description:   strings.TrimSpace(input.Description),
		Location:      strings.TrimSpace(input.Location),
		Status:        strings.TrimSpace(input.Status),
		FeaturedImage: strings.TrimSpace(input.FeaturedImage),
		VideoURL:      trimPtr(input.VideoURL),
		SellerID:      input.SellerID,
		Images:        imagesFromURLs(cleanURLs(input.ImageURLs)),
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.ProjectRepo().Create(ctx, project); err != nil {
			return srv.translateProjectWriteError(err)
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to create project", slog.String("slug", input.Slug), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Project created", slog.Any("projectID", project.ID))

	return srv.projectRepo.FindByID(ctx, project.ID)
}

// GetBySlug returns the public detail view of a development, its listings
// and seller contact included.
func (srv *projectService) GetBySlug(ctx context.Context, slug string) (*entity.Project, error) {
	project, err := srv.projectRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProjectNotFound, "no project with that slug")
		}

		return nil, errors.Wrap(err, "failed to load project by slug")
	}

	return project, nil
}

// List returns developments newest first, optionally narrowed to one seller.
func (srv *projectService) List(ctx context.Context, sellerID *int64) ([]entity.Project, error) {
	projects, err := srv.projectRepo.List(ctx, sellerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list projects")
	}

	return projects, nil
}

// GetWithProperties returns one of the caller's developments with every
// attached listing loaded.
func (srv *projectService) GetWithProperties(ctx context.Context, callerID, projectID int64) (*entity.Project, error) {
	project, err := srv.loadOwned(ctx, projectID, callerID)
	if err != nil {
		return nil, err
	}

	properties, err := srv.propertyRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list project properties")
	}
	project.Properties = properties

	return project, nil
}

// Update applies a partial change to one of the caller's developments.
func (srv *projectService) Update(ctx context.Context, input *usecase.UpdateProjectInput) (*entity.Project, error) {
	existing, err := srv.loadOwned(ctx, input.ProjectID, input.CallerID)
	if err != nil {
		return nil, err
	}

	changes, err := srv.buildProjectChanges(ctx, input, existing)
	if err != nil {
		return nil, err
	}

	var replaceImages []string
	if input.ImageURLs.Defined {
		replaceImages = cleanURLs(derefSlice(input.ImageURLs.Value))
	}

	if len(changes) == 0 && !input.ImageURLs.Defined {
		return existing, nil
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		projectRepo := repoFactory.ProjectRepo()

		if len(changes) > 0 {
			if err := projectRepo.Update(ctx, input.ProjectID, changes); err != nil {
				return srv.translateProjectWriteError(err)
			}
		}
		if input.ImageURLs.Defined {
			if err := projectRepo.ReplaceImages(ctx, input.ProjectID, replaceImages); err != nil {
				return errors.Wrap(err, "failed to replace project images")
			}
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to update project", slog.Any("projectID", input.ProjectID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Project updated", slog.Any("projectID", input.ProjectID))

	return srv.projectRepo.FindByID(ctx, input.ProjectID)
}

// Delete removes one of the caller's developments together with every
// attached listing, all in one transaction.
func (srv *projectService) Delete(ctx context.Context, callerID, projectID int64) error {
	if _, err := srv.loadOwned(ctx, projectID, callerID); err != nil {
		return err
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.PropertyRepo().DeleteByProject(ctx, projectID); err != nil {
			return errors.Wrap(err, "failed to delete project properties")
		}
		if err := repoFactory.ProjectRepo().Delete(ctx, projectID); err != nil {
			return errors.Wrap(err, "failed to delete project")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to delete project", slog.Any("projectID", projectID), slog.Any("error", err))

		return err
	}

	srv.log(ctx).Info("Project deleted with its properties", slog.Any("projectID", projectID))

	return nil
}

// AddImages appends media to one of the caller's developments.
func (srv *projectService) AddImages(ctx context.Context, callerID, projectID int64, urls []string) (*entity.Project, error) {
	existing, err := srv.loadOwned(ctx, projectID, callerID)
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
		if err := repoFactory.ProjectRepo().ReplaceImages(ctx, projectID, combined); err != nil {
			return errors.Wrap(err, "failed to add project images")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to add project images", slog.Any("projectID", projectID), slog.Any("error", err))

		return nil, err
	}

	return srv.projectRepo.FindByID(ctx, projectID)
}

// loadOwned fetches a project and enforces that the caller owns it.
func (srv *projectService) loadOwned(ctx context.Context, projectID, callerID int64) (*entity.Project, error) {
	existing, err := srv.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProjectNotFound, "no project with that id")
		}

		return nil, errors.Wrap(err, "failed to load project")
	}

	if !existing.OwnedBy(callerID) {
		srv.log(ctx).Warn("Blocked cross-seller project access", slog.Any("projectID", projectID), slog.Any("userID", callerID))

		return nil, errors.Wrap(domainerrors.ErrNotOwner, "project belongs to another seller")
	}

	return existing, nil
}

// buildProjectChanges converts the three-state input into a column change
// set. Every project column except videoUrl is NOT NULL, so explicit nulls
// on those fields reject the request instead of clearing them.
func (srv *projectService) buildProjectChanges(
	ctx context.Context,
	input *usecase.UpdateProjectInput,
	existing *entity.Project,
) (map[string]any, error) {
	changes := map[string]any{}

	requiredStrings := []struct {
		field  usecase.Optional[string]
		column string
	}{
		{input.Name, "nombre"},
		{input.Description, "descripcion"},
		{input.Location, "ubicacion"},
		{input.Status, "estado"},
		{input.FeaturedImage, "imagen_destacada"},
	}
	for _, item := range requiredStrings {
		if !item.field.Defined {
			continue
		}
		if item.field.Value == nil || strings.TrimSpace(*item.field.Value) == "" {
			return nil, errors.Wrap(
				domainerrors.ErrValidationFailed.WithDetails("el campo "+item.column+" no puede quedar vacío"),
				"attempt to clear a required project field",
			)
		}
		changes[item.column] = strings.TrimSpace(*item.field.Value)
	}

	if input.Slug.Defined {
		if input.Slug.Value == nil || strings.TrimSpace(*input.Slug.Value) == "" {
			return nil, errors.Wrap(
				domainerrors.ErrValidationFailed.WithDetails("el campo slug no puede quedar vacío"),
				"attempt to clear the project slug",
			)
		}
		slug := strings.TrimSpace(*input.Slug.Value)
		if slug != existing.Slug {
			if taken, err := srv.projectRepo.ExistsBySlug(ctx, slug); err != nil {
				return nil, errors.Wrap(err, "failed to check project slug availability")
			} else if taken {
				return nil, errors.Wrap(domainerrors.ErrProjectSlugTaken, "slug already used by another project")
			}
		}
		changes["slug"] = slug
	}

	setOptionalString(changes, "video_url", input.VideoURL)

	return changes, nil
}

// translateProjectWriteError maps storage sentinels raised during project
// writes onto their user-facing domain errors.
func (srv *projectService) translateProjectWriteError(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateSlug):
		return errors.Wrap(domainerrors.ErrProjectSlugTaken, "slug already used by another project")
	case errors.Is(err, repository.ErrProjectNotFound):
		return errors.Wrap(domainerrors.ErrProjectNotFound, "project no longer exists")
	default:
		return errors.Wrap(err, "project write failed")
	}
}
