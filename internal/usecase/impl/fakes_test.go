package impl

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"raices/internal/domain/entity"
	domainerrors "raices/internal/domain/errors"
	"raices/internal/domain/repository"
	"raices/internal/domain/service"
)

// In-memory repository fakes backing the service tests. They enforce the
// same uniqueness rules as the real Postgres layer and return the same
// sentinel errors, so the services under test exercise their full error
// translation paths.

// --- user repository ---

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*entity.User{}}
}

func (repo *fakeUserRepo) snapshot() (map[int64]*entity.User, int64) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	users := make(map[int64]*entity.User, len(repo.users))
	for id, user := range repo.users {
		clone := *user
		users[id] = &clone
	}

	return users, repo.nextID
}

func (repo *fakeUserRepo) restore(users map[int64]*entity.User, nextID int64) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.users = users
	repo.nextID = nextID
}

func (repo *fakeUserRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user

	return &clone, nil
}

func (repo *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, user := range repo.users {
		if user.Email == email {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (repo *fakeUserRepo) FindByGoogleID(_ context.Context, googleID string) (*entity.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, user := range repo.users {
		if user.GoogleID != nil && *user.GoogleID == googleID {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (repo *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, existing := range repo.users {
		if existing.Email == user.Email {
			return domainerrors.ErrEmailTaken
		}
	}

	repo.nextID++
	user.ID = repo.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	repo.users[user.ID] = &clone

	return nil
}

func (repo *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	user.UpdatedAt = time.Now()
	clone := *user
	repo.users[user.ID] = &clone

	return nil
}

// --- property repository ---

type fakePropertyRepo struct {
	mu         sync.Mutex
	nextID     int64
	properties map[int64]*entity.Property

	// Optional backing repos so reads can join in the seller contact and
	// project summary the way the Postgres preloads do.
	users    *fakeUserRepo
	projects *fakeProjectRepo
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{properties: map[int64]*entity.Property{}}
}

func (repo *fakePropertyRepo) snapshot() (map[int64]*entity.Property, int64) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	properties := make(map[int64]*entity.Property, len(repo.properties))
	for id, property := range repo.properties {
		properties[id] = cloneProperty(property)
	}

	return properties, repo.nextID
}

func (repo *fakePropertyRepo) restore(properties map[int64]*entity.Property, nextID int64) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.properties = properties
	repo.nextID = nextID
}

func (repo *fakePropertyRepo) attachSummaries(property *entity.Property) *entity.Property {
	if repo.users != nil {
		if user, err := repo.users.FindByID(context.Background(), property.SellerID); err == nil {
			property.Seller = user.Contact()
		}
	}
	if repo.projects != nil && property.ProjectID != nil {
		if project, err := repo.projects.FindByID(context.Background(), *property.ProjectID); err == nil {
			property.Project = project.Summary()
		}
	}

	return property
}

func (repo *fakePropertyRepo) Create(_ context.Context, property *entity.Property) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, existing := range repo.properties {
		if existing.Slug == property.Slug {
			return repository.ErrDuplicateSlug
		}
	}

	repo.nextID++
	property.ID = repo.nextID
	property.CreatedAt = time.Now()
	property.UpdatedAt = property.CreatedAt
	for i := range property.Images {
		property.Images[i].ID = repo.nextID*100 + int64(i)
		property.Images[i].PropertyID = &property.ID
	}
	clone := cloneProperty(property)
	repo.properties[property.ID] = clone

	return nil
}

func (repo *fakePropertyRepo) FindByID(_ context.Context, id int64) (*entity.Property, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	property, ok := repo.properties[id]
	if !ok {
		return nil, repository.ErrPropertyNotFound
	}

	return repo.attachSummaries(cloneProperty(property)), nil
}

func (repo *fakePropertyRepo) FindBySlug(_ context.Context, slug string) (*entity.Property, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, property := range repo.properties {
		if property.Slug == slug {
			return repo.attachSummaries(cloneProperty(property)), nil
		}
	}

	return nil, repository.ErrPropertyNotFound
}

func (repo *fakePropertyRepo) ExistsBySlug(_ context.Context, slug string) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, property := range repo.properties {
		if property.Slug == slug {
			return true, nil
		}
	}

	return false, nil
}

func (repo *fakePropertyRepo) List(_ context.Context, filter repository.PropertyFilter) ([]entity.Property, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var result []entity.Property
	for id := repo.nextID; id >= 1; id-- {
		property, ok := repo.properties[id]
		if !ok {
			continue
		}
		if filter.SellerID != nil && property.SellerID != *filter.SellerID {
			continue
		}
		if filter.IndependentOnly && property.ProjectID != nil {
			continue
		}
		clone := cloneProperty(property)
		if repo.users != nil {
			if user, err := repo.users.FindByID(context.Background(), clone.SellerID); err == nil {
				clone.Seller = user.Contact()
			}
		}
		result = append(result, *clone)
	}

	return result, nil
}

func (repo *fakePropertyRepo) ListByProject(_ context.Context, projectID int64) ([]entity.Property, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var result []entity.Property
	for id := repo.nextID; id >= 1; id-- {
		property, ok := repo.properties[id]
		if !ok {
			continue
		}
		if property.ProjectID == nil || *property.ProjectID != projectID {
			continue
		}
		result = append(result, *cloneProperty(property))
	}

	return result, nil
}

func (repo *fakePropertyRepo) Update(_ context.Context, id int64, changes map[string]any) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	property, ok := repo.properties[id]
	if !ok {
		return repository.ErrPropertyNotFound
	}

	for _, other := range repo.properties {
		if slug, ok := changes["slug"].(string); ok && other.ID != id && other.Slug == slug {
			return repository.ErrDuplicateSlug
		}
	}

	for column, value := range changes {
		applyPropertyChange(property, column, value)
	}
	property.UpdatedAt = time.Now()

	return nil
}

func (repo *fakePropertyRepo) ReplaceImages(_ context.Context, propertyID int64, urls []string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	property, ok := repo.properties[propertyID]
	if !ok {
		return repository.ErrPropertyNotFound
	}

	property.Images = property.Images[:0]
	for i, url := range urls {
		property.Images = append(property.Images, entity.Image{
			ID:         propertyID*1000 + int64(i),
			URL:        url,
			PropertyID: &property.ID,
		})
	}

	return nil
}

func (repo *fakePropertyRepo) Delete(_ context.Context, id int64) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.properties[id]; !ok {
		return repository.ErrPropertyNotFound
	}
	delete(repo.properties, id)

	return nil
}

func (repo *fakePropertyRepo) DeleteByProject(_ context.Context, projectID int64) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for id, property := range repo.properties {
		if property.ProjectID != nil && *property.ProjectID == projectID {
			delete(repo.properties, id)
		}
	}

	return nil
}

// applyPropertyChange mirrors the column set accepted by the real Update.
func applyPropertyChange(property *entity.Property, column string, value any) {
	switch column {
	case "nombre":
		property.Name = value.(string)
	case "slug":
		property.Slug = value.(string)
	case "tipo":
		property.Type = value.(string)
	case "precio":
		property.Price = value.(float64)
	case "estado":
		property.Status = value.(string)
	case "descripcion":
		property.Description = value.(string)
	case "ubicacion":
		property.Location = value.(string)
	case "habitaciones":
		property.Bedrooms = asInt64Ptr(value)
	case "banos":
		property.Bathrooms = asInt64Ptr(value)
	case "parqueos":
		property.Parking = asInt64Ptr(value)
	case "metros2":
		property.Area = asFloat64Ptr(value)
	case "nivel":
		property.Floor = asInt64Ptr(value)
	case "ascensor":
		property.Elevator = asBoolPtr(value)
	case "amueblado":
		property.Furnished = asBoolPtr(value)
	case "mantenimiento":
		property.Maintenance = asFloat64Ptr(value)
	case "ano_construccion":
		property.YearBuilt = asInt64Ptr(value)
	case "gastos_legales_incluidos":
		property.LegalFeesIncluded = asBoolPtr(value)
	case "disponible_desde":
		if value == nil {
			property.AvailableFrom = nil
		} else {
			property.AvailableFrom = value.(*time.Time)
		}
	case "video_url":
		property.VideoURL = asStringPtr(value)
	case "tipo_propiedad":
		property.PropertyType = asStringPtr(value)
	case "proyecto_id":
		if value == nil {
			property.ProjectID = nil
		} else {
			property.ProjectID = value.(*int64)
		}
	}
}

func cloneProperty(property *entity.Property) *entity.Property {
	clone := *property
	clone.Images = append([]entity.Image(nil), property.Images...)

	return &clone
}

// --- project repository ---

type fakeProjectRepo struct {
	mu       sync.Mutex
	nextID   int64
	projects map[int64]*entity.Project

	// deleteErr, when set, fails the next Delete call so transactional
	// flows can be driven into their rollback path.
	deleteErr error
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: map[int64]*entity.Project{}}
}

func (repo *fakeProjectRepo) snapshot() (map[int64]*entity.Project, int64) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	projects := make(map[int64]*entity.Project, len(repo.projects))
	for id, project := range repo.projects {
		projects[id] = cloneProject(project)
	}

	return projects, repo.nextID
}

func (repo *fakeProjectRepo) restore(projects map[int64]*entity.Project, nextID int64) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.projects = projects
	repo.nextID = nextID
}

func (repo *fakeProjectRepo) Create(_ context.Context, project *entity.Project) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, existing := range repo.projects {
		if existing.Slug == project.Slug {
			return repository.ErrDuplicateSlug
		}
	}

	repo.nextID++
	project.ID = repo.nextID
	project.CreatedAt = time.Now()
	project.UpdatedAt = project.CreatedAt
	for i := range project.Images {
		project.Images[i].ID = repo.nextID*100 + int64(i)
		project.Images[i].ProjectID = &project.ID
	}
	clone := cloneProject(project)
	repo.projects[project.ID] = clone

	return nil
}

func (repo *fakeProjectRepo) FindByID(_ context.Context, id int64) (*entity.Project, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	project, ok := repo.projects[id]
	if !ok {
		return nil, repository.ErrProjectNotFound
	}

	return cloneProject(project), nil
}

func (repo *fakeProjectRepo) FindBySlug(_ context.Context, slug string) (*entity.Project, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, project := range repo.projects {
		if project.Slug == slug {
			return cloneProject(project), nil
		}
	}

	return nil, repository.ErrProjectNotFound
}

func (repo *fakeProjectRepo) ExistsBySlug(_ context.Context, slug string) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, project := range repo.projects {
		if project.Slug == slug {
			return true, nil
		}
	}

	return false, nil
}

func (repo *fakeProjectRepo) List(_ context.Context, sellerID *int64) ([]entity.Project, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var result []entity.Project
	for id := repo.nextID; id >= 1; id-- {
		project, ok := repo.projects[id]
		if !ok {
			continue
		}
		if sellerID != nil && project.SellerID != *sellerID {
			continue
		}
		result = append(result, *cloneProject(project))
	}

	return result, nil
}

func (repo *fakeProjectRepo) Update(_ context.Context, id int64, changes map[string]any) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	project, ok := repo.projects[id]
	if !ok {
		return repository.ErrProjectNotFound
	}

	for _, other := range repo.projects {
		if slug, ok := changes["slug"].(string); ok && other.ID != id && other.Slug == slug {
			return repository.ErrDuplicateSlug
		}
	}

	for column, value := range changes {
		switch column {
		case "nombre":
			project.Name = value.(string)
		case "slug":
			project.Slug = value.(string)
		case "descripcion":
			project.Description = value.(string)
		case "ubicacion":
			project.Location = value.(string)
		case "estado":
			project.Status = value.(string)
		case "imagen_destacada":
			project.FeaturedImage = value.(string)
		case "video_url":
			project.VideoURL = asStringPtr(value)
		}
	}
	project.UpdatedAt = time.Now()

	return nil
}

func (repo *fakeProjectRepo) ReplaceImages(_ context.Context, projectID int64, urls []string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	project, ok := repo.projects[projectID]
	if !ok {
		return repository.ErrProjectNotFound
	}

	project.Images = project.Images[:0]
	for i, url := range urls {
		project.Images = append(project.Images, entity.Image{
			ID:        projectID*1000 + int64(i),
			URL:       url,
			ProjectID: &project.ID,
		})
	}

	return nil
}

func (repo *fakeProjectRepo) Delete(_ context.Context, id int64) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.deleteErr != nil {
		err := repo.deleteErr
		repo.deleteErr = nil

		return err
	}

	if _, ok := repo.projects[id]; !ok {
		return repository.ErrProjectNotFound
	}
	delete(repo.projects, id)

	return nil
}

func cloneProject(project *entity.Project) *entity.Project {
	clone := *project
	clone.Images = append([]entity.Image(nil), project.Images...)
	clone.Properties = append([]entity.Property(nil), project.Properties...)

	return &clone
}

// --- favorite repository ---

type fakeFavoriteRepo struct {
	mu        sync.Mutex
	nextID    int64
	favorites map[int64]*entity.Favorite

	propertyRepo *fakePropertyRepo
	projectRepo  *fakeProjectRepo
}

func (repo *fakeFavoriteRepo) snapshot() (map[int64]*entity.Favorite, int64) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	favorites := make(map[int64]*entity.Favorite, len(repo.favorites))
	for id, favorite := range repo.favorites {
		clone := *favorite
		favorites[id] = &clone
	}

	return favorites, repo.nextID
}

func (repo *fakeFavoriteRepo) restore(favorites map[int64]*entity.Favorite, nextID int64) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.favorites = favorites
	repo.nextID = nextID
}

func newFakeFavoriteRepo(propertyRepo *fakePropertyRepo, projectRepo *fakeProjectRepo) *fakeFavoriteRepo {
	return &fakeFavoriteRepo{
		favorites:    map[int64]*entity.Favorite{},
		propertyRepo: propertyRepo,
		projectRepo:  projectRepo,
	}
}

func (repo *fakeFavoriteRepo) FindByUserAndProperty(_ context.Context, userID, propertyID int64) (*entity.Favorite, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, favorite := range repo.favorites {
		if favorite.UserID == userID && favorite.PropertyID != nil && *favorite.PropertyID == propertyID {
			clone := *favorite

			return &clone, nil
		}
	}

	return nil, repository.ErrFavoriteNotFound
}

func (repo *fakeFavoriteRepo) FindByUserAndProject(_ context.Context, userID, projectID int64) (*entity.Favorite, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, favorite := range repo.favorites {
		if favorite.UserID == userID && favorite.ProjectID != nil && *favorite.ProjectID == projectID {
			clone := *favorite

			return &clone, nil
		}
	}

	return nil, repository.ErrFavoriteNotFound
}

func (repo *fakeFavoriteRepo) Create(_ context.Context, favorite *entity.Favorite) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, existing := range repo.favorites {
		if existing.UserID != favorite.UserID {
			continue
		}
		samePropety := existing.PropertyID != nil && favorite.PropertyID != nil && *existing.PropertyID == *favorite.PropertyID
		sameProject := existing.ProjectID != nil && favorite.ProjectID != nil && *existing.ProjectID == *favorite.ProjectID
		if samePropety || sameProject {
			return repository.ErrFavoriteExists
		}
	}

	repo.nextID++
	favorite.ID = repo.nextID
	favorite.CreatedAt = time.Now()
	clone := *favorite
	repo.favorites[favorite.ID] = &clone

	return nil
}

func (repo *fakeFavoriteRepo) Delete(_ context.Context, id int64) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.favorites[id]; !ok {
		return repository.ErrFavoriteNotFound
	}
	delete(repo.favorites, id)

	return nil
}

func (repo *fakeFavoriteRepo) ListByUser(ctx context.Context, userID int64) ([]entity.Favorite, error) {
	repo.mu.Lock()
	ids := make([]int64, 0, len(repo.favorites))
	for id := repo.nextID; id >= 1; id-- {
		if favorite, ok := repo.favorites[id]; ok && favorite.UserID == userID {
			ids = append(ids, id)
		}
	}
	repo.mu.Unlock()

	var result []entity.Favorite
	for _, id := range ids {
		repo.mu.Lock()
		clone := *repo.favorites[id]
		repo.mu.Unlock()

		if clone.PropertyID != nil {
			if property, err := repo.propertyRepo.FindByID(ctx, *clone.PropertyID); err == nil {
				clone.Property = property
			}
		}
		if clone.ProjectID != nil {
			if project, err := repo.projectRepo.FindByID(ctx, *clone.ProjectID); err == nil {
				clone.Project = project
			}
		}
		result = append(result, clone)
	}

	return result, nil
}

// --- transaction manager ---

// fakeTxManager mimics transactional rollback by snapshotting every store
// before running fn and restoring the snapshots when fn fails.
type fakeTxManager struct {
	factory *fakeRepoFactory
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	restore := m.factory.snapshot()
	if err := fn(m.factory); err != nil {
		restore()

		return err
	}

	return nil
}

type fakeRepoFactory struct {
	userRepo     *fakeUserRepo
	propertyRepo *fakePropertyRepo
	projectRepo  *fakeProjectRepo
	favoriteRepo *fakeFavoriteRepo
}

func (f *fakeRepoFactory) UserRepo() repository.UserRepository         { return f.userRepo }
func (f *fakeRepoFactory) PropertyRepo() repository.PropertyRepository { return f.propertyRepo }
func (f *fakeRepoFactory) ProjectRepo() repository.ProjectRepository   { return f.projectRepo }
func (f *fakeRepoFactory) FavoriteRepo() repository.FavoriteRepository { return f.favoriteRepo }

func (f *fakeRepoFactory) snapshot() func() {
	users, userNext := f.userRepo.snapshot()
	properties, propertyNext := f.propertyRepo.snapshot()
	projects, projectNext := f.projectRepo.snapshot()
	favorites, favoriteNext := f.favoriteRepo.snapshot()

	return func() {
		f.userRepo.restore(users, userNext)
		f.propertyRepo.restore(properties, propertyNext)
		f.projectRepo.restore(projects, projectNext)
		f.favoriteRepo.restore(favorites, favoriteNext)
	}
}

// --- domain service fakes ---

type fakeHasher struct{}

func (h *fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (h *fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

type fakeTokenService struct{}

func (s *fakeTokenService) Generate(userID int64, role entity.Role) (string, error) {
	return fmt.Sprintf("token-%d-%s", userID, role), nil
}

func (s *fakeTokenService) Validate(tokenString string) (*service.Claims, error) {
	var userID int64
	var role string
	if _, err := fmt.Sscanf(tokenString, "token-%d-%s", &userID, &role); err != nil {
		return nil, fmt.Errorf("malformed test token %q", tokenString)
	}

	return &service.Claims{UserID: userID, Role: entity.Role(role)}, nil
}

func (s *fakeTokenService) Duration() time.Duration {
	return 7 * 24 * time.Hour
}

type fakeOAuthService struct {
	user *service.OAuthUser
	err  error
}

func (s *fakeOAuthService) VerifyIDToken(_ context.Context, idToken string) (*service.OAuthUser, error) {
	if s.err != nil {
		return nil, s.err
	}
	if strings.TrimSpace(idToken) == "" {
		return nil, fmt.Errorf("empty id token")
	}

	return s.user, nil
}

// --- typed pointer helpers ---

func asInt64Ptr(value any) *int64 {
	if value == nil {
		return nil
	}
	v := value.(int64)

	return &v
}

func asFloat64Ptr(value any) *float64 {
	if value == nil {
		return nil
	}
	v := value.(float64)

	return &v
}

func asBoolPtr(value any) *bool {
	if value == nil {
		return nil
	}
	v := value.(bool)

	return &v
}

func asStringPtr(value any) *string {
	if value == nil {
		return nil
	}
	v := value.(string)

	return &v
}
