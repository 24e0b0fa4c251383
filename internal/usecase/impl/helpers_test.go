package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"raices/internal/domain/entity"
	"raices/internal/domain/service"
	"raices/internal/usecase"

	"github.com/stretchr/testify/require"
)

// serviceFixtures wires every service against shared in-memory fakes so
// cross-service flows (project cascade, favorites of real items) can be
// exercised end to end.
type serviceFixtures struct {
	userRepo     *fakeUserRepo
	propertyRepo *fakePropertyRepo
	projectRepo  *fakeProjectRepo
	favoriteRepo *fakeFavoriteRepo
	google       *fakeOAuthService

	users      usecase.UserUsecase
	properties usecase.PropertyUsecase
	projects   usecase.ProjectUsecase
	favorites  usecase.FavoriteUsecase
}

func createTestServices(t *testing.T) *serviceFixtures {
	t.Helper()

	userRepo := newFakeUserRepo()
	propertyRepo := newFakePropertyRepo()
	projectRepo := newFakeProjectRepo()
	propertyRepo.users = userRepo
	propertyRepo.projects = projectRepo
	favoriteRepo := newFakeFavoriteRepo(propertyRepo, projectRepo)

	txManager := &fakeTxManager{factory: &fakeRepoFactory{
		userRepo:     userRepo,
		propertyRepo: propertyRepo,
		projectRepo:  projectRepo,
		favoriteRepo: favoriteRepo,
	}}

	google := &fakeOAuthService{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &serviceFixtures{
		userRepo:     userRepo,
		propertyRepo: propertyRepo,
		projectRepo:  projectRepo,
		favoriteRepo: favoriteRepo,
		google:       google,
		users: NewUserService(UserServiceParams{
			TxManager:         txManager,
			UserRepo:          userRepo,
			Hasher:            &fakeHasher{},
			TokenService:      &fakeTokenService{},
			GoogleAuthService: google,
			Logger:            logger,
		}),
		properties: NewPropertyService(PropertyServiceParams{
			TxManager:    txManager,
			PropertyRepo: propertyRepo,
			ProjectRepo:  projectRepo,
			Logger:       logger,
		}),
		projects: NewProjectService(ProjectServiceParams{
			TxManager:    txManager,
			ProjectRepo:  projectRepo,
			PropertyRepo: propertyRepo,
			Logger:       logger,
		}),
		favorites: NewFavoriteService(FavoriteServiceParams{
			FavoriteRepo: favoriteRepo,
			PropertyRepo: propertyRepo,
			ProjectRepo:  projectRepo,
			Logger:       logger,
		}),
	}
}

// seedSeller registers a seller account and returns it.
func (f *serviceFixtures) seedSeller(t *testing.T, email string) *entity.User {
	t.Helper()

	phone := "+1-809-555-0101"
	whatsapp := "+1-809-555-0101"
	output, err := f.users.Register(context.Background(), &usecase.RegisterInput{
		Name:     "Vendedor de Prueba",
		Email:    email,
		Password: "secreto123",
		Role:     "VENDEDOR",
		Phone:    &phone,
		Whatsapp: &whatsapp,
	})
	require.NoError(t, err)

	return output.User
}

// seedBuyer registers a buyer account and returns it.
func (f *serviceFixtures) seedBuyer(t *testing.T, email string) *entity.User {
	t.Helper()

	output, err := f.users.Register(context.Background(), &usecase.RegisterInput{
		Name:     "Comprador de Prueba",
		Email:    email,
		Password: "secreto123",
	})
	require.NoError(t, err)

	return output.User
}

// seedProperty publishes a minimal valid listing for the given seller.
func (f *serviceFixtures) seedProperty(t *testing.T, sellerID int64, slug string) *entity.Property {
	t.Helper()

	price := 185000.0
	property, err := f.properties.Create(context.Background(), &usecase.CreatePropertyInput{
		Name:        "Apartamento en Piantini",
		Slug:        slug,
		Type:        "venta",
		Price:       usecase.LenientFloat{Value: &price},
		Status:      "disponible",
		Description: "Apartamento de dos habitaciones con vista a la ciudad.",
		Location:    "Piantini, Santo Domingo",
		ImageURLs:   []string{"https://cdn.example.com/" + slug + "/1.jpg"},
		SellerID:    sellerID,
	})
	require.NoError(t, err)

	return property
}

// seedProject registers a minimal valid development for the given seller.
func (f *serviceFixtures) seedProject(t *testing.T, sellerID int64, slug string) *entity.Project {
	t.Helper()

	project, err := f.projects.Create(context.Background(), &usecase.CreateProjectInput{
		Name:          "Torre Alameda",
		Slug:          slug,
		Description:   "Torre residencial con amenidades completas.",
		Location:      "Bella Vista, Santo Domingo",
		Status:        "en construcción",
		FeaturedImage: "https://cdn.example.com/" + slug + "/portada.jpg",
		SellerID:      sellerID,
	})
	require.NoError(t, err)

	return project
}

// seedGoogleIdentity points the fake verifier at a fixed Google profile.
func (f *serviceFixtures) seedGoogleIdentity(sub, email, name string) {
	f.google.user = &service.OAuthUser{
		ID:            sub,
		Email:         email,
		Name:          name,
		AvatarURL:     "https://lh3.googleusercontent.com/a/" + sub,
		EmailVerified: true,
	}
}
