// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "raices/internal/delivery/context"
	"raices/internal/domain/entity"
	domainerrors "raices/internal/domain/errors"
	"raices/internal/domain/repository"
	"raices/internal/domain/service"
	"raices/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager         repository.TransactionManager
	userRepo          repository.UserRepository
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	googleAuthService service.OAuthAuthService
	logger            *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager         repository.TransactionManager
	UserRepo          repository.UserRepository
	Hasher            service.PasswordHasher
	TokenService      service.TokenService
	GoogleAuthService service.OAuthAuthService
	Logger            *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:         params.TxManager,
		userRepo:          params.UserRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		googleAuthService: params.GoogleAuthService,
		logger:            params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new account with an email/password credential.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	role := entity.RoleBuyer
	if strings.TrimSpace(input.Role) != "" {
		parsed, ok := entity.ParseRole(input.Role)
		if !ok {
			srv.log(ctx).Warn("Rejected registration with unknown role", slog.String("role", input.Role))

			return nil, errors.Wrap(domainerrors.ErrRoleInvalid, "unknown role in registration input")
		}
		role = parsed
	}

	if role == entity.RoleSeller && (emptyPtr(input.Phone) || emptyPtr(input.Whatsapp)) {
		return nil, errors.Wrap(domainerrors.ErrSellerContactRequired, "seller registration without contact data")
	}

	// Fast path before paying for the hash. The unique index on email
	// still backstops concurrent registrations.
	if _, err := srv.userRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, errors.Wrap(domainerrors.ErrEmailTaken, "email already registered")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check email availability")
	}

	hashed, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during registration")
	}

	newUser := &entity.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: &hashed,
		Role:         role,
		Phone:        trimPtr(input.Phone),
		Whatsapp:     trimPtr(input.Whatsapp),
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.UserRepo().Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user during registration")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute registration transaction", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID), slog.Any("role", role))

	return &usecase.RegisterOutput{User: newUser}, nil
}

// Login verifies an email/password pair and issues a session token.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.SessionOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login attempt for unknown email", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "unknown email")
		}

		return nil, errors.Wrap(err, "failed to find user during login")
	}

	// Google-only accounts have no local password to check against.
	if user.PasswordHash == nil || !srv.hasher.Check(input.Password, *user.PasswordHash) {
		srv.log(ctx).Warn("Login attempt with wrong credentials", slog.Any("userID", user.ID))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "password mismatch")
	}

	token, err := srv.tokenService.Generate(user.ID, user.Role)
	if err != nil {
		srv.log(ctx).Error("Failed to generate session token", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate session token")
	}

	srv.log(ctx).Info("Login succeeded", slog.Any("userID", user.ID))

	return &usecase.SessionOutput{Token: token, User: user}, nil
}

// GoogleLogin signs a user in with a Google-issued ID token, linking or
// creating the local account as needed.
func (srv *userService) GoogleLogin(ctx context.Context, input *usecase.GoogleLoginInput) (*usecase.SessionOutput, error) {
	oauthUser, err := srv.googleAuthService.VerifyIDToken(ctx, input.IDToken)
	if err != nil {
		srv.log(ctx).Warn("Google ID token verification failed", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrGoogleTokenInvalid, "failed to verify Google ID token")
	}

	user, err := srv.resolveGoogleUser(ctx, oauthUser)
	if err != nil {
		return nil, err
	}

	token, err := srv.tokenService.Generate(user.ID, user.Role)
	if err != nil {
		srv.log(ctx).Error("Failed to generate session token", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate session token")
	}

	srv.log(ctx).Info("Google login succeeded", slog.Any("userID", user.ID))

	return &usecase.SessionOutput{Token: token, User: user}, nil
}

// resolveGoogleUser finds the account for a verified Google identity,
// linking it to an existing email account or creating a buyer account.
func (srv *userService) resolveGoogleUser(ctx context.Context, oauthUser *service.OAuthUser) (*entity.User, error) {
	user, err := srv.userRepo.FindByGoogleID(ctx, oauthUser.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to find user by google id")
	}

	existing, err := srv.userRepo.FindByEmail(ctx, oauthUser.Email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to find user by email during google login")
	}

	if err == nil {
		if existing.GoogleID != nil && *existing.GoogleID != oauthUser.ID {
			srv.log(ctx).Warn("Email already linked to a different Google account", slog.Any("userID", existing.ID))

			return nil, errors.Wrap(domainerrors.ErrGoogleAccountConflict, "email linked to another google account")
		}

		existing.GoogleID = &oauthUser.ID
		if existing.ProfileImageURL == nil && oauthUser.AvatarURL != "" {
			avatar := oauthUser.AvatarURL
			existing.ProfileImageURL = &avatar
		}

		err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
			if err := repoFactory.UserRepo().Update(ctx, existing); err != nil {
				return errors.Wrap(err, "failed to link google account")
			}

			return nil
		})
		if err != nil {
			srv.log(ctx).Error("Failed to link Google account", slog.Any("userID", existing.ID), slog.Any("error", err))

			return nil, err
		}

		srv.log(ctx).Info("Linked Google account to existing user", slog.Any("userID", existing.ID))

		return existing, nil
	}

	newUser := &entity.User{
		Name:     oauthUser.Name,
		Email:    oauthUser.Email,
		Role:     entity.RoleBuyer,
		GoogleID: &oauthUser.ID,
	}
	if newUser.Name == "" {
		newUser.Name = oauthUser.Email
	}
	if oauthUser.AvatarURL != "" {
		avatar := oauthUser.AvatarURL
		newUser.ProfileImageURL = &avatar
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.UserRepo().Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user from google identity")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to create user from Google identity", slog.String("email", oauthUser.Email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Created new user from Google identity", slog.Any("userID", newUser.ID))

	return newUser, nil
}

// GetMe returns the authenticated user's own account.
func (srv *userService) GetMe(ctx context.Context, userID int64) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "session user no longer exists")
		}

		return nil, errors.Wrap(err, "failed to load session user")
	}

	return user, nil
}

// emptyPtr reports whether an optional string is absent or blank.
func emptyPtr(value *string) bool {
	return value == nil || strings.TrimSpace(*value) == ""
}

// trimPtr trims an optional string, collapsing blank values to nil.
func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}

	return &trimmed
}
