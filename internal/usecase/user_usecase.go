// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"raices/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Name     string  `json:"nombre" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Role     string  `json:"rol"`
	Phone    *string `json:"telefono"`
	Whatsapp *string `json:"whatsapp"`
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleLoginInput carries the Google-issued ID token from the client.
type GoogleLoginInput struct {
	IDToken string `json:"idToken" validate:"required"`
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's basic information.
type RegisterOutput struct {
	User *entity.User `json:"usuario"`
}

// SessionOutput returns the signed session token together with the user it
// belongs to. The token travels back as an HTTP-only cookie, never in JSON.
type SessionOutput struct {
	Token string       `json:"-"`
	User  *entity.User `json:"usuario"`
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*SessionOutput, error)
	GoogleLogin(ctx context.Context, input *GoogleLoginInput) (*SessionOutput, error)
	GetMe(ctx context.Context, userID int64) (*entity.User, error)
}
