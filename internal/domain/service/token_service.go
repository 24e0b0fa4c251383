package service

import (
	"time"

	"raices/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the custom claims for the session JWT.
type Claims struct {
	UserID int64
	Role   entity.Role
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Generate creates a new session token for a given user.
	Generate(userID int64, role entity.Role) (string, error)

	// Validate checks the validity of a token string.
	Validate(tokenString string) (*Claims, error)

	// Duration returns the configured session token lifetime.
	Duration() time.Duration
}
