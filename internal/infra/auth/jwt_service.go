// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"raices/config"
	"raices/internal/domain/entity"
	"raices/internal/domain/service"
)

// sessionTTL is the lifetime of a session token.
const sessionTTL = time.Hour * 24 * 7

// wireClaims is the on-the-wire shape of the session token payload.
type wireClaims struct {
	Role string `json:"rol"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret string        // Secret key for signing session tokens.
	ttl    time.Duration // Time-to-live for session tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Token == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtService{
		secret: cfg.SecretKey.Token,
		ttl:    sessionTTL,
	}, nil
}

// Generate creates a new session token for a given user and role.
func (s *jwtService) Generate(userID int64, role entity.Role) (string, error) {
	now := time.Now()
	claims := &wireClaims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.secret))
}

// Validate checks the validity of a token string.
func (s *jwtService) Validate(tokenString string) (*service.Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &wireClaims{}, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*wireClaims)
	if !ok || !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, jwt.ErrTokenInvalidSubject
	}

	role, ok := entity.ParseRole(claims.Role)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return &service.Claims{
		UserID:           userID,
		Role:             role,
		RegisteredClaims: claims.RegisteredClaims,
	}, nil
}

// Duration returns the configured session token lifetime.
func (s *jwtService) Duration() time.Duration {
	return s.ttl
}
