package google

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"raices/config"

	"github.com/stretchr/testify/assert"
)

func newTestAuthService(t *testing.T) *AuthServiceImpl {
	t.Helper()

	cfg := &config.Config{GoogleOAuth: &config.GoogleOAuthConfig{ClientID: "test_client_id"}}
	authService := NewAuthService(cfg, slog.Default())

	return authService.(*AuthServiceImpl)
}

// buildIDToken assembles an unsigned JWT carrying the given claims. Signature
// bytes are garbage on purpose; the verifier never checks them.
func buildIDToken(t *testing.T, claims GoogleIDTokenClaims) string {
	t.Helper()

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"RS256","typ":"JWT"}`))
	body, err := json.Marshal(claims)
	assert.NoError(t, err)
	payload := base64.RawURLEncoding.EncodeToString(body)

	return header + "." + payload + ".invalid_signature"
}

func validClaims() GoogleIDTokenClaims {
	return GoogleIDTokenClaims{
		Iss:           "https://accounts.google.com",
		Sub:           "google-user-123",
		Aud:           "test_client_id",
		Exp:           time.Now().Add(time.Hour).Unix(),
		Iat:           time.Now().Unix(),
		Email:         "comprador@example.com",
		EmailVerified: true,
		Name:          "Comprador Ejemplo",
		Picture:       "https://example.com/avatar.png",
	}
}

func TestAuthService_VerifyIDToken(t *testing.T) {
	authService := newTestAuthService(t)

	oauthUser, err := authService.VerifyIDToken(context.Background(), buildIDToken(t, validClaims()))
	assert.NoError(t, err)
	assert.NotNil(t, oauthUser)
	assert.Equal(t, "google-user-123", oauthUser.ID)
	assert.Equal(t, "comprador@example.com", oauthUser.Email)
	assert.Equal(t, "Comprador Ejemplo", oauthUser.Name)
	assert.True(t, oauthUser.EmailVerified)
}

func TestAuthService_WrongAudience(t *testing.T) {
	authService := newTestAuthService(t)

	claims := validClaims()
	claims.Aud = "another_client_id"

	oauthUser, err := authService.VerifyIDToken(context.Background(), buildIDToken(t, claims))
	assert.Error(t, err)
	assert.Nil(t, oauthUser)
	assert.Contains(t, err.Error(), "token verification failed")
}

func TestAuthService_ExpiredToken(t *testing.T) {
	authService := newTestAuthService(t)

	claims := validClaims()
	claims.Exp = time.Now().Add(-time.Hour).Unix()

	oauthUser, err := authService.VerifyIDToken(context.Background(), buildIDToken(t, claims))
	assert.Error(t, err)
	assert.Nil(t, oauthUser)
	assert.Contains(t, err.Error(), "token verification failed")
}

func TestAuthService_UnverifiedEmail(t *testing.T) {
	authService := newTestAuthService(t)

	claims := validClaims()
	claims.EmailVerified = false

	oauthUser, err := authService.VerifyIDToken(context.Background(), buildIDToken(t, claims))
	assert.Error(t, err)
	assert.Nil(t, oauthUser)
}

func TestAuthService_ParseIDToken(t *testing.T) {
	authService := newTestAuthService(t)

	claims, err := authService.parseIDToken(buildIDToken(t, validClaims()))
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, "google-user-123", claims.Sub)
	assert.Equal(t, "test_client_id", claims.Aud)
	assert.Equal(t, "https://accounts.google.com", claims.Iss)
	assert.True(t, claims.EmailVerified)
}

func TestAuthService_InvalidJWT(t *testing.T) {
	authService := newTestAuthService(t)

	oauthUser, err := authService.VerifyIDToken(context.Background(), "invalid_token_format")
	assert.Error(t, err)
	assert.Nil(t, oauthUser)
	assert.Contains(t, err.Error(), "invalid JWT format")
}
