package middleware

import (
	deliverycontext "raices/internal/delivery/context"
	"raices/internal/delivery/http/response"
	"raices/internal/domain/entity"
	"raices/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// SessionCookieName is the HTTP-only cookie carrying the session JWT.
const SessionCookieName = "token"

// AuthMiddleware validates the session cookie and loads the caller's
// identity into the request context.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate rejects requests without a valid session cookie. On success
// the caller's ID and role are available through the delivery context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			return response.Unauthorized(c, "No autenticado")
		}

		claims, err := m.tokenSvc.Validate(cookie.Value)
		if err != nil {
			return response.Unauthorized(c, "Token inválido o expirado")
		}

		deliverycontext.SetUserID(c, claims.UserID)
		deliverycontext.SetUserRole(c, claims.Role)

		return next(c)
	}
}

// RequireRole allows only callers holding the given role. It must run after
// Authenticate.
func (m *AuthMiddleware) RequireRole(required entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := deliverycontext.GetUserRole(c)
			if !ok {
				return response.Forbidden(c, "Acceso denegado")
			}
			if role != required {
				return response.Forbidden(c, "Requiere rol "+required.String())
			}

			return next(c)
		}
	}
}

// RequireSeller is shorthand for the VENDEDOR-only route groups.
func (m *AuthMiddleware) RequireSeller() echo.MiddlewareFunc {
	return m.RequireRole(entity.RoleSeller)
}
