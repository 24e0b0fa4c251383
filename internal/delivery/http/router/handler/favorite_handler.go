package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "raices/internal/delivery/context"
	"raices/internal/delivery/http/response"
	"raices/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// FavoriteHandler holds dependencies for favorites handlers.
type FavoriteHandler struct {
	uc     usecase.FavoriteUsecase
	logger *slog.Logger
}

// NewFavoriteHandler is the constructor for FavoriteHandler, injected by Fx.
func NewFavoriteHandler(uc usecase.FavoriteUsecase, logger *slog.Logger) *FavoriteHandler {
	return &FavoriteHandler{uc: uc, logger: logger}
}

// Toggle handles POST /auth/favorites, flipping the favorite state of a
// property or project for the authenticated user.
func (h *FavoriteHandler) Toggle(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "No autenticado")
	}

	var input usecase.ToggleFavoriteInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Datos de favorito inválidos")
	}
	input.UserID = userID

	output, err := h.uc.Toggle(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	status := http.StatusOK
	if output.Favorited {
		status = http.StatusCreated
	}

	return response.Success(c, status, output)
}

// List handles GET /auth/favorites for the authenticated user.
func (h *FavoriteHandler) List(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "No autenticado")
	}

	items, err := h.uc.List(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, items)
}
