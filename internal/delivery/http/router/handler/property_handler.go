package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	deliverycontext "raices/internal/delivery/context"
	"raices/internal/delivery/http/response"
	domainerrors "raices/internal/domain/errors"
	"raices/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PropertyHandler holds dependencies for listing handlers.
type PropertyHandler struct {
	uc     usecase.PropertyUsecase
	logger *slog.Logger
}

// NewPropertyHandler is the constructor for PropertyHandler, injected by Fx.
func NewPropertyHandler(uc usecase.PropertyUsecase, logger *slog.Logger) *PropertyHandler {
	return &PropertyHandler{uc: uc, logger: logger}
}

// Create handles POST /propiedades for sellers.
func (h *PropertyHandler) Create(c echo.Context) error {
	sellerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "No autenticado")
	}

	var input usecase.CreatePropertyInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Datos de propiedad inválidos")
	}
	input.SellerID = sellerID

	property, err := h.uc.Create(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, property)
}

// GetByID handles GET /propiedades/:id.
func (h *PropertyHandler) GetByID(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	property, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, property)
}

// GetBySlug handles GET /propiedades/slug/:slug.
func (h *PropertyHandler) GetBySlug(c echo.Context) error {
	property, err := h.uc.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, property)
}

// ListIndependent handles GET /propiedades, the public catalog of listings
// not grouped under any project.
func (h *PropertyHandler) ListIndependent(c echo.Context) error {
	properties, err := h.uc.ListIndependent(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, properties)
}

// ListMine handles GET /vendedor/mis-propiedades.
func (h *PropertyHandler) ListMine(c echo.Context) error {
	sellerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "No autenticado")
	}

	properties, err := h.uc.ListByOwner(c.Request().Context(), sellerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, properties)
}

// ListMineIndependent handles GET /vendedor/mis-independientes.
func (h *PropertyHandler) ListMineIndependent(c echo.Context) error {
	sellerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "No autenticado")
	}

	properties, err := h.uc.ListIndependentByOwner(c.Request().Context(), sellerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, properties)
}

// ListByProject handles GET /propiedades/proyecto/:proyectoId for the
// project's owner.
func (h *PropertyHandler) ListByProject(c echo.Context) error {
	callerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "No autenticado")
	}

	projectID, err := parseIDParam(c, "proyectoId")
	if err != nil {
		return err
	}

	properties, err := h.uc.ListByProject(c.Request().Context(), callerID, projectID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, properties)
}

// Update handles PUT /propiedades/:id with three-state patch semantics.
func (h *PropertyHandler) Update(c echo.Context) error {
	callerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "No autenticado")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var input usecase.UpdatePropertyInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Datos de propiedad inválidos")
	}
	input.PropertyID = id
	input.CallerID = callerID

	property, err := h.uc.Update(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, property)
}

// Delete handles DELETE /propiedades/:id.
func (h *PropertyHandler) Delete(c echo.Context) error {
	callerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "No autenticado")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), callerID, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"mensaje": "Propiedad eliminada"})
}

// AddImages handles POST /propiedades/:id/imagenes.
func (h *PropertyHandler) AddImages(c echo.Context) error {
	callerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "No autenticado")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var input usecase.AddImagesInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "URLs de imagen inválidas")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	property, err := h.uc.AddImages(c.Request().Context(), callerID, id, input.ImageURLs)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, property)
}

// parseIDParam reads a positive numeric path parameter. Failures surface as
// a domain validation error rendered by the error handler.
func parseIDParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.WithStack(
			domainerrors.ErrValidationFailed.WithDetails("el parámetro " + name + " debe ser un número positivo"),
		)
	}

	return id, nil
}
