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

// ProjectHandler holds dependencies for development handlers.
type ProjectHandler struct {
	uc     usecase.ProjectUsecase
	logger *slog.Logger
}

// NewProjectHandler is the constructor for ProjectHandler, injected by Fx.
func NewProjectHandler(uc usecase.ProjectUsecase, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{uc: uc, logger: logger}
}

// Create handles POST /proyectos for sellers.
func (h *ProjectHandler) Create(c echo.Context) error {
	sellerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "No autenticado")
	}

	var input usecase.CreateProjectInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Datos de proyecto inválidos")
	}
	input.SellerID = sellerID

	project, err := h.uc.Create(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, project)
}

// GetBySlug handles GET /proyectos/slug/:slug, the public detail view.
func (h *ProjectHandler) GetBySlug(c echo.Context) error {
	project, err := h.uc.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, project)
}

// List handles GET /proyectos. An optional vendedorId query parameter
// narrows the catalog to one seller.
func (h *ProjectHandler) List(c echo.Context) error {
	var sellerID *int64
	if raw := c.QueryParam("vendedorId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			return errors.WithStack(
				domainerrors.ErrValidationFailed.WithDetails("vendedorId debe ser un número positivo"),
			)
		}
		sellerID = &parsed
	}

	projects, err := h.uc.List(c.Request().Context(), sellerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, projects)
}

// GetMine handles GET /proyectos/:id for the project's owner, properties
// included.
func (h *ProjectHandler) GetMine(c echo.Context) error {
	callerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "No autenticado")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	project, err := h.uc.GetWithProperties(c.Request().Context(), callerID, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, project)
}

// Update handles PUT /proyectos/:id with three-state patch semantics.
func (h *ProjectHandler) Update(c echo.Context) error {
	callerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "No autenticado")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var input usecase.UpdateProjectInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Datos de proyecto inválidos")
	}
	input.ProjectID = id
	input.CallerID = callerID

	project, err := h.uc.Update(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, project)
}

// Delete handles DELETE /proyectos/:id, sweeping the project's listings
// with it.
func (h *ProjectHandler) Delete(c echo.Context) error {
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

	return response.Success(c, http.StatusOK, map[string]string{"mensaje": "Proyecto eliminado junto a sus propiedades"})
}

// AddImages handles POST /proyectos/:id/imagenes.
func (h *ProjectHandler) AddImages(c echo.Context) error {
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

	project, err := h.uc.AddImages(c.Request().Context(), callerID, id, input.ImageURLs)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, project)
}
