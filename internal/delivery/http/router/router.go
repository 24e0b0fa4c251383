// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"raices/internal/delivery/http/middleware"
	"raices/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler     *handler.UserHandler
	PropertyHandler *handler.PropertyHandler
	ProjectHandler  *handler.ProjectHandler
	FavoriteHandler *handler.FavoriteHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler     *handler.UserHandler
	propertyHandler *handler.PropertyHandler
	projectHandler  *handler.ProjectHandler
	favoriteHandler *handler.FavoriteHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:     params.UserHandler,
		propertyHandler: params.PropertyHandler,
		projectHandler:  params.ProjectHandler,
		favoriteHandler: params.FavoriteHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Session routes. The favorites endpoints live under /auth too,
	// mirroring the public API contract.
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/registro", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/google-login", r.userHandler.GoogleLogin)
		authGroup.POST("/logout", r.userHandler.Logout)

		favoriteGroup := authGroup.Group("/favorites")
		favoriteGroup.Use(r.authMiddleware.Authenticate)
		favoriteGroup.POST("", r.favoriteHandler.Toggle)
		favoriteGroup.GET("", r.favoriteHandler.List)
	}

	// Authenticated account view
	e.GET("/me", r.userHandler.GetMe, r.authMiddleware.Authenticate)

	// Property routes: the catalog is public, everything that writes or
	// exposes ownership data requires a seller session.
	propertyGroup := e.Group("/propiedades")
	{
		propertyGroup.GET("", r.propertyHandler.ListIndependent)
		propertyGroup.GET("/slug/:slug", r.propertyHandler.GetBySlug)
		propertyGroup.GET("/:id", r.propertyHandler.GetByID)

		sellerProperties := propertyGroup.Group("")
		sellerProperties.Use(r.authMiddleware.Authenticate)
		sellerProperties.Use(r.authMiddleware.RequireSeller())
		sellerProperties.POST("", r.propertyHandler.Create)
		sellerProperties.GET("/proyecto/:proyectoId", r.propertyHandler.ListByProject)
		sellerProperties.PUT("/:id", r.propertyHandler.Update)
		sellerProperties.DELETE("/:id", r.propertyHandler.Delete)
		sellerProperties.POST("/:id/imagenes", r.propertyHandler.AddImages)
	}

	// Seller dashboard listings
	sellerGroup := e.Group("/vendedor")
	sellerGroup.Use(r.authMiddleware.Authenticate)
	sellerGroup.Use(r.authMiddleware.RequireSeller())
	{
		sellerGroup.GET("/mis-propiedades", r.propertyHandler.ListMine)
		sellerGroup.GET("/mis-independientes", r.propertyHandler.ListMineIndependent)
	}

	// Project routes
	projectGroup := e.Group("/proyectos")
	{
		projectGroup.GET("", r.projectHandler.List)
		projectGroup.GET("/slug/:slug", r.projectHandler.GetBySlug)

		sellerProjects := projectGroup.Group("")
		sellerProjects.Use(r.authMiddleware.Authenticate)
		sellerProjects.Use(r.authMiddleware.RequireSeller())
		sellerProjects.POST("", r.projectHandler.Create)
		sellerProjects.GET("/:id", r.projectHandler.GetMine)
		sellerProjects.PUT("/:id", r.projectHandler.Update)
		sellerProjects.DELETE("/:id", r.projectHandler.Delete)
		sellerProjects.POST("/:id/imagenes", r.projectHandler.AddImages)
	}
}
