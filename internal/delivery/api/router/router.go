// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"net/http"
	"strings"

	"authapp/config"
	"authapp/internal/delivery/api/docs"
	"authapp/internal/delivery/api/middleware"
	"authapp/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	Config         *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	authMiddleware *middleware.AuthMiddleware
	config         *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		authMiddleware: params.AuthMiddleware,
		config:         params.Config,
	}
}

// RegisterRoutes sets up all the API routes under http.basePath.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	base := strings.TrimRight(r.config.HTTP.BasePath, "/")
	api := e.Group(base)

	// Swagger UI at {basePath}/docs, spec at {basePath}/docs/doc.json
	docs.SwaggerInfo.BasePath = base
	api.GET("/docs", func(c echo.Context) error {
		return c.Redirect(http.StatusMovedPermanently, base+"/docs/index.html")
	})
	api.GET("/docs/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(docs.SwaggerInfo.InstanceName())))

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", r.authHandler.SignUp)
		authGroup.POST("/signin", r.authHandler.SignIn)
		authGroup.GET("/me", r.authHandler.Me, r.authMiddleware.Authenticate)
	}
}
