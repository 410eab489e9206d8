// Package router builds the echo instance: binder, error handler,
// middleware chain and every route.
package router

import (
	"github.com/deppfellow/go-users/internal/handler"
	"github.com/deppfellow/go-users/internal/middleware"
	"github.com/deppfellow/go-users/internal/server"
	"github.com/deppfellow/go-users/internal/validation"
	"github.com/labstack/echo/v4"
)

// APIPrefix is prepended to every resource route.
const APIPrefix = "/api"

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.Binder = validation.NewStrictBinder()
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middleware.RequestID(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	api := router.Group(APIPrefix)
	registerUserRoutes(api, h)

	return router
}
