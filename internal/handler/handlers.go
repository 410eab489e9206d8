// Package handler is the HTTP layer: it binds and validates requests,
// calls the services and writes responses.
package handler

import (
	"github.com/deppfellow/go-users/internal/server"
	"github.com/deppfellow/go-users/internal/service"
	"github.com/deppfellow/go-users/static"
)

type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	User    *UserHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s, static.FS),
		User:    NewUserHandler(s, services.User),
	}
}
