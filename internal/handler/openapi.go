package handler

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/deppfellow/go-users/internal/server"
	"github.com/labstack/echo/v4"
)

const openAPIUIFile = "openapi.html"

// OpenAPIHandler serves the API reference page.
type OpenAPIHandler struct {
	Handler
	assets fs.FS
}

func NewOpenAPIHandler(s *server.Server, assets fs.FS) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
		assets:  assets,
	}
}

func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	page, err := fs.ReadFile(h.assets, openAPIUIFile)
	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.HTMLBlob(http.StatusOK, page)
}
