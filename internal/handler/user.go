package handler

import (
	"github.com/deppfellow/go-users/internal/model"
	"github.com/deppfellow/go-users/internal/server"
	"github.com/deppfellow/go-users/internal/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	Handler
	userService *service.UserService
}

func NewUserHandler(s *server.Server, userService *service.UserService) *UserHandler {
	return &UserHandler{
		Handler:     NewHandler(s),
		userService: userService,
	}
}

func (h *UserHandler) ListUsers(c echo.Context, _ *model.ListUsersPayload) ([]model.User, error) {
	return h.userService.ListUsers(c.Request().Context())
}

func (h *UserHandler) CreateUser(c echo.Context, payload *model.CreateUserPayload) (*model.User, error) {
	return h.userService.CreateUser(c.Request().Context(), payload)
}

func (h *UserHandler) GetUser(c echo.Context, payload *model.UserIDPayload) (*model.User, error) {
	return h.userService.GetUser(c.Request().Context(), payload.ID)
}

func (h *UserHandler) UpdateUser(c echo.Context, payload *model.UpdateUserPayload) (*model.User, error) {
	return h.userService.UpdateUser(c.Request().Context(), payload)
}

func (h *UserHandler) DeleteUser(c echo.Context, payload *model.UserIDPayload) error {
	return h.userService.DeleteUser(c.Request().Context(), payload.ID)
}
