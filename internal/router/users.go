package router

import (
	"net/http"

	"github.com/deppfellow/go-users/internal/handler"
	"github.com/deppfellow/go-users/internal/model"
	"github.com/labstack/echo/v4"
)

func registerUserRoutes(g *echo.Group, h *handler.Handlers) {
	users := g.Group("/users")
	u := h.User

	users.GET("", handler.Handle(u.Handler, u.ListUsers, http.StatusOK, &model.ListUsersPayload{}))
	users.POST("", handler.Handle(u.Handler, u.CreateUser, http.StatusCreated, &model.CreateUserPayload{}))
	users.GET("/:id", handler.Handle(u.Handler, u.GetUser, http.StatusOK, &model.UserIDPayload{}))
	users.PUT("/:id", handler.Handle(u.Handler, u.UpdateUser, http.StatusOK, &model.UpdateUserPayload{}))
	users.DELETE("/:id", handler.HandleNoContent(u.Handler, u.DeleteUser, http.StatusNoContent, &model.UserIDPayload{}))
}
