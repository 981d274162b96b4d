package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/focusflow/focusflow-api/internal/core/domain"
	"github.com/focusflow/focusflow-api/internal/core/ports"
)

// AdminHandler serves the admin dashboard endpoints.
type AdminHandler struct {
	users ports.UserRepository
}

func NewAdminHandler(users ports.UserRepository) *AdminHandler {
	return &AdminHandler{users: users}
}

type listUsersResponse struct {
	Data []*domain.User `json:"data"`
}

// ListUsers handles GET /v1/admin/users.
//
// @Summary      List registered users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Max users to return"
// @Success      200    {object}  listUsersResponse
// @Failure      401    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Router       /v1/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	limit := intQueryParam(c, "limit", 100)
	users, err := h.users.List(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return c.JSON(http.StatusOK, listUsersResponse{Data: users})
}
