package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/orderdesk/accounts-api/internal/core/ports"
)

type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List returns every user with roles populated. Admin only.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BasicAuth
// @Success      200  {array}   userResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.GetAllUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(users))
}

// GetByID returns one user, or 404 when absent. Admin only.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BasicAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	user, found, err := h.users.GetUserByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !found {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// AssignRole attaches a role to a user. Admin only.
//
// @Summary      Assign a role to a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        id    path      int                true  "User id"
// @Param        body  body      assignRoleRequest  true  "Role to attach"
// @Success      200   {object}  userResponse
// @Failure      404   {object}  map[string]string
// @Router       /api/users/{id}/roles [post]
func (h *UserHandler) AssignRole(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	var req assignRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.AssignRole(c.Request().Context(), id, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// RemoveRole detaches a role from a user. Admin only.
//
// @Summary      Remove a role from a user
// @Tags         users
// @Produce      json
// @Security     BasicAuth
// @Param        id    path      int     true  "User id"
// @Param        name  path      string  true  "Role name"
// @Success      200   {object}  userResponse
// @Failure      404   {object}  map[string]string
// @Router       /api/users/{id}/roles/{name} [delete]
func (h *UserHandler) RemoveRole(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	user, err := h.users.RemoveRole(c.Request().Context(), id, c.Param("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
