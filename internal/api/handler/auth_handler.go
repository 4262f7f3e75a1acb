package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/orderdesk/accounts-api/internal/api/metrics"
	"github.com/orderdesk/accounts-api/internal/core/domain"
	"github.com/orderdesk/accounts-api/internal/core/ports"
)

type AuthHandler struct {
	users       ports.UserService
	defaultRole string
}

func NewAuthHandler(users ports.UserService, defaultRole string) *AuthHandler {
	return &AuthHandler{users: users, defaultRole: defaultRole}
}

// Register creates a new user account with the configured default role.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.Register(c.Request().Context(), req.Username, req.Password, req.Email, h.defaultRole)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUsernameTaken):
			metrics.RegistrationFailuresTotal.WithLabelValues("duplicate_username").Inc()
		case errors.Is(err, domain.ErrEmailTaken):
			metrics.RegistrationFailuresTotal.WithLabelValues("duplicate_email").Inc()
		case errors.Is(err, domain.ErrRoleNotFound):
			metrics.RegistrationFailuresTotal.WithLabelValues("role_not_found").Inc()
		}
		return err
	}
	metrics.RegistrationsTotal.WithLabelValues(h.defaultRole).Inc()
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Login verifies a username/password pair against the stored credentials.
//
// Every failure — unknown user, wrong password, disabled account — returns
// the same 401 body so the response cannot be used to probe which usernames
// exist.
//
// @Summary      Verify credentials
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.users.LoadAuthenticationProfile(c.Request().Context(), req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
			return domain.ErrInvalidCredentials
		}
		return err
	}
	if !profile.Enabled ||
		bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)) != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return domain.ErrInvalidCredentials
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Username:    profile.Username,
		Authorities: profile.Authorities,
	})
}
