package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/orderdesk/accounts-api/internal/core/domain"
	"github.com/orderdesk/accounts-api/internal/core/ports"
)

// BasicAuth authenticates each request with HTTP Basic credentials against
// the stored authentication profile, then injects the username and derived
// authority set into the echo context for downstream RBAC checks.
//
// All authentication failures produce the same 401 body: the response must
// not reveal whether the user exists, the password was wrong, or the
// account is disabled.
func BasicAuth(users ports.UserService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username, password, ok := c.Request().BasicAuth()
			if !ok {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Basic realm="accounts"`)
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
			}

			profile, err := users.LoadAuthenticationProfile(c.Request().Context(), username)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
				}
				return err
			}
			if !profile.Enabled {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
			}
			if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)) != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
			}

			c.Set("username", profile.Username)
			c.Set("authorities", profile.Authorities)
			return next(c)
		}
	}
}
