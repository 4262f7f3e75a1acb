package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RBAC enforces authority-based access control. The request passes when the
// authenticated principal holds at least one of the required authorities.
func RBAC(required ...string) echo.MiddlewareFunc {
	wanted := make(map[string]struct{}, len(required))
	for _, a := range required {
		wanted[a] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authorities, _ := c.Get("authorities").([]string)
			for _, a := range authorities {
				if _, ok := wanted[a]; ok {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}
