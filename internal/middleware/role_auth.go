package middleware

import (
	"net/http"

	"github.com/Ashitosh-Bhise/speakwave-server/internal/models"
	"github.com/labstack/echo/v4"
)

// RequireRoles gates a route to callers whose JWT role is in the list.
// It runs after JWTAuthMiddleware and classifies the caller from the
// claims already stored in the context.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(ClaimsContextKey).(*models.JwtCustomClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "You do not have permission to access this route")
		}
	}
}
