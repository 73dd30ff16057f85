package handlers

import (
	"github.com/Ashitosh-Bhise/speakwave-server/internal/middleware"
	"github.com/Ashitosh-Bhise/speakwave-server/internal/models"
	"github.com/labstack/echo/v4"
)

// currentClaims returns the verified JWT claims set by the auth middleware,
// or nil when the route is unauthenticated.
func currentClaims(c echo.Context) *models.JwtCustomClaims {
	claims, _ := c.Get(middleware.ClaimsContextKey).(*models.JwtCustomClaims)
	return claims
}
