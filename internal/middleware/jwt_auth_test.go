package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Ashitosh-Bhise/speakwave-server/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims *models.JwtCustomClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func invoke(secret, authHeader string) (*models.JwtCustomClaims, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got *models.JwtCustomClaims
	handler := JWTAuthMiddleware(secret)(func(c echo.Context) error {
		got, _ = c.Get(ClaimsContextKey).(*models.JwtCustomClaims)
		return c.NoContent(http.StatusOK)
	})
	return got, handler(c)
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	token := signToken(t, "test-secret", &models.JwtCustomClaims{
		UserID: 7,
		Email:  "maya@example.com",
		Role:   models.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := invoke("test-secret", "Bearer "+token)
	require.NoError(t, err)
	require.NotNil(t, claims)
	require.Equal(t, uint(7), claims.UserID)
	require.Equal(t, models.RoleUser, claims.Role)
}

func TestJWTAuthMiddleware_Rejections(t *testing.T) {
	expired := signToken(t, "test-secret", &models.JwtCustomClaims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	wrongKey := signToken(t, "some-other-secret", &models.JwtCustomClaims{UserID: 7})

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "malformed header", header: "token-without-scheme"},
		{name: "garbage token", header: "Bearer not.a.jwt"},
		{name: "expired token", header: "Bearer " + expired},
		{name: "wrong signing key", header: "Bearer " + wrongKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := invoke("test-secret", tt.header)
			require.Error(t, err)
			var httpErr *echo.HTTPError
			require.ErrorAs(t, err, &httpErr)
			require.Equal(t, http.StatusUnauthorized, httpErr.Code)
		})
	}
}
