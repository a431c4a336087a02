package middleware

import (
	"net/http"
	"os"
	"strings"

	"network/internal/models"
	"network/internal/repositories"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// viewerKey is the context key the authenticated viewer is stored under
const viewerKey = "currentUser"

// JWTAuthMiddleware checks for a valid JWT, resolves the claims to a
// user loaded fresh from the store, and sets it on the context as the
// viewer for the request. Handlers never consult any ambient state.
func JWTAuthMiddleware(userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}
			tokenString := parts[1]

			claims := &models.JwtCustomClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
				}
				return []byte(JWTSecret()), nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			user, err := userRepo.GetUserByID(claims.UserID)
			if err != nil || !user.IsActive {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unknown user")
			}

			c.Set(viewerKey, user)
			return next(c)
		}
	}
}

// JWTSecret returns the signing secret shared with the auth handler
func JWTSecret() string {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return secret
	}
	return "supersecretjwtkey" // Must match the secret used for signing
}

// ViewerFromContext returns the authenticated viewer set by
// JWTAuthMiddleware, or nil when the request is unauthenticated.
func ViewerFromContext(c echo.Context) *models.User {
	user, _ := c.Get(viewerKey).(*models.User)
	return user
}
