package handlers

import (
	"net/http"

	"network/internal/middleware"
	"network/internal/repositories"
	"network/internal/serializers"

	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to user profiles
type UserHandler struct {
	userRepository repositories.UserRepository
	userSerializer *serializers.UserSerializer
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, userSerializer *serializers.UserSerializer) *UserHandler {
	return &UserHandler{
		userRepository: userRepo,
		userSerializer: userSerializer,
	}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)    // Get own profile
	g.DELETE("/profile", h.DeleteUser) // Delete own account
}

// GetProfile returns the viewer's serialized profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	viewer := middleware.ViewerFromContext(c)

	profile, err := h.userSerializer.Serialize(viewer)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, profile)
}

// DeleteUser hard-deletes the viewer's account. Their posts stay behind
// with no owner and render as "user removed".
func (h *UserHandler) DeleteUser(c echo.Context) error {
	viewer := middleware.ViewerFromContext(c)

	if err := h.userRepository.DeleteUser(viewer.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
