package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"network/internal/middleware"
	"network/internal/models"
	"network/internal/repositories"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// FollowHandler handles HTTP requests related to follow relationships
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.Follow)
	g.DELETE("/users/:id/follow", h.Unfollow)
}

// Follow makes the viewer follow the target user
func (h *FollowHandler) Follow(c echo.Context) error {
	viewer := middleware.ViewerFromContext(c)

	target, err := h.targetUser(c)
	if err != nil {
		return err
	}
	if target.ID == viewer.ID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself")
	}

	following, err := h.followRepository.IsFollowing(viewer.ID, target.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if following {
		return echo.NewHTTPError(http.StatusConflict, "Already following this user")
	}

	follow := &models.Follow{FollowerID: viewer.ID, FollowingID: target.ID}
	if err := h.followRepository.CreateFollow(follow); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, follow)
}

// Unfollow removes the viewer's follow of the target user
func (h *FollowHandler) Unfollow(c echo.Context) error {
	viewer := middleware.ViewerFromContext(c)

	target, err := h.targetUser(c)
	if err != nil {
		return err
	}

	if err := h.followRepository.DeleteFollow(viewer.ID, target.ID); err != nil {
		if err.Error() == "follow relationship not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Not following this user")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *FollowHandler) targetUser(c echo.Context) (*models.User, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	user, err := h.userRepository.GetUserByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return user, nil
}
