package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"network/internal/middleware"
	"network/internal/models"
	"network/internal/pagination"
	"network/internal/repositories"
	"network/internal/serializers"

	"github.com/labstack/echo/v4"
)

// FeedHandler handles the three paginated feed pages
type FeedHandler struct {
	postRepository repositories.PostRepository
	postSerializer *serializers.PostSerializer
	userSerializer *serializers.UserSerializer
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(postRepo repositories.PostRepository, postSerializer *serializers.PostSerializer, userSerializer *serializers.UserSerializer) *FeedHandler {
	return &FeedHandler{
		postRepository: postRepo,
		postSerializer: postSerializer,
		userSerializer: userSerializer,
	}
}

// RegisterFeedRoutes registers the feed pages. These static paths win
// over the /posts/:id param route in echo's router.
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/posts/profile", h.GetProfileFeed)
	g.GET("/posts/all", h.GetAllFeed)
	g.GET("/posts/following", h.GetFollowingFeed)
}

// profileFeedResponse merges the viewer's serialized user fields with
// the page envelope
type profileFeedResponse struct {
	serializers.UserResponse
	pagination.Page[serializers.PostResponse]
}

// GetProfileFeed returns the viewer's own posts plus their profile fields
func (h *FeedHandler) GetProfileFeed(c echo.Context) error {
	viewer := middleware.ViewerFromContext(c)

	posts, err := h.postRepository.GetPostsByUserID(viewer.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page, err := h.paginate(c, posts, viewer)
	if err != nil {
		return err
	}

	profile, err := h.userSerializer.Serialize(viewer)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, profileFeedResponse{
		UserResponse: *profile,
		Page:         *page,
	})
}

// GetAllFeed returns every post in the system
func (h *FeedHandler) GetAllFeed(c echo.Context) error {
	viewer := middleware.ViewerFromContext(c)

	posts, err := h.postRepository.GetAllPosts()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page, err := h.paginate(c, posts, viewer)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// GetFollowingFeed returns posts authored by users the viewer follows
func (h *FeedHandler) GetFollowingFeed(c echo.Context) error {
	viewer := middleware.ViewerFromContext(c)

	posts, err := h.postRepository.GetFollowingPosts(viewer.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page, err := h.paginate(c, posts, viewer)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// paginate slices the ordered posts into the requested page, then
// serializes only that page's posts with the viewer as context.
func (h *FeedHandler) paginate(c echo.Context, posts []models.Post, viewer *models.User) (*pagination.Page[serializers.PostResponse], error) {
	page, err := pagination.Paginate(posts, pageNumber(c))
	if err != nil {
		if errors.Is(err, pagination.ErrInvalidPage) {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid page number.")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	data, err := h.postSerializer.SerializeMany(page.Data, viewer)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return &pagination.Page[serializers.PostResponse]{
		Data:        data,
		HasNext:     page.HasNext,
		HasPrevious: page.HasPrevious,
		NumPages:    page.NumPages,
		CurrentPage: page.CurrentPage,
	}, nil
}

// pageNumber reads the 1-based page query parameter, defaulting to 1
// when absent or non-numeric
func pageNumber(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil {
		return 1
	}
	return page
}
