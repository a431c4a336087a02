package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"network/internal/middleware"
	"network/internal/models"
	"network/internal/repositories"
	"network/internal/serializers"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository repositories.PostRepository
	likeRepository repositories.LikeRepository
	postSerializer *serializers.PostSerializer
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, likeRepo repositories.LikeRepository, postSerializer *serializers.PostSerializer) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		likeRepository: likeRepo,
		postSerializer: postSerializer,
	}
}

// RegisterPostRoutes registers post-related routes. The client contract
// reports method mismatches as 400 with a "<METHOD> request required."
// message rather than 405, so the other methods get explicit handlers.
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.Match(otherMethods(http.MethodPost), "/posts", methodRequired("POST request required."))

	// Feed pages (/posts/profile etc.) are registered as static routes
	// elsewhere and take precedence over :id in echo's router.
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.Match(otherMethods(http.MethodGet, http.MethodPut), "/posts/:id", h.postMethodNotAllowed)
}

// CreatePost creates a new post, or a comment when a parent id is given
func (h *PostHandler) CreatePost(c echo.Context) error {
	viewer := middleware.ViewerFromContext(c)

	var req models.CreatePostRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON.")
	}

	if strings.TrimSpace(req.Body) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Post body cannot be empty.")
	}

	if req.Parent != nil {
		if _, err := h.postRepository.GetPostByID(*req.Parent); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return echo.NewHTTPError(http.StatusBadRequest, "Post cannot be found.")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	post := &models.Post{
		UserID:   &viewer.ID,
		Body:     req.Body,
		ParentID: req.Parent,
	}
	if err := h.postRepository.CreatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "Post has been successfully added"})
}

// GetPost retrieves a single post serialized with the viewer as context
func (h *PostHandler) GetPost(c echo.Context) error {
	viewer := middleware.ViewerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		// Not a post id and not a known feed page name.
		return echo.NewHTTPError(http.StatusNotFound, "Page not found.")
	}

	post, err := h.postRepository.GetPostByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "Post cannot be found.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp, err := h.postSerializer.Serialize(post, viewer)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

// UpdatePost applies one of two mutually exclusive update intents: a
// like toggle open to any viewer, or an owner-only body edit.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	viewer := middleware.ViewerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		// PUT on a feed page name.
		return echo.NewHTTPError(http.StatusBadRequest, "GET request required.")
	}

	var req models.UpdatePostRequest
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if strings.Contains(err.Error(), "unknown field") {
			return echo.NewHTTPError(http.StatusBadRequest, "Only 'body' field is allowed.")
		}
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON.")
	}

	post, err := h.postRepository.GetPostByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "Post cannot be found.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.Action != nil {
		if *req.Action != models.ActionToggleLike {
			return echo.NewHTTPError(http.StatusBadRequest, "No valid update fields provided.")
		}
		return h.toggleLike(c, post, viewer)
	}

	if req.Body == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No valid update fields provided.")
	}

	// Body edits are restricted to the post's owner. The like toggle
	// above deliberately is not.
	if post.UserID == nil || *post.UserID != viewer.ID {
		return echo.NewHTTPError(http.StatusUnauthorized, "User post not the same as requested.")
	}

	if err := h.postRepository.UpdatePostBody(post.ID, *req.Body); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// toggleLike flips the viewer's like on a post by creating or deleting
// the (viewer, post) like row
func (h *PostHandler) toggleLike(c echo.Context, post *models.Post, viewer *models.User) error {
	hasLiked, err := h.likeRepository.HasUserLikedPost(post.ID, viewer.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if hasLiked {
		err = h.likeRepository.DeleteLike(post.ID, viewer.ID)
	} else {
		err = h.likeRepository.CreateLike(&models.Like{PostID: post.ID, UserID: viewer.ID})
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	likes, err := h.likeRepository.GetLikesCountByPostID(post.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"likes": likes, "liked": !hasLiked})
}

// postMethodNotAllowed reports the methods /posts/:id actually accepts,
// distinguishing post ids from feed page names.
func (h *PostHandler) postMethodNotAllowed(c echo.Context) error {
	if _, err := strconv.ParseUint(c.Param("id"), 10, 32); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "GET request required.")
	}
	return echo.NewHTTPError(http.StatusBadRequest, "GET or PUT request required.")
}

// methodRequired returns a handler that fails with the given message
func methodRequired(message string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, message)
	}
}

// otherMethods lists the common HTTP methods minus the allowed ones
func otherMethods(allowed ...string) []string {
	all := []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}
	var out []string
	for _, m := range all {
		skip := false
		for _, a := range allowed {
			if m == a {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, m)
		}
	}
	return out
}
