package api

import (
	"context"
	"strconv"

	"github.com/labstack/echo/v4"

	"webstore-service/internal/entity"
)

// PostStore is the slice of the post facade the handlers need.
type PostStore interface {
	GetAll(ctx context.Context) ([]entity.Post, error)
	GetByID(ctx context.Context, id int) (entity.Post, error)
	GetByUserID(ctx context.Context, userID int) ([]entity.Post, error)
	Create(ctx context.Context, title, content string, userID int) (entity.Post, error)
	Update(ctx context.Context, id int, title, content string, userID int) error
	Delete(ctx context.Context, id int) error
}

type PostHandler struct {
	posts PostStore
}

// NewPostHandler creates a new instance of PostHandler
func NewPostHandler(posts PostStore) *PostHandler {
	return &PostHandler{posts: posts}
}

type postRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	UserID  int    `json:"user_id"`
}

func (p postRequest) valid() bool {
	return p.Title != "" && p.Content != "" && p.UserID > 0
}

// GetAll lists all posts --> GET /posts
func (h *PostHandler) GetAll(c echo.Context) error {
	posts, err := h.posts.GetAll(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(200, map[string]any{"posts": posts})
}

// GetByID retrieves a post by ID --> GET /posts/:id
func (h *PostHandler) GetByID(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "invalid id"})
	}
	post, err := h.posts.GetByID(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(200, map[string]any{"post": post})
}

// GetByUserID lists a user's posts --> GET /posts/user/:user_id
func (h *PostHandler) GetByUserID(c echo.Context) error {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "invalid user id"})
	}
	posts, err := h.posts.GetByUserID(c.Request().Context(), userID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(200, map[string]any{"posts": posts})
}

// Create creates a new post --> POST /posts
func (h *PostHandler) Create(c echo.Context) error {
	req := postRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "invalid request payload"})
	}
	if !req.valid() {
		return c.JSON(400, map[string]string{"error": "title, content and user_id are required"})
	}

	post, err := h.posts.Create(c.Request().Context(), req.Title, req.Content, req.UserID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(201, map[string]any{"post": post})
}

// Update replaces a post --> PUT /posts/:id
func (h *PostHandler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "invalid id"})
	}

	req := postRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "invalid request payload"})
	}
	if !req.valid() {
		return c.JSON(400, map[string]string{"error": "title, content and user_id are required"})
	}

	if err := h.posts.Update(c.Request().Context(), id, req.Title, req.Content, req.UserID); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(200, map[string]string{"message": "post updated"})
}

// Delete deletes a post --> DELETE /posts/:id
func (h *PostHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "invalid id"})
	}
	if err := h.posts.Delete(c.Request().Context(), id); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(200, map[string]string{"message": "post deleted"})
}
