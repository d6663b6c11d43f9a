package api

import (
	"context"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"webstore-service/internal/entity"
)

// UserStore is the slice of the user facade the handlers need.
type UserStore interface {
	GetAll(ctx context.Context) ([]entity.User, error)
	GetByID(ctx context.Context, id int) (entity.User, error)
	GetByEmail(ctx context.Context, email string) (entity.User, error)
	Create(ctx context.Context, name, email, password string) (entity.User, error)
	Update(ctx context.Context, id int, upd entity.UserUpdate) error
	Delete(ctx context.Context, id int) error
}

type UserHandler struct {
	users      UserStore
	secret     []byte
	adminEmail string
}

// NewUserHandler creates a new instance of UserHandler. Tokens issued to
// adminEmail carry the admin claim.
func NewUserHandler(users UserStore, secret []byte, adminEmail string) *UserHandler {
	return &UserHandler{users: users, secret: secret, adminEmail: adminEmail}
}

// GetAll lists all users --> GET /users
func (h *UserHandler) GetAll(c echo.Context) error {
	users, err := h.users.GetAll(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(200, map[string]any{"users": users})
}

// GetByID retrieves a user by ID --> GET /users/:id
func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "invalid id"})
	}
	user, err := h.users.GetByID(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(200, map[string]any{"user": user})
}

// GetByEmail retrieves a user by email --> GET /users/email/:email
func (h *UserHandler) GetByEmail(c echo.Context) error {
	user, err := h.users.GetByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(200, map[string]any{"user": user})
}

// Create creates a new user --> POST /users
func (h *UserHandler) Create(c echo.Context) error {
	req := struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "invalid request payload"})
	}
	if req.Name == "" || req.Email == "" || len(req.Password) < 8 {
		return c.JSON(400, map[string]string{"error": "name, email and a password of at least 8 characters are required"})
	}

	user, err := h.users.Create(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(201, map[string]any{"user": user})
}

// Update partially updates a user --> PUT /users/:id
func (h *UserHandler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "invalid id"})
	}

	upd := entity.UserUpdate{}
	if err := c.Bind(&upd); err != nil {
		return c.JSON(400, map[string]string{"error": "invalid request payload"})
	}

	if err := h.users.Update(c.Request().Context(), id, upd); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(200, map[string]string{"message": "user updated"})
}

// Delete deletes a user --> DELETE /users/:id
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "invalid id"})
	}
	if err := h.users.Delete(c.Request().Context(), id); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(200, map[string]string{"message": "user deleted"})
}

// Login verifies email and password and issues a JWT --> POST /login
func (h *UserHandler) Login(c echo.Context) error {
	req := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "invalid request payload"})
	}

	user, err := h.users.GetByEmail(c.Request().Context(), req.Email)
	// Passwords are opaque strings at this layer; comparison is equality.
	if err != nil || user.Password != req.Password {
		return c.JSON(401, map[string]string{"error": "invalid credentials"})
	}

	claims := &Claims{
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: h.adminEmail != "" && user.Email == h.adminEmail,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
	if err != nil {
		return c.JSON(500, map[string]string{"error": "could not issue token"})
	}
	return c.JSON(200, map[string]string{"token": token})
}
