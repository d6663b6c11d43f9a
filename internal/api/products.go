package api

import (
	"context"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"webstore-service/internal/entity"
)

// ProductStore is the slice of the product facade the handlers need.
type ProductStore interface {
	GetAll(ctx context.Context) ([]entity.Product, error)
	GetByID(ctx context.Context, id int) (entity.Product, error)
	Create(ctx context.Context, name, description string, price decimal.Decimal, quantity int, isAdmin bool) (entity.Product, error)
	Update(ctx context.Context, id int, name, description string, price decimal.Decimal, quantity int) error
	Delete(ctx context.Context, id int) error
}

type ProductHandler struct {
	products ProductStore
}

// NewProductHandler creates a new instance of ProductHandler
func NewProductHandler(products ProductStore) *ProductHandler {
	return &ProductHandler{products: products}
}

type productRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

func (p productRequest) valid() bool {
	return p.Name != "" && p.Description != ""
}

// GetAll lists all products --> GET /products
func (h *ProductHandler) GetAll(c echo.Context) error {
	products, err := h.products.GetAll(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(200, map[string]any{"products": products})
}

// GetByID retrieves a product by ID --> GET /products/:id
func (h *ProductHandler) GetByID(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "invalid id"})
	}
	product, err := h.products.GetByID(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(200, map[string]any{"product": product})
}

// Create creates a new product --> POST /products
// The admin claim of the verified token feeds the facade's authorization
// gate; the gate itself lives in the repository.
func (h *ProductHandler) Create(c echo.Context) error {
	req := productRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "invalid request payload"})
	}
	if !req.valid() {
		return c.JSON(400, map[string]string{"error": "name and description are required"})
	}

	product, err := h.products.Create(c.Request().Context(), req.Name, req.Description, req.Price, req.Quantity, isAdmin(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(201, map[string]any{"product": product})
}

// Update replaces a product --> PUT /products/:id
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "invalid id"})
	}

	req := productRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "invalid request payload"})
	}
	if !req.valid() {
		return c.JSON(400, map[string]string{"error": "name and description are required"})
	}

	if err := h.products.Update(c.Request().Context(), id, req.Name, req.Description, req.Price, req.Quantity); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(200, map[string]string{"message": "product updated"})
}

// Delete deletes a product --> DELETE /products/:id
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "invalid id"})
	}
	if err := h.products.Delete(c.Request().Context(), id); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(200, map[string]string{"message": "product deleted"})
}
