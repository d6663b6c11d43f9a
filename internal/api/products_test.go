package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webstore-service/internal/entity"
	"webstore-service/internal/repository"
	"webstore-service/internal/store"
)

type stubProductStore struct {
	t       *testing.T
	getByID func(ctx context.Context, id int) (entity.Product, error)
	create  func(ctx context.Context, name, description string, price decimal.Decimal, quantity int, isAdmin bool) (entity.Product, error)
	update  func(ctx context.Context, id int, name, description string, price decimal.Decimal, quantity int) error
}

func (s *stubProductStore) GetAll(ctx context.Context) ([]entity.Product, error) {
	s.t.Fatal("unexpected GetAll")
	return nil, nil
}

func (s *stubProductStore) GetByID(ctx context.Context, id int) (entity.Product, error) {
	if s.getByID == nil {
		s.t.Fatal("unexpected GetByID")
	}
	return s.getByID(ctx, id)
}

func (s *stubProductStore) Create(ctx context.Context, name, description string, price decimal.Decimal, quantity int, isAdmin bool) (entity.Product, error) {
	if s.create == nil {
		s.t.Fatal("unexpected Create")
	}
	return s.create(ctx, name, description, price, quantity, isAdmin)
}

func (s *stubProductStore) Update(ctx context.Context, id int, name, description string, price decimal.Decimal, quantity int) error {
	if s.update == nil {
		s.t.Fatal("unexpected Update")
	}
	return s.update(ctx, id, name, description, price, quantity)
}

func (s *stubProductStore) Delete(ctx context.Context, id int) error {
	s.t.Fatal("unexpected Delete")
	return nil
}

func TestProductHandler_Create(t *testing.T) {
	body := `{"name":"Laptop","description":"High-performance laptop","price":"2499.00","quantity":10}`

	t.Run("admin token reaches the facade as admin", func(t *testing.T) {
		products := &stubProductStore{t: t, create: func(ctx context.Context, name, description string, price decimal.Decimal, quantity int, isAdmin bool) (entity.Product, error) {
			assert.True(t, isAdmin)
			assert.True(t, price.Equal(decimal.RequireFromString("2499.00")))
			return entity.Product{ID: 6, Name: name, Description: description, Price: price, Quantity: quantity}, nil
		}}
		h := NewProductHandler(products)

		c, rec := newContext(t, http.MethodPost, "/products", body)
		c.Set("user", jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{IsAdmin: true}))

		require.NoError(t, h.Create(c))
		assert.Equal(t, 201, rec.Code)
	})

	t.Run("token without admin claim is forwarded as non-admin", func(t *testing.T) {
		products := &stubProductStore{t: t, create: func(ctx context.Context, name, description string, price decimal.Decimal, quantity int, isAdmin bool) (entity.Product, error) {
			assert.False(t, isAdmin)
			return entity.Product{}, repository.ErrAdminRequired
		}}
		h := NewProductHandler(products)

		c, rec := newContext(t, http.MethodPost, "/products", body)
		c.Set("user", jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{IsAdmin: false}))

		require.NoError(t, h.Create(c))
		assert.Equal(t, 403, rec.Code)
	})

	t.Run("no token is forwarded as non-admin", func(t *testing.T) {
		products := &stubProductStore{t: t, create: func(ctx context.Context, name, description string, price decimal.Decimal, quantity int, isAdmin bool) (entity.Product, error) {
			assert.False(t, isAdmin)
			return entity.Product{}, repository.ErrAdminRequired
		}}
		h := NewProductHandler(products)

		c, rec := newContext(t, http.MethodPost, "/products", body)

		require.NoError(t, h.Create(c))
		assert.Equal(t, 403, rec.Code)
	})

	t.Run("missing name", func(t *testing.T) {
		h := NewProductHandler(&stubProductStore{t: t})

		c, rec := newContext(t, http.MethodPost, "/products",
			`{"description":"no name","price":"1.00","quantity":1}`)

		require.NoError(t, h.Create(c))
		assert.Equal(t, 400, rec.Code)
	})
}

func TestProductHandler_GetByID(t *testing.T) {
	products := &stubProductStore{t: t, getByID: func(ctx context.Context, id int) (entity.Product, error) {
		if id != 6 {
			return entity.Product{}, store.ErrNotFound
		}
		return entity.Product{ID: 6, Name: "Laptop", Price: decimal.RequireFromString("2499.00")}, nil
	}}
	h := NewProductHandler(products)

	c, rec := newContext(t, http.MethodGet, "/products/6", "")
	c.SetParamNames("id")
	c.SetParamValues("6")

	require.NoError(t, h.GetByID(c))
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "Laptop")
}

func TestProductHandler_Update_NotFound(t *testing.T) {
	products := &stubProductStore{t: t, update: func(ctx context.Context, id int, name, description string, price decimal.Decimal, quantity int) error {
		return store.ErrNotFound
	}}
	h := NewProductHandler(products)

	c, rec := newContext(t, http.MethodPut, "/products/99",
		`{"name":"Laptop","description":"gone","price":"1.00","quantity":1}`)
	c.SetParamNames("id")
	c.SetParamValues("99")

	require.NoError(t, h.Update(c))
	assert.Equal(t, 404, rec.Code)
}
