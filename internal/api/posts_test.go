package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webstore-service/internal/entity"
	"webstore-service/internal/store"
)

type stubPostStore struct {
	t           *testing.T
	getByUserID func(ctx context.Context, userID int) ([]entity.Post, error)
	create      func(ctx context.Context, title, content string, userID int) (entity.Post, error)
}

func (s *stubPostStore) GetAll(ctx context.Context) ([]entity.Post, error) {
	s.t.Fatal("unexpected GetAll")
	return nil, nil
}

func (s *stubPostStore) GetByID(ctx context.Context, id int) (entity.Post, error) {
	s.t.Fatal("unexpected GetByID")
	return entity.Post{}, nil
}

func (s *stubPostStore) GetByUserID(ctx context.Context, userID int) ([]entity.Post, error) {
	if s.getByUserID == nil {
		s.t.Fatal("unexpected GetByUserID")
	}
	return s.getByUserID(ctx, userID)
}

func (s *stubPostStore) Create(ctx context.Context, title, content string, userID int) (entity.Post, error) {
	if s.create == nil {
		s.t.Fatal("unexpected Create")
	}
	return s.create(ctx, title, content, userID)
}

func (s *stubPostStore) Update(ctx context.Context, id int, title, content string, userID int) error {
	s.t.Fatal("unexpected Update")
	return nil
}

func (s *stubPostStore) Delete(ctx context.Context, id int) error {
	s.t.Fatal("unexpected Delete")
	return nil
}

func TestPostHandler_GetByUserID(t *testing.T) {
	posts := &stubPostStore{t: t, getByUserID: func(ctx context.Context, userID int) ([]entity.Post, error) {
		assert.Equal(t, 1, userID)
		return []entity.Post{{ID: 1, Title: "First Post", Content: "Hello world", UserID: 1}}, nil
	}}
	h := NewPostHandler(posts)

	c, rec := newContext(t, http.MethodGet, "/posts/user/1", "")
	c.SetParamNames("user_id")
	c.SetParamValues("1")

	require.NoError(t, h.GetByUserID(c))
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "First Post")
}

func TestPostHandler_Create(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		posts := &stubPostStore{t: t, create: func(ctx context.Context, title, content string, userID int) (entity.Post, error) {
			return entity.Post{ID: 3, Title: title, Content: content, UserID: userID}, nil
		}}
		h := NewPostHandler(posts)

		c, rec := newContext(t, http.MethodPost, "/posts",
			`{"title":"First Post","content":"Hello world","user_id":1}`)

		require.NoError(t, h.Create(c))
		assert.Equal(t, 201, rec.Code)
	})

	t.Run("missing user_id", func(t *testing.T) {
		h := NewPostHandler(&stubPostStore{t: t})

		c, rec := newContext(t, http.MethodPost, "/posts",
			`{"title":"First Post","content":"Hello world"}`)

		require.NoError(t, h.Create(c))
		assert.Equal(t, 400, rec.Code)
	})

	t.Run("unknown user maps to bad request", func(t *testing.T) {
		posts := &stubPostStore{t: t, create: func(ctx context.Context, title, content string, userID int) (entity.Post, error) {
			return entity.Post{}, store.ErrRowMissing
		}}
		h := NewPostHandler(posts)

		c, rec := newContext(t, http.MethodPost, "/posts",
			`{"title":"Orphan","content":"nobody wrote this","user_id":99}`)

		require.NoError(t, h.Create(c))
		assert.Equal(t, 400, rec.Code)
	})
}
