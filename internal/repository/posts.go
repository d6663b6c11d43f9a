package repository

import (
	"context"

	"github.com/rs/zerolog"

	"webstore-service/internal/entity"
	"webstore-service/internal/store"
)

type PostRepository struct {
	store *store.Store
	log   zerolog.Logger
}

func NewPostRepository(s *store.Store, log zerolog.Logger) *PostRepository {
	return &PostRepository{store: s, log: log.With().Str("repository", "posts").Logger()}
}

func scanPost(row store.Scanner) (entity.Post, error) {
	var p entity.Post
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.UserID)
	return p, err
}

func (r *PostRepository) GetAll(ctx context.Context) ([]entity.Post, error) {
	r.log.Info().Msg("listing posts")
	return store.FetchAll(ctx, r.store, `SELECT id, title, content, user_id FROM posts`, scanPost)
}

func (r *PostRepository) GetByID(ctx context.Context, id int) (entity.Post, error) {
	r.log.Info().Int("id", id).Msg("getting post by id")
	return store.FetchOne(ctx, r.store, `SELECT id, title, content, user_id FROM posts WHERE id = ?`, scanPost, id)
}

func (r *PostRepository) GetByUserID(ctx context.Context, userID int) ([]entity.Post, error) {
	r.log.Info().Int("user_id", userID).Msg("listing posts by user")
	return store.FetchAll(ctx, r.store, `SELECT id, title, content, user_id FROM posts WHERE user_id = ?`, scanPost, userID)
}

// Create inserts a post. A user_id with no matching user fails at the
// storage engine and surfaces as ErrRowMissing; no post is created.
func (r *PostRepository) Create(ctx context.Context, title, content string, userID int) (entity.Post, error) {
	r.log.Info().Str("title", title).Int("user_id", userID).Msg("creating post")
	id, err := r.store.Insert(ctx, `INSERT INTO posts (title, content, user_id) VALUES (?, ?, ?)`, title, content, userID)
	if err != nil {
		r.log.Error().Err(err).Msg("creating post failed")
		return entity.Post{}, err
	}
	return entity.Post{ID: int(id), Title: title, Content: content, UserID: userID}, nil
}

// Update replaces every column of the post; there is no partial update for
// posts.
func (r *PostRepository) Update(ctx context.Context, id int, title, content string, userID int) error {
	r.log.Info().Int("id", id).Msg("updating post")
	n, err := r.store.Exec(ctx, `UPDATE posts SET title = ?, content = ?, user_id = ? WHERE id = ?`, title, content, userID, id)
	if err != nil {
		r.log.Error().Err(err).Int("id", id).Msg("updating post failed")
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id int) error {
	r.log.Info().Int("id", id).Msg("deleting post")
	n, err := r.store.Exec(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		r.log.Error().Err(err).Int("id", id).Msg("deleting post failed")
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
