// Package repository contains the per-entity CRUD facades over the store
// primitives. All SQL lives here; column names are fixed in code and only
// values are bound as parameters.
package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"webstore-service/internal/entity"
	"webstore-service/internal/store"
)

type UserRepository struct {
	store *store.Store
	log   zerolog.Logger
}

func NewUserRepository(s *store.Store, log zerolog.Logger) *UserRepository {
	return &UserRepository{store: s, log: log.With().Str("repository", "users").Logger()}
}

func scanUser(row store.Scanner) (entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password)
	return u, err
}

func (r *UserRepository) GetAll(ctx context.Context) ([]entity.User, error) {
	r.log.Info().Msg("listing users")
	return store.FetchAll(ctx, r.store, `SELECT id, name, email, password FROM users`, scanUser)
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (entity.User, error) {
	r.log.Info().Int("id", id).Msg("getting user by id")
	return store.FetchOne(ctx, r.store, `SELECT id, name, email, password FROM users WHERE id = ?`, scanUser, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (entity.User, error) {
	r.log.Info().Str("email", email).Msg("getting user by email")
	return store.FetchOne(ctx, r.store, `SELECT id, name, email, password FROM users WHERE email = ?`, scanUser, email)
}

func (r *UserRepository) Create(ctx context.Context, name, email, password string) (entity.User, error) {
	r.log.Info().Str("name", name).Str("email", email).Msg("creating user")
	id, err := r.store.Insert(ctx, `INSERT INTO users (name, email, password) VALUES (?, ?, ?)`, name, email, password)
	if err != nil {
		r.log.Error().Err(err).Msg("creating user failed")
		return entity.User{}, err
	}
	return entity.User{ID: int(id), Name: name, Email: email, Password: password}, nil
}

// Update changes exactly the fields set in upd and leaves the rest alone.
// An update with no fields is rejected before any statement runs.
func (r *UserRepository) Update(ctx context.Context, id int, upd entity.UserUpdate) error {
	if upd.Empty() {
		return fmt.Errorf("%w: no fields to update", store.ErrInvalidInput)
	}

	assigns := make([]string, 0, 3)
	args := make([]any, 0, 4)
	if upd.Name != nil {
		assigns = append(assigns, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Email != nil {
		assigns = append(assigns, "email = ?")
		args = append(args, *upd.Email)
	}
	if upd.Password != nil {
		assigns = append(assigns, "password = ?")
		args = append(args, *upd.Password)
	}
	args = append(args, id)

	r.log.Info().Int("id", id).Msg("updating user")
	n, err := r.store.Exec(ctx, "UPDATE users SET "+strings.Join(assigns, ", ")+" WHERE id = ?", args...)
	if err != nil {
		r.log.Error().Err(err).Int("id", id).Msg("updating user failed")
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int) error {
	r.log.Info().Int("id", id).Msg("deleting user")
	n, err := r.store.Exec(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		r.log.Error().Err(err).Int("id", id).Msg("deleting user failed")
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
