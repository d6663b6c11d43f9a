package repository

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"webstore-service/internal/entity"
	"webstore-service/internal/store"
)

// ErrAdminRequired is returned when a caller without admin rights attempts
// to create a product. Product creation is the only facade operation with
// an authorization check at this layer; every other operation relies on the
// transport layer.
var ErrAdminRequired = errors.New("admin access required to create products")

type ProductRepository struct {
	store *store.Store
	log   zerolog.Logger
}

func NewProductRepository(s *store.Store, log zerolog.Logger) *ProductRepository {
	return &ProductRepository{store: s, log: log.With().Str("repository", "products").Logger()}
}

func scanProduct(row store.Scanner) (entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity)
	return p, err
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	r.log.Info().Msg("listing products")
	return store.FetchAll(ctx, r.store, `SELECT id, name, description, price, quantity FROM products`, scanProduct)
}

func (r *ProductRepository) GetByID(ctx context.Context, id int) (entity.Product, error) {
	r.log.Info().Int("id", id).Msg("getting product by id")
	return store.FetchOne(ctx, r.store, `SELECT id, name, description, price, quantity FROM products WHERE id = ?`, scanProduct, id)
}

// Create inserts a product. Without isAdmin it returns ErrAdminRequired
// before any statement runs; the table is left unchanged.
func (r *ProductRepository) Create(ctx context.Context, name, description string, price decimal.Decimal, quantity int, isAdmin bool) (entity.Product, error) {
	if !isAdmin {
		r.log.Warn().Str("name", name).Msg("unauthorized attempt to create product")
		return entity.Product{}, ErrAdminRequired
	}

	r.log.Info().Str("name", name).Msg("creating product")
	id, err := r.store.Insert(ctx, `INSERT INTO products (name, description, price, quantity) VALUES (?, ?, ?, ?)`, name, description, price, quantity)
	if err != nil {
		r.log.Error().Err(err).Msg("creating product failed")
		return entity.Product{}, err
	}
	return entity.Product{ID: int(id), Name: name, Description: description, Price: price, Quantity: quantity}, nil
}

// Update replaces every column of the product; there is no partial update
// for products.
func (r *ProductRepository) Update(ctx context.Context, id int, name, description string, price decimal.Decimal, quantity int) error {
	r.log.Info().Int("id", id).Msg("updating product")
	n, err := r.store.Exec(ctx, `UPDATE products SET name = ?, description = ?, price = ?, quantity = ? WHERE id = ?`, name, description, price, quantity, id)
	if err != nil {
		r.log.Error().Err(err).Int("id", id).Msg("updating product failed")
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	r.log.Info().Int("id", id).Msg("deleting product")
	n, err := r.store.Exec(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		r.log.Error().Err(err).Int("id", id).Msg("deleting product failed")
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
