package schema

import (
	"context"
	"fmt"

	"webstore-service/internal/store"
)

// Demo rows loaded on every Initialize. Users carry freshly generated
// random passwords; nothing here is a real credential.
var seedUsers = []struct {
	Name  string
	Email string
}{
	{"John Doe", "john.doe@example.com"},
	{"Jane Smith", "jane.smith@example.com"},
	{"Bob Johnson", "bob.johnson@example.com"},
	{"Alice Brown", "alice.brown@example.com"},
	{"Charlie Wilson", "charlie.wilson@example.com"},
}

var seedProducts = []struct {
	Name        string
	Description string
	Price       string
	Quantity    int
}{
	{"MacBook Pro 16 inch", "Apple MacBook Pro with M3 chip, 16GB RAM, 512GB SSD", "2499.00", 25},
	{"Dell XPS 13", "Ultra-portable laptop with Intel i7, 16GB RAM, 1TB SSD", "1299.00", 40},
	{"iPhone 15 Pro", "Latest iPhone with A17 Pro chip, 128GB storage, Titanium design", "999.00", 75},
	{"Samsung Galaxy S24", "Android flagship with 256GB storage and advanced camera system", "899.00", 60},
	{"Sony WH-1000XM5", "Premium noise-canceling wireless headphones", "399.00", 120},
}

var seedPosts = []struct {
	Title   string
	Content string
	UserID  int
}{
	{"My Journey with FastAPI", "John shares his experience building scalable APIs with FastAPI and the lessons learned along the way", 1},
	{"Designing User-Centric Databases", "Jane discusses her approach to creating database schemas that prioritize user experience and performance", 1},
	{"Advanced Python Patterns I Use Daily", "Bob reveals the Python techniques and patterns that have transformed his development workflow", 3},
	{"Building Modern Web Apps: My Story", "Alice walks through her process of creating full-stack applications using cutting-edge technologies", 4},
	{"How I Secure My APIs", "Charlie explains his comprehensive approach to API security and the tools he relies on", 1},
}

const (
	// Upsert keyed on the unique email column: re-running refreshes the
	// name instead of duplicating the row.
	upsertSeedUser = `INSERT INTO users (name, email, password) VALUES (?, ?, ?) ON DUPLICATE KEY UPDATE name = VALUES(name)`

	// Plain inserts with no conflict key: re-running duplicates these
	// rows. Kept as-is to match the original seeding behavior.
	insertSeedProduct = `INSERT INTO products (name, description, price, quantity) VALUES (?, ?, ?, ?)`
	insertSeedPost    = `INSERT INTO posts (title, content, user_id) VALUES (?, ?, ?)`
)

func (m *Manager) seed(ctx context.Context, s *store.Store) error {
	for _, u := range seedUsers {
		password, err := randomPassword()
		if err != nil {
			return err
		}
		if _, err := s.Exec(ctx, upsertSeedUser, u.Name, u.Email, password); err != nil {
			return fmt.Errorf("seeding user %s: %w", u.Email, err)
		}
	}

	for _, p := range seedProducts {
		if _, err := s.Exec(ctx, insertSeedProduct, p.Name, p.Description, p.Price, p.Quantity); err != nil {
			return fmt.Errorf("seeding product %s: %w", p.Name, err)
		}
	}

	// Seed posts reference seed users by position, so users go first.
	for _, p := range seedPosts {
		if _, err := s.Exec(ctx, insertSeedPost, p.Title, p.Content, p.UserID); err != nil {
			return fmt.Errorf("seeding post %s: %w", p.Title, err)
		}
	}

	m.log.Info().
		Int("users", len(seedUsers)).
		Int("products", len(seedProducts)).
		Int("posts", len(seedPosts)).
		Msg("demo rows loaded")
	return nil
}
