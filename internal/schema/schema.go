// Package schema bootstraps and resets the webstore database: it creates
// the database and tables if absent and loads the demo rows the service
// ships with.
package schema

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/rs/zerolog"

	"webstore-service/internal/config"
	"webstore-service/internal/store"
)

// Manager creates, seeds and drops the configured database.
type Manager struct {
	cfg config.DatabaseConfig
	log zerolog.Logger

	// Dial points, swappable in tests.
	open       func(config.DatabaseConfig, zerolog.Logger) (*store.Store, error)
	openServer func(config.DatabaseConfig, zerolog.Logger) (*store.Store, error)
}

func NewManager(cfg config.DatabaseConfig, log zerolog.Logger) *Manager {
	return &Manager{
		cfg:        cfg,
		log:        log.With().Str("component", "schema").Logger(),
		open:       store.Open,
		openServer: store.OpenServer,
	}
}

const (
	createUsersTable = `CREATE TABLE IF NOT EXISTS users (
	id INT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL UNIQUE,
	password VARCHAR(255) NOT NULL
)`

	createPostsTable = `CREATE TABLE IF NOT EXISTS posts (
	id INT AUTO_INCREMENT PRIMARY KEY,
	title VARCHAR(255) NOT NULL,
	content TEXT NOT NULL,
	user_id INT NOT NULL,
	FOREIGN KEY (user_id) REFERENCES users(id)
)`

	createProductsTable = `CREATE TABLE IF NOT EXISTS products (
	id INT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	description TEXT NOT NULL,
	price DECIMAL(10, 2) NOT NULL,
	quantity INT NOT NULL
)`
)

// Initialize creates the database and the three tables if absent, then
// seeds the demo rows. Safe to run against an already-initialized database,
// with one caveat: user seeding is an upsert keyed on email, but post and
// product seeding are plain inserts, so a second run duplicates those rows.
// That asymmetry matches the original seeding scripts and is covered by
// tests; do not normalize it silently.
func (m *Manager) Initialize(ctx context.Context) error {
	srv, err := m.openServer(m.cfg, m.log)
	if err != nil {
		return fmt.Errorf("connecting to mysql server: %w", err)
	}
	defer srv.Close()

	// Database name comes from validated config, not from request input.
	if _, err := srv.Exec(ctx, "CREATE DATABASE IF NOT EXISTS `"+m.cfg.Name+"`"); err != nil {
		return fmt.Errorf("creating database %s: %w", m.cfg.Name, err)
	}

	s, err := m.open(m.cfg, m.log)
	if err != nil {
		return fmt.Errorf("connecting to database %s: %w", m.cfg.Name, err)
	}
	defer s.Close()

	if err := m.createTables(ctx, s); err != nil {
		return err
	}
	if err := m.seed(ctx, s); err != nil {
		return err
	}

	m.log.Info().Str("database", m.cfg.Name).Msg("database initialized")
	return nil
}

// Clean drops the entire database unconditionally and reinitializes it.
// Irreversible; confirmation, if any, belongs to the calling CLI.
func (m *Manager) Clean(ctx context.Context) error {
	srv, err := m.openServer(m.cfg, m.log)
	if err != nil {
		return fmt.Errorf("connecting to mysql server: %w", err)
	}
	defer srv.Close()

	if _, err := srv.Exec(ctx, "DROP DATABASE IF EXISTS `"+m.cfg.Name+"`"); err != nil {
		return fmt.Errorf("dropping database %s: %w", m.cfg.Name, err)
	}
	m.log.Warn().Str("database", m.cfg.Name).Msg("database dropped")

	return m.Initialize(ctx)
}

// TableStatus is one row of the Status report.
type TableStatus struct {
	Table string
	Rows  int
}

// Status reports the row count of each table.
func (m *Manager) Status(ctx context.Context) ([]TableStatus, error) {
	s, err := m.open(m.cfg, m.log)
	if err != nil {
		return nil, fmt.Errorf("connecting to database %s: %w", m.cfg.Name, err)
	}
	defer s.Close()

	return m.countRows(ctx, s)
}

func (m *Manager) createTables(ctx context.Context, s *store.Store) error {
	// Posts reference users, so order matters.
	for _, ddl := range []string{createUsersTable, createPostsTable, createProductsTable} {
		if _, err := s.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("creating tables: %w", err)
		}
	}
	return nil
}

func (m *Manager) countRows(ctx context.Context, s *store.Store) ([]TableStatus, error) {
	scanCount := func(row store.Scanner) (int, error) {
		var n int
		err := row.Scan(&n)
		return n, err
	}

	out := make([]TableStatus, 0, 3)
	for _, table := range []string{"users", "posts", "products"} {
		n, err := store.FetchOne(ctx, s, "SELECT COUNT(*) FROM "+table, scanCount)
		if err != nil {
			return nil, fmt.Errorf("counting %s: %w", table, err)
		}
		out = append(out, TableStatus{Table: table, Rows: n})
	}
	return out, nil
}

// seedPasswordBytes is the number of random bytes behind each generated
// demo password; hex-encoded it matches the 16 characters the original
// seed produced.
const seedPasswordBytes = 8

func randomPassword() (string, error) {
	b := make([]byte, seedPasswordBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating seed password: %w", err)
	}
	return hex.EncodeToString(b), nil
}
