// Package store owns the MySQL connection lifecycle and the generic query
// primitives the entity repositories are built on. Connections come from the
// database/sql pool; no connection is ever shared between two concurrent
// operations.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"

	"webstore-service/internal/config"
)

const pingTimeout = 5 * time.Second

// Store wraps the shared connection pool and a logger.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// New wraps an existing connection pool. Open is the normal entry point;
// tests inject their own *sql.DB here.
func New(db *sql.DB, log zerolog.Logger) *Store {
	return &Store{db: db, log: log}
}

// Open connects to the database named in the configuration and verifies the
// connection with a ping. The caller owns the returned Store and must Close it.
func Open(cfg config.DatabaseConfig, log zerolog.Logger) (*Store, error) {
	return open(DSN(cfg), log)
}

// OpenServer connects at server level, without selecting a database. The
// schema manager uses this for CREATE DATABASE / DROP DATABASE.
func OpenServer(cfg config.DatabaseConfig, log zerolog.Logger) (*Store, error) {
	return open(ServerDSN(cfg), log)
}

func open(dsn string, log zerolog.Logger) (*Store, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening mysql handle: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to mysql: %w", err)
	}

	return New(db, log), nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// DSN builds the connection string for the configured database.
// ClientFoundRows makes UPDATE report matched rows instead of changed rows,
// so updating a row to its current values is not mistaken for not-found.
func DSN(cfg config.DatabaseConfig) string {
	return dsnConfig(cfg, cfg.Name).FormatDSN()
}

// ServerDSN builds the connection string without a database name.
func ServerDSN(cfg config.DatabaseConfig) string {
	return dsnConfig(cfg, "").FormatDSN()
}

func dsnConfig(cfg config.DatabaseConfig, dbName string) *mysql.Config {
	c := mysql.NewConfig()
	c.User = cfg.User
	c.Passwd = cfg.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	c.DBName = dbName
	c.ClientFoundRows = true
	return c
}
