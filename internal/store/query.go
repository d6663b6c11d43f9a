package store

import (
	"context"
	"fmt"
)

// Scanner is the subset of sql.Row and sql.Rows a scan function needs.
type Scanner interface {
	Scan(dest ...any) error
}

// Exec runs a mutating statement (UPDATE, DELETE, DDL) and returns the
// number of matched rows. Driver errors are classified, never swallowed.
func (s *Store) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	s.log.Debug().Str("query", query).Msg("executing statement")
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading affected rows: %w", err)
	}
	return n, nil
}

// Insert runs an INSERT and returns the engine-assigned id.
func (s *Store) Insert(ctx context.Context, query string, args ...any) (int64, error) {
	s.log.Debug().Str("query", query).Msg("executing insert")
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading insert id: %w", err)
	}
	return id, nil
}

// FetchOne runs a query expected to match at most one row and scans it with
// scan. A query matching no row returns ErrNotFound.
func FetchOne[T any](ctx context.Context, s *Store, query string, scan func(Scanner) (T, error), args ...any) (T, error) {
	s.log.Debug().Str("query", query).Msg("fetching row")
	v, err := scan(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		var zero T
		return zero, mapError(err)
	}
	return v, nil
}

// FetchAll runs a query and scans every row with scan. No matching rows is
// not an error; the result is simply empty. The row set is closed on every
// exit path.
func FetchAll[T any](ctx context.Context, s *Store, query string, scan func(Scanner) (T, error), args ...any) ([]T, error) {
	s.log.Debug().Str("query", query).Msg("fetching rows")
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return out, nil
}
