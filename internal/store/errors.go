package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// Sentinel errors callers match with errors.Is. Every query primitive
// returns one of these (possibly wrapped) or the underlying driver error,
// so "not found", "constraint violated" and "engine failed" are always
// distinguishable results.
var (
	// ErrNotFound is returned when a query matches no row.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned on a unique-key violation, e.g. an email
	// that is already taken.
	ErrDuplicate = errors.New("duplicate entry")

	// ErrRowMissing is returned when a foreign-key target does not exist,
	// e.g. creating a post for an unknown user.
	ErrRowMissing = errors.New("referenced record does not exist")

	// ErrRowReferenced is returned when a row cannot be deleted because
	// other rows still reference it.
	ErrRowReferenced = errors.New("record is still referenced")

	// ErrInvalidInput is returned before any statement runs when the
	// supplied arguments cannot form a valid operation.
	ErrInvalidInput = errors.New("invalid input")
)

// MySQL server error numbers this layer classifies.
const (
	mysqlErrDuplicateEntry  = 1062
	mysqlErrRowIsReferenced = 1451
	mysqlErrNoReferencedRow = 1452
)

// mapError classifies a driver error into the sentinel set. Errors outside
// the set pass through wrapped so the caller still sees the engine message.
func mapError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlErrDuplicateEntry:
			return fmt.Errorf("%w: %s", ErrDuplicate, myErr.Message)
		case mysqlErrRowIsReferenced:
			return fmt.Errorf("%w: %s", ErrRowReferenced, myErr.Message)
		case mysqlErrNoReferencedRow:
			return fmt.Errorf("%w: %s", ErrRowMissing, myErr.Message)
		}
	}

	return err
}
