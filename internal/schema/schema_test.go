package schema

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webstore-service/internal/config"
	"webstore-service/internal/store"
)

func newTestStore(t *testing.T) (*store.Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return store.New(db, zerolog.Nop()), mock
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(config.DatabaseConfig{Name: "webstore"}, zerolog.Nop())
}

// stubOpener hands out the prepared stores one dial at a time; a dial
// beyond the prepared set fails the test.
func stubOpener(t *testing.T, stores ...*store.Store) func(config.DatabaseConfig, zerolog.Logger) (*store.Store, error) {
	t.Helper()
	i := 0
	return func(config.DatabaseConfig, zerolog.Logger) (*store.Store, error) {
		require.Less(t, i, len(stores), "unexpected dial")
		s := stores[i]
		i++
		return s, nil
	}
}

func expectCreateTables(mock sqlmock.Sqlmock) {
	for _, ddl := range []string{createUsersTable, createPostsTable, createProductsTable} {
		mock.ExpectExec(ddl).WillReturnResult(sqlmock.NewResult(0, 0))
	}
}

func expectSeed(mock sqlmock.Sqlmock) {
	for _, u := range seedUsers {
		mock.ExpectExec(upsertSeedUser).
			WithArgs(u.Name, u.Email, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	for _, p := range seedProducts {
		mock.ExpectExec(insertSeedProduct).
			WithArgs(p.Name, p.Description, p.Price, p.Quantity).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	for _, p := range seedPosts {
		mock.ExpectExec(insertSeedPost).
			WithArgs(p.Title, p.Content, p.UserID).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
}

func TestManagerInitialize(t *testing.T) {
	srv, srvMock := newTestStore(t)
	db, dbMock := newTestStore(t)

	// Database creation happens at server level before any table DDL.
	srvMock.ExpectExec("CREATE DATABASE IF NOT EXISTS `webstore`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	srvMock.ExpectClose()

	expectCreateTables(dbMock)
	expectSeed(dbMock)
	dbMock.ExpectClose()

	m := newTestManager(t)
	m.openServer = stubOpener(t, srv)
	m.open = stubOpener(t, db)

	require.NoError(t, m.Initialize(context.Background()))
}

func TestManagerClean(t *testing.T) {
	dropSrv, dropMock := newTestStore(t)
	initSrv, initMock := newTestStore(t)
	db, dbMock := newTestStore(t)

	// The first server dial must drop; only then does the reinit dial
	// create the database and load the tables and demo rows.
	dropMock.ExpectExec("DROP DATABASE IF EXISTS `webstore`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	dropMock.ExpectClose()

	initMock.ExpectExec("CREATE DATABASE IF NOT EXISTS `webstore`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	initMock.ExpectClose()

	expectCreateTables(dbMock)
	expectSeed(dbMock)
	dbMock.ExpectClose()

	m := newTestManager(t)
	m.openServer = stubOpener(t, dropSrv, initSrv)
	m.open = stubOpener(t, db)

	require.NoError(t, m.Clean(context.Background()))
}

func TestManagerClean_StopsWhenDropFails(t *testing.T) {
	srv, mock := newTestStore(t)

	mock.ExpectExec("DROP DATABASE IF EXISTS `webstore`").
		WillReturnError(errors.New("engine down"))
	mock.ExpectClose()

	m := newTestManager(t)
	m.openServer = stubOpener(t, srv)
	m.open = stubOpener(t) // reinit must never be reached

	assert.Error(t, m.Clean(context.Background()))
}

func TestCreateTables_OrderedForForeignKeys(t *testing.T) {
	s, mock := newTestStore(t)
	m := newTestManager(t)

	// Posts carry a foreign key to users, so users must come first.
	mock.ExpectExec(createUsersTable).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(createPostsTable).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(createProductsTable).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, m.createTables(context.Background(), s))
}

func TestSeed_UpsertsUsersButInsertsTheRest(t *testing.T) {
	// Users are keyed on email; posts and products have no conflict key.
	assert.Contains(t, upsertSeedUser, "ON DUPLICATE KEY UPDATE")
	assert.NotContains(t, insertSeedProduct, "ON DUPLICATE KEY UPDATE")
	assert.NotContains(t, insertSeedPost, "ON DUPLICATE KEY UPDATE")
}

func TestSeed_LoadsDemoRows(t *testing.T) {
	s, mock := newTestStore(t)
	m := newTestManager(t)

	expectSeed(mock)

	require.NoError(t, m.seed(context.Background(), s))
}

func TestSeed_SecondRunRepeatsPlainInserts(t *testing.T) {
	s, mock := newTestStore(t)
	m := newTestManager(t)

	// Re-running seeds upserts the users but replays the exact same
	// product and post INSERTs, duplicating those rows.
	expectSeed(mock)
	expectSeed(mock)

	require.NoError(t, m.seed(context.Background(), s))
	require.NoError(t, m.seed(context.Background(), s))
}

func TestSeed_PostsReferenceSeededUsers(t *testing.T) {
	for _, p := range seedPosts {
		assert.GreaterOrEqual(t, p.UserID, 1)
		assert.LessOrEqual(t, p.UserID, len(seedUsers))
	}
}

func TestCountRows(t *testing.T) {
	s, mock := newTestStore(t)
	m := newTestManager(t)

	counts := map[string]int{"users": 5, "posts": 5, "products": 5}
	for _, table := range []string{"users", "posts", "products"} {
		mock.ExpectQuery("SELECT COUNT(*) FROM " + table).
			WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(counts[table]))
	}

	status, err := m.countRows(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, status, 3)
	assert.Equal(t, TableStatus{Table: "users", Rows: 5}, status[0])
}

func TestRandomPassword(t *testing.T) {
	a, err := randomPassword()
	require.NoError(t, err)
	b, err := randomPassword()
	require.NoError(t, err)

	assert.Len(t, a, 16)
	assert.Regexp(t, "^[0-9a-f]+$", a)
	assert.NotEqual(t, a, b)
}
