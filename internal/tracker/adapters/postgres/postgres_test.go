package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exercisetracker/internal/tracker/adapters/postgres"
	"exercisetracker/internal/tracker/domain/entities"
	"exercisetracker/internal/tracker/ports/repositories"
	"exercisetracker/pkg/logger"
)

const (
	userID      = "7d444840-9dc0-11d1-b245-5ffdce74fad2"
	otherUserID = "9b2c1a52-1f6a-4c1e-8d8e-2b0d1c7a5e10"

	insertSQL = `INSERT INTO users (id, username, exercise_count, log) VALUES ($1, $2, $3, $4) RETURNING id`
	selectSQL = `SELECT id, username, exercise_count, log FROM users WHERE id = $1`
	updateSQL = `UPDATE users SET username = $2, exercise_count = $3, log = $4 WHERE id = $1`
	findSQL   = `SELECT id, username, exercise_count, log FROM users WHERE ($1 = '' OR username = $1) ORDER BY created_at, id`
)

var (
	errDatabaseConnection = errors.New("database connection failed")
	userColumns           = []string{"id", "username", "exercise_count", "log"}
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestNewUserRepository(t *testing.T) {
	repo := postgres.NewUserRepository(newMock(t))

	assert.NotNil(t, repo)
	assert.Implements(t, (*repositories.UserRepository)(nil), repo)
}

func TestUserRepository_Create(t *testing.T) {
	ctx := testContext(t)

	t.Run("inserts an empty log", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(insertSQL)).
			WithArgs(pgxmock.AnyArg(), "alice", 0, "[]").
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(userID))

		user, err := entities.NewUser("alice")
		require.NoError(t, err)

		created, err := postgres.NewUserRepository(mock).Create(ctx, user)

		require.NoError(t, err)
		assert.Equal(t, userID, created.ID)
		assert.Equal(t, "alice", created.Username)
		assert.Empty(t, user.ID, "input is not modified")
	})

	t.Run("database error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(insertSQL)).
			WithArgs(pgxmock.AnyArg(), "alice", 0, "[]").
			WillReturnError(errDatabaseConnection)

		user, err := entities.NewUser("alice")
		require.NoError(t, err)

		created, err := postgres.NewUserRepository(mock).Create(ctx, user)

		require.ErrorIs(t, err, errDatabaseConnection)
		assert.Nil(t, created)
		assert.Contains(t, err.Error(), postgres.ErrCreateUser)
	})
}

func TestUserRepository_FindByID(t *testing.T) {
	ctx := testContext(t)

	t.Run("decodes the log column", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(selectSQL)).
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows(userColumns).AddRow(
				userID, "alice", 2,
				[]byte(`[{"description":"run","duration":30,"date":"2024-01-05"},{"description":"swim","duration":45,"date":"2024-01-02"}]`),
			))

		user, err := postgres.NewUserRepository(mock).FindByID(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, 2, user.Count)
		require.Len(t, user.Log, 2)
		assert.Equal(t, "swim", user.Log[1].Description)
		assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), user.Log[0].Date)
	})

	t.Run("not found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(selectSQL)).
			WithArgs(userID).
			WillReturnError(pgx.ErrNoRows)

		user, err := postgres.NewUserRepository(mock).FindByID(ctx, userID)

		require.ErrorIs(t, err, entities.ErrUserNotFound)
		assert.Nil(t, user)
	})

	t.Run("malformed id never reaches the database", func(t *testing.T) {
		mock := newMock(t)

		user, err := postgres.NewUserRepository(mock).FindByID(ctx, "5f2b8c")

		require.ErrorIs(t, err, entities.ErrInvalidUserID)
		assert.Nil(t, user)
	})

	t.Run("database error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(selectSQL)).
			WithArgs(userID).
			WillReturnError(errDatabaseConnection)

		_, err := postgres.NewUserRepository(mock).FindByID(ctx, userID)

		require.ErrorIs(t, err, errDatabaseConnection)
		assert.Contains(t, err.Error(), postgres.ErrFindUser)
	})

	t.Run("corrupt log column", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(selectSQL)).
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows(userColumns).AddRow(userID, "alice", 1, []byte(`{not json`)))

		_, err := postgres.NewUserRepository(mock).FindByID(ctx, userID)

		require.Error(t, err)
		assert.NotErrorIs(t, err, entities.ErrUserNotFound)
	})
}

func TestUserRepository_Save(t *testing.T) {
	ctx := testContext(t)

	user := &entities.User{
		ID:       userID,
		Username: "alice",
		Count:    1,
		Log:      []entities.Exercise{{Description: "run", Duration: 30, Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)}},
	}
	payload := `[{"description":"run","duration":30,"date":"2024-01-05"}]`

	t.Run("rewrites the document", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta(updateSQL)).
			WithArgs(userID, "alice", 1, payload).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		saved, err := postgres.NewUserRepository(mock).Save(ctx, user)

		require.NoError(t, err)
		assert.Equal(t, user, saved)
		assert.NotSame(t, user, saved)
	})

	t.Run("missing row", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta(updateSQL)).
			WithArgs(userID, "alice", 1, payload).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		_, err := postgres.NewUserRepository(mock).Save(ctx, user)

		assert.ErrorIs(t, err, entities.ErrUserNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta(updateSQL)).
			WithArgs(userID, "alice", 1, payload).
			WillReturnError(errDatabaseConnection)

		_, err := postgres.NewUserRepository(mock).Save(ctx, user)

		require.ErrorIs(t, err, errDatabaseConnection)
		assert.Contains(t, err.Error(), postgres.ErrUpdateUser)
	})
}

func TestUserRepository_Find(t *testing.T) {
	ctx := testContext(t)

	t.Run("lists all users in order", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(findSQL)).
			WithArgs("").
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow(userID, "alice", 0, []byte(`[]`)).
				AddRow(otherUserID, "bob", 0, []byte(`[]`)))

		users, err := postgres.NewUserRepository(mock).Find(ctx, repositories.UserFilter{})

		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "alice", users[0].Username)
		assert.Equal(t, otherUserID, users[1].ID)
	})

	t.Run("filters by username", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(findSQL)).
			WithArgs("bob").
			WillReturnRows(pgxmock.NewRows(userColumns).AddRow(otherUserID, "bob", 0, []byte(`[]`)))

		users, err := postgres.NewUserRepository(mock).Find(ctx, repositories.UserFilter{Username: "bob"})

		require.NoError(t, err)
		require.Len(t, users, 1)
	})

	t.Run("empty table", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(findSQL)).
			WithArgs("").
			WillReturnRows(pgxmock.NewRows(userColumns))

		users, err := postgres.NewUserRepository(mock).Find(ctx, repositories.UserFilter{})

		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Empty(t, users)
	})

	t.Run("query error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(findSQL)).
			WithArgs("").
			WillReturnError(errDatabaseConnection)

		_, err := postgres.NewUserRepository(mock).Find(ctx, repositories.UserFilter{})

		require.ErrorIs(t, err, errDatabaseConnection)
		assert.Contains(t, err.Error(), postgres.ErrListUsers)
	})

	t.Run("row error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(findSQL)).
			WithArgs("").
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow(userID, "alice", 0, []byte(`[]`)).
				RowError(0, errDatabaseConnection))

		_, err := postgres.NewUserRepository(mock).Find(ctx, repositories.UserFilter{})

		require.Error(t, err)
	})
}
