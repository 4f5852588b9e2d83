package users

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepository(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func userColumns() []string {
	return []string{"id", "username", "email", "name", "password_hash", "version"}
}

func TestRepositoryInsert(t *testing.T) {
	repo, mock := newMockRepository(t)

	u := User{
		ID:           "u-1",
		UserName:     "a@x.com",
		Email:        "A@X.com",
		Name:         "Alice",
		PasswordHash: "$argon2id$...",
		Version:      1,
	}

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO users (id, username, email, name, password_hash, version) VALUES ($1, $2, $3, $4, $5, $6)")).
		WithArgs(u.ID, u.UserName, u.Email, u.Name, u.PasswordHash, u.Version).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Insert(context.Background(), u))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryFindAllByUserName(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, username, email, name, password_hash, version FROM users WHERE username = $1")).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow("u-1", "a@x.com", "A@X.com", "Alice", "$argon2id$...", int64(1)))

	matches, err := repo.FindAll(context.Background(), ByUserName("a@x.com"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "u-1", matches[0].ID)
	assert.Equal(t, "A@X.com", matches[0].Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryFindAllByUserName_NoMatch(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, username, email, name, password_hash, version FROM users WHERE username = $1")).
		WithArgs("ghost@x.com").
		WillReturnRows(sqlmock.NewRows(userColumns()))

	matches, err := repo.FindAll(context.Background(), ByUserName("ghost@x.com"))
	require.NoError(t, err)
	assert.Empty(t, matches)
	assert.NoError(t, mock.ExpectationsWereMet())
}
