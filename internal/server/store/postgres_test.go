package store

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	s := New(db)
	assert.Same(t, db, s.Conn())
	assert.NotNil(t, s.Users())

	mock.ExpectClose()
	require.NoError(t, s.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
