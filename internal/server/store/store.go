// Package store wires the relational backend: it opens the database,
// applies embedded migrations and hands out typed repositories.
package store

import (
	"context"
	"database/sql"

	"github.com/tokenforge/authapi/internal/server/users"
)

type Store interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Close() error
}
