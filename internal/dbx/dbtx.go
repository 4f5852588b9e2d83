// Package dbx provides a tiny DB abstraction shared by repositories:
// a minimal interface (DBTX) implemented by both *sql.DB and *sql.Tx.
// Every write in this service is a single atomic statement, so no
// transaction helper is needed on top of it.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by our repositories.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
