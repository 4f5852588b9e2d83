package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/tokenforge/authapi/internal/server/migrations"
	"github.com/tokenforge/authapi/internal/server/users"
)

type PostgresStore struct {
	db    *sql.DB
	users users.Repository
}

// NewPostgres opens a connection pool for the given DSN, applies pending
// migrations and returns a ready store.
func NewPostgres(ctx context.Context, dsn string) (Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	s := New(db)
	if err := s.RunMigrations(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return s, nil
}

// New builds a store over an already-open connection without running
// migrations.
func New(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db:    db,
		users: users.NewRepository(db),
	}
}

func (s *PostgresStore) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	return goose.UpContext(ctx, s.db, ".")
}

func (s *PostgresStore) Conn() *sql.DB {
	return s.db
}

func (s *PostgresStore) Users() users.Repository {
	return s.users
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
