// Package repository implements a generic persistence layer over a
// relational store: CRUD, predicate-based queries, offset pagination and
// optimistic-concurrency updates, parameterized by entity and identifier
// type. Entities declare their identifier and version through the Entity
// capability set instead of reflection.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/tokenforge/authapi/internal/common"
	"github.com/tokenforge/authapi/internal/dbx"
)

// Entity is the capability set required of persisted types.
type Entity[I comparable] interface {
	EntityID() I
	EntityVersion() int64
}

// Row abstracts *sql.Row and *sql.Rows for mappers.
type Row interface {
	Scan(dest ...any) error
}

// Mapper binds an entity type to its table layout. Columns and Values must
// be parallel: Values(e)[i] is the value of Columns()[i].
type Mapper[E any, I comparable] interface {
	Table() string
	IDColumn() string
	VersionColumn() string
	Columns() []string
	Scan(row Row) (E, error)
	Values(e E) []any
}

// Postgres is a generic repository over any dbx.DBTX. All methods wrap
// unexpected store failures in *Error; common.ErrNotFound and
// common.ErrInvalidArgument are returned directly so callers can match them
// with errors.Is.
type Postgres[E Entity[I], I comparable] struct {
	db     dbx.DBTX
	mapper Mapper[E, I]
}

func NewPostgres[E Entity[I], I comparable](db dbx.DBTX, mapper Mapper[E, I]) *Postgres[E, I] {
	return &Postgres[E, I]{db: db, mapper: mapper}
}

// GetByID returns the entity with the given identifier or common.ErrNotFound.
func (r *Postgres[E, I]) GetByID(ctx context.Context, id I) (E, error) {
	var zero E
	var zeroID I
	if id == zeroID {
		return zero, fmt.Errorf("%s id is required: %w", r.mapper.Table(), common.ErrInvalidArgument)
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		r.selectList(), r.mapper.Table(), r.mapper.IDColumn())

	entity, err := r.mapper.Scan(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, fmt.Errorf("%s with id %v: %w", r.mapper.Table(), id, common.ErrNotFound)
		}
		return zero, &Error{Entity: r.mapper.Table(), Op: "get", Err: err}
	}
	return entity, nil
}

// FindAll eagerly returns every entity matching the filter.
func (r *Postgres[E, I]) FindAll(ctx context.Context, f Filter) ([]E, error) {
	query := fmt.Sprintf("SELECT %s FROM %s%s", r.selectList(), r.mapper.Table(), f.clause())

	rows, err := r.db.QueryContext(ctx, query, f.Args...)
	if err != nil {
		return nil, &Error{Entity: r.mapper.Table(), Op: "find", Err: err}
	}
	defer rows.Close()

	var items []E
	for rows.Next() {
		entity, err := r.mapper.Scan(rows)
		if err != nil {
			return nil, &Error{Entity: r.mapper.Table(), Op: "find", Err: err}
		}
		items = append(items, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, &Error{Entity: r.mapper.Table(), Op: "find", Err: err}
	}
	return items, nil
}

// Exists reports whether at least one entity matches the filter.
func (r *Postgres[E, I]) Exists(ctx context.Context, f Filter) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s%s)", r.mapper.Table(), f.clause())

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, f.Args...).Scan(&exists); err != nil {
		return false, &Error{Entity: r.mapper.Table(), Op: "exists", Err: err}
	}
	return exists, nil
}

// GetPage returns one page of matching entities plus the total match count.
// Pagination is offset-based: skip = (pageNumber-1)*pageSize. Both pageNumber
// and pageSize must be >= 1.
func (r *Postgres[E, I]) GetPage(ctx context.Context, f Filter, pageNumber, pageSize int) ([]E, int64, error) {
	if pageNumber < 1 {
		return nil, 0, fmt.Errorf("page number must be greater than zero: %w", common.ErrInvalidArgument)
	}
	if pageSize < 1 {
		return nil, 0, fmt.Errorf("page size must be greater than zero: %w", common.ErrInvalidArgument)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", r.mapper.Table(), f.clause())

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, f.Args...).Scan(&total); err != nil {
		return nil, 0, &Error{Entity: r.mapper.Table(), Op: "count", Err: err}
	}

	// Filter placeholders occupy $1..$len(args); limit and offset follow.
	next := len(f.Args) + 1
	pageQuery := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s LIMIT $%d OFFSET $%d",
		r.selectList(), r.mapper.Table(), f.clause(), r.mapper.IDColumn(), next, next+1)

	args := make([]any, 0, len(f.Args)+2)
	args = append(args, f.Args...)
	args = append(args, pageSize, (pageNumber-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, pageQuery, args...)
	if err != nil {
		return nil, 0, &Error{Entity: r.mapper.Table(), Op: "page", Err: err}
	}
	defer rows.Close()

	var items []E
	for rows.Next() {
		entity, err := r.mapper.Scan(rows)
		if err != nil {
			return nil, 0, &Error{Entity: r.mapper.Table(), Op: "page", Err: err}
		}
		items = append(items, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, &Error{Entity: r.mapper.Table(), Op: "page", Err: err}
	}
	return items, total, nil
}

// Insert persists a new entity. The identifier must already be set.
func (r *Postgres[E, I]) Insert(ctx context.Context, entity E) error {
	var zeroID I
	if entity.EntityID() == zeroID {
		return fmt.Errorf("%s id is required: %w", r.mapper.Table(), common.ErrInvalidArgument)
	}

	cols := r.mapper.Columns()
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		r.mapper.Table(), strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	if _, err := r.db.ExecContext(ctx, query, r.mapper.Values(entity)...); err != nil {
		return &Error{Entity: r.mapper.Table(), Op: "insert", Err: err}
	}
	return nil
}

// Delete removes the entity with the given identifier or returns
// common.ErrNotFound when it does not exist.
func (r *Postgres[E, I]) Delete(ctx context.Context, id I) error {
	var zeroID I
	if id == zeroID {
		return fmt.Errorf("%s id is required: %w", r.mapper.Table(), common.ErrInvalidArgument)
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", r.mapper.Table(), r.mapper.IDColumn())

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return &Error{Entity: r.mapper.Table(), Op: "delete", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &Error{Entity: r.mapper.Table(), Op: "delete", Err: err}
	}
	if affected == 0 {
		return fmt.Errorf("%s with id %v: %w", r.mapper.Table(), id, common.ErrNotFound)
	}
	return nil
}

// Update writes the entity in a single statement conditioned on the stored
// version equaling expectedVersion, advancing the version by one. Zero rows
// affected means the entity is gone or the version is stale; the two causes
// are indistinguishable at this layer and both surface as common.ErrNotFound.
func (r *Postgres[E, I]) Update(ctx context.Context, entity E, expectedVersion int64) error {
	var zeroID I
	if entity.EntityID() == zeroID {
		return fmt.Errorf("%s id is required: %w", r.mapper.Table(), common.ErrInvalidArgument)
	}

	cols := r.mapper.Columns()
	vals := r.mapper.Values(entity)

	var sets []string
	var args []any
	for i, col := range cols {
		if col == r.mapper.IDColumn() || col == r.mapper.VersionColumn() {
			continue
		}
		args = append(args, vals[i])
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	args = append(args, expectedVersion+1)
	sets = append(sets, fmt.Sprintf("%s = $%d", r.mapper.VersionColumn(), len(args)))

	args = append(args, entity.EntityID())
	idPos := len(args)
	args = append(args, expectedVersion)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d AND %s = $%d",
		r.mapper.Table(), strings.Join(sets, ", "),
		r.mapper.IDColumn(), idPos, r.mapper.VersionColumn(), idPos+1)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return &Error{Entity: r.mapper.Table(), Op: "update", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &Error{Entity: r.mapper.Table(), Op: "update", Err: err}
	}
	if affected == 0 {
		return fmt.Errorf("%s with id %v: version conflict or missing: %w",
			r.mapper.Table(), entity.EntityID(), common.ErrNotFound)
	}
	return nil
}

func (r *Postgres[E, I]) selectList() string {
	return strings.Join(r.mapper.Columns(), ", ")
}
