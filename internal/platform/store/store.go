// Copyright (c) 2026 Libris. All rights reserved.

/*
Package store implements the generic entity mapper: parameterized CRUD
statements built dynamically from sparse field sets.

# Architecture

Every domain repository is a thin wrapper over this package. An entity's
create/update payload is expressed as a [Fields] list — ordered
(column, value) pairs produced by an explicit builder method on the payload
struct — so a partial update naturally touches only the columns that were
provided, and a create naturally omits server-generated columns. No runtime
reflection is involved on the write path; reads scan by column name through
pgx's struct mapping.

# Error Classification

  - Zero rows for an id-addressed read or mutation → [apperr.EntityNotFound].
  - Integrity constraint violations (SQLSTATE class 23) → a generic
    400-class error that never names the colliding column.
  - More than one row affected by an id-keyed mutation → an integrity
    anomaly: the id column stopped being a key, which is a modeling bug.

Table and column names are always compile-time constants from the schema
package, never request data, so interpolating them into SQL text is safe.
*/
package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nlamduy/libris/internal/platform/apperr"
)

// Querier is the subset of pgx operations the mapper needs.
//
// Both [*pgxpool.Pool] and [pgx.Tx] satisfy it, so every operation in this
// package runs equally inside or outside a transaction. The pool is passed
// explicitly by callers — there is no package-level connection state.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB is the handle held by repositories whose operations span multiple
// statements: a [Querier] that can also open transactions. [*pgxpool.Pool]
// satisfies it; tests substitute a scripted implementation.
type DB interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Field is a single (column, value) pair destined for an INSERT or UPDATE.
type Field struct {
	Column string
	Value  any
}

// Fields is an ordered sparse field set. Builder methods on domain payload
// structs append a Field only when the corresponding attribute was provided.
type Fields []Field

// Set appends a field unconditionally.
func (f Fields) Set(column string, value any) Fields {
	return append(f, Field{Column: column, Value: value})
}

// Columns returns the column names in order.
func (f Fields) Columns() []string {
	columns := make([]string, len(f))
	for i, field := range f {
		columns[i] = field.Column
	}
	return columns
}

// values returns the bind arguments in column order.
func (f Fields) values() []any {
	args := make([]any, len(f))
	for i, field := range f {
		args[i] = field.Value
	}
	return args
}

// # Statement Builders

// buildInsert renders "INSERT INTO <table> (c1, c2) VALUES ($1, $2) RETURNING id".
func buildInsert(table string, fields Fields) (string, []any) {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(table)
	b.WriteString(" (")
	b.WriteString(strings.Join(fields.Columns(), ", "))
	b.WriteString(") VALUES (")
	for i := range fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("$" + strconv.Itoa(i+1))
	}
	b.WriteString(") RETURNING id")
	return b.String(), fields.values()
}

// buildUpdate renders "UPDATE <table> SET c1 = $1, c2 = $2 WHERE id = $3".
func buildUpdate(table string, id int64, fields Fields) (string, []any) {
	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(table)
	b.WriteString(" SET ")
	for i, field := range fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(field.Column)
		b.WriteString(" = $" + strconv.Itoa(i+1))
	}
	b.WriteString(" WHERE id = $" + strconv.Itoa(len(fields)+1))
	return b.String(), append(fields.values(), id)
}

// # Mapper Operations

// Create inserts only the provided fields and returns the generated id.
func Create(ctx context.Context, db Querier, table string, fields Fields) (int64, error) {
	if len(fields) == 0 {
		return 0, apperr.ValidationError("No fields provided")
	}

	sql, args := buildInsert(table, fields)

	var id int64
	if err := db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, wrapStoreErr(err, table)
	}
	return id, nil
}

// Get fetches a single row by primary key.
//
// A miss is an expected outcome and surfaces as [apperr.EntityNotFound].
func Get[T any](ctx context.Context, db Querier, table string, id int64) (*T, error) {
	rows, err := db.Query(ctx, "SELECT * FROM "+table+" WHERE id = $1", id)
	if err != nil {
		return nil, wrapStoreErr(err, table)
	}

	entity, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByNameLax[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.EntityNotFound(table, id)
		}
		if errors.Is(err, pgx.ErrTooManyRows) {
			return nil, apperr.Integrity(fmt.Errorf("store: multiple rows for %s id=%d", table, id))
		}
		return nil, wrapStoreErr(err, table)
	}
	return entity, nil
}

// List returns the full table projection in storage order.
//
// No ordering is guaranteed; callers that need one must sort themselves.
func List[T any](ctx context.Context, db Querier, table string) ([]T, error) {
	rows, err := db.Query(ctx, "SELECT * FROM "+table)
	if err != nil {
		return nil, wrapStoreErr(err, table)
	}

	entities, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return nil, wrapStoreErr(err, table)
	}
	return entities, nil
}

// ListWhere returns rows matching an equality filter on exactly one column.
func ListWhere[T any](ctx context.Context, db Querier, table, column string, value any) ([]T, error) {
	rows, err := db.Query(ctx, "SELECT * FROM "+table+" WHERE "+column+" = $1", value)
	if err != nil {
		return nil, wrapStoreErr(err, table)
	}

	entities, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return nil, wrapStoreErr(err, table)
	}
	return entities, nil
}

// UpdateByID applies a sparse field set to a single row. Absent fields are
// left untouched, not nulled.
func UpdateByID(ctx context.Context, db Querier, table string, id int64, fields Fields) error {
	if len(fields) == 0 {
		return apperr.ValidationError("No fields to update")
	}

	sql, args := buildUpdate(table, id, fields)

	tag, err := db.Exec(ctx, sql, args...)
	if err != nil {
		return wrapStoreErr(err, table)
	}
	return ClassifyAffected(tag.RowsAffected(), table, id)
}

// UpdateWhere applies a sparse field set to the rows matching an arbitrary
// WHERE clause and returns how many rows changed. The clause must use
// placeholders starting at $1; field placeholders are renumbered after it.
//
// Callers addressing a composite key classify the returned count themselves.
func UpdateWhere(ctx context.Context, db Querier, table string, fields Fields, where string, whereArgs ...any) (int64, error) {
	if len(fields) == 0 {
		return 0, apperr.ValidationError("No fields to update")
	}

	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(table)
	b.WriteString(" SET ")
	for i, field := range fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(field.Column)
		b.WriteString(" = $" + strconv.Itoa(len(whereArgs)+i+1))
	}
	b.WriteString(" WHERE ")
	b.WriteString(where)

	tag, err := db.Exec(ctx, b.String(), append(whereArgs, fields.values()...)...)
	if err != nil {
		return 0, wrapStoreErr(err, table)
	}
	return tag.RowsAffected(), nil
}

// DeleteByID removes a single row by primary key.
func DeleteByID(ctx context.Context, db Querier, table string, id int64) error {
	tag, err := db.Exec(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		return wrapStoreErr(err, table)
	}
	return ClassifyAffected(tag.RowsAffected(), table, id)
}

// Count returns the total row count of a table.
func Count(ctx context.Context, db Querier, table string) (int64, error) {
	var count int64
	if err := db.QueryRow(ctx, "SELECT count(*) FROM "+table).Scan(&count); err != nil {
		return 0, wrapStoreErr(err, table)
	}
	return count, nil
}

// # Error Mapping

// ClassifyAffected maps the affected-row count of an id-keyed mutation to
// its outcome: 0 is a miss, 1 is success, anything else is an invariant
// violation (id is supposed to be a unique key).
func ClassifyAffected(rowsAffected int64, entity string, id int64) error {
	switch rowsAffected {
	case 0:
		return apperr.EntityNotFound(entity, id)
	case 1:
		return nil
	default:
		return apperr.Integrity(fmt.Errorf("store: %d rows affected by id-keyed mutation on %s id=%d", rowsAffected, entity, id))
	}
}

// wrapStoreErr classifies a driver error. Constraint violations become a
// client-safe 400; everything else propagates as an internal error with the
// original cause preserved for server-side logging.
func wrapStoreErr(err error, table string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		return apperr.Constraint(fmt.Errorf("store: constraint violation on %s: %w", table, err))
	}
	return apperr.Internal(fmt.Errorf("store: %s: %w", table, err))
}
