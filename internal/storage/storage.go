// Package storage implements Postgres persistence for users and trips.
// Stores are built around an explicit connection handle that is opened at
// startup and closed at shutdown; there is no package-level singleton.
package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when the requested row does not exist.
// Handlers map it to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrDuplicateUsername is returned when a username is already taken,
// whether detected by the pre-insert existence check or by the unique
// constraint itself. Both paths map to the same user-facing message.
var ErrDuplicateUsername = errors.New("username already exists")

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and
// pgx.Tx. Stores accept it so integration tests can run inside a
// transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
