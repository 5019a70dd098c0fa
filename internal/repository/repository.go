// Package repository handles all interactions with the database.
//
// It contains the raw SQL for each entity and keeps it away from the
// service layer. Repositories take a DBTX so they run equally against the
// pool, a transaction or a mock.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgxpool.Pool (and pgx.Tx) repositories use.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
