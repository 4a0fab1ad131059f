package store

import (
	"context"
	"database/sql"
)

// DBTX is the query-execution handle the item and log stores run against.
// Both *sql.DB and *sql.Tx satisfy it, so the same store code serves plain
// reads and the transactional item-plus-log writes.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
