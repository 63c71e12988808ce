package store

import (
	"context"
	"database/sql"
)

// DBTX is the common interface between *sql.DB and *sql.Tx. Store
// implementations are written against it so the same code serves direct
// calls and transactional flows.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
