package repositories

import (
	"context"
	"database/sql"
)

// DBTX is the execution surface repositories run queries against. Handlers
// pass the request-scoped *sql.Conn acquired by the session middleware, so
// every statement of a request runs on the one configured connection.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
