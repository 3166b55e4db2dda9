package infrastructure

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
)

// NewExportsPool connects the optional export-audit database. Callers
// treat a nil pool as "auditing disabled"; the core request path never
// depends on it.
func NewExportsPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return pool, nil
}
