package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is what the repos need from a connection. *pgxpool.Pool, pgx.Tx
// and pgxmock pools all satisfy it.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txKey struct{}

func withTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// QuerierFromCtx routes a repo call into the toggle or content transaction
// opened by RunInTx. Outside RunInTx it returns db unchanged.
func QuerierFromCtx(ctx context.Context, db Querier) Querier {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	if !ok {
		return db
	}
	return tx
}
