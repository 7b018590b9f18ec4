package bench

import (
	"context"
	"time"

	"chainDatagen/internal/model"
)

const (
	DefaultMaxRetries   = 5
	DefaultRetryBackoff = 500 * time.Millisecond
)

// Target is a database the benchmark loads a dataset into.
type Target interface {
	CreateTables(ctx context.Context) error
	Truncate(ctx context.Context) error

	InsertBlocks(ctx context.Context, blocks []model.Block) error
	InsertTransactions(ctx context.Context, transactions []model.Transaction) error
	InsertTransfers(ctx context.Context, transfers []model.Transfer) error
	InsertPools(ctx context.Context, pools []model.Pool) error

	InsertBlock(ctx context.Context, block model.Block) error
	InsertTransaction(ctx context.Context, tx model.Transaction) error
	InsertTransfer(ctx context.Context, transfer model.Transfer) error
	InsertPool(ctx context.Context, pool model.Pool) error

	ReadRandom(ctx context.Context, table string) error
	CountBlocksSince(ctx context.Context, since time.Time) (int64, error)
}

// Connect calls open until it succeeds, retrying with exponential backoff.
func Connect[T any](ctx context.Context, maxRetries int, backoff time.Duration, open func(context.Context) (T, error)) (T, error) {
	var target T
	err := withRetry(ctx, maxRetries, backoff, func(ctx context.Context) error {
		var err error
		target, err = open(ctx)
		return err
	})
	return target, err
}
