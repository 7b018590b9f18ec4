package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"chainDatagen/internal/model"
)

// Collection names, shared by file names, table names and topic suffixes.
const (
	CollectionBlocks       = "blocks"
	CollectionTransactions = "transactions"
	CollectionTransfers    = "transfers"
	CollectionPools        = "pools"
)

// Storage defines a sink for generated collections.
type Storage interface {
	PutBlocks(ctx context.Context, blocks []model.Block) error
	PutTransactions(ctx context.Context, transactions []model.Transaction) error
	PutTransfers(ctx context.Context, transfers []model.Transfer) error
	PutPools(ctx context.Context, pools []model.Pool) error
	Close() error
}

// WriteDataset stores each collection in turn. A failure leaves the
// collections written before it in place.
func WriteDataset(ctx context.Context, s Storage, ds model.Dataset, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := s.PutBlocks(ctx, ds.Blocks); err != nil {
		return fmt.Errorf("store blocks: %w", err)
	}
	logger.Info("collection stored", zap.String("collection", CollectionBlocks), zap.Int("records", len(ds.Blocks)))

	if err := s.PutTransactions(ctx, ds.Transactions); err != nil {
		return fmt.Errorf("store transactions: %w", err)
	}
	logger.Info("collection stored", zap.String("collection", CollectionTransactions), zap.Int("records", len(ds.Transactions)))

	if err := s.PutTransfers(ctx, ds.Transfers); err != nil {
		return fmt.Errorf("store transfers: %w", err)
	}
	logger.Info("collection stored", zap.String("collection", CollectionTransfers), zap.Int("records", len(ds.Transfers)))

	if err := s.PutPools(ctx, ds.Pools); err != nil {
		return fmt.Errorf("store pools: %w", err)
	}
	logger.Info("collection stored", zap.String("collection", CollectionPools), zap.Int("records", len(ds.Pools)))

	return nil
}

// Collections lists the collection names in write order.
var Collections = []string{CollectionBlocks, CollectionTransactions, CollectionTransfers, CollectionPools}

// IsCollection reports whether name is one of Collections.
func IsCollection(name string) bool {
	for _, c := range Collections {
		if c == name {
			return true
		}
	}
	return false
}
