package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"chainDatagen/internal/model"
	"chainDatagen/internal/storage"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS blocks (
		id SERIAL PRIMARY KEY,
		block_number BIGINT NOT NULL,
		block_hash TEXT NOT NULL,
		parent_hash TEXT NOT NULL,
		block_timestamp TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id SERIAL PRIMARY KEY,
		block BIGINT NOT NULL,
		tx_index INTEGER NOT NULL,
		timestamp TIMESTAMPTZ NOT NULL,
		hash TEXT NOT NULL,
		from_address TEXT NOT NULL,
		to_address TEXT NOT NULL,
		value TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS transfers (
		id SERIAL PRIMARY KEY,
		tx_hash TEXT NOT NULL,
		block_number BIGINT NOT NULL,
		token TEXT NOT NULL,
		from_address TEXT NOT NULL,
		to_address TEXT NOT NULL,
		amount TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS pools (
		id SERIAL PRIMARY KEY,
		deployer TEXT NOT NULL,
		address TEXT NOT NULL,
		quote_token TEXT NOT NULL,
		token TEXT NOT NULL,
		init_block BIGINT NOT NULL,
		created_at BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS blocks_timestamp_idx ON blocks (block_timestamp)`,
}

const (
	insertBlock = `INSERT INTO blocks (block_number, block_hash, parent_hash, block_timestamp, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	insertTransaction = `INSERT INTO transactions (block, tx_index, timestamp, hash, from_address, to_address, value)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	insertTransfer = `INSERT INTO transfers (tx_hash, block_number, token, from_address, to_address, amount)
		VALUES ($1, $2, $3, $4, $5, $6)`
	insertPool = `INSERT INTO pools (deployer, address, quote_token, token, init_block, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
)

// Store provides Postgres persistence for generated datasets.
type Store struct {
	pool      *pgxpool.Pool
	chunkSize int
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool, chunkSize: storage.DefaultChunkSize}, nil
}

func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// CreateTables creates the dataset tables when missing.
func (s *Store) CreateTables(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// Truncate empties every dataset table.
func (s *Store) Truncate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `TRUNCATE blocks, transactions, transfers, pools`)
	return err
}

func (s *Store) PutBlocks(ctx context.Context, blocks []model.Block) error {
	return storage.PutChunked(blocks, s.chunkSize, func(chunk []model.Block) error {
		return s.InsertBlocks(ctx, chunk)
	})
}

func (s *Store) PutTransactions(ctx context.Context, transactions []model.Transaction) error {
	return storage.PutChunked(transactions, s.chunkSize, func(chunk []model.Transaction) error {
		return s.InsertTransactions(ctx, chunk)
	})
}

func (s *Store) PutTransfers(ctx context.Context, transfers []model.Transfer) error {
	return storage.PutChunked(transfers, s.chunkSize, func(chunk []model.Transfer) error {
		return s.InsertTransfers(ctx, chunk)
	})
}

func (s *Store) PutPools(ctx context.Context, pools []model.Pool) error {
	return storage.PutChunked(pools, s.chunkSize, func(chunk []model.Pool) error {
		return s.InsertPools(ctx, chunk)
	})
}

// InsertBlocks writes blocks in one round trip.
func (s *Store) InsertBlocks(ctx context.Context, blocks []model.Block) error {
	if len(blocks) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, block := range blocks {
		args, err := blockArgs(block)
		if err != nil {
			return err
		}
		batch.Queue(insertBlock, args...)
	}
	return s.sendBatch(ctx, batch)
}

// InsertTransactions writes transactions in one round trip.
func (s *Store) InsertTransactions(ctx context.Context, transactions []model.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, tx := range transactions {
		args, err := transactionArgs(tx)
		if err != nil {
			return err
		}
		batch.Queue(insertTransaction, args...)
	}
	return s.sendBatch(ctx, batch)
}

// InsertTransfers writes transfers in one round trip.
func (s *Store) InsertTransfers(ctx context.Context, transfers []model.Transfer) error {
	if len(transfers) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, transfer := range transfers {
		batch.Queue(insertTransfer, transferArgs(transfer)...)
	}
	return s.sendBatch(ctx, batch)
}

// InsertPools writes pools in one round trip.
func (s *Store) InsertPools(ctx context.Context, pools []model.Pool) error {
	if len(pools) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, pool := range pools {
		batch.Queue(insertPool, poolArgs(pool)...)
	}
	return s.sendBatch(ctx, batch)
}

func (s *Store) sendBatch(ctx context.Context, batch *pgx.Batch) error {
	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) InsertBlock(ctx context.Context, block model.Block) error {
	args, err := blockArgs(block)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, insertBlock, args...)
	return err
}

func (s *Store) InsertTransaction(ctx context.Context, tx model.Transaction) error {
	args, err := transactionArgs(tx)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, insertTransaction, args...)
	return err
}

func (s *Store) InsertTransfer(ctx context.Context, transfer model.Transfer) error {
	_, err := s.pool.Exec(ctx, insertTransfer, transferArgs(transfer)...)
	return err
}

func (s *Store) InsertPool(ctx context.Context, pool model.Pool) error {
	_, err := s.pool.Exec(ctx, insertPool, poolArgs(pool)...)
	return err
}

// ReadRandom fetches one random row id from table. An empty table is not an error.
func (s *Store) ReadRandom(ctx context.Context, table string) error {
	if !storage.IsCollection(table) {
		return fmt.Errorf("unknown table: %s", table)
	}
	var id int64
	row := s.pool.QueryRow(ctx, fmt.Sprintf(`SELECT id FROM %s ORDER BY RANDOM() LIMIT 1`, table))
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}
	return nil
}

// CountBlocksSince counts blocks with block_timestamp >= since.
func (s *Store) CountBlocksSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	row := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM blocks WHERE block_timestamp >= $1`, since.UTC())
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func blockArgs(block model.Block) ([]any, error) {
	ts, err := block.Time()
	if err != nil {
		return nil, fmt.Errorf("block %d timestamp: %w", block.BlockNumber, err)
	}
	createdAt, err := model.ParseTimestamp(block.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("block %d created_at: %w", block.BlockNumber, err)
	}
	updatedAt, err := model.ParseTimestamp(block.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("block %d updated_at: %w", block.BlockNumber, err)
	}
	return []any{int64(block.BlockNumber), block.BlockHash, block.ParentHash, ts, createdAt, updatedAt}, nil
}

func transactionArgs(tx model.Transaction) ([]any, error) {
	ts, err := model.ParseTimestamp(tx.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("transaction %s timestamp: %w", tx.Hash, err)
	}
	return []any{int64(tx.Block), int32(tx.Index), ts, tx.Hash, tx.From, tx.To, tx.Value}, nil
}

func transferArgs(transfer model.Transfer) []any {
	return []any{transfer.TxHash, int64(transfer.BlockNumber), transfer.Token, transfer.From, transfer.To, transfer.Amount}
}

func poolArgs(pool model.Pool) []any {
	return []any{pool.Deployer, pool.Address, pool.QuoteToken, pool.Token, int64(pool.InitBlock), pool.CreatedAt}
}
