package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"chainDatagen/internal/model"
	"chainDatagen/internal/storage"
)

const (
	insertBlock = `INSERT INTO blocks (block_number, block_hash, parent_hash, block_timestamp, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	insertTransaction = `INSERT INTO transactions (block, tx_index, timestamp, hash, from_address, to_address, value)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	insertTransfer = `INSERT INTO transfers (tx_hash, block_number, token, from_address, to_address, amount)
		VALUES (?, ?, ?, ?, ?, ?)`
	insertPool = `INSERT INTO pools (deployer, address, quote_token, token, init_block, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
)

// Store persists datasets through database/sql. Timestamps are kept in
// model.TimestampLayout so lexical order matches time order.
type Store struct {
	db        *sql.DB
	dialect   Dialect
	chunkSize int
}

// Open connects to dsn with the named driver ("sqlite" or "mysql").
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("db dsn is required")
	}
	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(dialect.Driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if dialect.Driver == "sqlite" {
		db.SetMaxOpenConns(1)
	}
	return &Store{db: db, dialect: dialect, chunkSize: storage.DefaultChunkSize}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// CreateTables creates the dataset tables when missing.
func (s *Store) CreateTables(ctx context.Context) error {
	for _, stmt := range s.dialect.Schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// Truncate empties every dataset table.
func (s *Store) Truncate(ctx context.Context) error {
	for _, table := range storage.Collections {
		if _, err := s.db.ExecContext(ctx, s.dialect.TruncateFn(table)); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	return nil
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

func (s *Store) InsertBlocks(ctx context.Context, blocks []model.Block) error {
	return insertAll(ctx, s.db, insertBlock, blocks, blockArgs)
}

func (s *Store) InsertTransactions(ctx context.Context, transactions []model.Transaction) error {
	return insertAll(ctx, s.db, insertTransaction, transactions, transactionArgs)
}

func (s *Store) InsertTransfers(ctx context.Context, transfers []model.Transfer) error {
	return insertAll(ctx, s.db, insertTransfer, transfers, transferArgs)
}

func (s *Store) InsertPools(ctx context.Context, pools []model.Pool) error {
	return insertAll(ctx, s.db, insertPool, pools, poolArgs)
}

func (s *Store) InsertBlock(ctx context.Context, block model.Block) error {
	_, err := s.db.ExecContext(ctx, insertBlock, blockArgs(block)...)
	return err
}

func (s *Store) InsertTransaction(ctx context.Context, tx model.Transaction) error {
	_, err := s.db.ExecContext(ctx, insertTransaction, transactionArgs(tx)...)
	return err
}

func (s *Store) InsertTransfer(ctx context.Context, transfer model.Transfer) error {
	_, err := s.db.ExecContext(ctx, insertTransfer, transferArgs(transfer)...)
	return err
}

func (s *Store) InsertPool(ctx context.Context, pool model.Pool) error {
	_, err := s.db.ExecContext(ctx, insertPool, poolArgs(pool)...)
	return err
}

// ReadRandom fetches one random row id from table. An empty table is not an error.
func (s *Store) ReadRandom(ctx context.Context, table string) error {
	if !storage.IsCollection(table) {
		return fmt.Errorf("unknown table: %s", table)
	}
	query := fmt.Sprintf("SELECT id FROM %s ORDER BY %s LIMIT 1", table, s.dialect.RandomFn)
	var id int64
	if err := s.db.QueryRowContext(ctx, query).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return err
	}
	return nil
}

// CountBlocksSince counts blocks with block_timestamp >= since.
func (s *Store) CountBlocksSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blocks WHERE block_timestamp >= ?`, model.FormatTimestamp(since))
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func insertAll[T any](ctx context.Context, db *sql.DB, query string, records []T, args func(T) []any) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, record := range records {
		if _, err := stmt.ExecContext(ctx, args(record)...); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func blockArgs(block model.Block) []any {
	return []any{int64(block.BlockNumber), block.BlockHash, block.ParentHash, block.BlockTimestamp, block.CreatedAt, block.UpdatedAt}
}

func transactionArgs(tx model.Transaction) []any {
	return []any{int64(tx.Block), int64(tx.Index), tx.Timestamp, tx.Hash, tx.From, tx.To, tx.Value}
}

func transferArgs(transfer model.Transfer) []any {
	return []any{transfer.TxHash, int64(transfer.BlockNumber), transfer.Token, transfer.From, transfer.To, transfer.Amount}
}

func poolArgs(pool model.Pool) []any {
	return []any{pool.Deployer, pool.Address, pool.QuoteToken, pool.Token, int64(pool.InitBlock), pool.CreatedAt}
}
