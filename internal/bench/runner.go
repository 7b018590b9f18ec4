package bench

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"chainDatagen/internal/model"
	"chainDatagen/internal/storage"
)

const (
	DefaultBulkLimit        = 100_000
	DefaultSingleIterations = 2500
	DefaultMixedOperations  = 50_000
	DefaultWriteRatio       = 0.8
)

// DefaultWindows are the time range query windows.
var DefaultWindows = []time.Duration{time.Hour, 24 * time.Hour, 7 * 24 * time.Hour}

// Config holds runtime settings for a benchmark run.
type Config struct {
	// BulkLimit caps the records per collection in the bulk test. Zero loads everything.
	BulkLimit        int
	ChunkSize        int
	SingleIterations int
	MixedOperations  int
	WriteRatio       float64
	Windows          []time.Duration
	Seed             int64
}

// RangeResult is the outcome of one time range query.
type RangeResult struct {
	Window  string  `json:"window"`
	Seconds float64 `json:"seconds"`
	Rows    int64   `json:"rows"`
}

// Result collects the measurements of a run. Rates are per second.
type Result struct {
	BulkInsertRecords int           `json:"bulk_insert_records"`
	BulkInsertRate    float64       `json:"bulk_insert_rate"`
	SingleInsertRows  int           `json:"single_insert_rows"`
	SingleInsertRate  float64       `json:"single_insert_rate"`
	MixedWrites       int           `json:"mixed_writes"`
	MixedReads        int           `json:"mixed_reads"`
	MixedWorkloadRate float64       `json:"mixed_workload_rate"`
	TimeRanges        []RangeResult `json:"time_ranges"`
	TimeRangeAnchor   string        `json:"time_range_anchor"`
	CompletedAt       string        `json:"completed_at"`
}

// Runner drives the benchmark phases against a Target.
type Runner struct {
	cfg    Config
	target Target
	logger *zap.Logger
	rng    *rand.Rand
}

// NewRunner builds a Runner with its dependencies.
func NewRunner(cfg Config, target Target, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = storage.DefaultChunkSize
	}
	if len(cfg.Windows) == 0 {
		cfg.Windows = DefaultWindows
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Runner{
		cfg:    cfg,
		target: target,
		logger: logger,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Run executes bulk insert, single insert, mixed workload and time range
// phases in order, truncating the tables between the write phases.
func (r *Runner) Run(ctx context.Context, ds model.Dataset) (Result, error) {
	if r.target == nil {
		return Result{}, fmt.Errorf("target is nil")
	}
	if r.cfg.WriteRatio < 0 || r.cfg.WriteRatio > 1 {
		return Result{}, fmt.Errorf("write ratio must be within [0, 1]")
	}

	var result Result

	if err := r.target.CreateTables(ctx); err != nil {
		return Result{}, err
	}
	if err := r.target.Truncate(ctx); err != nil {
		return Result{}, fmt.Errorf("truncate: %w", err)
	}

	records, rate, err := r.bulkInsert(ctx, ds)
	if err != nil {
		return Result{}, fmt.Errorf("bulk insert: %w", err)
	}
	result.BulkInsertRecords, result.BulkInsertRate = records, rate
	r.logger.Info("bulk insert complete", zap.Int("records", records), zap.Float64("records_per_second", rate))

	if err := r.target.Truncate(ctx); err != nil {
		return Result{}, fmt.Errorf("truncate: %w", err)
	}

	rows, rate, err := r.singleInsert(ctx, ds)
	if err != nil {
		return Result{}, fmt.Errorf("single insert: %w", err)
	}
	result.SingleInsertRows, result.SingleInsertRate = rows, rate
	r.logger.Info("single insert complete", zap.Int("rows", rows), zap.Float64("records_per_second", rate))

	if err := r.target.Truncate(ctx); err != nil {
		return Result{}, fmt.Errorf("truncate: %w", err)
	}

	writes, reads, rate, err := r.mixedWorkload(ctx, ds)
	if err != nil {
		return Result{}, fmt.Errorf("mixed workload: %w", err)
	}
	result.MixedWrites, result.MixedReads, result.MixedWorkloadRate = writes, reads, rate
	r.logger.Info("mixed workload complete", zap.Int("writes", writes), zap.Int("reads", reads), zap.Float64("operations_per_second", rate))

	anchor, err := latestBlockTime(ds.Blocks)
	if err != nil {
		return Result{}, err
	}
	ranges, err := r.timeRanges(ctx, anchor)
	if err != nil {
		return Result{}, fmt.Errorf("time range query: %w", err)
	}
	result.TimeRanges = ranges
	result.TimeRangeAnchor = model.FormatTimestamp(anchor)
	for _, tr := range ranges {
		r.logger.Info("time range query complete", zap.String("window", tr.Window), zap.Float64("seconds", tr.Seconds), zap.Int64("rows", tr.Rows))
	}

	result.CompletedAt = time.Now().UTC().Format(time.RFC3339Nano)
	return result, nil
}

func (r *Runner) bulkInsert(ctx context.Context, ds model.Dataset) (int, float64, error) {
	blocks := head(ds.Blocks, r.cfg.BulkLimit)
	transactions := head(ds.Transactions, r.cfg.BulkLimit)
	transfers := head(ds.Transfers, r.cfg.BulkLimit)
	pools := head(ds.Pools, r.cfg.BulkLimit)

	start := time.Now()
	if err := insertChunks(ctx, blocks, r.cfg.ChunkSize, r.target.InsertBlocks); err != nil {
		return 0, 0, err
	}
	if err := insertChunks(ctx, transactions, r.cfg.ChunkSize, r.target.InsertTransactions); err != nil {
		return 0, 0, err
	}
	if err := insertChunks(ctx, transfers, r.cfg.ChunkSize, r.target.InsertTransfers); err != nil {
		return 0, 0, err
	}
	if err := insertChunks(ctx, pools, r.cfg.ChunkSize, r.target.InsertPools); err != nil {
		return 0, 0, err
	}

	total := len(blocks) + len(transactions) + len(transfers) + len(pools)
	return total, perSecond(total, time.Since(start)), nil
}

func (r *Runner) singleInsert(ctx context.Context, ds model.Dataset) (int, float64, error) {
	start := time.Now()
	rows := 0
	for i := 0; i < r.cfg.SingleIterations; i++ {
		if err := ctx.Err(); err != nil {
			return 0, 0, err
		}
		for kind := 0; kind < len(storage.Collections); kind++ {
			ok, err := r.insertRandom(ctx, ds, kind)
			if err != nil {
				return 0, 0, err
			}
			if ok {
				rows++
			}
		}
	}
	return rows, perSecond(rows, time.Since(start)), nil
}

func (r *Runner) mixedWorkload(ctx context.Context, ds model.Dataset) (int, int, float64, error) {
	start := time.Now()
	writes, reads := 0, 0
	for i := 0; i < r.cfg.MixedOperations; i++ {
		if err := ctx.Err(); err != nil {
			return 0, 0, 0, err
		}
		write := r.rng.Float64() < r.cfg.WriteRatio
		kind := r.rng.Intn(len(storage.Collections))
		if write {
			if _, err := r.insertRandom(ctx, ds, kind); err != nil {
				return 0, 0, 0, err
			}
			writes++
			continue
		}
		if err := r.target.ReadRandom(ctx, storage.Collections[kind]); err != nil {
			return 0, 0, 0, err
		}
		reads++
	}
	return writes, reads, perSecond(r.cfg.MixedOperations, time.Since(start)), nil
}

func (r *Runner) timeRanges(ctx context.Context, anchor time.Time) ([]RangeResult, error) {
	results := make([]RangeResult, 0, len(r.cfg.Windows))
	for _, window := range r.cfg.Windows {
		start := time.Now()
		rows, err := r.target.CountBlocksSince(ctx, anchor.Add(-window))
		if err != nil {
			return nil, err
		}
		results = append(results, RangeResult{
			Window:  window.String(),
			Seconds: time.Since(start).Seconds(),
			Rows:    rows,
		})
	}
	return results, nil
}

// insertRandom inserts one random record of the given collection index. It
// reports false when that collection is empty.
func (r *Runner) insertRandom(ctx context.Context, ds model.Dataset, kind int) (bool, error) {
	switch storage.Collections[kind] {
	case storage.CollectionBlocks:
		if len(ds.Blocks) == 0 {
			return false, nil
		}
		return true, r.target.InsertBlock(ctx, ds.Blocks[r.rng.Intn(len(ds.Blocks))])
	case storage.CollectionTransactions:
		if len(ds.Transactions) == 0 {
			return false, nil
		}
		return true, r.target.InsertTransaction(ctx, ds.Transactions[r.rng.Intn(len(ds.Transactions))])
	case storage.CollectionTransfers:
		if len(ds.Transfers) == 0 {
			return false, nil
		}
		return true, r.target.InsertTransfer(ctx, ds.Transfers[r.rng.Intn(len(ds.Transfers))])
	default:
		if len(ds.Pools) == 0 {
			return false, nil
		}
		return true, r.target.InsertPool(ctx, ds.Pools[r.rng.Intn(len(ds.Pools))])
	}
}

func insertChunks[T any](ctx context.Context, records []T, size int, insert func(context.Context, []T) error) error {
	return storage.PutChunked(records, size, func(chunk []T) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		return insert(ctx, chunk)
	})
}

func head[T any](records []T, limit int) []T {
	if limit <= 0 || limit >= len(records) {
		return records
	}
	return records[:limit]
}

func perSecond(n int, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(n) / elapsed.Seconds()
}

// latestBlockTime returns the newest block timestamp, or the current time
// when there are no blocks.
func latestBlockTime(blocks []model.Block) (time.Time, error) {
	if len(blocks) == 0 {
		return time.Now().UTC(), nil
	}
	var latest time.Time
	for _, block := range blocks {
		ts, err := block.Time()
		if err != nil {
			return time.Time{}, fmt.Errorf("block %d timestamp: %w", block.BlockNumber, err)
		}
		if ts.After(latest) {
			latest = ts
		}
	}
	return latest, nil
}
