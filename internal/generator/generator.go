package generator

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"chainDatagen/internal/model"
)

const (
	DefaultBlocks               = 1_000_000
	DefaultTransactionsPerBlock = 10
	DefaultTransfersPerBlock    = 5
	DefaultPoolsPerBlock        = 2
	DefaultBlockInterval        = 15 * time.Second

	// txIndexBound wraps Transaction.Index.
	txIndexBound = 256
)

// DefaultStartTime is the timestamp of block 0.
var DefaultStartTime = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

// Config holds the volume parameters of a run.
type Config struct {
	Blocks               uint64
	TransactionsPerBlock int
	TransfersPerBlock    int
	PoolsPerBlock        int
	StartTime            time.Time
	BlockInterval        time.Duration
	// Seed fixes the random stream. Zero picks a time based seed.
	Seed int64
}

// DefaultConfig returns the stock volume parameters.
func DefaultConfig() Config {
	return Config{
		Blocks:               DefaultBlocks,
		TransactionsPerBlock: DefaultTransactionsPerBlock,
		TransfersPerBlock:    DefaultTransfersPerBlock,
		PoolsPerBlock:        DefaultPoolsPerBlock,
		StartTime:            DefaultStartTime,
		BlockInterval:        DefaultBlockInterval,
	}
}

func (c Config) validate() error {
	if c.TransactionsPerBlock < 0 || c.TransfersPerBlock < 0 || c.PoolsPerBlock < 0 {
		return fmt.Errorf("per-block counts must not be negative")
	}
	if c.BlockInterval < 0 {
		return fmt.Errorf("block interval must not be negative")
	}
	if c.BlockInterval%time.Second != 0 {
		return fmt.Errorf("block interval must be a whole number of seconds")
	}
	if c.StartTime.Nanosecond() != 0 {
		return fmt.Errorf("start time must be a whole number of seconds")
	}
	// BlockTime multiplies in time.Duration, which tops out near 292 years.
	if c.BlockInterval > 0 && c.Blocks > uint64(math.MaxInt64/int64(c.BlockInterval)) {
		return fmt.Errorf("%d blocks at %s overflow the block timestamp range", c.Blocks, c.BlockInterval)
	}
	return nil
}

// Generator produces synthetic datasets. It is not safe for concurrent use.
type Generator struct {
	cfg    Config
	ids    *IDSource
	logger *zap.Logger
}

// New builds a Generator from cfg.
func New(cfg Config, logger *zap.Logger) (*Generator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		cfg:    cfg,
		ids:    NewIDSource(rand.New(rand.NewSource(seed))),
		logger: logger,
	}, nil
}

// Generate builds blocks and then derives the dependent collections from them.
func (g *Generator) Generate() (model.Dataset, error) {
	blocks := g.GenerateBlocks()
	g.logger.Debug("blocks generated", zap.Int("blocks", len(blocks)))

	transactions := g.GenerateTransactions(blocks)
	g.logger.Debug("transactions generated", zap.Int("transactions", len(transactions)))

	transfers := g.GenerateTransfers(blocks)
	g.logger.Debug("transfers generated", zap.Int("transfers", len(transfers)))

	pools, err := g.GeneratePools(blocks)
	if err != nil {
		return model.Dataset{}, err
	}
	g.logger.Debug("pools generated", zap.Int("pools", len(pools)))

	return model.Dataset{
		Blocks:       blocks,
		Transactions: transactions,
		Transfers:    transfers,
		Pools:        pools,
	}, nil
}
