package generator

import (
	"math"
	"reflect"
	"testing"
	"time"

	"chainDatagen/internal/model"
)

func testConfig(blocks uint64) Config {
	cfg := DefaultConfig()
	cfg.Blocks = blocks
	cfg.Seed = 42
	return cfg
}

func newTestGenerator(t *testing.T, cfg Config) *Generator {
	t.Helper()
	g, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	return g
}

func TestGenerateBlocksSequential(t *testing.T) {
	g := newTestGenerator(t, testConfig(50))
	blocks := g.GenerateBlocks()

	if len(blocks) != 50 {
		t.Fatalf("expected 50 blocks, got %d", len(blocks))
	}
	for i, block := range blocks {
		if block.BlockNumber != uint64(i) {
			t.Fatalf("block %d has number %d", i, block.BlockNumber)
		}
		want := DefaultStartTime.Add(time.Duration(i) * DefaultBlockInterval)
		got, err := block.Time()
		if err != nil {
			t.Fatalf("parse block %d: %v", i, err)
		}
		if !got.Equal(want) {
			t.Fatalf("block %d timestamp %s, want %s", i, got, want)
		}
		if block.CreatedAt != block.BlockTimestamp || block.UpdatedAt != block.BlockTimestamp {
			t.Fatalf("block %d audit timestamps differ from block timestamp", i)
		}
		if !hashPattern.MatchString(block.BlockHash) || !hashPattern.MatchString(block.ParentHash) {
			t.Fatalf("block %d has malformed hashes", i)
		}
	}
}

func TestGenerateBlocksTimestamps(t *testing.T) {
	cfg := testConfig(3)
	cfg.StartTime = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg.BlockInterval = 15 * time.Second
	g := newTestGenerator(t, cfg)

	var got []string
	for _, block := range g.GenerateBlocks() {
		got = append(got, block.BlockTimestamp)
	}
	want := []string{"2023-01-01T00:00:00", "2023-01-01T00:00:15", "2023-01-01T00:00:30"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("timestamps mismatch: %v != %v", got, want)
	}
}

func TestGenerateTransactions(t *testing.T) {
	cfg := testConfig(3)
	cfg.TransactionsPerBlock = 10
	g := newTestGenerator(t, cfg)
	blocks := g.GenerateBlocks()

	txs := g.GenerateTransactions(blocks)
	if len(txs) != 30 {
		t.Fatalf("expected 30 transactions, got %d", len(txs))
	}
	for i, tx := range txs {
		if tx.Block > 2 {
			t.Fatalf("transaction %d references block %d", i, tx.Block)
		}
		if tx.Timestamp != blocks[tx.Block].BlockTimestamp {
			t.Fatalf("transaction %d timestamp %s differs from block", i, tx.Timestamp)
		}
		if tx.Index != uint64(i%256) {
			t.Fatalf("transaction %d has index %d", i, tx.Index)
		}
		if !hashPattern.MatchString(tx.Hash) || !addressPattern.MatchString(tx.From) || !addressPattern.MatchString(tx.To) {
			t.Fatalf("transaction %d has malformed identifiers", i)
		}
	}
}

func TestTransactionIndexWraps(t *testing.T) {
	cfg := testConfig(30)
	cfg.TransactionsPerBlock = 10
	g := newTestGenerator(t, cfg)

	txs := g.GenerateTransactions(g.GenerateBlocks())
	if txs[255].Index != 255 || txs[256].Index != 0 || txs[299].Index != 43 {
		t.Fatalf("index did not wrap at 256: %d %d %d", txs[255].Index, txs[256].Index, txs[299].Index)
	}
}

func TestGenerateTransfersAndPools(t *testing.T) {
	cfg := testConfig(7)
	g := newTestGenerator(t, cfg)
	blocks := g.GenerateBlocks()

	transfers := g.GenerateTransfers(blocks)
	if len(transfers) != 7*DefaultTransfersPerBlock {
		t.Fatalf("expected %d transfers, got %d", 7*DefaultTransfersPerBlock, len(transfers))
	}
	for i, transfer := range transfers {
		if transfer.BlockNumber >= 7 {
			t.Fatalf("transfer %d references block %d", i, transfer.BlockNumber)
		}
		if !hashPattern.MatchString(transfer.TxHash) || !addressPattern.MatchString(transfer.Token) {
			t.Fatalf("transfer %d has malformed identifiers", i)
		}
	}

	pools, err := g.GeneratePools(blocks)
	if err != nil {
		t.Fatalf("generate pools: %v", err)
	}
	if len(pools) != 7*DefaultPoolsPerBlock {
		t.Fatalf("expected %d pools, got %d", 7*DefaultPoolsPerBlock, len(pools))
	}
	for i, pool := range pools {
		if pool.InitBlock >= 7 {
			t.Fatalf("pool %d references block %d", i, pool.InitBlock)
		}
		want := DefaultStartTime.Unix() + int64(pool.InitBlock)*15
		if pool.CreatedAt != want {
			t.Fatalf("pool %d created_at %d, want %d", i, pool.CreatedAt, want)
		}
	}
}

func TestGeneratePoolsMalformedTimestamp(t *testing.T) {
	g := newTestGenerator(t, testConfig(1))
	blocks := []model.Block{{BlockNumber: 0, BlockTimestamp: "not-a-time"}}

	if _, err := g.GeneratePools(blocks); err == nil {
		t.Fatalf("expected error for malformed block timestamp")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	first, err := newTestGenerator(t, testConfig(5)).Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := newTestGenerator(t, testConfig(5)).Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same seed produced different datasets")
	}
	if first.Records() != 5*(1+10+5+2) {
		t.Fatalf("unexpected record count: %d", first.Records())
	}
}

func TestNewRejectsFractionalInterval(t *testing.T) {
	cfg := testConfig(1)
	cfg.BlockInterval = 1500 * time.Millisecond
	if _, err := New(cfg, nil); err == nil {
		t.Fatalf("expected error for fractional interval")
	}
}

func TestNewRejectsFractionalStartTime(t *testing.T) {
	cfg := testConfig(2)
	cfg.StartTime = time.Date(2023, 1, 1, 0, 0, 0, 600_000_000, time.UTC)
	if _, err := New(cfg, nil); err == nil {
		t.Fatalf("expected error for start time with fractional seconds")
	}
}

func TestNewRejectsOverflowingSpan(t *testing.T) {
	cfg := testConfig(0)
	cfg.BlockInterval = time.Hour
	cfg.Blocks = uint64(math.MaxInt64/int64(time.Hour)) + 1
	if _, err := New(cfg, nil); err == nil {
		t.Fatalf("expected error for %d blocks at %s", cfg.Blocks, cfg.BlockInterval)
	}

	cfg.Blocks--
	g := newTestGenerator(t, cfg)
	last := g.BlockTime(cfg.Blocks)
	if !last.After(cfg.StartTime) {
		t.Fatalf("last block time %s does not follow start %s", last, cfg.StartTime)
	}
}
