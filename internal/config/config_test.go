package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"chainDatagen/internal/bench"
	"chainDatagen/internal/generator"
	"chainDatagen/internal/storage"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Blocks != generator.DefaultBlocks ||
		cfg.TransactionsPerBlock != generator.DefaultTransactionsPerBlock ||
		cfg.TransfersPerBlock != generator.DefaultTransfersPerBlock ||
		cfg.PoolsPerBlock != generator.DefaultPoolsPerBlock {
		t.Fatalf("unexpected volume defaults: %+v", cfg)
	}
	if cfg.BlockInterval != generator.DefaultBlockInterval {
		t.Fatalf("unexpected interval: %s", cfg.BlockInterval)
	}
	start, err := ParseTimestamp(cfg.StartTime)
	if err != nil {
		t.Fatalf("parse default start time: %v", err)
	}
	if !start.Equal(generator.DefaultStartTime) {
		t.Fatalf("unexpected start time: %s", start)
	}
	if cfg.Format != "json" || cfg.Sink != "file" || cfg.Out != "." {
		t.Fatalf("unexpected output defaults: %+v", cfg)
	}
}

func TestLoadBenchDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadBench("", nil)
	if err != nil {
		t.Fatalf("load bench: %v", err)
	}
	if cfg.BulkLimit != bench.DefaultBulkLimit || cfg.ChunkSize != storage.DefaultChunkSize {
		t.Fatalf("unexpected bulk defaults: %+v", cfg)
	}
	if cfg.SingleIterations != bench.DefaultSingleIterations || cfg.MixedOperations != bench.DefaultMixedOperations {
		t.Fatalf("unexpected iteration defaults: %+v", cfg)
	}
	if cfg.WriteRatio != bench.DefaultWriteRatio {
		t.Fatalf("unexpected write ratio: %v", cfg.WriteRatio)
	}
	if cfg.MaxRetries != bench.DefaultMaxRetries || cfg.RetryBackoff != bench.DefaultRetryBackoff {
		t.Fatalf("unexpected retry defaults: %+v", cfg)
	}
}

func TestLoadEnvAndFlags(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DATAGEN_BLOCKS", "12")
	t.Setenv("DATAGEN_KAFKA_BROKERS", "a:9092, b:9092,")

	flags := pflag.NewFlagSet("generate", pflag.ContinueOnError)
	flags.Int("transactions-per-block", 10, "")
	flags.String("out", ".", "")
	if err := flags.Parse([]string{"--transactions-per-block=3", "--out=./data"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load("", flags)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Blocks != 12 {
		t.Fatalf("env override ignored: %d", cfg.Blocks)
	}
	if cfg.TransactionsPerBlock != 3 || cfg.Out != "./data" {
		t.Fatalf("flag override ignored: %+v", cfg)
	}
	if want := []string{"a:9092", "b:9092"}; !reflect.DeepEqual(cfg.KafkaBrokers, want) {
		t.Fatalf("brokers mismatch: %v != %v", cfg.KafkaBrokers, want)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "datagen.yaml")
	content := "blocks: 5\nblock-interval: 12s\ndriver: sqlite\ndsn: bench.db\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Blocks != 5 || cfg.BlockInterval != 12*time.Second {
		t.Fatalf("config file ignored: %+v", cfg)
	}

	benchCfg, err := LoadBench(path, nil)
	if err != nil {
		t.Fatalf("load bench: %v", err)
	}
	if benchCfg.Driver != "sqlite" || benchCfg.DSN != "bench.db" || benchCfg.ChunkSize != storage.DefaultChunkSize {
		t.Fatalf("unexpected bench config: %+v", benchCfg)
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	chdir(t, t.TempDir())
	if _, err := Load("does-not-exist.yaml", nil); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("DATAGEN_KAFKA_TOPIC_PREFIX=from-dotenv\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("DATAGEN_KAFKA_TOPIC_PREFIX") })

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.KafkaTopicPrefix != "from-dotenv" {
		t.Fatalf(".env value ignored: %q", cfg.KafkaTopicPrefix)
	}
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	got, err := ParseTimestamp("1672531200")
	if err != nil || !got.Equal(want) {
		t.Fatalf("unix seconds: %v %v", got, err)
	}

	got, err = ParseTimestamp("2023-01-01T02:00:00+02:00")
	if err != nil || !got.Equal(want) {
		t.Fatalf("rfc3339: %v %v", got, err)
	}
	if got.Location() != time.UTC {
		t.Fatalf("expected UTC location, got %s", got.Location())
	}

	if _, err := ParseTimestamp(""); err == nil {
		t.Fatalf("expected error for empty input")
	}
	if _, err := ParseTimestamp("yesterday"); err == nil {
		t.Fatalf("expected error for garbage input")
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})
}
