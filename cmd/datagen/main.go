package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"chainDatagen/internal/bench"
	"chainDatagen/internal/generator"
	"chainDatagen/internal/storage"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "datagen",
		Short:        "Synthetic blockchain dataset generator",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate blocks, transactions, transfers and pools",
		RunE:  runGenerate,
	}

	generateCmd.Flags().Uint64("blocks", generator.DefaultBlocks, "number of blocks")
	generateCmd.Flags().Int("transactions-per-block", generator.DefaultTransactionsPerBlock, "transactions per block")
	generateCmd.Flags().Int("transfers-per-block", generator.DefaultTransfersPerBlock, "transfers per block")
	generateCmd.Flags().Int("pools-per-block", generator.DefaultPoolsPerBlock, "pools per block")
	generateCmd.Flags().String("start-time", generator.DefaultStartTime.Format(time.RFC3339), "timestamp of block 0 (unix seconds or RFC3339)")
	generateCmd.Flags().Duration("block-interval", generator.DefaultBlockInterval, "time between blocks")
	generateCmd.Flags().Int64("seed", 0, "random seed, 0 means time based")
	generateCmd.Flags().String("out", ".", "output directory for file sinks")
	generateCmd.Flags().String("format", "json", "file format (json, jsonl)")
	generateCmd.Flags().String("sink", "file", "sink (file, postgres, sqlite, mysql, kafka)")
	generateCmd.Flags().String("dsn", "", "database DSN for database sinks")
	generateCmd.Flags().StringSlice("kafka-brokers", nil, "kafka brokers (comma-separated)")
	generateCmd.Flags().String("kafka-topic-prefix", "datagen", "kafka topic prefix")
	generateCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(generateCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "Load generated data into a database and measure throughput",
		RunE:  runBench,
	}

	benchCmd.Flags().String("data-dir", ".", "directory holding the generated JSON documents")
	benchCmd.Flags().String("driver", "postgres", "database driver (postgres, sqlite, mysql)")
	benchCmd.Flags().String("dsn", "", "database DSN")
	benchCmd.Flags().Int("bulk-limit", bench.DefaultBulkLimit, "records per collection in the bulk insert test, 0 means all")
	benchCmd.Flags().Int("chunk-size", storage.DefaultChunkSize, "rows per bulk insert")
	benchCmd.Flags().Int("single-iterations", bench.DefaultSingleIterations, "iterations of the single insert test")
	benchCmd.Flags().Int("mixed-operations", bench.DefaultMixedOperations, "operations in the mixed workload test")
	benchCmd.Flags().Float64("write-ratio", bench.DefaultWriteRatio, "share of writes in the mixed workload test")
	benchCmd.Flags().Int("max-retries", bench.DefaultMaxRetries, "maximum connection attempts after the first")
	benchCmd.Flags().Duration("retry-backoff", bench.DefaultRetryBackoff, "initial connection retry backoff")
	benchCmd.Flags().String("report", "", "optional JSON report path")
	benchCmd.Flags().Int64("seed", 0, "random seed, 0 means time based")
	benchCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(benchCmd)

	return root
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
