package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"chainDatagen/internal/bench"
	"chainDatagen/internal/config"
	"chainDatagen/internal/storage"
	"chainDatagen/internal/storage/postgres"
	"chainDatagen/internal/storage/sqlstore"
)

type benchTarget interface {
	bench.Target
	Close() error
}

func runBench(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadBench(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.DSN == "" {
		return fmt.Errorf("dsn is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ds, err := storage.LoadDataset(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	logger.Info("dataset loaded",
		zap.String("data_dir", cfg.DataDir),
		zap.Int("blocks", len(ds.Blocks)),
		zap.Int("transactions", len(ds.Transactions)),
		zap.Int("transfers", len(ds.Transfers)),
		zap.Int("pools", len(ds.Pools)),
	)

	target, err := bench.Connect(ctx, cfg.MaxRetries, cfg.RetryBackoff, func(ctx context.Context) (benchTarget, error) {
		target, err := openTarget(ctx, cfg.Driver, cfg.DSN)
		if err != nil {
			logger.Warn("connect failed", zap.String("driver", cfg.Driver), zap.Error(err))
		}
		return target, err
	})
	if err != nil {
		return fmt.Errorf("connect %s: %w", cfg.Driver, err)
	}
	defer target.Close()

	runner := bench.NewRunner(bench.Config{
		BulkLimit:        cfg.BulkLimit,
		ChunkSize:        cfg.ChunkSize,
		SingleIterations: cfg.SingleIterations,
		MixedOperations:  cfg.MixedOperations,
		WriteRatio:       cfg.WriteRatio,
		Seed:             cfg.Seed,
	}, target, logger)

	logger.Info("bench start",
		zap.String("driver", cfg.Driver),
		zap.String("dsn", redactDSN(cfg.DSN)),
		zap.Int("bulk_limit", cfg.BulkLimit),
		zap.Int("chunk_size", cfg.ChunkSize),
		zap.Int("single_iterations", cfg.SingleIterations),
		zap.Int("mixed_operations", cfg.MixedOperations),
		zap.Float64("write_ratio", cfg.WriteRatio),
	)

	result, err := runner.Run(ctx, ds)
	if err != nil {
		return err
	}

	if err := bench.NewReportStore(cfg.Report).Save(result); err != nil {
		return err
	}

	logger.Info("bench complete",
		zap.Float64("bulk_insert_rate", result.BulkInsertRate),
		zap.Float64("single_insert_rate", result.SingleInsertRate),
		zap.Float64("mixed_workload_rate", result.MixedWorkloadRate),
		zap.String("report", cfg.Report),
	)

	return nil
}

func openTarget(ctx context.Context, driver, dsn string) (benchTarget, error) {
	switch driver {
	case "postgres":
		return postgres.NewStore(ctx, dsn)
	case "sqlite", "mysql":
		return sqlstore.Open(ctx, driver, dsn)
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}
}

func redactDSN(dsn string) string {
	if dsn == "" {
		return dsn
	}
	return "***"
}
