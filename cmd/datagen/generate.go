package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"chainDatagen/internal/config"
	"chainDatagen/internal/generator"
	"chainDatagen/internal/storage"
	"chainDatagen/internal/storage/kafka"
	"chainDatagen/internal/storage/postgres"
	"chainDatagen/internal/storage/sqlstore"
)

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	startTime, err := config.ParseTimestamp(cfg.StartTime)
	if err != nil {
		return fmt.Errorf("parse start-time: %w", err)
	}

	gen, err := generator.New(generator.Config{
		Blocks:               cfg.Blocks,
		TransactionsPerBlock: cfg.TransactionsPerBlock,
		TransfersPerBlock:    cfg.TransfersPerBlock,
		PoolsPerBlock:        cfg.PoolsPerBlock,
		StartTime:            startTime,
		BlockInterval:        cfg.BlockInterval,
		Seed:                 cfg.Seed,
	}, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sink, err := openSink(ctx, cfg)
	if err != nil {
		return err
	}
	defer sink.Close()

	logger.Info("generating blockchain data",
		zap.Uint64("blocks", cfg.Blocks),
		zap.Int("transactions_per_block", cfg.TransactionsPerBlock),
		zap.Int("transfers_per_block", cfg.TransfersPerBlock),
		zap.Int("pools_per_block", cfg.PoolsPerBlock),
		zap.Time("start_time", startTime),
		zap.Duration("block_interval", cfg.BlockInterval),
		zap.String("sink", cfg.Sink),
	)

	ds, err := gen.Generate()
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	if err := storage.WriteDataset(ctx, sink, ds, logger); err != nil {
		return err
	}

	logger.Info("data generation complete",
		zap.Int("blocks", len(ds.Blocks)),
		zap.Int("transactions", len(ds.Transactions)),
		zap.Int("transfers", len(ds.Transfers)),
		zap.Int("pools", len(ds.Pools)),
	)

	return nil
}

func openSink(ctx context.Context, cfg config.GenerateConfig) (storage.Storage, error) {
	switch cfg.Sink {
	case "", "file":
		switch cfg.Format {
		case "", "json":
			return storage.NewJSONStorage(cfg.Out), nil
		case "jsonl":
			return storage.NewJsonlStorage(cfg.Out), nil
		default:
			return nil, fmt.Errorf("unsupported format: %s", cfg.Format)
		}
	case "postgres":
		store, err := postgres.NewStore(ctx, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := store.CreateTables(ctx); err != nil {
			store.Close()
			return nil, err
		}
		return store, nil
	case "sqlite", "mysql":
		store, err := sqlstore.Open(ctx, cfg.Sink, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("connect %s: %w", cfg.Sink, err)
		}
		if err := store.CreateTables(ctx); err != nil {
			store.Close()
			return nil, err
		}
		return store, nil
	case "kafka":
		return kafka.NewProducer(kafka.ProducerConfig{
			Brokers:     cfg.KafkaBrokers,
			TopicPrefix: cfg.KafkaTopicPrefix,
		})
	default:
		return nil, fmt.Errorf("unsupported sink: %s", cfg.Sink)
	}
}
