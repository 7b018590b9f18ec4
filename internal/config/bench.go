package config

import (
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"chainDatagen/internal/bench"
	"chainDatagen/internal/storage"
)

// BenchConfig holds configuration for the bench command.
type BenchConfig struct {
	DataDir          string
	Driver           string
	DSN              string
	BulkLimit        int
	ChunkSize        int
	SingleIterations int
	MixedOperations  int
	WriteRatio       float64
	MaxRetries       int
	RetryBackoff     time.Duration
	Report           string
	Seed             int64
	LogLevel         string
}

// LoadBench merges .env, config file, environment variables, and flags into BenchConfig.
func LoadBench(cfgFile string, flags *pflag.FlagSet) (BenchConfig, error) {
	v, err := newViper(cfgFile, flags, func(v *viper.Viper) {
		v.SetDefault("data-dir", ".")
		v.SetDefault("driver", "postgres")
		v.SetDefault("bulk-limit", bench.DefaultBulkLimit)
		v.SetDefault("chunk-size", storage.DefaultChunkSize)
		v.SetDefault("single-iterations", bench.DefaultSingleIterations)
		v.SetDefault("mixed-operations", bench.DefaultMixedOperations)
		v.SetDefault("write-ratio", bench.DefaultWriteRatio)
		v.SetDefault("max-retries", bench.DefaultMaxRetries)
		v.SetDefault("retry-backoff", bench.DefaultRetryBackoff)
		v.SetDefault("log-level", "info")
	})
	if err != nil {
		return BenchConfig{}, err
	}

	cfg := BenchConfig{
		DataDir:          v.GetString("data-dir"),
		Driver:           v.GetString("driver"),
		DSN:              v.GetString("dsn"),
		BulkLimit:        v.GetInt("bulk-limit"),
		ChunkSize:        v.GetInt("chunk-size"),
		SingleIterations: v.GetInt("single-iterations"),
		MixedOperations:  v.GetInt("mixed-operations"),
		WriteRatio:       v.GetFloat64("write-ratio"),
		MaxRetries:       v.GetInt("max-retries"),
		RetryBackoff:     v.GetDuration("retry-backoff"),
		Report:           v.GetString("report"),
		Seed:             v.GetInt64("seed"),
		LogLevel:         v.GetString("log-level"),
	}

	return cfg, nil
}
