package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"chainDatagen/internal/generator"
)

const envPrefix = "DATAGEN"

// GenerateConfig holds configuration for the generate command.
type GenerateConfig struct {
	Blocks               uint64
	TransactionsPerBlock int
	TransfersPerBlock    int
	PoolsPerBlock        int
	StartTime            string
	BlockInterval        time.Duration
	Seed                 int64
	Out                  string
	Format               string
	Sink                 string
	DSN                  string
	KafkaBrokers         []string
	KafkaTopicPrefix     string
	LogLevel             string
}

// Load merges .env, config file, environment variables, and flags into GenerateConfig.
func Load(cfgFile string, flags *pflag.FlagSet) (GenerateConfig, error) {
	v, err := newViper(cfgFile, flags, func(v *viper.Viper) {
		v.SetDefault("blocks", uint64(generator.DefaultBlocks))
		v.SetDefault("transactions-per-block", generator.DefaultTransactionsPerBlock)
		v.SetDefault("transfers-per-block", generator.DefaultTransfersPerBlock)
		v.SetDefault("pools-per-block", generator.DefaultPoolsPerBlock)
		v.SetDefault("start-time", generator.DefaultStartTime.Format(time.RFC3339))
		v.SetDefault("block-interval", generator.DefaultBlockInterval)
		v.SetDefault("out", ".")
		v.SetDefault("format", "json")
		v.SetDefault("sink", "file")
		v.SetDefault("kafka-topic-prefix", "datagen")
		v.SetDefault("log-level", "info")
	})
	if err != nil {
		return GenerateConfig{}, err
	}

	cfg := GenerateConfig{
		Blocks:               v.GetUint64("blocks"),
		TransactionsPerBlock: v.GetInt("transactions-per-block"),
		TransfersPerBlock:    v.GetInt("transfers-per-block"),
		PoolsPerBlock:        v.GetInt("pools-per-block"),
		StartTime:            v.GetString("start-time"),
		BlockInterval:        v.GetDuration("block-interval"),
		Seed:                 v.GetInt64("seed"),
		Out:                  v.GetString("out"),
		Format:               v.GetString("format"),
		Sink:                 v.GetString("sink"),
		DSN:                  v.GetString("dsn"),
		KafkaBrokers:         getStringSlice(v, "kafka-brokers"),
		KafkaTopicPrefix:     v.GetString("kafka-topic-prefix"),
		LogLevel:             v.GetString("log-level"),
	}

	return cfg, nil
}

func newViper(cfgFile string, flags *pflag.FlagSet, defaults func(*viper.Viper)) (*viper.Viper, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	defaults(v)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return v, nil
}

// loadDotEnv exports the variables of path into the process environment
// without overriding variables that are already set. A missing file is ignored.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

// ParseTimestamp parses a timestamp value (unix seconds or RFC3339).
func ParseTimestamp(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, fmt.Errorf("timestamp is empty")
	}

	if isNumeric(input) {
		val, err := strconv.ParseInt(input, 10, 64)
		if err != nil {
			return time.Time{}, err
		}
		return time.Unix(val, 0).UTC(), nil
	}

	tm, err := time.Parse(time.RFC3339, input)
	if err != nil {
		return time.Time{}, err
	}
	return tm.UTC(), nil
}

func isNumeric(input string) bool {
	for _, r := range input {
		if r < '0' || r > '9' {
			return false
		}
	}
	return input != ""
}

func getStringSlice(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case []string:
		return cleanStrings(typed)
	case string:
		return splitAndClean(typed)
	case []interface{}:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return cleanStrings(items)
	default:
		return nil
	}
}

func splitAndClean(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	return cleanStrings(parts)
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
