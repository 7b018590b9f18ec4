package sqlstore

import "fmt"

// Dialect captures the SQL differences between supported database/sql drivers.
type Dialect struct {
	Driver     string
	Schema     []string
	TruncateFn func(table string) string
	RandomFn   string
}

var sqliteDialect = Dialect{
	Driver: "sqlite",
	Schema: []string{
		`CREATE TABLE IF NOT EXISTS blocks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			block_number INTEGER NOT NULL,
			block_hash TEXT NOT NULL,
			parent_hash TEXT NOT NULL,
			block_timestamp TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS blocks_timestamp_idx ON blocks (block_timestamp)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			block INTEGER NOT NULL,
			tx_index INTEGER NOT NULL,
			timestamp TEXT NOT NULL,
			hash TEXT NOT NULL,
			from_address TEXT NOT NULL,
			to_address TEXT NOT NULL,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS transfers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			tx_hash TEXT NOT NULL,
			block_number INTEGER NOT NULL,
			token TEXT NOT NULL,
			from_address TEXT NOT NULL,
			to_address TEXT NOT NULL,
			amount TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS pools (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			deployer TEXT NOT NULL,
			address TEXT NOT NULL,
			quote_token TEXT NOT NULL,
			token TEXT NOT NULL,
			init_block INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		)`,
	},
	TruncateFn: func(table string) string { return fmt.Sprintf("DELETE FROM %s", table) },
	RandomFn:   "RANDOM()",
}

var mysqlDialect = Dialect{
	Driver: "mysql",
	Schema: []string{
		`CREATE TABLE IF NOT EXISTS blocks (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			block_number BIGINT UNSIGNED NOT NULL,
			block_hash VARCHAR(66) NOT NULL,
			parent_hash VARCHAR(66) NOT NULL,
			block_timestamp VARCHAR(19) NOT NULL,
			created_at VARCHAR(19) NOT NULL,
			updated_at VARCHAR(19) NOT NULL,
			PRIMARY KEY (id),
			KEY blocks_timestamp_idx (block_timestamp)
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			block BIGINT UNSIGNED NOT NULL,
			tx_index INT UNSIGNED NOT NULL,
			timestamp VARCHAR(19) NOT NULL,
			hash VARCHAR(66) NOT NULL,
			from_address VARCHAR(42) NOT NULL,
			to_address VARCHAR(42) NOT NULL,
			value VARCHAR(32) NOT NULL,
			PRIMARY KEY (id)
		)`,
		`CREATE TABLE IF NOT EXISTS transfers (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			tx_hash VARCHAR(66) NOT NULL,
			block_number BIGINT UNSIGNED NOT NULL,
			token VARCHAR(42) NOT NULL,
			from_address VARCHAR(42) NOT NULL,
			to_address VARCHAR(42) NOT NULL,
			amount VARCHAR(32) NOT NULL,
			PRIMARY KEY (id)
		)`,
		`CREATE TABLE IF NOT EXISTS pools (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			deployer VARCHAR(42) NOT NULL,
			address VARCHAR(42) NOT NULL,
			quote_token VARCHAR(42) NOT NULL,
			token VARCHAR(42) NOT NULL,
			init_block BIGINT UNSIGNED NOT NULL,
			created_at BIGINT NOT NULL,
			PRIMARY KEY (id)
		)`,
	},
	TruncateFn: func(table string) string { return fmt.Sprintf("TRUNCATE TABLE %s", table) },
	RandomFn:   "RAND()",
}

// DialectFor returns the dialect registered for driver.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "sqlite":
		return sqliteDialect, nil
	case "mysql":
		return mysqlDialect, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported sql driver: %s", driver)
	}
}
