package model

import "time"

// TimestampLayout is the block timestamp format: UTC without a zone suffix.
const TimestampLayout = "2006-01-02T15:04:05"

// Block is a synthetic ledger unit.
type Block struct {
	BlockNumber    uint64 `json:"block_number"`
	BlockHash      string `json:"block_hash"`
	ParentHash     string `json:"parent_hash"`
	BlockTimestamp string `json:"block_timestamp"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// Time parses BlockTimestamp.
func (b Block) Time() (time.Time, error) {
	return ParseTimestamp(b.BlockTimestamp)
}

// FormatTimestamp renders t in TimestampLayout after converting it to UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses a TimestampLayout value as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, value, time.UTC)
}
