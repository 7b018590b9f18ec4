package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"chainDatagen/internal/model"
)

// JsonlStorage writes every collection as JSON lines named <collection>.jsonl
// inside dir. The first write to a collection truncates its file; later
// writes append.
type JsonlStorage struct {
	dir     string
	mu      sync.Mutex
	started map[string]bool
}

func NewJsonlStorage(dir string) *JsonlStorage {
	return &JsonlStorage{dir: dir, started: make(map[string]bool)}
}

// LinesPath returns the JSONL path of a collection under dir.
func LinesPath(dir, collection string) string {
	return filepath.Join(dir, collection+".jsonl")
}

func (s *JsonlStorage) PutBlocks(_ context.Context, blocks []model.Block) error {
	return putLines(s, CollectionBlocks, blocks)
}

func (s *JsonlStorage) PutTransactions(_ context.Context, transactions []model.Transaction) error {
	return putLines(s, CollectionTransactions, transactions)
}

func (s *JsonlStorage) PutTransfers(_ context.Context, transfers []model.Transfer) error {
	return putLines(s, CollectionTransfers, transfers)
}

func (s *JsonlStorage) PutPools(_ context.Context, pools []model.Pool) error {
	return putLines(s, CollectionPools, pools)
}

func (s *JsonlStorage) Close() error { return nil }

func putLines[T any](s *JsonlStorage, collection string, records []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dir != "." && s.dir != "" {
		if err := os.MkdirAll(s.dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	flags := os.O_CREATE | os.O_WRONLY
	if s.started[collection] {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(LinesPath(s.dir, collection), flags, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()
	s.started[collection] = true

	writer := bufio.NewWriter(file)
	for _, record := range records {
		line, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshal %s record: %w", collection, err)
		}
		if _, err := writer.Write(line); err != nil {
			return fmt.Errorf("write %s record: %w", collection, err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("write newline: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	return nil
}
