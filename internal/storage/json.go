package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"chainDatagen/internal/model"
)

// JSONStorage writes every collection as one JSON array document named
// <collection>.json inside dir.
type JSONStorage struct {
	dir string
}

func NewJSONStorage(dir string) *JSONStorage {
	return &JSONStorage{dir: dir}
}

// DocumentPath returns the document path of a collection under dir.
func DocumentPath(dir, collection string) string {
	return filepath.Join(dir, collection+".json")
}

func (s *JSONStorage) PutBlocks(_ context.Context, blocks []model.Block) error {
	return writeDocument(DocumentPath(s.dir, CollectionBlocks), blocks)
}

func (s *JSONStorage) PutTransactions(_ context.Context, transactions []model.Transaction) error {
	return writeDocument(DocumentPath(s.dir, CollectionTransactions), transactions)
}

func (s *JSONStorage) PutTransfers(_ context.Context, transfers []model.Transfer) error {
	return writeDocument(DocumentPath(s.dir, CollectionTransfers), transfers)
}

func (s *JSONStorage) PutPools(_ context.Context, pools []model.Pool) error {
	return writeDocument(DocumentPath(s.dir, CollectionPools), pools)
}

func (s *JSONStorage) Close() error { return nil }

func writeDocument[T any](path string, records []T) error {
	if records == nil {
		records = []T{}
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}

	writer := bufio.NewWriter(file)
	if err := json.NewEncoder(writer).Encode(records); err != nil {
		file.Close()
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := writer.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("flush output: %w", err)
	}
	return file.Close()
}

// LoadDataset reads the four documents written by JSONStorage from dir.
func LoadDataset(dir string) (model.Dataset, error) {
	var ds model.Dataset
	var err error

	if ds.Blocks, err = readDocument[model.Block](DocumentPath(dir, CollectionBlocks)); err != nil {
		return model.Dataset{}, err
	}
	if ds.Transactions, err = readDocument[model.Transaction](DocumentPath(dir, CollectionTransactions)); err != nil {
		return model.Dataset{}, err
	}
	if ds.Transfers, err = readDocument[model.Transfer](DocumentPath(dir, CollectionTransfers)); err != nil {
		return model.Dataset{}, err
	}
	if ds.Pools, err = readDocument[model.Pool](DocumentPath(dir, CollectionPools)); err != nil {
		return model.Dataset{}, err
	}
	return ds, nil
}

func readDocument[T any](path string) ([]T, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	var records []T
	if err := json.NewDecoder(bufio.NewReader(file)).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return records, nil
}
