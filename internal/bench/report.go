package bench

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ReportStore persists benchmark results to disk.
type ReportStore struct {
	path string
}

func NewReportStore(path string) *ReportStore {
	return &ReportStore{path: path}
}

// Save writes result as indented JSON, replacing any previous report atomically.
func (s *ReportStore) Save(result Result) error {
	if s.path == "" {
		return nil
	}

	stat, err := os.Stat(s.path)
	if err == nil && stat.IsDir() {
		return fmt.Errorf("report path is a directory")
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write report tmp: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("rename report: %w", err)
	}

	return nil
}
