// Package store persists reports as JSON files in their canonical map
// form, so the on-disk shape matches the interchange contract exactly.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pyqa/pyqa/internal/domain"
)

// Store is a file-based implementation of domain.ReportStore.
type Store struct{}

func New() *Store {
	return &Store{}
}

// Save writes the report's canonical form to path, creating parent
// directories as needed.
func (s *Store) Save(report domain.Report, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(report.ToMap(), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// Load reads a persisted report. Decoding failures and invariant
// violations surface from the domain constructors.
func (s *Store) Load(path string) (domain.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Report{}, err
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return domain.Report{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	report, err := domain.ReportFromMap(m)
	if err != nil {
		return domain.Report{}, fmt.Errorf("loading %s: %w", path, err)
	}
	return report, nil
}
