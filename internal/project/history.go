package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/TreeFit/internal/model"
)

// DefaultHistoryPath returns the default file path for the run history.
// This is located at ~/.treefit/history.json.
func DefaultHistoryPath() string {
	return filepath.Join(DefaultConfigDir(), "history.json")
}

// SaveHistory writes the run history to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveHistory(path string, history []model.RunRecord) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if history == nil {
		history = []model.RunRecord{}
	}
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadHistory reads the run history from the specified JSON file.
// A missing file yields an empty history.
func LoadHistory(path string) ([]model.RunRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.RunRecord{}, nil
		}
		return nil, err
	}
	var history []model.RunRecord
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, err
	}
	if history == nil {
		history = []model.RunRecord{}
	}
	return history, nil
}

// AppendHistory loads the history at path, appends rec, keeps at most limit
// newest records (0 = unlimited) and saves it back.
func AppendHistory(path string, rec model.RunRecord, limit int) ([]model.RunRecord, error) {
	history, err := LoadHistory(path)
	if err != nil {
		return nil, err
	}
	history = append(history, rec)
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}
	if err := SaveHistory(path, history); err != nil {
		return nil, err
	}
	return history, nil
}

// MergeHistory adds the imported records to existing, skipping duplicate IDs.
func MergeHistory(existing, imported []model.RunRecord) []model.RunRecord {
	ids := make(map[string]bool, len(existing))
	for _, r := range existing {
		ids[r.ID] = true
	}
	for _, r := range imported {
		if !ids[r.ID] {
			existing = append(existing, r)
			ids[r.ID] = true
		}
	}
	return existing
}
