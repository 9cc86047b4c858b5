// Package report persists a JSON artifact per generation run so batches can
// be traced back to the parameters that produced them.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pedro-hbl/transaction-seeder/internal/stats"
)

// RunReport describes one generation run.
type RunReport struct {
	RunID       string        `json:"runId"`
	RunDate     string        `json:"runDate"`
	RecordCount int           `json:"recordCount"`
	Seed        int64         `json:"seed"`
	OutputFile  string        `json:"outputFile"`
	GeneratedAt time.Time     `json:"generatedAt"`
	Summary     stats.Summary `json:"summary"`
}

// New builds a report for a completed run with a fresh run ID.
func New(runDate time.Time, recordCount int, seed int64, outputFile string, summary stats.Summary) RunReport {
	return RunReport{
		RunID:       uuid.New().String(),
		RunDate:     runDate.Format("2006-01-02"),
		RecordCount: recordCount,
		Seed:        seed,
		OutputFile:  outputFile,
		GeneratedAt: time.Now().UTC(),
		Summary:     summary,
	}
}

// Save writes the report as indented JSON into dir, creating it if needed.
// Returns the path of the written file.
func (r RunReport) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory %s: %w", dir, err)
	}

	filename := fmt.Sprintf("run_%s_%s.json", r.RunDate, r.GeneratedAt.Format("20060102-150405"))
	path := filepath.Join(dir, filename)

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal run report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write run report: %w", err)
	}

	return path, nil
}
