package generator

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
)

const fileTemplate = "transactions_%s.csv"

// BatchFileName returns the batch file name for a run date,
// e.g. transactions_2025-09-01.csv.
func BatchFileName(runDate time.Time) string {
	return fmt.Sprintf(fileTemplate, runDate.Format(RunDateLayout))
}

// WriteBatchFile serializes a batch to <dir>/transactions_<run date>.csv,
// creating the directory if needed. An existing file for the same date is
// overwritten. The batch is written to a temp file and renamed into place on
// success, so a mid-write failure never leaves a truncated batch behind.
// Returns the path of the written file.
func WriteBatchFile(dir string, runDate time.Time, txns []Transaction) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	target := filepath.Join(dir, BatchFileName(runDate))

	tmp, err := os.CreateTemp(dir, BatchFileName(runDate)+".tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create batch file: %w", err)
	}

	if err := writeBatch(tmp, txns); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write batch file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close batch file: %w", err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to finalize batch file: %w", err)
	}

	return target, nil
}

func writeBatch(f *os.File, txns []Transaction) error {
	w := csv.NewWriter(f)

	if err := w.Write(Header); err != nil {
		return err
	}
	for _, t := range txns {
		if err := w.Write(t.Row()); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// ReadBatchFile parses a previously written batch file back into
// transactions. Rows are returned in file order.
func ReadBatchFile(path string) ([]Transaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open batch file: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("batch file %s is empty", path)
	}

	txns := make([]Transaction, 0, len(records)-1)
	for i, record := range records[1:] {
		txn, err := parseRow(record)
		if err != nil {
			return nil, fmt.Errorf("batch file %s row %d: %w", path, i+2, err)
		}
		txns = append(txns, txn)
	}

	return txns, nil
}

func parseRow(record []string) (Transaction, error) {
	if len(record) != len(Header) {
		return Transaction{}, fmt.Errorf("expected %d columns, got %d", len(Header), len(record))
	}

	ts, err := time.Parse(TimestampLayout, record[1])
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid timestamp %q: %w", record[1], err)
	}

	amount, err := decimal.NewFromString(record[2])
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid amount %q: %w", record[2], err)
	}

	var chargeback bool
	switch record[4] {
	case "0":
		chargeback = false
	case "1":
		chargeback = true
	default:
		return Transaction{}, fmt.Errorf("invalid is_chargeback %q", record[4])
	}

	return Transaction{
		ID:           record[0],
		Timestamp:    ts,
		Amount:       amount,
		Currency:     Currency(record[3]),
		IsChargeback: chargeback,
	}, nil
}
