// Package validate checks raw transaction batches against the batch schema
// and splits them into curated and quarantined rows.
package validate

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/pedro-hbl/transaction-seeder/pkg/generator"
	"github.com/shopspring/decimal"
)

var idPattern = regexp.MustCompile(`^txn_\d{6}$`)

// RowError describes why a single row was quarantined. Line is 1-based and
// counts the header, matching what an editor shows.
type RowError struct {
	Line   int
	Field  string
	Reason string
}

func (e RowError) String() string {
	return fmt.Sprintf("line %d: %s: %s", e.Line, e.Field, e.Reason)
}

// Result splits a batch into rows that passed every check and rows that
// failed at least one, with per-row reasons.
type Result struct {
	Curated     [][]string
	Quarantined [][]string
	Errors      []RowError
}

// TotalRows returns the number of data rows processed.
func (r Result) TotalRows() int {
	return len(r.Curated) + len(r.Quarantined)
}

// ValidateBatch checks a raw batch. The first record must be the exact batch
// header; anything else fails the whole file (the schema is strict). A row
// with multiple bad fields is quarantined once but reported per field.
func ValidateBatch(records [][]string) (Result, error) {
	if len(records) == 0 {
		return Result{}, fmt.Errorf("batch is empty")
	}
	if err := checkHeader(records[0]); err != nil {
		return Result{}, err
	}

	res := Result{
		Curated:     make([][]string, 0, len(records)-1),
		Quarantined: make([][]string, 0),
	}

	seenIDs := make(map[string]int)
	for i, row := range records[1:] {
		line := i + 2
		errs := checkRow(line, row, seenIDs)
		if len(errs) == 0 {
			res.Curated = append(res.Curated, row)
		} else {
			res.Quarantined = append(res.Quarantined, row)
			res.Errors = append(res.Errors, errs...)
		}
	}

	return res, nil
}

func checkHeader(header []string) error {
	if len(header) != len(generator.Header) {
		return fmt.Errorf("header has %d columns, expected %d", len(header), len(generator.Header))
	}
	for i, col := range generator.Header {
		if header[i] != col {
			return fmt.Errorf("header column %d is %q, expected %q", i+1, header[i], col)
		}
	}
	return nil
}

func checkRow(line int, row []string, seenIDs map[string]int) []RowError {
	if len(row) != len(generator.Header) {
		return []RowError{{Line: line, Field: "row", Reason: fmt.Sprintf("expected %d columns, got %d", len(generator.Header), len(row))}}
	}

	var errs []RowError

	id := row[0]
	if !idPattern.MatchString(id) {
		errs = append(errs, RowError{Line: line, Field: "id", Reason: fmt.Sprintf("%q does not match txn_NNNNNN", id)})
	} else if prev, dup := seenIDs[id]; dup {
		errs = append(errs, RowError{Line: line, Field: "id", Reason: fmt.Sprintf("%q duplicates line %d", id, prev)})
	} else {
		seenIDs[id] = line
	}

	if _, err := time.Parse(generator.TimestampLayout, row[1]); err != nil {
		errs = append(errs, RowError{Line: line, Field: "timestamp", Reason: fmt.Sprintf("%q is not YYYY-MM-DDTHH:MM:SS", row[1])})
	}

	if amount, err := decimal.NewFromString(row[2]); err != nil {
		errs = append(errs, RowError{Line: line, Field: "amount", Reason: fmt.Sprintf("%q is not a decimal", row[2])})
	} else if !amount.IsPositive() {
		errs = append(errs, RowError{Line: line, Field: "amount", Reason: fmt.Sprintf("%s is not positive", amount)})
	}

	if !validCurrency(row[3]) {
		errs = append(errs, RowError{Line: line, Field: "currency", Reason: fmt.Sprintf("%q is not one of the allowed currencies", row[3])})
	}

	if row[4] != "0" && row[4] != "1" {
		errs = append(errs, RowError{Line: line, Field: "is_chargeback", Reason: fmt.Sprintf("%q is not 0 or 1", row[4])})
	}

	return errs
}

func validCurrency(s string) bool {
	for _, c := range generator.Currencies {
		if s == string(c) {
			return true
		}
	}
	return false
}

// ReadRawFile loads a raw batch file including its header row.
func ReadRawFile(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open raw file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // rows with the wrong shape are quarantined, not fatal
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read raw file %s: %w", path, err)
	}
	return records, nil
}

// WriteRows writes a header plus rows as CSV, creating the directory if
// needed. Used for curated and quarantine outputs.
func WriteRows(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}
