package validate

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedro-hbl/transaction-seeder/pkg/generator"
)

func header() []string {
	return []string{"id", "timestamp", "amount", "currency", "is_chargeback"}
}

func goodRow(id string) []string {
	return []string{id, "2025-09-01T10:30:00", "25.99", "USD", "0"}
}

func TestValidateBatchAllValid(t *testing.T) {
	records := [][]string{
		header(),
		goodRow("txn_000001"),
		goodRow("txn_000002"),
		goodRow("txn_000003"),
	}

	result, err := ValidateBatch(records)
	require.NoError(t, err)
	assert.Len(t, result.Curated, 3)
	assert.Empty(t, result.Quarantined)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 3, result.TotalRows())
}

func TestValidateBatchQuarantinesBadRows(t *testing.T) {
	tests := []struct {
		name  string
		row   []string
		field string
	}{
		{"bad id prefix", []string{"tx_000001", "2025-09-01T10:30:00", "25.99", "USD", "0"}, "id"},
		{"short id", []string{"txn_001", "2025-09-01T10:30:00", "25.99", "USD", "0"}, "id"},
		{"bad timestamp", []string{"txn_000002", "2025-09-01 10:30:00", "25.99", "USD", "0"}, "timestamp"},
		{"non-decimal amount", []string{"txn_000002", "2025-09-01T10:30:00", "abc", "USD", "0"}, "amount"},
		{"zero amount", []string{"txn_000002", "2025-09-01T10:30:00", "0.00", "USD", "0"}, "amount"},
		{"negative amount", []string{"txn_000002", "2025-09-01T10:30:00", "-4.20", "USD", "0"}, "amount"},
		{"unknown currency", []string{"txn_000002", "2025-09-01T10:30:00", "25.99", "GBP", "0"}, "currency"},
		{"bad chargeback flag", []string{"txn_000002", "2025-09-01T10:30:00", "25.99", "USD", "yes"}, "is_chargeback"},
		{"wrong column count", []string{"txn_000002", "2025-09-01T10:30:00", "25.99"}, "row"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			records := [][]string{header(), goodRow("txn_000001"), tc.row}

			result, err := ValidateBatch(records)
			require.NoError(t, err)
			assert.Len(t, result.Curated, 1)
			require.Len(t, result.Quarantined, 1)
			assert.Equal(t, tc.row, result.Quarantined[0])
			require.NotEmpty(t, result.Errors)
			assert.Equal(t, tc.field, result.Errors[0].Field)
			assert.Equal(t, 3, result.Errors[0].Line)
		})
	}
}

func TestValidateBatchDuplicateID(t *testing.T) {
	records := [][]string{
		header(),
		goodRow("txn_000001"),
		goodRow("txn_000001"),
	}

	result, err := ValidateBatch(records)
	require.NoError(t, err)
	assert.Len(t, result.Curated, 1)
	require.Len(t, result.Quarantined, 1)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "id", result.Errors[0].Field)
	assert.Contains(t, result.Errors[0].Reason, "duplicates line 2")
}

func TestValidateBatchRejectsBadHeader(t *testing.T) {
	_, err := ValidateBatch([][]string{{"id", "timestamp", "amount"}})
	assert.Error(t, err)

	_, err = ValidateBatch([][]string{{"id", "ts", "amount", "currency", "is_chargeback"}})
	assert.Error(t, err)

	_, err = ValidateBatch(nil)
	assert.Error(t, err)
}

func TestValidateBatchAcceptsGeneratedOutput(t *testing.T) {
	date, err := generator.ParseRunDate("2025-09-01")
	require.NoError(t, err)
	cfg := generator.DefaultConfig(date)
	cfg.RecordCount = 200
	cfg.Seed = 42

	gen, err := generator.New(cfg)
	require.NoError(t, err)

	dir := t.TempDir()
	path, err := generator.WriteBatchFile(dir, date, gen.Generate())
	require.NoError(t, err)

	records, err := ReadRawFile(path)
	require.NoError(t, err)

	result, err := ValidateBatch(records)
	require.NoError(t, err)
	assert.Len(t, result.Curated, 200)
	assert.Empty(t, result.Quarantined)
}

func TestWriteRowsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curated", "transactions_curated_2025-09-01.csv")
	rows := [][]string{goodRow("txn_000001"), goodRow("txn_000002")}

	require.NoError(t, WriteRows(path, header(), rows))

	records, err := ReadRawFile(path)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, header(), records[0])
	assert.Equal(t, rows[0], records[1])
	assert.Equal(t, rows[1], records[2])
}

func TestReadRawFileMissing(t *testing.T) {
	_, err := ReadRawFile(filepath.Join(t.TempDir(), "transactions_2025-09-01.csv"))
	assert.Error(t, err)
}
