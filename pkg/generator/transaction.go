package generator

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Currency is the ISO 4217 code attached to a generated transaction.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	HUF Currency = "HUF"
)

// Currencies is the fixed set a batch may draw from, in draw order.
var Currencies = []Currency{USD, EUR, HUF}

// TimestampLayout is the ISO 8601 local format used in batch files.
const TimestampLayout = "2006-01-02T15:04:05"

// Header is the column order of every batch file. Downstream consumers
// depend on it verbatim; do not reorder.
var Header = []string{"id", "timestamp", "amount", "currency", "is_chargeback"}

// Transaction represents one synthetic transaction record
type Transaction struct {
	// ID is the batch-unique identifier, txn_ followed by a 6-digit
	// zero-padded 1-based sequence number
	ID string

	// Timestamp falls within the calendar day of the batch's run date
	Timestamp time.Time

	// Amount is strictly positive with exactly two decimal places
	Amount decimal.Decimal

	// Currency is drawn from the fixed Currencies set
	Currency Currency

	// IsChargeback marks the transaction as disputed/reversed
	IsChargeback bool
}

// FormatID renders the batch-unique transaction ID for a 1-based sequence number.
func FormatID(seq int) string {
	return fmt.Sprintf("txn_%06d", seq)
}

// Row renders the transaction in batch-file column order.
func (t Transaction) Row() []string {
	chargeback := "0"
	if t.IsChargeback {
		chargeback = "1"
	}
	return []string{
		t.ID,
		t.Timestamp.Format(TimestampLayout),
		t.Amount.StringFixed(2),
		string(t.Currency),
		chargeback,
	}
}
