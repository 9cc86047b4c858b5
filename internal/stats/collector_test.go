package stats

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedro-hbl/transaction-seeder/pkg/generator"
)

func txn(id string, hour int, cents int64, cur generator.Currency, chargeback bool) generator.Transaction {
	return generator.Transaction{
		ID:           id,
		Timestamp:    time.Date(2025, 9, 1, hour, 0, 0, 0, time.UTC),
		Amount:       decimal.New(cents, -2),
		Currency:     cur,
		IsChargeback: chargeback,
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := NewCollector().Summarize()
	assert.Equal(t, 0, s.RecordCount)
	assert.Zero(t, s.ChargebackRate)
	assert.Empty(t, s.CurrencyCounts)
}

func TestSummarize(t *testing.T) {
	c := NewCollector()
	c.ObserveBatch([]generator.Transaction{
		txn("txn_000001", 3, 1000, generator.USD, false),  // 10.00
		txn("txn_000002", 12, 2550, generator.EUR, true),  // 25.50
		txn("txn_000003", 23, 500, generator.USD, false),  // 5.00
		txn("txn_000004", 8, 10000, generator.HUF, false), // 100.00
	})

	s := c.Summarize()

	assert.Equal(t, 4, s.RecordCount)
	assert.Equal(t, 1, s.ChargebackCount)
	assert.InDelta(t, 0.25, s.ChargebackRate, 1e-9)
	assert.Equal(t, 2, s.CurrencyCounts[generator.USD])
	assert.Equal(t, 1, s.CurrencyCounts[generator.EUR])
	assert.Equal(t, 1, s.CurrencyCounts[generator.HUF])

	assert.Equal(t, "5.00", s.AmountMin.StringFixed(2))
	assert.Equal(t, "100.00", s.AmountMax.StringFixed(2))
	assert.Equal(t, "35.13", s.AmountMean.StringFixed(2)) // 140.50 / 4 rounded
	assert.Equal(t, "140.50", s.AmountTotal.StringFixed(2))

	assert.Equal(t, 3, s.FirstTimestamp.Hour())
	assert.Equal(t, 23, s.LastTimestamp.Hour())
}

func TestSummarizePercentiles(t *testing.T) {
	c := NewCollector()
	// Amounts 1.00 .. 100.00
	for i := 1; i <= 100; i++ {
		c.Observe(txn(generator.FormatID(i), 10, int64(i)*100, generator.USD, false))
	}

	s := c.Summarize()
	assert.Equal(t, "51.00", s.AmountP50.StringFixed(2))
	assert.Equal(t, "91.00", s.AmountP90.StringFixed(2))
	assert.Equal(t, "100.00", s.AmountP99.StringFixed(2))
}

func TestSummarizeSeededBatchRate(t *testing.T) {
	date, err := generator.ParseRunDate("2025-09-01")
	require.NoError(t, err)
	cfg := generator.DefaultConfig(date)
	cfg.RecordCount = 100000
	cfg.Seed = 42

	gen, err := generator.New(cfg)
	require.NoError(t, err)

	c := NewCollector()
	c.ObserveBatch(gen.Generate())
	s := c.Summarize()

	assert.Equal(t, 100000, s.RecordCount)
	assert.InDelta(t, 0.05, s.ChargebackRate, 0.005)

	total := 0
	for _, n := range s.CurrencyCounts {
		total += n
	}
	assert.Equal(t, 100000, total)
}
