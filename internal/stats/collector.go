package stats

import (
	"sort"
	"sync"
	"time"

	"github.com/pedro-hbl/transaction-seeder/pkg/generator"
	"github.com/shopspring/decimal"
)

// Summary holds the aggregate view of one batch.
type Summary struct {
	RecordCount     int                        `json:"recordCount"`
	ChargebackCount int                        `json:"chargebackCount"`
	ChargebackRate  float64                    `json:"chargebackRate"`
	CurrencyCounts  map[generator.Currency]int `json:"currencyCounts"`
	AmountMin       decimal.Decimal            `json:"amountMin"`
	AmountMax       decimal.Decimal            `json:"amountMax"`
	AmountMean      decimal.Decimal            `json:"amountMean"`
	AmountTotal     decimal.Decimal            `json:"amountTotal"`
	AmountP50       decimal.Decimal            `json:"amountP50"`
	AmountP90       decimal.Decimal            `json:"amountP90"`
	AmountP99       decimal.Decimal            `json:"amountP99"`
	FirstTimestamp  time.Time                  `json:"firstTimestamp"`
	LastTimestamp   time.Time                  `json:"lastTimestamp"`
}

// Collector accumulates per-transaction observations and computes a batch
// summary at the end of a run.
type Collector struct {
	mu sync.Mutex

	count           int
	chargebackCount int
	currencyCounts  map[generator.Currency]int
	amounts         []decimal.Decimal
	total           decimal.Decimal
	first, last     time.Time
}

// NewCollector creates an empty batch collector.
func NewCollector() *Collector {
	return &Collector{
		currencyCounts: make(map[generator.Currency]int),
	}
}

// Observe records one transaction.
func (c *Collector) Observe(t generator.Transaction) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.count++
	if t.IsChargeback {
		c.chargebackCount++
	}
	c.currencyCounts[t.Currency]++
	c.amounts = append(c.amounts, t.Amount)
	c.total = c.total.Add(t.Amount)

	if c.first.IsZero() || t.Timestamp.Before(c.first) {
		c.first = t.Timestamp
	}
	if c.last.IsZero() || t.Timestamp.After(c.last) {
		c.last = t.Timestamp
	}
}

// ObserveBatch records a whole batch.
func (c *Collector) ObserveBatch(txns []generator.Transaction) {
	for _, t := range txns {
		c.Observe(t)
	}
}

// Summarize computes the batch summary over everything observed so far.
func (c *Collector) Summarize() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Summary{
		RecordCount:     c.count,
		ChargebackCount: c.chargebackCount,
		CurrencyCounts:  make(map[generator.Currency]int, len(c.currencyCounts)),
		AmountTotal:     c.total,
		FirstTimestamp:  c.first,
		LastTimestamp:   c.last,
	}
	for cur, n := range c.currencyCounts {
		s.CurrencyCounts[cur] = n
	}

	if c.count == 0 {
		return s
	}

	s.ChargebackRate = float64(c.chargebackCount) / float64(c.count)
	s.AmountMean = c.total.Div(decimal.NewFromInt(int64(c.count))).Round(2)

	sorted := make([]decimal.Decimal, len(c.amounts))
	copy(sorted, c.amounts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	s.AmountMin = sorted[0]
	s.AmountMax = sorted[len(sorted)-1]
	s.AmountP50 = percentile(sorted, 50)
	s.AmountP90 = percentile(sorted, 90)
	s.AmountP99 = percentile(sorted, 99)

	return s
}

func percentile(sorted []decimal.Decimal, p int) decimal.Decimal {
	idx := len(sorted) * p / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
