package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

// Default generation parameters. Amounts are tracked in cents so the
// generated values always carry exactly two decimal places.
const (
	DefaultRecordCount    = 1000
	DefaultChargebackRate = 0.05
	DefaultAmountMinCents = 100    // 1.00
	DefaultAmountMaxCents = 100000 // 1000.00

	secondsPerDay = 86400
)

// RunDateLayout is the expected format of a run date on the CLI.
const RunDateLayout = "2006-01-02"

var (
	// ErrInvalidRecordCount is returned when the requested record count is
	// not a positive integer.
	ErrInvalidRecordCount = errors.New("record count must be a positive integer")

	// ErrInvalidAmountRange is returned when the configured amount bounds
	// are non-positive or inverted.
	ErrInvalidAmountRange = errors.New("amount range must be positive with min <= max")

	// ErrNoCurrencies is returned when the configured currency set is empty.
	ErrNoCurrencies = errors.New("at least one currency is required")
)

// ParseRunDate parses a YYYY-MM-DD run date string.
func ParseRunDate(s string) (time.Time, error) {
	t, err := time.Parse(RunDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid run date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// Config holds the explicit inputs of a generation run. The run date, seed
// and output root are all threaded through here rather than read from
// ambient state, so a batch is a pure function of its Config.
type Config struct {
	// RunDate is the calendar day all generated timestamps fall on.
	RunDate time.Time

	// RecordCount is the number of transactions to generate.
	RecordCount int

	// Seed fixes the pseudo-random sequence. Zero seeds from the wall
	// clock, making the run intentionally non-reproducible.
	Seed int64

	// ChargebackRate is the per-record probability of the chargeback flag.
	ChargebackRate float64

	// Amount bounds, inclusive, in cents.
	AmountMinCents int64
	AmountMaxCents int64

	// Currencies to draw from uniformly.
	Currencies []Currency
}

// DefaultConfig returns a Config with the standard generation parameters
// for the given run date.
func DefaultConfig(runDate time.Time) Config {
	return Config{
		RunDate:        runDate,
		RecordCount:    DefaultRecordCount,
		ChargebackRate: DefaultChargebackRate,
		AmountMinCents: DefaultAmountMinCents,
		AmountMaxCents: DefaultAmountMaxCents,
		Currencies:     Currencies,
	}
}

// Validate checks the config before any generation or IO happens.
func (c Config) Validate() error {
	if c.RecordCount <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidRecordCount, c.RecordCount)
	}
	if c.AmountMinCents <= 0 || c.AmountMaxCents < c.AmountMinCents {
		return fmt.Errorf("%w, got [%d, %d]", ErrInvalidAmountRange, c.AmountMinCents, c.AmountMaxCents)
	}
	if len(c.Currencies) == 0 {
		return ErrNoCurrencies
	}
	return nil
}

// Generator produces one batch of synthetic transactions. The random source
// is owned by the generator instance; nothing global is touched.
type Generator struct {
	cfg Config
	rng *rand.Rand
}

// New validates the config and builds a generator. With a non-zero seed the
// resulting batch is byte-for-byte reproducible.
func New(cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}, nil
}

// Generate runs the single linear generation pass and returns the batch in
// ascending ID order.
//
// Each record consumes draws in a fixed order (time offset, amount,
// currency, chargeback) so a seed pins the entire batch.
func (g *Generator) Generate() []Transaction {
	midnight := time.Date(
		g.cfg.RunDate.Year(), g.cfg.RunDate.Month(), g.cfg.RunDate.Day(),
		0, 0, 0, 0, g.cfg.RunDate.Location(),
	)

	txns := make([]Transaction, 0, g.cfg.RecordCount)
	for i := 1; i <= g.cfg.RecordCount; i++ {
		offset := time.Duration(g.rng.Int63n(secondsPerDay)) * time.Second
		cents := g.cfg.AmountMinCents + g.rng.Int63n(g.cfg.AmountMaxCents-g.cfg.AmountMinCents+1)
		currency := g.cfg.Currencies[g.rng.Intn(len(g.cfg.Currencies))]
		chargeback := g.rng.Float64() < g.cfg.ChargebackRate

		txns = append(txns, Transaction{
			ID:           FormatID(i),
			Timestamp:    midnight.Add(offset),
			Amount:       decimal.New(cents, -2),
			Currency:     currency,
			IsChargeback: chargeback,
		})
	}

	return txns
}
