package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/pedro-hbl/transaction-seeder/internal/report"
	"github.com/pedro-hbl/transaction-seeder/internal/stats"
	"github.com/pedro-hbl/transaction-seeder/pkg/generator"
)

const previewRows = 3

// Command line flags
var (
	runDate     string
	recordCount int
	seed        = flag.Int64("seed", 0, "PRNG seed; 0 seeds from the current time (non-reproducible)")
	outputDir   = flag.String("output", "", "Directory for the batch file (default: OUTPUT_DIR env or data/raw)")
	reportDir   = flag.String("report-dir", "", "Directory for JSON run reports; empty disables reports")
	preview     = flag.Bool("preview", true, "Print the first rows of the generated batch")
)

func init() {
	flag.StringVar(&runDate, "run-date", "", "Run date in YYYY-MM-DD format (default: today)")
	flag.StringVar(&runDate, "run_date", "", "Alias for --run-date")
	flag.IntVar(&recordCount, "n-records", generator.DefaultRecordCount, "Number of transaction records to generate")
	flag.IntVar(&recordCount, "n", generator.DefaultRecordCount, "Alias for --n-records")
}

func main() {
	flag.Parse()

	// Set up logging
	log.SetOutput(os.Stdout)
	log.SetFlags(log.Ldate | log.Ltime)

	// Resolve the run date: explicit flag value, else today
	var date time.Time
	if runDate != "" {
		parsed, err := generator.ParseRunDate(runDate)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		date = parsed
	} else {
		now := time.Now()
		date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	// Get output directory from flag or environment variable
	dir := *outputDir
	if dir == "" {
		dir = os.Getenv("OUTPUT_DIR")
		if dir == "" {
			dir = "data/raw"
		}
	}

	cfg := generator.DefaultConfig(date)
	cfg.RecordCount = recordCount
	cfg.Seed = *seed

	gen, err := generator.New(cfg)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	txns := gen.Generate()

	path, err := generator.WriteBatchFile(dir, date, txns)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	collector := stats.NewCollector()
	collector.ObserveBatch(txns)
	summary := collector.Summarize()

	log.Printf("Generated %d transactions and saved to %s", summary.RecordCount, path)
	log.Printf("Chargeback rate: %.2f%%", summary.ChargebackRate*100)
	log.Printf("Amount range: %s - %s (mean %s)", summary.AmountMin.StringFixed(2), summary.AmountMax.StringFixed(2), summary.AmountMean.StringFixed(2))

	if *preview {
		printPreview(txns)
	}

	if *reportDir != "" {
		rep := report.New(date, recordCount, *seed, path, summary)
		reportPath, err := rep.Save(*reportDir)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		log.Printf("Run report %s saved to %s", rep.RunID, reportPath)
	}
}

// printPreview renders the first rows of the batch as a table
func printPreview(txns []generator.Transaction) {
	n := previewRows
	if len(txns) < n {
		n = len(txns)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(generator.Header)
	for _, t := range txns[:n] {
		table.Append(t.Row())
	}
	table.Render()
}
