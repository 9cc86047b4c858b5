package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/pedro-hbl/transaction-seeder/pkg/generator"
	"github.com/pedro-hbl/transaction-seeder/pkg/validate"
)

const (
	curatedTemplate    = "transactions_curated_%s.csv"
	quarantineTemplate = "transactions_quarantine_%s.csv"
)

// Command line flags
var (
	runDate       string
	rawDir        = flag.String("raw-dir", "data/raw", "Directory holding raw batch files")
	curatedDir    = flag.String("curated-dir", "data/curated", "Directory for curated output")
	quarantineDir = flag.String("quarantine-dir", "data/quarantine", "Directory for quarantined rows")
	verbose       = flag.Bool("verbose", false, "Log every validation failure")
)

func init() {
	flag.StringVar(&runDate, "run-date", "", "Run date in YYYY-MM-DD format (default: today)")
	flag.StringVar(&runDate, "run_date", "", "Alias for --run-date")
}

func main() {
	flag.Parse()

	// Set up logging
	log.SetOutput(os.Stdout)
	log.SetFlags(log.Ldate | log.Ltime)

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
	dateStr := date.Format(generator.RunDateLayout)

	inputFile := filepath.Join(*rawDir, generator.BatchFileName(date))
	curatedFile := filepath.Join(*curatedDir, fmt.Sprintf(curatedTemplate, dateStr))
	quarantineFile := filepath.Join(*quarantineDir, fmt.Sprintf(quarantineTemplate, dateStr))

	records, err := validate.ReadRawFile(inputFile)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	result, err := validate.ValidateBatch(records)
	if err != nil {
		log.Fatalf("Error: batch %s failed schema validation: %v", inputFile, err)
	}

	if *verbose {
		for _, rowErr := range result.Errors {
			log.Printf("quarantined: %s", rowErr)
		}
	}

	if err := validate.WriteRows(curatedFile, generator.Header, result.Curated); err != nil {
		log.Fatalf("Error: %v", err)
	}

	if len(result.Quarantined) > 0 {
		if err := validate.WriteRows(quarantineFile, generator.Header, result.Quarantined); err != nil {
			log.Fatalf("Error: %v", err)
		}
	}

	printSummary(result, curatedFile, quarantineFile)
}

func printSummary(result validate.Result, curatedFile, quarantineFile string) {
	total := result.TotalRows()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Total records", fmt.Sprintf("%d", total)})
	if total > 0 {
		table.Append([]string{"Valid records", fmt.Sprintf("%d (%.2f%%)", len(result.Curated), percent(len(result.Curated), total))})
		table.Append([]string{"Invalid records", fmt.Sprintf("%d (%.2f%%)", len(result.Quarantined), percent(len(result.Quarantined), total))})
	}
	table.Render()

	log.Printf("Curated data saved to %s", curatedFile)
	if len(result.Quarantined) > 0 {
		log.Printf("Invalid records moved to quarantine: %s", quarantineFile)
	} else {
		log.Println("No invalid records. Quarantine file not written.")
	}
}

func percent(part, total int) float64 {
	return float64(part) / float64(total) * 100
}
