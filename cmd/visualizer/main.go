package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/pedro-hbl/transaction-seeder/internal/stats"
	"github.com/pedro-hbl/transaction-seeder/pkg/generator"
)

// Command line flags
var (
	inputPath  = flag.String("input", "", "Path to a generated batch CSV file")
	outputPath = flag.String("output", "visualizations", "Directory to store visualization outputs")
	format     = flag.String("format", "all", "Output format: text, chart, all")
)

func main() {
	flag.Parse()

	if *inputPath == "" {
		log.Fatal("Input path is required. Use --input flag to specify the batch file.")
	}

	// Create output directory if it doesn't exist
	if err := os.MkdirAll(*outputPath, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	txns, err := generator.ReadBatchFile(*inputPath)
	if err != nil {
		log.Fatalf("Failed to load batch: %v", err)
	}
	if len(txns) == 0 {
		log.Fatal("Batch contains no records.")
	}

	fmt.Printf("Loaded %d transactions from %s\n", len(txns), *inputPath)

	collector := stats.NewCollector()
	collector.ObserveBatch(txns)
	summary := collector.Summarize()

	if *format == "text" || *format == "all" {
		generateTextSummary(summary)
	}

	if *format == "chart" || *format == "all" {
		generateCurrencyChart(summary)
		generateHourlyChart(txns)
		generateChargebackChart(summary)
	}
}

// generateTextSummary renders the batch summary as tables, both to stdout
// and to a markdown file in the output directory.
func generateTextSummary(summary stats.Summary) {
	outputFile := filepath.Join(*outputPath, "batch_summary.md")
	file, err := os.Create(outputFile)
	if err != nil {
		log.Fatalf("Failed to create summary file: %v", err)
	}
	defer file.Close()

	fmt.Println("\n=== Batch Summary ===")
	fmt.Fprintln(file, "# Batch Summary")
	fmt.Fprintln(file)

	out := io.MultiWriter(os.Stdout, file)

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Records", fmt.Sprintf("%d", summary.RecordCount)})
	table.Append([]string{"Chargebacks", fmt.Sprintf("%d (%.2f%%)", summary.ChargebackCount, summary.ChargebackRate*100)})
	table.Append([]string{"Amount min", summary.AmountMin.StringFixed(2)})
	table.Append([]string{"Amount max", summary.AmountMax.StringFixed(2)})
	table.Append([]string{"Amount mean", summary.AmountMean.StringFixed(2)})
	table.Append([]string{"Amount p50", summary.AmountP50.StringFixed(2)})
	table.Append([]string{"Amount p90", summary.AmountP90.StringFixed(2)})
	table.Append([]string{"Amount p99", summary.AmountP99.StringFixed(2)})
	table.Append([]string{"First timestamp", summary.FirstTimestamp.Format(generator.TimestampLayout)})
	table.Append([]string{"Last timestamp", summary.LastTimestamp.Format(generator.TimestampLayout)})
	table.Render()

	currencyTable := tablewriter.NewWriter(out)
	currencyTable.SetHeader([]string{"Currency", "Records"})
	for _, cur := range sortedCurrencies(summary) {
		currencyTable.Append([]string{string(cur), fmt.Sprintf("%d", summary.CurrencyCounts[cur])})
	}
	currencyTable.Render()

	fmt.Printf("Text summary saved to: %s\n", outputFile)
}

// generateCurrencyChart renders record counts per currency as a bar chart.
func generateCurrencyChart(summary stats.Summary) {
	var bars []chart.Value
	for _, cur := range sortedCurrencies(summary) {
		bars = append(bars, chart.Value{
			Label: string(cur),
			Value: float64(summary.CurrencyCounts[cur]),
		})
	}

	barChart := chart.BarChart{
		Title: "Records by Currency",
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  800,
		Height: 400,
		Bars:   bars,
	}

	renderChart(barChart, "currency_chart.png")
}

// generateHourlyChart renders record counts per hour of day.
func generateHourlyChart(txns []generator.Transaction) {
	counts := make([]float64, 24)
	for _, t := range txns {
		counts[t.Timestamp.Hour()]++
	}

	var bars []chart.Value
	for hour, count := range counts {
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%02d", hour),
			Value: count,
		})
	}

	barChart := chart.BarChart{
		Title: "Records by Hour of Day",
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:    1200,
		Height:   400,
		BarWidth: 30,
		Bars:     bars,
	}

	renderChart(barChart, "hourly_chart.png")
}

// generateChargebackChart renders the chargeback split.
func generateChargebackChart(summary stats.Summary) {
	barChart := chart.BarChart{
		Title: fmt.Sprintf("Chargeback Split (%.2f%% chargebacks)", summary.ChargebackRate*100),
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  800,
		Height: 400,
		Bars: []chart.Value{
			{Label: "settled", Value: float64(summary.RecordCount - summary.ChargebackCount)},
			{Label: "chargeback", Value: float64(summary.ChargebackCount)},
		},
	}

	renderChart(barChart, "chargeback_chart.png")
}

func renderChart(barChart chart.BarChart, filename string) {
	outputFile := filepath.Join(*outputPath, filename)
	f, err := os.Create(outputFile)
	if err != nil {
		fmt.Printf("Warning: Failed to create chart file: %v\n", err)
		return
	}
	defer f.Close()

	if err := barChart.Render(chart.PNG, f); err != nil {
		fmt.Printf("Warning: Failed to render chart: %v\n", err)
		return
	}

	fmt.Printf("Chart saved to: %s\n", outputFile)
}

func sortedCurrencies(summary stats.Summary) []generator.Currency {
	currencies := make([]generator.Currency, 0, len(summary.CurrencyCounts))
	for cur := range summary.CurrencyCounts {
		currencies = append(currencies, cur)
	}
	sort.Slice(currencies, func(i, j int) bool {
		return strings.Compare(string(currencies[i]), string(currencies[j])) < 0
	})
	return currencies
}
