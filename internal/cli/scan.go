package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"idx-insight/internal/scan"
)

const scanTimeout = 5 * time.Minute

// scanRow is the flattened per-symbol record used for table and CSV output.
type scanRow struct {
	Symbol      string  `csv:"symbol" json:"symbol"`
	Price       float64 `csv:"price" json:"price"`
	Signal      string  `csv:"signal" json:"signal"`
	Confidence  int     `csv:"confidence" json:"confidence"`
	RSI         float64 `csv:"rsi" json:"rsi"`
	Trend       string  `csv:"trend" json:"trend"`
	VolumeRatio float64 `csv:"volume_ratio" json:"volume_ratio"`
	Flow        string  `csv:"flow" json:"flow"`
	Error       string  `csv:"error" json:"error,omitempty"`
}

func newScanCmd(app *App) *cobra.Command {
	var csvPath string

	cmd := &cobra.Command{
		Use:   "scan [SYMBOL...]",
		Short: "Analyze a batch of symbols with bounded concurrency",
		Long: `Scan runs the daily analysis across a list of symbols. Without arguments
the configured watchlist is used. One symbol's failure never aborts the
batch; failed symbols show up as error rows.`,
		Example: `  idx-insight scan
  idx-insight scan BBCA BBRI BMRI
  idx-insight scan --csv results.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			symbols := app.Config.Scan.Watchlist
			if len(args) > 0 {
				symbols = make([]string, len(args))
				for i, a := range args {
					symbols[i] = strings.ToUpper(a)
				}
			}
			if len(symbols) == 0 {
				return fmt.Errorf("no symbols: pass arguments or configure scan.watchlist")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), scanTimeout)
			defer cancel()

			results := app.Scanner.ScanAll(ctx, symbols)
			rows := toScanRows(results)

			if csvPath != "" {
				if err := writeCSV(csvPath, rows); err != nil {
					return fmt.Errorf("writing csv: %w", err)
				}
				app.Logger.Info().Str("path", csvPath).Int("rows", len(rows)).Msg("scan exported")
			}

			return NewOutput(cmd).Scan(rows)
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "export results to a CSV file")
	return cmd
}

func toScanRows(results []scan.Result) []scanRow {
	rows := make([]scanRow, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			rows = append(rows, scanRow{Symbol: res.Symbol, Error: res.Err.Error()})
			continue
		}
		a := res.Analysis
		row := scanRow{
			Symbol:      a.Symbol,
			Price:       a.Price,
			Signal:      string(a.Signal),
			Confidence:  a.ConfidenceScore,
			RSI:         a.RSI,
			Trend:       string(a.Trend),
			VolumeRatio: a.VolumeRatio,
		}
		if a.BandarFlow != nil {
			row.Flow = string(a.BandarFlow.Status)
		}
		rows = append(rows, row)
	}
	return rows
}

func writeCSV(path string, rows []scanRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.MarshalFile(&rows, f)
}
