// Package cli provides the command-line interface for the analysis tool.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"idx-insight/internal/config"
	"idx-insight/internal/marketdata"
	"idx-insight/internal/scan"
)

// Version information
const Version = "0.1.0"

// App holds the application dependencies.
type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Scanner *scan.Scanner
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	provider := marketdata.NewYahooProvider(cfg.Data.SymbolSuffix)
	app := &App{
		Config: cfg,
		Logger: logger,
		Scanner: scan.NewScanner(provider, logger,
			scan.WithConcurrency(cfg.Scan.Concurrency),
			scan.WithRangeHint(marketdata.RangeHint(cfg.Data.Range)),
		),
	}

	rootCmd := &cobra.Command{
		Use:     "idx-insight",
		Short:   "Deterministic technical analysis for IDX equities",
		Long: `idx-insight derives explainable trading assessments from daily bars:
technical-indicator snapshots, BUY/SELL/NEUTRAL signals with confidence,
bandarmology flow classification, candlestick tags, intraday VWAP plans
and two-symbol comparisons.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(newAnalyzeCmd(app))
	rootCmd.AddCommand(newIntradayCmd(app))
	rootCmd.AddCommand(newCompareCmd(app))
	rootCmd.AddCommand(newScanCmd(app))

	return rootCmd
}
