package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const analyzeTimeout = 60 * time.Second

func newAnalyzeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze SYMBOL",
		Short: "Run the daily swing analysis for one symbol",
		Long: `Analyze fetches daily history, quote and fundamentals for a symbol and
derives the full assessment: indicator snapshot, signal with confidence,
price prediction, 52-week position, bandar flow and candlestick tags.`,
		Example: `  idx-insight analyze BBCA
  idx-insight analyze TLKM --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol := strings.ToUpper(args[0])

			ctx, cancel := context.WithTimeout(cmd.Context(), analyzeTimeout)
			defer cancel()

			result, err := app.Scanner.Analyze(ctx, symbol)
			if err != nil {
				return err
			}
			return NewOutput(cmd).Analysis(result)
		},
	}
}
