package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

func newIntradayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "intraday SYMBOL",
		Short: "Build an intraday trade plan for one symbol",
		Long: `Intraday derives a session plan from recent bars: opening range, session
VWAP, directional bias with a 0-99 score, and ATR-based entry, stop and
target levels.`,
		Example: `  idx-insight intraday BBRI
  idx-insight intraday ASII --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol := strings.ToUpper(args[0])

			ctx, cancel := context.WithTimeout(cmd.Context(), analyzeTimeout)
			defer cancel()

			plan, err := app.Scanner.Intraday(ctx, symbol)
			if err != nil {
				return err
			}
			return NewOutput(cmd).Intraday(plan)
		},
	}
}
