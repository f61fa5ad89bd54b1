package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const compareTimeout = 90 * time.Second

func newCompareCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "compare SYMBOL_A SYMBOL_B",
		Short: "Rank two symbols head to head",
		Long: `Compare analyzes both symbols concurrently and ranks them on valuation,
momentum, profitability and bandar flow, then renders a narrative verdict.`,
		Example: `  idx-insight compare BBCA BBRI
  idx-insight compare TLKM ISAT --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbolA := strings.ToUpper(args[0])
			symbolB := strings.ToUpper(args[1])

			ctx, cancel := context.WithTimeout(cmd.Context(), compareTimeout)
			defer cancel()

			verdict, err := app.Scanner.Compare(ctx, symbolA, symbolB)
			if err != nil {
				return err
			}
			return NewOutput(cmd).Comparison(verdict)
		},
	}
}
