package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"idx-insight/internal/models"
	"idx-insight/pkg/utils"
)

// Output handles formatted output to the terminal.
type Output struct {
	writer   io.Writer
	jsonMode bool
}

// NewOutput creates an Output for the command, honoring the --json flag.
func NewOutput(cmd *cobra.Command) *Output {
	jsonMode, _ := cmd.Flags().GetBool("json")
	if !isTerminal() {
		color.NoColor = true
	}
	return &Output{
		writer:   cmd.OutOrStdout(),
		jsonMode: jsonMode,
	}
}

func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// JSON writes the value as indented JSON.
func (o *Output) JSON(v interface{}) error {
	enc := json.NewEncoder(o.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Analysis renders one symbol's daily assessment.
func (o *Output) Analysis(r *models.AnalysisResult) error {
	if o.jsonMode {
		return o.JSON(r)
	}

	bold := color.New(color.Bold)
	bold.Fprintf(o.writer, "\n%s  %s\n", r.Symbol, utils.FormatRupiah(r.Price))
	fmt.Fprintf(o.writer, "Signal:      %s (confidence %d)\n", colorSignal(r.Signal), r.ConfidenceScore)
	fmt.Fprintf(o.writer, "Trend:       %s\n", r.Trend)
	fmt.Fprintf(o.writer, "RSI(14):     %.2f\n", r.RSI)
	fmt.Fprintf(o.writer, "MACD:        %.2f (hist %.2f)\n", r.MACD, r.MACDHistogram)
	fmt.Fprintf(o.writer, "Prediction:  %s (%s)\n",
		utils.FormatRupiah(r.PredictedPrice), utils.FormatPercent(r.PredictedPercent))
	fmt.Fprintf(o.writer, "52w range:   %s - %s (position %.0f%%)\n",
		utils.FormatRupiah(r.Low52), utils.FormatRupiah(r.High52), r.Position52)
	fmt.Fprintf(o.writer, "Volume:      %.2fx average\n", r.VolumeRatio)

	if r.BandarFlow != nil {
		fmt.Fprintf(o.writer, "Bandar flow: %s (price slope %.4f, OBV slope %.2f)\n",
			r.BandarFlow.Status, r.BandarFlow.PriceSlope, r.BandarFlow.OBVSlope)
	}
	if len(r.Patterns) > 0 {
		names := make([]string, 0, len(r.Patterns))
		for _, p := range r.Patterns {
			names = append(names, string(p.Name))
		}
		fmt.Fprintf(o.writer, "Patterns:    %s\n", strings.Join(names, ", "))
	}
	if f := r.Fundamentals; f != nil {
		fmt.Fprintf(o.writer, "Fundamentals: PE %s | PBV %s | EPS %s\n",
			fmtOpt(f.TrailingPE), fmtOpt(f.PriceToBook), fmtOpt(f.TrailingEPS))
	}

	fmt.Fprintf(o.writer, "\n%s\n\n", r.Summary)
	return nil
}

// Intraday renders an intraday trade plan.
func (o *Output) Intraday(p *models.IntradayPlan) error {
	if o.jsonMode {
		return o.JSON(p)
	}

	bold := color.New(color.Bold)
	bold.Fprintf(o.writer, "\n%s intraday plan\n", p.Ticker)
	fmt.Fprintf(o.writer, "Bias:          %s (score %d)\n", colorBias(p.Bias), p.Score)
	fmt.Fprintf(o.writer, "Entry:         %s\n", utils.FormatRupiah(p.Entry))
	fmt.Fprintf(o.writer, "Stop loss:     %s\n", utils.FormatRupiah(p.StopLoss))
	fmt.Fprintf(o.writer, "Target 1:      %s\n", utils.FormatRupiah(p.Target1))
	fmt.Fprintf(o.writer, "Target 2:      %s\n", utils.FormatRupiah(p.Target2))
	fmt.Fprintf(o.writer, "Opening range: %s - %s\n",
		utils.FormatRupiah(p.OpeningRangeLow), utils.FormatRupiah(p.OpeningRangeHigh))
	fmt.Fprintf(o.writer, "VWAP:          %.2f\n", p.CurrentVWAP)
	fmt.Fprintf(o.writer, "\n%s\n\n", p.Reasoning)
	return nil
}

// Comparison renders a head-to-head verdict as a table.
func (o *Output) Comparison(v *models.ComparisonVerdict) error {
	if o.jsonMode {
		return o.JSON(v)
	}

	t := table.NewWriter()
	t.SetOutputMirror(o.writer)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Dimension", "Winner"})
	t.AppendRows([]table.Row{
		{"Valuation", winnerLabel(v.Valuation, v.A.Symbol, v.B.Symbol)},
		{"Momentum", winnerLabel(v.Momentum, v.A.Symbol, v.B.Symbol)},
		{"Profitability", winnerLabel(v.Profitability, v.A.Symbol, v.B.Symbol)},
		{"Bandarmology", winnerLabel(v.Bandarmology, v.A.Symbol, v.B.Symbol)},
	})
	t.Render()

	fmt.Fprintf(o.writer, "\n%s\n", v.Narrative)
	return nil
}

// Scan renders a batch of results as a table, one row per symbol.
func (o *Output) Scan(results []scanRow) error {
	if o.jsonMode {
		return o.JSON(results)
	}

	t := table.NewWriter()
	t.SetOutputMirror(o.writer)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Symbol", "Price", "Signal", "Conf", "RSI", "Trend", "Vol", "Flow", "Error"})

	for _, row := range results {
		if row.Error != "" {
			t.AppendRow(table.Row{row.Symbol, "", "", "", "", "", "", "", row.Error})
			continue
		}
		t.AppendRow(table.Row{
			row.Symbol,
			utils.FormatRupiah(row.Price),
			colorSignal(models.Signal(row.Signal)),
			row.Confidence,
			fmt.Sprintf("%.1f", row.RSI),
			row.Trend,
			fmt.Sprintf("%.2fx", row.VolumeRatio),
			row.Flow,
			"",
		})
	}
	t.Render()
	return nil
}

func colorSignal(s models.Signal) string {
	switch s {
	case models.SignalBuy:
		return color.GreenString(string(s))
	case models.SignalSell:
		return color.RedString(string(s))
	default:
		return color.YellowString(string(s))
	}
}

func colorBias(b models.Bias) string {
	switch b {
	case models.BiasBullish:
		return color.GreenString(string(b))
	case models.BiasBearish:
		return color.RedString(string(b))
	default:
		return color.YellowString(string(b))
	}
}

func winnerLabel(w models.Winner, a, b string) string {
	switch w {
	case models.WinnerA:
		return a
	case models.WinnerB:
		return b
	default:
		return "TIE"
	}
}

func fmtOpt(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}
