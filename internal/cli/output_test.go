package cli

import (
	"testing"

	"github.com/fatih/color"

	"idx-insight/internal/errors"
	"idx-insight/internal/models"
	"idx-insight/internal/scan"
)

func TestWinnerLabel(t *testing.T) {
	tests := []struct {
		winner models.Winner
		want   string
	}{
		{models.WinnerA, "BBCA"},
		{models.WinnerB, "BBRI"},
		{models.WinnerTie, "TIE"},
	}

	for _, tt := range tests {
		if got := winnerLabel(tt.winner, "BBCA", "BBRI"); got != tt.want {
			t.Errorf("winnerLabel(%s) = %q, want %q", tt.winner, got, tt.want)
		}
	}
}

func TestColorSignal(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	tests := []struct {
		signal models.Signal
		want   string
	}{
		{models.SignalBuy, "BUY"},
		{models.SignalSell, "SELL"},
		{models.SignalNeutral, "NEUTRAL"},
	}

	for _, tt := range tests {
		if got := colorSignal(tt.signal); got != tt.want {
			t.Errorf("colorSignal(%s) = %q, want %q", tt.signal, got, tt.want)
		}
	}
}

func TestToScanRows(t *testing.T) {
	results := []scan.Result{
		{
			Symbol: "BBCA",
			Analysis: &models.AnalysisResult{
				Symbol:          "BBCA",
				Price:           9150,
				Signal:          models.SignalBuy,
				ConfidenceScore: 80,
				RSI:             25.5,
				Trend:           models.TrendUp,
				VolumeRatio:     1.4,
				BandarFlow:      &models.BandarFlowAssessment{Status: models.FlowAccumulation},
			},
		},
		{Symbol: "BAD", Err: errors.ErrSymbolNotFound},
	}

	rows := toScanRows(results)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Flow != string(models.FlowAccumulation) {
		t.Errorf("Flow = %q, want %s", rows[0].Flow, models.FlowAccumulation)
	}
	if rows[0].Confidence != 80 || rows[0].Signal != "BUY" {
		t.Errorf("row = %+v, want the analysis fields flattened", rows[0])
	}
	if rows[1].Error == "" {
		t.Error("failed symbol has no error text")
	}
	if rows[1].Signal != "" {
		t.Errorf("failed symbol carries signal %q, want empty", rows[1].Signal)
	}
}
