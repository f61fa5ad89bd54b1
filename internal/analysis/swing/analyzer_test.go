package swing

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"idx-insight/internal/analysis/indicators"
	"idx-insight/internal/models"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// risingBars builds n daily bars with closes climbing linearly from start.
func risingBars(n int, start, step float64) []models.Bar {
	base := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]models.Bar, n)
	for i := range bars {
		c := start + float64(i)*step
		bars[i] = models.Bar{
			Timestamp: base.AddDate(0, 0, i),
			Open:      c - step/2,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    100000,
		}
	}
	return bars
}

func TestAnalyze_InsufficientData(t *testing.T) {
	a := NewAnalyzer(testLogger())
	_, err := a.Analyze(Input{Symbol: "BBCA", Bars: risingBars(150, 100, 0.2)})
	if !errors.Is(err, indicators.ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}

func TestAnalyze_RisingSeries(t *testing.T) {
	a := NewAnalyzer(testLogger())
	bars := risingBars(250, 100, 0.2)

	result, err := a.Analyze(Input{Symbol: "BBCA", Bars: bars})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Trend != models.TrendUp {
		t.Errorf("Trend = %s, want %s", result.Trend, models.TrendUp)
	}
	// Every close gains, so RSI saturates and the overbought rule fires.
	if result.RSI != 100 {
		t.Errorf("RSI = %v, want 100", result.RSI)
	}
	if result.Signal != models.SignalSell {
		t.Errorf("Signal = %s, want %s", result.Signal, models.SignalSell)
	}
	if result.ConfidenceScore != 80 {
		t.Errorf("ConfidenceScore = %d, want 80", result.ConfidenceScore)
	}
	if result.Low52 >= result.High52 {
		t.Errorf("Low52 %v not below High52 %v", result.Low52, result.High52)
	}
	if result.Position52 < 90 {
		t.Errorf("Position52 = %v, want near the top of the range", result.Position52)
	}
	if result.BandarFlow == nil {
		t.Error("BandarFlow is nil, want an assessment")
	}
	if !strings.Contains(result.Summary, "BBCA") {
		t.Errorf("Summary %q does not mention the symbol", result.Summary)
	}
}

func TestAnalyze_SharpDropEndsUptrend(t *testing.T) {
	a := NewAnalyzer(testLogger())

	// Same rising series, but the final 10 bars collapse well below the
	// long-term average.
	bars := risingBars(250, 100, 0.2)
	for i := 0; i < 10; i++ {
		idx := len(bars) - 10 + i
		c := 140 - float64(i)*10
		bars[idx].Open = c + 5
		bars[idx].High = c + 6
		bars[idx].Low = c - 1
		bars[idx].Close = c
	}

	result, err := a.Analyze(Input{Symbol: "GOTO", Bars: bars})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Trend == models.TrendUp {
		t.Errorf("Trend = %s after a 10-bar collapse, want %s or %s",
			result.Trend, models.TrendDown, models.TrendSideways)
	}
	if result.RSI >= 50 {
		t.Errorf("RSI = %v after heavy selling, want below 50", result.RSI)
	}
	if result.Signal == models.SignalSell {
		// The overbought rule cannot fire with RSI this depressed.
		t.Errorf("Signal = %s, want %s or %s", result.Signal, models.SignalNeutral, models.SignalBuy)
	}
}

func TestAnalyze_QuoteFallsBackToLastClose(t *testing.T) {
	a := NewAnalyzer(testLogger())
	bars := risingBars(250, 100, 0.2)
	lastClose := bars[len(bars)-1].Close

	result, err := a.Analyze(Input{Symbol: "TLKM", Bars: bars, Quote: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Price != lastClose {
		t.Errorf("Price = %v, want last close %v", result.Price, lastClose)
	}

	result, err = a.Analyze(Input{Symbol: "TLKM", Bars: bars, Quote: 160})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Price != 160 {
		t.Errorf("Price = %v, want quote 160", result.Price)
	}
}

func TestAnalyze_FundamentalsPassThrough(t *testing.T) {
	a := NewAnalyzer(testLogger())
	bars := risingBars(250, 100, 0.2)

	pe := 12.5
	f := &models.Fundamentals{TrailingPE: &pe}
	result, err := a.Analyze(Input{Symbol: "ASII", Bars: bars, Fundamentals: f})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Fundamentals != f {
		t.Error("Fundamentals not passed through")
	}

	result, err = a.Analyze(Input{Symbol: "ASII", Bars: bars})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Fundamentals != nil {
		t.Error("absent fundamentals should stay nil")
	}
}

func TestClassifySignal(t *testing.T) {
	tests := []struct {
		name       string
		rsi        float64
		price      float64
		ema200     float64
		wantSignal models.Signal
		wantConf   int
	}{
		{"oversold above long-term average", 20, 110, 100, models.SignalBuy, 80},
		{"oversold below long-term average", 20, 90, 100, models.SignalNeutral, 30},
		{"overbought", 85, 100, 100, models.SignalSell, 65},
		{"neutral band", 50, 100, 100, models.SignalNeutral, 30},
		{"buy confidence capped at 95", 0, 200, 100, models.SignalBuy, 95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signal, conf := classifySignal(tt.rsi, tt.price, tt.ema200)
			if signal != tt.wantSignal {
				t.Errorf("signal = %s, want %s", signal, tt.wantSignal)
			}
			if conf != tt.wantConf {
				t.Errorf("confidence = %d, want %d", conf, tt.wantConf)
			}
		})
	}
}

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		name   string
		price  float64
		ema50  float64
		ema200 float64
		want   models.Trend
	}{
		{"price and ema50 above", 110, 105, 100, models.TrendUp},
		{"price and ema50 below", 90, 95, 100, models.TrendDown},
		{"price above but ema50 below", 110, 95, 100, models.TrendSideways},
		{"price below but ema50 above", 90, 105, 100, models.TrendSideways},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyTrend(tt.price, tt.ema50, tt.ema200); got != tt.want {
				t.Errorf("classifyTrend() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPredictPrice(t *testing.T) {
	latest := models.Bar{Open: 100, High: 102, Low: 98, Close: 100} // volatility 0.04

	tests := []struct {
		name      string
		rsi       float64
		histogram float64
		wantPrice float64
	}{
		{"oversold projects up strongly", 20, 0, 103},  // 100 * 1.032
		{"overbought projects down strongly", 80, 0, 97}, // 100 * 0.968
		{"positive histogram projects up mildly", 50, 1, 101},
		{"flat momentum projects down mildly", 50, 0, 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			predicted, percent := predictPrice(latest, 100, tt.rsi, tt.histogram)
			if predicted != tt.wantPrice {
				t.Errorf("predicted = %v, want %v", predicted, tt.wantPrice)
			}
			wantPct := (tt.wantPrice - 100) / 100 * 100
			if math.Abs(percent-wantPct) > 1e-9 {
				t.Errorf("percent = %v, want %v", percent, wantPct)
			}
		})
	}

	t.Run("zero close uses default volatility", func(t *testing.T) {
		flat := models.Bar{}
		predicted, _ := predictPrice(flat, 100, 50, 0)
		// 100 * (1 - 0.3*0.02) = 99.4, rounded to 99.
		if predicted != 99 {
			t.Errorf("predicted = %v, want 99", predicted)
		}
	})
}

func TestYearRange(t *testing.T) {
	t.Run("flat window positions at midpoint", func(t *testing.T) {
		bars := risingBars(10, 100, 0)
		for i := range bars {
			bars[i].High = 100
			bars[i].Low = 100
		}
		_, _, pos := yearRange(bars, 100)
		if pos != 50 {
			t.Errorf("position = %v, want 50", pos)
		}
	})

	t.Run("position clamps to bounds", func(t *testing.T) {
		bars := risingBars(10, 100, 1)
		_, _, pos := yearRange(bars, 1)
		if pos != 0 {
			t.Errorf("position = %v, want 0", pos)
		}
		_, _, pos = yearRange(bars, 10000)
		if pos != 100 {
			t.Errorf("position = %v, want 100", pos)
		}
	})
}

func TestVolumeRatio(t *testing.T) {
	t.Run("zero average degrades to 1", func(t *testing.T) {
		bars := risingBars(30, 100, 1)
		for i := range bars {
			bars[i].Volume = 0
		}
		if got := volumeRatio(bars); got != 1 {
			t.Errorf("volumeRatio = %v, want 1", got)
		}
	})

	t.Run("spike on the last bar", func(t *testing.T) {
		bars := risingBars(30, 100, 1)
		bars[len(bars)-1].Volume = 100000 * 3
		got := volumeRatio(bars)
		// Window mean is (19*100000 + 300000) / 20 = 110000.
		want := 300000.0 / 110000.0
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("volumeRatio = %v, want %v", got, want)
		}
	})
}

func TestBuildSummary(t *testing.T) {
	got := buildSummary("BBRI", models.TrendDown, 25.3, 0.5)
	for _, fragment := range []string{"BBRI", "downtrend", "oversold", "thin"} {
		if !strings.Contains(got, fragment) {
			t.Errorf("summary %q missing %q", got, fragment)
		}
	}
}
