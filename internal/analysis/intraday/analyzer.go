// Package intraday derives a session bias, score and trading plan from
// intraday proxy bars.
//
// The data source delivers daily bars reused as 5-minute and 15-minute
// proxies; the engine is granularity-agnostic by design. The opening range is
// the first three bars of the current session, a documented domain
// approximation, not a bug.
package intraday

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"idx-insight/internal/analysis/indicators"
	"idx-insight/internal/models"
)

const (
	openingRangeBars = 3

	baseScore    = 50
	maxScore     = 99
	biasBonus    = 20
	rsiPenalty   = 10
	rsiBonus     = 10
	volumeBonus  = 20
	neutralRSI   = 50
	fallbackATR  = 0.02 // fraction of price when ATR cannot be computed
	minRSIPeriod = 2
	maxRSIPeriod = 14
)

// Analyzer computes intraday plans. The clock is injectable so the "today"
// boundary of the opening range stays testable.
type Analyzer struct {
	logger zerolog.Logger
	now    func() time.Time
}

// NewAnalyzer creates an intraday analyzer using the wall clock.
func NewAnalyzer(logger zerolog.Logger) *Analyzer {
	return &Analyzer{logger: logger, now: time.Now}
}

// NewAnalyzerAt creates an intraday analyzer with a fixed clock.
func NewAnalyzerAt(logger zerolog.Logger, now func() time.Time) *Analyzer {
	return &Analyzer{logger: logger, now: now}
}

// Input carries the two proxy series. Both may point at the same underlying
// daily data per the data-source contract. Quote is optional; non-positive
// falls back to the last 5m close.
type Input struct {
	Ticker  string
	Bars5m  []models.Bar
	Bars15m []models.Bar
	Quote   float64
}

// Analyze derives the bias, score and trading plan. RSI/ATR failures on short
// series degrade to neutral defaults rather than aborting.
func (a *Analyzer) Analyze(in Input) (*models.IntradayPlan, error) {
	if len(in.Bars5m) == 0 || len(in.Bars15m) == 0 {
		return nil, indicators.ErrInsufficientData
	}

	bars := in.Bars5m
	price := in.Quote
	if price <= 0 {
		price = bars[len(bars)-1].Close
	}

	orHigh, orLow := a.openingRange(bars, price)

	vwapSeries, err := indicators.NewSessionVWAP().Calculate(bars)
	currentVWAP := price
	if err == nil && len(vwapSeries) > 0 {
		currentVWAP = vwapSeries[len(vwapSeries)-1]
	}

	bias := classifyBias(price, currentVWAP, orHigh, orLow)

	period := adaptivePeriod(len(bars))
	rsi := lastRSI(bars, period)
	atr := a.lastATR(in.Ticker, bars, period, price)

	volumeRatio := latestVolumeRatio(bars)
	score := computeScore(bias, rsi, volumeRatio)

	entry := math.Round(price)
	plan := &models.IntradayPlan{
		Ticker:           in.Ticker,
		Bias:             bias,
		Score:            score,
		Entry:            entry,
		StopLoss:         math.Round(entry - 2*atr),
		Target1:          math.Round(entry + 2*atr),
		Target2:          math.Round(entry + 4*atr),
		OpeningRangeHigh: orHigh,
		OpeningRangeLow:  orLow,
		CurrentVWAP:      currentVWAP,
		VWAPSeries:       vwapSeries,
	}
	plan.Reasoning = buildReasoning(price, currentVWAP, volumeRatio, orHigh, orLow, bias)

	return plan, nil
}

// openingRange returns the high/low of the first openingRangeBars bars of
// today's session. With only 1-2 bars today it uses all of them; with none it
// falls back to the first bars of the whole series; an empty subset defaults
// to the current price.
func (a *Analyzer) openingRange(bars []models.Bar, price float64) (high, low float64) {
	today := a.now()

	var subset []models.Bar
	for _, b := range bars {
		if sameDay(b.Timestamp, today) {
			subset = append(subset, b)
			if len(subset) == openingRangeBars {
				break
			}
		}
	}
	if len(subset) == 0 {
		subset = bars
		if len(subset) > openingRangeBars {
			subset = subset[:openingRangeBars]
		}
	}
	if len(subset) == 0 {
		return price, price
	}

	high, low = subset[0].High, subset[0].Low
	for _, b := range subset[1:] {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}
	return high, low
}

func classifyBias(price, vwap, orHigh, orLow float64) models.Bias {
	switch {
	case price > vwap && price > orHigh:
		return models.BiasBullish
	case price < vwap && price < orLow:
		return models.BiasBearish
	default:
		return models.BiasSideways
	}
}

// adaptivePeriod shrinks the smoothing window with available history:
// clamp(len/2, 2, 14). Fixing the period would silently change scoring on
// short series.
func adaptivePeriod(n int) int {
	period := n / 2
	if period < minRSIPeriod {
		period = minRSIPeriod
	}
	if period > maxRSIPeriod {
		period = maxRSIPeriod
	}
	return period
}

func lastRSI(bars []models.Bar, period int) float64 {
	values, err := indicators.NewRSI(period).Calculate(bars)
	if err != nil || len(values) == 0 {
		return neutralRSI
	}
	return values[len(values)-1]
}

func (a *Analyzer) lastATR(ticker string, bars []models.Bar, period int, price float64) float64 {
	values, err := indicators.NewATR(period).Calculate(bars)
	if err != nil || len(values) == 0 {
		a.logger.Debug().Err(err).Str("ticker", ticker).Msg("ATR fallback to 2% of price")
		return fallbackATR * price
	}
	return values[len(values)-1]
}

func latestVolumeRatio(bars []models.Bar) float64 {
	var total float64
	for _, b := range bars {
		total += b.Volume
	}
	avg := total / float64(len(bars))
	if avg == 0 {
		return 1
	}
	return bars[len(bars)-1].Volume / avg
}

// computeScore starts from a neutral base and adjusts for bias, RSI stretch
// and a volume spike, clamped to [0, 99].
func computeScore(bias models.Bias, rsi, volumeRatio float64) int {
	score := baseScore
	if bias == models.BiasBullish {
		score += biasBonus
	}
	if rsi > 70 {
		score -= rsiPenalty
	}
	if rsi < 30 && bias == models.BiasBullish {
		score += rsiBonus
	}
	if volumeRatio > 1 {
		score += volumeBonus
	}
	if score < 0 {
		score = 0
	}
	if score > maxScore {
		score = maxScore
	}
	return score
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
