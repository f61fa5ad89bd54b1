// Package swing produces the daily trading assessment for one symbol.
package swing

import (
	"math"

	"github.com/rs/zerolog"

	"idx-insight/internal/analysis/bandar"
	"idx-insight/internal/analysis/indicators"
	"idx-insight/internal/analysis/patterns"
	"idx-insight/internal/models"
)

const (
	minBars      = 200 // EMA200 warm-up
	rangeWindow  = 250 // trading days in the 52-week window
	volumeWindow = 20

	maxConfidence     = 95
	neutralConfidence = 30

	oversoldRSI   = 30
	overboughtRSI = 70
)

// Analyzer composes the indicator library, pattern detector and bandar-flow
// classifier into one AnalysisResult per call. It is state-free; the struct
// only carries collaborators.
type Analyzer struct {
	detector *patterns.Detector
	logger   zerolog.Logger
}

// NewAnalyzer creates a swing analyzer.
func NewAnalyzer(logger zerolog.Logger) *Analyzer {
	return &Analyzer{
		detector: patterns.NewDetector(),
		logger:   logger,
	}
}

// Input carries everything one analysis call needs. Quote and Fundamentals
// are optional: a non-positive quote falls back to the last close, absent
// fundamentals are passed through as nil.
type Input struct {
	Symbol       string
	Bars         []models.Bar
	Quote        float64
	Fundamentals *models.Fundamentals
}

// Analyze computes the daily assessment. It fails fast with
// indicators.ErrInsufficientData when fewer than 200 bars are supplied;
// bandar flow and fundamentals are best-effort and never abort the result.
func (a *Analyzer) Analyze(in Input) (*models.AnalysisResult, error) {
	bars := in.Bars
	if len(bars) < minBars {
		return nil, indicators.ErrInsufficientData
	}

	rsiSeries, err := indicators.NewRSI(14).Calculate(bars)
	if err != nil {
		return nil, err
	}
	rsi := rsiSeries[len(rsiSeries)-1]

	macdRes, err := indicators.NewMACD(12, 26, 9).Calculate(bars)
	if err != nil {
		return nil, err
	}
	macdLine := macdRes.MACD[len(macdRes.MACD)-1]
	histogram := macdRes.Histogram[len(macdRes.Histogram)-1]

	ema200Series, err := indicators.NewEMA(200).Calculate(bars)
	if err != nil {
		return nil, err
	}
	ema200 := ema200Series[len(ema200Series)-1]

	ema50Series, err := indicators.NewEMA(50).Calculate(bars)
	if err != nil {
		return nil, err
	}
	ema50 := ema50Series[len(ema50Series)-1]

	latest := bars[len(bars)-1]
	price := in.Quote
	if price <= 0 {
		price = latest.Close
	}

	low52, high52, pos52 := yearRange(bars, price)
	volumeRatio := volumeRatio(bars)
	trend := classifyTrend(price, ema50, ema200)
	signal, confidence := classifySignal(rsi, price, ema200)
	predicted, predictedPct := predictPrice(latest, price, rsi, histogram)

	result := &models.AnalysisResult{
		Symbol:           in.Symbol,
		Price:            price,
		RSI:              rsi,
		MACD:             macdLine,
		MACDHistogram:    histogram,
		Signal:           signal,
		ConfidenceScore:  confidence,
		PredictedPrice:   predicted,
		PredictedPercent: predictedPct,
		Low52:            low52,
		High52:           high52,
		Position52:       pos52,
		VolumeRatio:      volumeRatio,
		Trend:            trend,
		Patterns:         a.detector.Detect(bars),
		Fundamentals:     in.Fundamentals,
	}
	result.Summary = buildSummary(in.Symbol, trend, rsi, volumeRatio)

	// Bandar flow is best-effort: too little history leaves the field absent.
	flow, err := bandar.Classify(bars)
	if err != nil {
		a.logger.Debug().Err(err).Str("symbol", in.Symbol).Msg("bandar flow not computed")
	} else {
		result.BandarFlow = flow
	}

	return result, nil
}

// yearRange computes the 52-week low/high over the last rangeWindow bars and
// the price's position within that range as a percentage.
func yearRange(bars []models.Bar, price float64) (low, high, position float64) {
	window := bars
	if len(window) > rangeWindow {
		window = window[len(window)-rangeWindow:]
	}

	low, high = window[0].Low, window[0].High
	for _, b := range window[1:] {
		if b.Low < low {
			low = b.Low
		}
		if b.High > high {
			high = b.High
		}
	}

	if high == low {
		return low, high, 50
	}
	position = (price - low) / (high - low) * 100
	if position < 0 {
		position = 0
	}
	if position > 100 {
		position = 100
	}
	return low, high, position
}

// volumeRatio compares the latest volume against the mean of the trailing
// window; a zero mean degrades to 1 rather than dividing by zero.
func volumeRatio(bars []models.Bar) float64 {
	window := bars
	if len(window) > volumeWindow {
		window = window[len(window)-volumeWindow:]
	}

	var total float64
	for _, b := range window {
		total += b.Volume
	}
	avg := total / float64(len(window))
	if avg == 0 {
		return 1
	}
	return bars[len(bars)-1].Volume / avg
}

func classifyTrend(price, ema50, ema200 float64) models.Trend {
	switch {
	case price > ema200 && ema50 > ema200:
		return models.TrendUp
	case price < ema200 && ema50 < ema200:
		return models.TrendDown
	default:
		return models.TrendSideways
	}
}

// classifySignal applies the calibrated signal rules. BUY requires oversold
// RSI above the long-term average; SELL requires overbought RSI. Confidence
// is capped at 95 and defaults to 30 for NEUTRAL.
func classifySignal(rsi, price, ema200 float64) (models.Signal, int) {
	if rsi < oversoldRSI && price > ema200 {
		rsiStrength := (oversoldRSI - rsi) / oversoldRSI
		priceStrength := (price - ema200) / ema200
		if priceStrength > 0.1 {
			priceStrength = 0.1
		}
		priceStrength *= 10
		confidence := 50 + 30*rsiStrength + 20*priceStrength
		if confidence > maxConfidence {
			confidence = maxConfidence
		}
		return models.SignalBuy, int(math.Round(confidence))
	}

	if rsi > overboughtRSI {
		rsiStrength := (rsi - overboughtRSI) / 30
		confidence := 50 + 30*rsiStrength
		if confidence > maxConfidence {
			confidence = maxConfidence
		}
		return models.SignalSell, int(math.Round(confidence))
	}

	return models.SignalNeutral, neutralConfidence
}

// predictPrice projects the next-period price from the latest bar's
// volatility, scaled by how stretched RSI is, and rounds to whole rupiah.
func predictPrice(latest models.Bar, price, rsi, histogram float64) (predicted, percent float64) {
	volatility := 0.02
	if latest.Close > 0 {
		volatility = (latest.High - latest.Low) / latest.Close
	}

	switch {
	case rsi < oversoldRSI:
		predicted = price * (1 + 0.8*volatility)
	case rsi > overboughtRSI:
		predicted = price * (1 - 0.8*volatility)
	case histogram > 0:
		predicted = price * (1 + 0.3*volatility)
	default:
		predicted = price * (1 - 0.3*volatility)
	}

	predicted = math.Round(predicted)
	if price != 0 {
		percent = (predicted - price) / price * 100
	}
	return predicted, percent
}
