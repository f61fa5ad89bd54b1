// Package bandar classifies smart-money flow from price/OBV divergence.
//
// The classifier looks at a trailing window of bars and compares the slope of
// closing prices against the slope of on-balance volume over the same window.
// Flat price with rising OBV reads as quiet accumulation, the mirror case as
// distribution; agreeing slopes read as markup or markdown.
package bandar

import (
	"idx-insight/internal/analysis/indicators"
	"idx-insight/internal/models"
)

// WindowSize is the trailing window the classifier operates on.
const WindowSize = 20

const (
	flatPriceThreshold = 0.01 // |price change| below this counts as flat
	obvMoveThreshold   = 0.02 // OBV change needed to call accumulation/distribution
)

// Classify analyzes the trailing window of the given bars. It returns
// indicators.ErrInsufficientData when fewer than WindowSize bars are
// available; callers treat the assessment as optional, not a hard failure.
func Classify(bars []models.Bar) (*models.BandarFlowAssessment, error) {
	if len(bars) < WindowSize {
		return nil, indicators.ErrInsufficientData
	}

	window := bars[len(bars)-WindowSize:]
	closes := make([]float64, WindowSize)
	volumes := make([]float64, WindowSize)
	for i, b := range window {
		closes[i] = b.Close
		volumes[i] = b.Volume
	}

	obv, err := indicators.CalculateOBV(closes, volumes)
	if err != nil {
		return nil, err
	}

	priceSlope := (closes[WindowSize-1] - closes[0]) / float64(WindowSize)
	obvSlope := (obv[WindowSize-1] - obv[0]) / float64(WindowSize)

	var priceChangePct float64
	if closes[0] != 0 {
		priceChangePct = priceSlope / closes[0]
	}
	var obvChangePct float64
	if obv[0] != 0 {
		obvChangePct = obvSlope / abs(obv[0])
	}

	return &models.BandarFlowAssessment{
		Status:      classify(priceChangePct, obvChangePct),
		PriceSlope:  priceSlope,
		OBVSlope:    obvSlope,
		PriceSeries: closes,
		OBVSeries:   normalize(obv),
	}, nil
}

// classify applies the decision table in order; first match wins.
func classify(priceChangePct, obvChangePct float64) models.FlowStatus {
	priceFlat := abs(priceChangePct) < flatPriceThreshold
	switch {
	case priceFlat && obvChangePct > obvMoveThreshold:
		return models.FlowAccumulation
	case priceFlat && obvChangePct < -obvMoveThreshold:
		return models.FlowDistribution
	case priceChangePct > 0 && obvChangePct > 0:
		return models.FlowMarkup
	case priceChangePct < 0 && obvChangePct < 0:
		return models.FlowMarkdown
	default:
		return models.FlowNeutral
	}
}

// normalize min-max scales values to [0,100]; a flat series maps to 50.
func normalize(values []float64) []float64 {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	result := make([]float64, len(values))
	if hi == lo {
		for i := range result {
			result[i] = 50
		}
		return result
	}
	for i, v := range values {
		result[i] = (v - lo) / (hi - lo) * 100
	}
	return result
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
