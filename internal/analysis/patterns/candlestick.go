// Package patterns provides candlestick pattern detection.
package patterns

import (
	"idx-insight/internal/models"
)

// Detector classifies the most recent bars into candlestick pattern tags.
type Detector struct {
	engulfBodyRatio float64 // current body vs previous body for engulfing
	smallBodyRatio  float64 // body vs range for hammer/shooting star
	dojiBodyRatio   float64 // body vs range for doji
	shadowRatio     float64 // dominant shadow vs body
	counterShadow   float64 // opposite shadow vs body
	window          int
}

// NewDetector creates a detector with the engine's calibrated thresholds.
func NewDetector() *Detector {
	return &Detector{
		engulfBodyRatio: 1.1,
		smallBodyRatio:  0.3,
		dojiBodyRatio:   0.1,
		shadowRatio:     2.0,
		counterShadow:   0.5,
		window:          5,
	}
}

// Detect inspects the last few bars and returns the matched pattern tags in
// fixed precedence order: bullish engulfing, bearish engulfing, hammer,
// shooting star, doji. Multiple tags may fire. Fewer than two bars yields an
// empty result.
func (d *Detector) Detect(bars []models.Bar) []models.CandlePattern {
	if len(bars) < 2 {
		return nil
	}
	if len(bars) > d.window {
		bars = bars[len(bars)-d.window:]
	}

	prev := bars[len(bars)-2]
	curr := bars[len(bars)-1]

	var found []models.CandlePattern

	if d.isBullishEngulfing(prev, curr) {
		found = append(found, models.CandlePattern{Name: models.PatternBullishEngulfing, Bullish: true})
	}
	if d.isBearishEngulfing(prev, curr) {
		found = append(found, models.CandlePattern{Name: models.PatternBearishEngulfing, Bullish: false})
	}

	// A zero-range bar would tag spuriously on the ratio checks below.
	if candleRange(curr) > 0 {
		if d.isHammer(curr) {
			found = append(found, models.CandlePattern{Name: models.PatternHammer, Bullish: true})
		}
		if d.isShootingStar(curr) {
			found = append(found, models.CandlePattern{Name: models.PatternShootingStar, Bullish: false})
		}
		if d.isDoji(curr) {
			found = append(found, models.CandlePattern{Name: models.PatternDoji, Bullish: false})
		}
	}

	return found
}

func (d *Detector) isBullishEngulfing(prev, curr models.Bar) bool {
	return isBearish(prev) && isBullish(curr) &&
		curr.Open < prev.Close && curr.Close > prev.Open &&
		bodySize(curr) > d.engulfBodyRatio*bodySize(prev)
}

func (d *Detector) isBearishEngulfing(prev, curr models.Bar) bool {
	return isBullish(prev) && isBearish(curr) &&
		curr.Open > prev.Close && curr.Close < prev.Open &&
		bodySize(curr) > d.engulfBodyRatio*bodySize(prev)
}

func (d *Detector) isHammer(c models.Bar) bool {
	body := bodySize(c)
	return body < d.smallBodyRatio*candleRange(c) &&
		lowerShadow(c) > d.shadowRatio*body &&
		upperShadow(c) < d.counterShadow*body
}

func (d *Detector) isShootingStar(c models.Bar) bool {
	body := bodySize(c)
	return body < d.smallBodyRatio*candleRange(c) &&
		upperShadow(c) > d.shadowRatio*body &&
		lowerShadow(c) < d.counterShadow*body &&
		isBearish(c)
}

func (d *Detector) isDoji(c models.Bar) bool {
	return bodySize(c) < d.dojiBodyRatio*candleRange(c)
}

// Helper functions for candle geometry

func bodySize(c models.Bar) float64 {
	return abs(c.Close - c.Open)
}

func candleRange(c models.Bar) float64 {
	return c.High - c.Low
}

func upperShadow(c models.Bar) float64 {
	if c.Close > c.Open {
		return c.High - c.Close
	}
	return c.High - c.Open
}

func lowerShadow(c models.Bar) float64 {
	if c.Close < c.Open {
		return c.Close - c.Low
	}
	return c.Open - c.Low
}

func isBullish(c models.Bar) bool {
	return c.Close > c.Open
}

func isBearish(c models.Bar) bool {
	return c.Close < c.Open
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
