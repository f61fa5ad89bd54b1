// Package models provides domain models for the analysis engine.
package models

import (
	"time"
)

// Signal represents a discrete trading signal.
type Signal string

const (
	SignalBuy     Signal = "BUY"
	SignalSell    Signal = "SELL"
	SignalNeutral Signal = "NEUTRAL"
)

// Trend represents the prevailing price trend.
type Trend string

const (
	TrendUp       Trend = "Uptrend"
	TrendDown     Trend = "Downtrend"
	TrendSideways Trend = "Sideways"
)

// Bias represents the intraday directional bias.
type Bias string

const (
	BiasBullish  Bias = "BULLISH"
	BiasBearish  Bias = "BEARISH"
	BiasSideways Bias = "SIDEWAYS"
)

// FlowStatus classifies smart-money ("bandar") activity.
type FlowStatus string

const (
	FlowAccumulation FlowStatus = "AKUMULASI"
	FlowDistribution FlowStatus = "DISTRIBUSI"
	FlowMarkup       FlowStatus = "MARKUP"
	FlowMarkdown     FlowStatus = "MARKDOWN"
	FlowNeutral      FlowStatus = "NEUTRAL"
)

// PatternName identifies a candlestick pattern.
type PatternName string

const (
	PatternBullishEngulfing PatternName = "BullishEngulfing"
	PatternBearishEngulfing PatternName = "BearishEngulfing"
	PatternHammer           PatternName = "Hammer"
	PatternShootingStar     PatternName = "ShootingStar"
	PatternDoji             PatternName = "Doji"
)

// Winner identifies which side of a comparison won a metric.
type Winner string

const (
	WinnerA   Winner = "A"
	WinnerB   Winner = "B"
	WinnerTie Winner = "TIE"
)

// Bar represents OHLCV data for a time period. Bar sequences are ordered by
// non-decreasing timestamp; OHLC consistency is assumed, not enforced.
type Bar struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// Fundamentals holds an optional fundamental snapshot. Every field may be
// absent; absence must never abort an analysis.
type Fundamentals struct {
	MarketCap     *float64
	TrailingPE    *float64
	PriceToBook   *float64
	TrailingEPS   *float64
	DividendYield *float64
}

// CandlePattern is a detected candlestick pattern tag.
type CandlePattern struct {
	Name    PatternName
	Bullish bool
}

// BandarFlowAssessment is the result of price/OBV divergence analysis over a
// trailing window, with chart-ready series for rendering.
type BandarFlowAssessment struct {
	Status      FlowStatus
	PriceSlope  float64
	OBVSlope    float64
	PriceSeries []float64 // raw closes over the window
	OBVSeries   []float64 // OBV min-max normalized to [0,100]
}

// AnalysisResult is the daily/swing assessment for one symbol. It is created
// once per analysis call and never mutated afterward.
type AnalysisResult struct {
	Symbol           string
	Price            float64
	RSI              float64
	MACD             float64
	MACDHistogram    float64
	Signal           Signal
	ConfidenceScore  int // 0-100
	PredictedPrice   float64
	PredictedPercent float64
	Low52            float64
	High52           float64
	Position52       float64 // percent of the 52-week range, 0-100
	VolumeRatio      float64
	Trend            Trend
	Summary          string
	BandarFlow       *BandarFlowAssessment // best-effort, may be nil
	Patterns         []CandlePattern
	Fundamentals     *Fundamentals // pass-through, may be nil
}

// IntradayPlan is the intraday bias/score/trading-plan result.
type IntradayPlan struct {
	Ticker           string
	Bias             Bias
	Score            int // 0-99
	Entry            float64
	StopLoss         float64
	Target1          float64
	Target2          float64
	OpeningRangeHigh float64
	OpeningRangeLow  float64
	CurrentVWAP      float64
	VWAPSeries       []float64
	Reasoning        string
}

// ComparisonVerdict ranks two analysis results across four metrics and
// carries a narrative verdict.
type ComparisonVerdict struct {
	A             *AnalysisResult
	B             *AnalysisResult
	Valuation     Winner
	Momentum      Winner
	Profitability Winner
	Bandarmology  Winner
	Narrative     string
}
