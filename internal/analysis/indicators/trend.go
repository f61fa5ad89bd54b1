package indicators

import (
	"fmt"

	"idx-insight/internal/models"
)

// SMA calculates Simple Moving Average.
type SMA struct {
	period int
}

// NewSMA creates a new SMA indicator.
func NewSMA(period int) *SMA {
	return &SMA{period: period}
}

func (s *SMA) Name() string {
	return fmt.Sprintf("SMA_%d", s.period)
}

func (s *SMA) Period() int {
	return s.period
}

// Calculate returns len(bars) - period + 1 values.
func (s *SMA) Calculate(bars []models.Bar) ([]float64, error) {
	if s.period <= 0 {
		return nil, ErrInvalidPeriod
	}
	if len(bars) < s.period {
		return nil, ErrInsufficientData
	}

	closes := closePrices(bars)
	result := make([]float64, len(bars)-s.period+1)
	for i := s.period - 1; i < len(bars); i++ {
		result[i-s.period+1] = mean(closes[i-s.period+1 : i+1])
	}
	return result, nil
}

// EMA calculates Exponential Moving Average, seeded with the SMA of the first
// period values.
type EMA struct {
	period int
}

// NewEMA creates a new EMA indicator.
func NewEMA(period int) *EMA {
	return &EMA{period: period}
}

func (e *EMA) Name() string {
	return fmt.Sprintf("EMA_%d", e.period)
}

func (e *EMA) Period() int {
	return e.period
}

// Calculate returns len(bars) - period + 1 values.
func (e *EMA) Calculate(bars []models.Bar) ([]float64, error) {
	if e.period <= 0 {
		return nil, ErrInvalidPeriod
	}
	if len(bars) < e.period {
		return nil, ErrInsufficientData
	}
	return CalculateEMA(closePrices(bars), e.period), nil
}

// CalculateEMA calculates EMA on raw values (helper for other indicators).
// Returns len(values) - period + 1 values, or nil on invalid input.
func CalculateEMA(values []float64, period int) []float64 {
	if period <= 0 || len(values) < period {
		return nil
	}

	result := make([]float64, len(values)-period+1)
	multiplier := 2.0 / float64(period+1)

	// Seed with SMA
	result[0] = mean(values[:period])

	for i := period; i < len(values); i++ {
		prev := result[i-period]
		result[i-period+1] = (values[i]-prev)*multiplier + prev
	}

	return result
}

// MACDResult holds the three aligned MACD series. All series have
// len(bars) - slowPeriod + 1 values; Signal and Histogram positions before
// the signal-line warm-up default to 0.
type MACDResult struct {
	MACD      []float64
	Signal    []float64
	Histogram []float64
}

// MACD calculates Moving Average Convergence Divergence.
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD creates a new MACD indicator; the engine uses (12, 26, 9).
func NewMACD(fast, slow, signal int) *MACD {
	return &MACD{
		fastPeriod:   fast,
		slowPeriod:   slow,
		signalPeriod: signal,
	}
}

func (m *MACD) Name() string {
	return fmt.Sprintf("MACD_%d_%d_%d", m.fastPeriod, m.slowPeriod, m.signalPeriod)
}

func (m *MACD) Period() int {
	return m.slowPeriod
}

func (m *MACD) Calculate(bars []models.Bar) (*MACDResult, error) {
	if m.fastPeriod <= 0 || m.slowPeriod <= 0 || m.signalPeriod <= 0 {
		return nil, ErrInvalidPeriod
	}
	if m.fastPeriod >= m.slowPeriod {
		return nil, ErrInvalidPeriod
	}
	if len(bars) < m.slowPeriod {
		return nil, ErrInsufficientData
	}

	closes := closePrices(bars)
	fastEMA := CalculateEMA(closes, m.fastPeriod)
	slowEMA := CalculateEMA(closes, m.slowPeriod)

	// MACD line = fast EMA - slow EMA, defined from the slow warm-up onward.
	offset := m.slowPeriod - m.fastPeriod
	macdLine := make([]float64, len(slowEMA))
	for i := range slowEMA {
		macdLine[i] = fastEMA[i+offset] - slowEMA[i]
	}

	// Signal line = EMA of the MACD line; positions before its warm-up stay 0.
	signalLine := make([]float64, len(macdLine))
	histogram := make([]float64, len(macdLine))
	if signalEMA := CalculateEMA(macdLine, m.signalPeriod); signalEMA != nil {
		for i, v := range signalEMA {
			idx := i + m.signalPeriod - 1
			signalLine[idx] = v
			histogram[idx] = macdLine[idx] - v
		}
	}

	return &MACDResult{
		MACD:      macdLine,
		Signal:    signalLine,
		Histogram: histogram,
	}, nil
}
