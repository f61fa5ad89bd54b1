package indicators

import (
	"idx-insight/internal/models"
)

// VWAP calculates the cumulative whole-series Volume Weighted Average Price.
type VWAP struct{}

// NewVWAP creates a new VWAP indicator.
func NewVWAP() *VWAP {
	return &VWAP{}
}

func (v *VWAP) Name() string {
	return "VWAP"
}

func (v *VWAP) Period() int {
	return 1
}

// Calculate returns one value per bar. While the cumulative volume is zero the
// typical price is emitted unchanged, so zero-volume input never produces
// NaN or Inf.
func (v *VWAP) Calculate(bars []models.Bar) ([]float64, error) {
	if len(bars) == 0 {
		return nil, ErrInsufficientData
	}

	result := make([]float64, len(bars))
	var cumulativeTPV float64
	var cumulativeVol float64

	for i, b := range bars {
		tp := typicalPrice(b)
		cumulativeTPV += tp * b.Volume
		cumulativeVol += b.Volume

		if cumulativeVol != 0 {
			result[i] = cumulativeTPV / cumulativeVol
		} else {
			result[i] = tp
		}
	}

	return result, nil
}

// SessionVWAP calculates VWAP with cumulative sums resetting at every local
// calendar-day boundary; the first bar of each day reseeds at its own typical
// price.
type SessionVWAP struct{}

// NewSessionVWAP creates a new session VWAP indicator.
func NewSessionVWAP() *SessionVWAP {
	return &SessionVWAP{}
}

func (s *SessionVWAP) Name() string {
	return "SessionVWAP"
}

func (s *SessionVWAP) Period() int {
	return 1
}

func (s *SessionVWAP) Calculate(bars []models.Bar) ([]float64, error) {
	if len(bars) == 0 {
		return nil, ErrInsufficientData
	}

	result := make([]float64, len(bars))
	var cumulativeTPV float64
	var cumulativeVol float64

	for i, b := range bars {
		if i > 0 && !sameDay(bars[i-1].Timestamp, b.Timestamp) {
			cumulativeTPV = 0
			cumulativeVol = 0
		}

		tp := typicalPrice(b)
		cumulativeTPV += tp * b.Volume
		cumulativeVol += b.Volume

		if cumulativeVol != 0 {
			result[i] = cumulativeTPV / cumulativeVol
		} else {
			result[i] = tp
		}
	}

	return result, nil
}

// OBV calculates On-Balance Volume.
type OBV struct{}

// NewOBV creates a new OBV indicator.
func NewOBV() *OBV {
	return &OBV{}
}

func (o *OBV) Name() string {
	return "OBV"
}

func (o *OBV) Period() int {
	return 1
}

func (o *OBV) Calculate(bars []models.Bar) ([]float64, error) {
	return CalculateOBV(closePrices(bars), barVolumes(bars))
}

// CalculateOBV calculates OBV on raw close/volume slices. obv[0] equals
// volume[0]; each later step adds, subtracts or repeats per the close
// comparison.
func CalculateOBV(closes, volumes []float64) ([]float64, error) {
	if len(closes) != len(volumes) {
		return nil, ErrLengthMismatch
	}
	if len(closes) == 0 {
		return nil, ErrInsufficientData
	}

	result := make([]float64, len(closes))
	result[0] = volumes[0]

	for i := 1; i < len(closes); i++ {
		switch {
		case closes[i] > closes[i-1]:
			result[i] = result[i-1] + volumes[i]
		case closes[i] < closes[i-1]:
			result[i] = result[i-1] - volumes[i]
		default:
			result[i] = result[i-1]
		}
	}

	return result, nil
}
