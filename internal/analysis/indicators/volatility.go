package indicators

import (
	"fmt"

	"idx-insight/internal/models"
)

// ATR calculates the Average True Range using Wilder smoothing.
type ATR struct {
	period int
}

// NewATR creates a new ATR indicator.
func NewATR(period int) *ATR {
	return &ATR{period: period}
}

func (a *ATR) Name() string {
	return fmt.Sprintf("ATR_%d", a.period)
}

func (a *ATR) Period() int {
	return a.period
}

// Calculate returns len(bars) - period values; the first value corresponds to
// bars[period].
func (a *ATR) Calculate(bars []models.Bar) ([]float64, error) {
	if a.period <= 0 {
		return nil, ErrInvalidPeriod
	}
	if len(bars) < a.period+1 {
		return nil, ErrInsufficientData
	}

	n := len(bars)

	// True range needs the previous close, so there are n-1 of them.
	tr := make([]float64, n-1)
	for i := 1; i < n; i++ {
		tr[i-1] = trueRange(bars[i], bars[i-1])
	}

	result := make([]float64, n-a.period)

	// First ATR is an SMA of the initial true ranges.
	result[0] = mean(tr[:a.period])

	// Subsequent values use Wilder smoothing.
	for i := a.period; i < len(tr); i++ {
		result[i-a.period+1] = (result[i-a.period]*float64(a.period-1) + tr[i]) / float64(a.period)
	}

	return result, nil
}
