package swing

import (
	"fmt"
	"strings"

	"idx-insight/internal/models"
)

// Volume-ratio bands for the summary text.
const (
	volumeHighBand = 1.5
	volumeLowBand  = 0.7
)

// buildSummary renders the deterministic summary template. It is a pure
// function of already-computed fields: trend, RSI band and volume-ratio band.
func buildSummary(symbol string, trend models.Trend, rsi, volumeRatio float64) string {
	var sb strings.Builder

	switch trend {
	case models.TrendUp:
		fmt.Fprintf(&sb, "%s is trading in an uptrend above its long-term average.", symbol)
	case models.TrendDown:
		fmt.Fprintf(&sb, "%s is trading in a downtrend below its long-term average.", symbol)
	default:
		fmt.Fprintf(&sb, "%s is moving sideways around its long-term average.", symbol)
	}

	switch {
	case rsi < oversoldRSI:
		fmt.Fprintf(&sb, " RSI at %.1f signals oversold conditions.", rsi)
	case rsi > overboughtRSI:
		fmt.Fprintf(&sb, " RSI at %.1f signals overbought conditions.", rsi)
	default:
		fmt.Fprintf(&sb, " RSI at %.1f shows neutral momentum.", rsi)
	}

	switch {
	case volumeRatio > volumeHighBand:
		fmt.Fprintf(&sb, " Volume is running %.1fx its 20-day average.", volumeRatio)
	case volumeRatio < volumeLowBand:
		fmt.Fprintf(&sb, " Volume is thin at %.1fx its 20-day average.", volumeRatio)
	default:
		sb.WriteString(" Volume is in line with its 20-day average.")
	}

	return sb.String()
}
