package intraday

import (
	"strings"

	"idx-insight/internal/models"
)

// Volume-ratio bands for the reasoning text.
const (
	volumeHighBand = 1.3
	volumeLowBand  = 0.7
)

// buildReasoning assembles the plan rationale from a fixed decision table:
// VWAP side, volume band, opening-range breakout side, and the bias/breakout
// combination. No free text is generated.
func buildReasoning(price, vwap, volumeRatio, orHigh, orLow float64, bias models.Bias) string {
	var parts []string

	if price > vwap {
		parts = append(parts, "Price is holding above session VWAP.")
	} else if price < vwap {
		parts = append(parts, "Price is trading below session VWAP.")
	} else {
		parts = append(parts, "Price is sitting on session VWAP.")
	}

	switch {
	case volumeRatio > volumeHighBand:
		parts = append(parts, "Volume is elevated versus the session average.")
	case volumeRatio < volumeLowBand:
		parts = append(parts, "Volume is light versus the session average.")
	default:
		parts = append(parts, "Volume is near the session average.")
	}

	brokeAbove := price > orHigh
	brokeBelow := price < orLow
	switch {
	case brokeAbove:
		parts = append(parts, "The opening range has broken to the upside.")
	case brokeBelow:
		parts = append(parts, "The opening range has broken to the downside.")
	default:
		parts = append(parts, "Price remains inside the opening range.")
	}

	switch {
	case bias == models.BiasBullish && brokeAbove:
		parts = append(parts, "Momentum favors long entries above the range high.")
	case bias == models.BiasBearish && brokeBelow:
		parts = append(parts, "Momentum favors short entries below the range low.")
	default:
		parts = append(parts, "Wait for a decisive break before committing.")
	}

	return strings.Join(parts, " ")
}
