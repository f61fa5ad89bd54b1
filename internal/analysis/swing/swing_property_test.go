package swing

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"idx-insight/internal/models"
)

func TestProperty_ConfidenceWithinBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("confidence is 30 for NEUTRAL and within [50, 95] otherwise", prop.ForAll(
		func(rsi, price, ema200 float64) bool {
			signal, conf := classifySignal(rsi, price, ema200)
			if signal == models.SignalNeutral {
				return conf == neutralConfidence
			}
			return conf >= 50 && conf <= maxConfidence
		},
		gen.Float64Range(0, 100),
		gen.Float64Range(1, 20000),
		gen.Float64Range(1, 20000),
	))

	properties.TestingRun(t)
}

func TestProperty_PredictionRoundsToWholeRupiah(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("predicted price is a whole number", prop.ForAll(
		func(price, rsi, histogram float64) bool {
			latest := models.Bar{Open: price, High: price * 1.02, Low: price * 0.98, Close: price}
			predicted, _ := predictPrice(latest, price, rsi, histogram)
			return predicted == float64(int64(predicted))
		},
		gen.Float64Range(50, 50000),
		gen.Float64Range(0, 100),
		gen.Float64Range(-10, 10),
	))

	properties.TestingRun(t)
}
