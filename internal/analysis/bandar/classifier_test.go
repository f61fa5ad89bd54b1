package bandar

import (
	"errors"
	"testing"
	"time"

	"idx-insight/internal/analysis/indicators"
	"idx-insight/internal/models"
)

func windowBars(closes, volumes []float64) []models.Bar {
	base := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)
	bars := make([]models.Bar, len(closes))
	for i := range closes {
		bars[i] = models.Bar{
			Timestamp: base.AddDate(0, 0, i),
			Open:      closes[i],
			High:      closes[i],
			Low:       closes[i],
			Close:     closes[i],
			Volume:    volumes[i],
		}
	}
	return bars
}

func TestClassify_InsufficientData(t *testing.T) {
	bars := windowBars(make([]float64, 10), make([]float64, 10))
	_, err := Classify(bars)
	if !errors.Is(err, indicators.ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}

func TestClassify_Accumulation(t *testing.T) {
	// Price oscillates around 100 (flat) while up days carry ten times the
	// volume of down days, so OBV climbs.
	closes := make([]float64, WindowSize)
	volumes := make([]float64, WindowSize)
	for i := range closes {
		if i%2 == 0 {
			closes[i] = 100
			volumes[i] = 100
		} else {
			closes[i] = 101
			volumes[i] = 1000
		}
	}

	got, err := Classify(windowBars(closes, volumes))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != models.FlowAccumulation {
		t.Errorf("Status = %s, want %s", got.Status, models.FlowAccumulation)
	}
	if got.OBVSlope <= 0 {
		t.Errorf("OBVSlope = %v, want > 0", got.OBVSlope)
	}
}

func TestClassify_Distribution(t *testing.T) {
	// Mirror case: heavy volume on down days drags OBV while price stays flat.
	closes := make([]float64, WindowSize)
	volumes := make([]float64, WindowSize)
	for i := range closes {
		if i%2 == 0 {
			closes[i] = 101
			volumes[i] = 100
		} else {
			closes[i] = 100
			volumes[i] = 1000
		}
	}

	got, err := Classify(windowBars(closes, volumes))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != models.FlowDistribution {
		t.Errorf("Status = %s, want %s", got.Status, models.FlowDistribution)
	}
}

func TestClassify_Markup(t *testing.T) {
	closes := make([]float64, WindowSize)
	volumes := make([]float64, WindowSize)
	for i := range closes {
		closes[i] = 100 + float64(i)*5
		volumes[i] = 1000
	}

	got, err := Classify(windowBars(closes, volumes))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != models.FlowMarkup {
		t.Errorf("Status = %s, want %s", got.Status, models.FlowMarkup)
	}
	if got.PriceSlope <= 0 {
		t.Errorf("PriceSlope = %v, want > 0", got.PriceSlope)
	}
	for i, v := range got.OBVSeries {
		if v < 0 || v > 100 {
			t.Errorf("OBVSeries[%d] = %v, outside [0, 100]", i, v)
		}
	}
}

func TestClassify_Markdown(t *testing.T) {
	closes := make([]float64, WindowSize)
	volumes := make([]float64, WindowSize)
	for i := range closes {
		closes[i] = 200 - float64(i)*5
		volumes[i] = 1000
	}

	got, err := Classify(windowBars(closes, volumes))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != models.FlowMarkdown {
		t.Errorf("Status = %s, want %s", got.Status, models.FlowMarkdown)
	}
}

func TestClassify_NeutralFlatSeries(t *testing.T) {
	closes := make([]float64, WindowSize)
	volumes := make([]float64, WindowSize)
	for i := range closes {
		closes[i] = 100
		volumes[i] = 1000
	}

	got, err := Classify(windowBars(closes, volumes))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != models.FlowNeutral {
		t.Errorf("Status = %s, want %s", got.Status, models.FlowNeutral)
	}
	// OBV never moves, so the normalized series sits at the midpoint.
	for i, v := range got.OBVSeries {
		if v != 50 {
			t.Errorf("OBVSeries[%d] = %v, want 50", i, v)
		}
	}
}

func TestClassify_UsesTrailingWindowOnly(t *testing.T) {
	// A long markdown followed by a 20-bar markup must classify as markup.
	closes := make([]float64, 0, 60)
	volumes := make([]float64, 0, 60)
	for i := 0; i < 40; i++ {
		closes = append(closes, 500-float64(i)*5)
		volumes = append(volumes, 1000)
	}
	for i := 0; i < WindowSize; i++ {
		closes = append(closes, 300+float64(i)*5)
		volumes = append(volumes, 1000)
	}

	got, err := Classify(windowBars(closes, volumes))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != models.FlowMarkup {
		t.Errorf("Status = %s, want %s", got.Status, models.FlowMarkup)
	}
	if len(got.PriceSeries) != WindowSize {
		t.Errorf("len(PriceSeries) = %d, want %d", len(got.PriceSeries), WindowSize)
	}
}
