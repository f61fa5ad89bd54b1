// Package marketdata provides market data provider interfaces and
// implementations.
package marketdata

import (
	"context"

	"idx-insight/internal/models"
)

// RangeHint tells the provider how much history an analysis needs.
type RangeHint string

const (
	RangeSixMonths RangeHint = "6mo"
	RangeOneYear   RangeHint = "1y"
	RangeTwoYears  RangeHint = "2y"
)

// Provider defines the market-data contract the analysis layer consumes.
// History is ordered by timestamp and deduplicated by calendar day. Every
// fundamental field is optional; an empty snapshot is a valid answer.
type Provider interface {
	FetchHistory(ctx context.Context, symbol string, rng RangeHint) ([]models.Bar, error)
	FetchQuote(ctx context.Context, symbol string) (float64, error)
	FetchFundamentals(ctx context.Context, symbol string) (*models.Fundamentals, error)
}
