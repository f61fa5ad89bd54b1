// Package scan orchestrates data fetching and analysis across symbols.
//
// This is the only concurrent layer: batches run under a bounded errgroup and
// every per-symbol failure becomes an error-tagged record instead of aborting
// the batch. The analysis packages underneath stay pure and synchronous.
package scan

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"idx-insight/internal/analysis/compare"
	"idx-insight/internal/analysis/intraday"
	"idx-insight/internal/analysis/swing"
	errs "idx-insight/internal/errors"
	"idx-insight/internal/marketdata"
	"idx-insight/internal/models"
)

// DefaultConcurrency is the bounded window for batch scans.
const DefaultConcurrency = 5

// Result is one symbol's outcome in a batch scan. Exactly one of Analysis and
// Err is set.
type Result struct {
	Symbol   string
	Analysis *models.AnalysisResult
	Err      error
}

// Scanner runs analyses against a market-data provider.
type Scanner struct {
	provider    marketdata.Provider
	swing       *swing.Analyzer
	intraday    *intraday.Analyzer
	logger      zerolog.Logger
	concurrency int
	rangeHint   marketdata.RangeHint
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithConcurrency bounds the batch fan-out.
func WithConcurrency(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithRangeHint sets the history range requested per symbol.
func WithRangeHint(rng marketdata.RangeHint) Option {
	return func(s *Scanner) {
		s.rangeHint = rng
	}
}

// WithClock fixes the intraday session clock; used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Scanner) {
		s.intraday = intraday.NewAnalyzerAt(s.logger, now)
	}
}

// NewScanner creates a scanner.
func NewScanner(provider marketdata.Provider, logger zerolog.Logger, opts ...Option) *Scanner {
	s := &Scanner{
		provider:    provider,
		swing:       swing.NewAnalyzer(logger),
		intraday:    intraday.NewAnalyzer(logger),
		logger:      logger,
		concurrency: DefaultConcurrency,
		rangeHint:   marketdata.RangeTwoYears,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze runs the daily swing analysis for one symbol. History failures are
// terminal; quote and fundamentals are fetched best-effort and degrade per
// the data contract.
func (s *Scanner) Analyze(ctx context.Context, symbol string) (*models.AnalysisResult, error) {
	bars, err := s.provider.FetchHistory(ctx, symbol, s.rangeHint)
	if err != nil {
		return nil, err
	}

	quote, err := s.provider.FetchQuote(ctx, symbol)
	if err != nil {
		s.logger.Warn().Err(err).Str("symbol", symbol).Msg("quote unavailable, using last close")
		quote = 0
	}

	fundamentals, err := s.provider.FetchFundamentals(ctx, symbol)
	if err != nil {
		s.logger.Warn().Err(err).Str("symbol", symbol).Msg("fundamentals unavailable")
		fundamentals = nil
	}

	result, err := s.swing.Analyze(swing.Input{
		Symbol:       symbol,
		Bars:         bars,
		Quote:        quote,
		Fundamentals: fundamentals,
	})
	if err != nil {
		return nil, errs.NewAnalysisError(symbol, "swing", err)
	}
	return result, nil
}

// Intraday runs the intraday plan for one symbol. Both proxy granularities
// come from the same daily history per the data-source contract.
func (s *Scanner) Intraday(ctx context.Context, symbol string) (*models.IntradayPlan, error) {
	bars, err := s.provider.FetchHistory(ctx, symbol, marketdata.RangeSixMonths)
	if err != nil {
		return nil, err
	}

	quote, err := s.provider.FetchQuote(ctx, symbol)
	if err != nil {
		s.logger.Warn().Err(err).Str("symbol", symbol).Msg("quote unavailable, using last close")
		quote = 0
	}

	plan, err := s.intraday.Analyze(intraday.Input{
		Ticker:  symbol,
		Bars5m:  bars,
		Bars15m: bars,
		Quote:   quote,
	})
	if err != nil {
		return nil, errs.NewAnalysisError(symbol, "intraday", err)
	}
	return plan, nil
}

// ScanAll analyzes a batch of symbols with bounded concurrency. One symbol's
// failure never aborts the batch; the call itself never returns an error.
// Results come back in input order; each worker writes only its own slot.
func (s *Scanner) ScanAll(ctx context.Context, symbols []string) []Result {
	results := make([]Result, len(symbols))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, symbol := range symbols {
		i, symbol := i, symbol
		g.Go(func() error {
			analysis, err := s.Analyze(ctx, symbol)
			results[i] = Result{Symbol: symbol, Analysis: analysis, Err: err}
			if err != nil {
				s.logger.Warn().Err(err).Str("symbol", symbol).Msg("scan item failed")
			}
			return nil
		})
	}

	// Workers never return errors, so this cannot fail.
	_ = g.Wait()

	return results
}

// Compare fetches and analyzes both symbols concurrently, then ranks them.
func (s *Scanner) Compare(ctx context.Context, symbolA, symbolB string) (*models.ComparisonVerdict, error) {
	var a, b *models.AnalysisResult

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		a, err = s.Analyze(ctx, symbolA)
		return err
	})
	g.Go(func() error {
		var err error
		b, err = s.Analyze(ctx, symbolB)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return compare.Compare(a, b), nil
}
