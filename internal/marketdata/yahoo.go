package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	errs "idx-insight/internal/errors"
	"idx-insight/internal/models"
	"idx-insight/pkg/utils"
)

const defaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooProvider implements Provider using the Yahoo Finance public API.
// IDX tickers are suffixed (BBCA -> BBCA.JK) before each request.
type YahooProvider struct {
	client  *http.Client
	baseURL string
	suffix  string
	retry   utils.RetryConfig
}

// NewYahooProvider creates a Yahoo Finance provider. suffix is appended to
// every symbol; pass ".JK" for IDX listings or "" for raw tickers.
func NewYahooProvider(suffix string) *YahooProvider {
	return &YahooProvider{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: defaultYahooBaseURL,
		suffix:  suffix,
		retry:   utils.DefaultRetryConfig(),
	}
}

func (p *YahooProvider) yahooSymbol(symbol string) string {
	return symbol + p.suffix
}

// yahooChart is the response structure of the Yahoo Finance chart API.
// Price points may be null, so quote fields are pointer slices.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// yahooValue is Yahoo's {raw, fmt} wrapper around optional numbers.
type yahooValue struct {
	Raw *float64 `json:"raw"`
}

type yahooQuoteSummary struct {
	QuoteSummary struct {
		Result []struct {
			SummaryDetail struct {
				TrailingPE    yahooValue `json:"trailingPE"`
				MarketCap     yahooValue `json:"marketCap"`
				DividendYield yahooValue `json:"dividendYield"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics struct {
				PriceToBook yahooValue `json:"priceToBook"`
				TrailingEPS yahooValue `json:"trailingEps"`
			} `json:"defaultKeyStatistics"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// FetchHistory returns daily bars over the requested range, ascending and
// deduplicated by calendar day (the last bar of a day wins).
func (p *YahooProvider) FetchHistory(ctx context.Context, symbol string, rng RangeHint) ([]models.Bar, error) {
	if rng == "" {
		rng = RangeTwoYears
	}

	chart, err := utils.RetryWithResult(ctx, p.retry, func() (*yahooChart, error) {
		return p.fetchChart(ctx, symbol, "1d", string(rng))
	})
	if err != nil {
		return nil, errs.NewDataError("history", symbol, err)
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote
	if len(quote) == 0 {
		return nil, errs.NewDataError("history", symbol, errs.ErrNoData)
	}
	q := quote[0]

	byDay := make(map[string]models.Bar)
	for i, ts := range result.Timestamp {
		if i >= len(q.Close) || q.Close[i] == nil {
			continue
		}
		bar := models.Bar{
			Timestamp: time.Unix(ts, 0),
			Open:      deref(at(q.Open, i)),
			High:      deref(at(q.High, i)),
			Low:       deref(at(q.Low, i)),
			Close:     *q.Close[i],
			Volume:    deref(at(q.Volume, i)),
		}
		byDay[bar.Timestamp.Format("2006-01-02")] = bar
	}
	if len(byDay) == 0 {
		return nil, errs.NewDataError("history", symbol, errs.ErrNoData)
	}

	bars := make([]models.Bar, 0, len(byDay))
	for _, b := range byDay {
		bars = append(bars, b)
	}
	sort.Slice(bars, func(i, j int) bool {
		return bars[i].Timestamp.Before(bars[j].Timestamp)
	})

	return bars, nil
}

// FetchQuote returns the latest traded price from the chart metadata.
func (p *YahooProvider) FetchQuote(ctx context.Context, symbol string) (float64, error) {
	chart, err := utils.RetryWithResult(ctx, p.retry, func() (*yahooChart, error) {
		return p.fetchChart(ctx, symbol, "1d", "1d")
	})
	if err != nil {
		return 0, errs.NewDataError("quote", symbol, err)
	}

	price := chart.Chart.Result[0].Meta.RegularMarketPrice
	if price <= 0 {
		return 0, errs.NewDataError("quote", symbol, errs.ErrNoData)
	}
	return price, nil
}

// FetchFundamentals returns the fundamental snapshot. Every field is
// optional; a response without the requested modules yields an empty
// snapshot, not an error.
func (p *YahooProvider) FetchFundamentals(ctx context.Context, symbol string) (*models.Fundamentals, error) {
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=summaryDetail,defaultKeyStatistics",
		p.baseURL, url.PathEscape(p.yahooSymbol(symbol)))

	summary, err := utils.RetryWithResult(ctx, p.retry, func() (*yahooQuoteSummary, error) {
		var out yahooQuoteSummary
		if err := p.getJSON(ctx, u, &out); err != nil {
			return nil, err
		}
		if out.QuoteSummary.Error != nil {
			return nil, fmt.Errorf("yahoo api error: %s", out.QuoteSummary.Error.Description)
		}
		return &out, nil
	})
	if err != nil {
		return nil, errs.NewDataError("fundamentals", symbol, err)
	}

	if len(summary.QuoteSummary.Result) == 0 {
		return &models.Fundamentals{}, nil
	}

	r := summary.QuoteSummary.Result[0]
	return &models.Fundamentals{
		MarketCap:     r.SummaryDetail.MarketCap.Raw,
		TrailingPE:    r.SummaryDetail.TrailingPE.Raw,
		DividendYield: r.SummaryDetail.DividendYield.Raw,
		PriceToBook:   r.DefaultKeyStatistics.PriceToBook.Raw,
		TrailingEPS:   r.DefaultKeyStatistics.TrailingEPS.Raw,
	}, nil
}

func (p *YahooProvider) fetchChart(ctx context.Context, symbol, interval, rng string) (*yahooChart, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		p.baseURL, url.PathEscape(p.yahooSymbol(symbol)), interval, rng)

	var chart yahooChart
	if err := p.getJSON(ctx, u, &chart); err != nil {
		return nil, err
	}
	if chart.Chart.Error != nil {
		if chart.Chart.Error.Code == "Not Found" {
			return nil, errs.ErrSymbolNotFound
		}
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, errs.ErrNoData
	}
	return &chart, nil
}

func (p *YahooProvider) getJSON(ctx context.Context, u string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return errs.ErrSymbolNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("yahoo: status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("yahoo decode: %w", err)
	}
	return nil
}

func at(values []*float64, i int) *float64 {
	if i < len(values) {
		return values[i]
	}
	return nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
