package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"finsight/internal/model"
)

// RESTFetcher implements Fetcher against a self-hosted provider speaking a
// simple REST shape. Used when data_source.base_url is configured.
type RESTFetcher struct {
	BaseURL string
	APIKey  string
	client  *rlClient
}

// NewRESTFetcher creates a fetcher with optional Bearer auth, proxy, and
// request pacing.
func NewRESTFetcher(baseURL, apiKey, proxyURL string, ratePerSec float64) *RESTFetcher {
	return &RESTFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		client:  newRLClient(proxyURL, ratePerSec),
	}
}

func (f *RESTFetcher) Name() string { return "rest" }

func (f *RESTFetcher) get(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("rest fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return ErrSymbolNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("rest fetch: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("rest decode: %w", err)
	}
	return nil
}

// StockInfo fetches /api/v1/quote. Fields the provider leaves out default
// to zero through the JSON decoder.
func (f *RESTFetcher) StockInfo(ctx context.Context, symbol string) (*model.StockInfo, error) {
	endpoint := fmt.Sprintf("%s/api/v1/quote?symbol=%s", f.BaseURL, url.QueryEscape(symbol))
	var info model.StockInfo
	if err := f.get(ctx, endpoint, &info); err != nil {
		return nil, fmt.Errorf("quote %s: %w", symbol, err)
	}
	info.Symbol = symbol
	info.UpdateTime = time.Now().Format(model.TimeFormat)
	return &info, nil
}

// FinancialData fetches /api/v1/financials.
func (f *RESTFetcher) FinancialData(ctx context.Context, symbol string) (*model.FinancialData, error) {
	endpoint := fmt.Sprintf("%s/api/v1/financials?symbol=%s", f.BaseURL, url.QueryEscape(symbol))
	var fd model.FinancialData
	if err := f.get(ctx, endpoint, &fd); err != nil {
		return nil, fmt.Errorf("financials %s: %w", symbol, err)
	}
	fd.Symbol = symbol
	fd.UpdateTime = time.Now().Format(model.TimeFormat)
	return &fd, nil
}

type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// HistoricalPrices fetches /api/v1/bars and returns them date-ascending.
func (f *RESTFetcher) HistoricalPrices(ctx context.Context, symbol string, period model.Period) ([]model.Bar, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("period %q: %w", period, ErrInvalidPeriod)
	}
	endpoint := fmt.Sprintf("%s/api/v1/bars?symbol=%s&period=%s",
		f.BaseURL, url.QueryEscape(symbol), period)
	var raw []restBar
	if err := f.get(ctx, endpoint, &raw); err != nil {
		return nil, fmt.Errorf("bars %s: %w", symbol, err)
	}
	bars := make([]model.Bar, 0, len(raw))
	for _, b := range raw {
		bars = append(bars, model.Bar{
			Date:   time.Unix(b.Timestamp, 0),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}
