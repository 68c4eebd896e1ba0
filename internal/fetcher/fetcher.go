package fetcher

import (
	"context"
	"errors"

	"finsight/internal/model"
)

// ErrSymbolNotFound indicates the provider doesn't know the ticker.
var ErrSymbolNotFound = errors.New("symbol not found")

// ErrInvalidPeriod indicates a period token outside the enumerated set.
var ErrInvalidPeriod = errors.New("invalid period token")

// Fetcher defines the interface for retrieving market data for one symbol.
// Implementations tolerate individual missing fields (zero defaults) and
// only return an error when the symbol is unknown or the provider is
// unreachable.
type Fetcher interface {
	StockInfo(ctx context.Context, symbol string) (*model.StockInfo, error)
	FinancialData(ctx context.Context, symbol string) (*model.FinancialData, error)
	HistoricalPrices(ctx context.Context, symbol string, period model.Period) ([]model.Bar, error)
	Name() string
}
