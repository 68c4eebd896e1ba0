package fetcher

import (
	"context"
	"time"

	"finsight/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Errs maps a symbol to the error every call for it should return.
type MockFetcher struct {
	Info  map[string]*model.StockInfo
	Fin   map[string]*model.FinancialData
	Bars  map[string][]model.Bar
	Errs  map[string]error
	Calls []string
}

func NewMockFetcher() *MockFetcher {
	return &MockFetcher{
		Info: make(map[string]*model.StockInfo),
		Fin:  make(map[string]*model.FinancialData),
		Bars: make(map[string][]model.Bar),
		Errs: make(map[string]error),
	}
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) StockInfo(_ context.Context, symbol string) (*model.StockInfo, error) {
	m.Calls = append(m.Calls, "info:"+symbol)
	if err := m.Errs[symbol]; err != nil {
		return nil, err
	}
	if info, ok := m.Info[symbol]; ok {
		return info, nil
	}
	return &model.StockInfo{
		Symbol:       symbol,
		CompanyName:  symbol + " Inc.",
		CurrentPrice: 100,
		MarketCap:    1e9,
		UpdateTime:   time.Now().Format(model.TimeFormat),
	}, nil
}

func (m *MockFetcher) FinancialData(_ context.Context, symbol string) (*model.FinancialData, error) {
	m.Calls = append(m.Calls, "fin:"+symbol)
	if err := m.Errs[symbol]; err != nil {
		return nil, err
	}
	if fd, ok := m.Fin[symbol]; ok {
		return fd, nil
	}
	return &model.FinancialData{
		Symbol: symbol,
		IncomeStatement: &model.IncomeStatement{
			TotalRevenue: 1000, GrossProfit: 600, OperatingIncome: 300,
			NetIncome: 200, EBITDA: 350, FiscalYear: 2025,
		},
		BalanceSheet: &model.BalanceSheet{
			TotalAssets: 5000, TotalLiabilities: 2000, TotalEquity: 3000,
			CashAndEquivalents: 800, TotalDebt: 1200, FiscalYear: 2025,
		},
		CashFlow: &model.CashFlow{
			OperatingCashFlow: 250, InvestingCashFlow: -100,
			FinancingCashFlow: -50, FreeCashFlow: 150, FiscalYear: 2025,
		},
		UpdateTime: time.Now().Format(model.TimeFormat),
	}, nil
}

func (m *MockFetcher) HistoricalPrices(_ context.Context, symbol string, period model.Period) ([]model.Bar, error) {
	m.Calls = append(m.Calls, "bars:"+symbol)
	if !period.Valid() {
		return nil, ErrInvalidPeriod
	}
	if err := m.Errs[symbol]; err != nil {
		return nil, err
	}
	if bars, ok := m.Bars[symbol]; ok {
		return bars, nil
	}
	return generateMockBars(100, 30), nil
}

func generateMockBars(basePrice float64, count int) []model.Bar {
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Date:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
