package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"finsight/internal/model"
)

const chartBody = `{"chart":{"result":[{
	"timestamp":[1735689600,1735603200,1735776000],
	"indicators":{"quote":[{
		"open":[101.0,100.0,null],
		"high":[103.0,102.0,null],
		"low":[100.5,99.0,null],
		"close":[102.5,101.5,null],
		"volume":[1500000,1200000,null]
	}]}
}],"error":null}}`

const summaryQuoteBody = `{"quoteSummary":{"result":[{
	"price":{
		"symbol":"PDD","longName":"PDD Holdings Inc.","shortName":"PDD",
		"regularMarketPrice":{"raw":142.3},
		"regularMarketPreviousClose":{"raw":140.1},
		"regularMarketVolume":{"raw":5200000},
		"regularMarketDayHigh":{"raw":143.9},
		"regularMarketDayLow":{"raw":139.8},
		"marketCap":{"raw":198000000000}
	},
	"summaryDetail":{
		"averageVolume":{"raw":6100000},
		"fiftyTwoWeekHigh":{"raw":164.69},
		"fiftyTwoWeekLow":{"raw":87.11},
		"trailingPE":{"raw":12.4},
		"beta":{"raw":0.85}
	},
	"defaultKeyStatistics":{"priceToBook":{"raw":3.1}}
}],"error":null}}`

const summaryFinBody = `{"quoteSummary":{"result":[{
	"incomeStatementHistory":{"incomeStatementHistory":[{
		"endDate":{"raw":1735603200},
		"totalRevenue":{"raw":2000},
		"grossProfit":{"raw":1200},
		"operatingIncome":{"raw":700},
		"netIncome":{"raw":500},
		"ebitda":{"raw":800}
	}]},
	"balanceSheetHistory":{"balanceSheetStatements":[{
		"endDate":{"raw":1735603200},
		"totalAssets":{"raw":10000},
		"totalLiab":{"raw":4000},
		"totalStockholderEquity":{"raw":6000},
		"cash":{"raw":2500},
		"shortLongTermDebt":{"raw":300},
		"longTermDebt":{"raw":900}
	}]},
	"cashflowStatementHistory":{"cashflowStatements":[{
		"endDate":{"raw":1735603200},
		"totalCashFromOperatingActivities":{"raw":600},
		"totalCashflowsFromInvestingActivities":{"raw":-200},
		"totalCashFromFinancingActivities":{"raw":-100},
		"capitalExpenditures":{"raw":-150}
	}]}
}],"error":null}}`

const notFoundBody = `{"quoteSummary":{"result":null,
	"error":{"code":"Not Found","description":"Quote not found for ticker symbol: NOPE"}}}`

func testFetcher(t *testing.T, handler http.HandlerFunc) *YahooFetcher {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	f := NewYahooFetcher("", 0)
	f.BaseURL = srv.URL
	return f
}

func TestYahooHistoricalPrices(t *testing.T) {
	f := testFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/v8/finance/chart/PDD") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("range"); got != "1y" {
			t.Errorf("range: got %s, want 1y", got)
		}
		w.Write([]byte(chartBody))
	})

	bars, err := f.HistoricalPrices(context.Background(), "PDD", model.Period1y)
	if err != nil {
		t.Fatalf("HistoricalPrices: %v", err)
	}
	// Null bar dropped, remaining sorted ascending.
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	if !bars[0].Date.Before(bars[1].Date) {
		t.Errorf("bars not in ascending date order: %v, %v", bars[0].Date, bars[1].Date)
	}
	if bars[0].Close != 101.5 || bars[1].Close != 102.5 {
		t.Errorf("closes: got %.1f, %.1f, want 101.5, 102.5", bars[0].Close, bars[1].Close)
	}
}

func TestYahooHistoricalPrices_ShortQuoteArrays(t *testing.T) {
	// Degraded chart responses can report more timestamps than quote values
	// (partial trading days). The truncated tail must be dropped like null
	// bars, not crash the fetch.
	short := `{"chart":{"result":[{
		"timestamp":[1735603200,1735689600],
		"indicators":{"quote":[{
			"open":[100.0],
			"high":[102.0],
			"low":[99.0],
			"close":[101.5],
			"volume":[1200000]
		}]}
	}],"error":null}}`
	f := testFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(short))
	})

	bars, err := f.HistoricalPrices(context.Background(), "PDD", model.Period1y)
	if err != nil {
		t.Fatalf("HistoricalPrices: %v", err)
	}
	if len(bars) != 1 {
		t.Fatalf("expected 1 bar from truncated quote arrays, got %d", len(bars))
	}
	if bars[0].Close != 101.5 || bars[0].Volume != 1200000 {
		t.Errorf("surviving bar: %+v", bars[0])
	}
}

func TestYahooHistoricalPrices_InvalidPeriod(t *testing.T) {
	called := false
	f := testFetcher(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	_, err := f.HistoricalPrices(context.Background(), "PDD", model.Period("7w"))
	if !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
	if called {
		t.Error("invalid period must be rejected before contacting the provider")
	}
}

func TestYahooStockInfo(t *testing.T) {
	f := testFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(summaryQuoteBody))
	})

	info, err := f.StockInfo(context.Background(), "PDD")
	if err != nil {
		t.Fatalf("StockInfo: %v", err)
	}
	if info.Symbol != "PDD" || info.CompanyName != "PDD Holdings Inc." {
		t.Errorf("identity fields: %+v", info)
	}
	if info.CurrentPrice != 142.3 || info.PreviousClose != 140.1 {
		t.Errorf("prices: got %.1f/%.1f", info.CurrentPrice, info.PreviousClose)
	}
	if info.YearHigh != 164.69 || info.YearLow != 87.11 {
		t.Errorf("52w range: got %.2f/%.2f", info.YearHigh, info.YearLow)
	}
	if info.PBRatio != 3.1 {
		t.Errorf("pb ratio: got %.2f, want 3.1", info.PBRatio)
	}
	// dividendYield absent from the response: defaults to zero.
	if info.DividendYield != 0 {
		t.Errorf("missing dividend yield must default to 0, got %v", info.DividendYield)
	}
	if info.UpdateTime == "" {
		t.Error("update time must be set")
	}
}

func TestYahooFinancialData(t *testing.T) {
	f := testFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(summaryFinBody))
	})

	fd, err := f.FinancialData(context.Background(), "PDD")
	if err != nil {
		t.Fatalf("FinancialData: %v", err)
	}
	if fd.IncomeStatement == nil || fd.BalanceSheet == nil || fd.CashFlow == nil {
		t.Fatalf("expected all three statements, got %+v", fd)
	}
	if fd.IncomeStatement.TotalRevenue != 2000 || fd.IncomeStatement.FiscalYear != 2024 {
		t.Errorf("income statement: %+v", fd.IncomeStatement)
	}
	if fd.BalanceSheet.TotalDebt != 1200 {
		t.Errorf("total debt must sum short and long term: got %.0f, want 1200", fd.BalanceSheet.TotalDebt)
	}
	if fd.CashFlow.FreeCashFlow != 450 {
		t.Errorf("free cash flow: got %.0f, want 450", fd.CashFlow.FreeCashFlow)
	}
}

func TestYahooSymbolNotFound(t *testing.T) {
	f := testFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(notFoundBody))
	})

	if _, err := f.StockInfo(context.Background(), "NOPE"); !errors.Is(err, ErrSymbolNotFound) {
		t.Errorf("StockInfo: expected ErrSymbolNotFound, got %v", err)
	}
	if _, err := f.FinancialData(context.Background(), "NOPE"); !errors.Is(err, ErrSymbolNotFound) {
		t.Errorf("FinancialData: expected ErrSymbolNotFound, got %v", err)
	}
}
