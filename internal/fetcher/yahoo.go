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

// YahooFetcher implements Fetcher using the Yahoo Finance public API:
// the v8 chart endpoint for prices and the v10 quoteSummary endpoint for
// quote details and annual financial statements.
type YahooFetcher struct {
	BaseURL string
	client  *rlClient
}

// NewYahooFetcher creates a Yahoo Finance fetcher with optional proxy and
// request pacing.
func NewYahooFetcher(proxyURL string, ratePerSec float64) *YahooFetcher {
	return &YahooFetcher{
		BaseURL: "https://query1.finance.yahoo.com",
		client:  newRLClient(proxyURL, ratePerSec),
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yNum is Yahoo's {"raw": n, "fmt": "..."} number wrapper. Absent fields
// decode to zero.
type yNum struct {
	Raw float64 `json:"raw"`
}

type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *yahooError `json:"error"`
	} `json:"chart"`
}

type yahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type yahooSummary struct {
	QuoteSummary struct {
		Result []yahooSummaryResult `json:"result"`
		Error  *yahooError          `json:"error"`
	} `json:"quoteSummary"`
}

type yahooSummaryResult struct {
	Price *struct {
		Symbol                     string `json:"symbol"`
		LongName                   string `json:"longName"`
		ShortName                  string `json:"shortName"`
		RegularMarketPrice         yNum   `json:"regularMarketPrice"`
		RegularMarketPreviousClose yNum   `json:"regularMarketPreviousClose"`
		RegularMarketVolume        yNum   `json:"regularMarketVolume"`
		RegularMarketDayHigh       yNum   `json:"regularMarketDayHigh"`
		RegularMarketDayLow        yNum   `json:"regularMarketDayLow"`
		MarketCap                  yNum   `json:"marketCap"`
	} `json:"price"`
	SummaryDetail *struct {
		AverageVolume    yNum `json:"averageVolume"`
		FiftyTwoWeekHigh yNum `json:"fiftyTwoWeekHigh"`
		FiftyTwoWeekLow  yNum `json:"fiftyTwoWeekLow"`
		TrailingPE       yNum `json:"trailingPE"`
		DividendYield    yNum `json:"dividendYield"`
		Beta             yNum `json:"beta"`
	} `json:"summaryDetail"`
	DefaultKeyStatistics *struct {
		PriceToBook yNum `json:"priceToBook"`
	} `json:"defaultKeyStatistics"`
	IncomeStatementHistory *struct {
		Statements []yahooIncomeStmt `json:"incomeStatementHistory"`
	} `json:"incomeStatementHistory"`
	BalanceSheetHistory *struct {
		Statements []yahooBalanceStmt `json:"balanceSheetStatements"`
	} `json:"balanceSheetHistory"`
	CashflowStatementHistory *struct {
		Statements []yahooCashflowStmt `json:"cashflowStatements"`
	} `json:"cashflowStatementHistory"`
}

type yahooIncomeStmt struct {
	EndDate         yNum `json:"endDate"`
	TotalRevenue    yNum `json:"totalRevenue"`
	GrossProfit     yNum `json:"grossProfit"`
	OperatingIncome yNum `json:"operatingIncome"`
	NetIncome       yNum `json:"netIncome"`
	EBITDA          yNum `json:"ebitda"`
}

type yahooBalanceStmt struct {
	EndDate                yNum `json:"endDate"`
	TotalAssets            yNum `json:"totalAssets"`
	TotalLiab              yNum `json:"totalLiab"`
	TotalStockholderEquity yNum `json:"totalStockholderEquity"`
	Cash                   yNum `json:"cash"`
	ShortLongTermDebt      yNum `json:"shortLongTermDebt"`
	LongTermDebt           yNum `json:"longTermDebt"`
}

type yahooCashflowStmt struct {
	EndDate                               yNum `json:"endDate"`
	TotalCashFromOperatingActivities      yNum `json:"totalCashFromOperatingActivities"`
	TotalCashflowsFromInvestingActivities yNum `json:"totalCashflowsFromInvestingActivities"`
	TotalCashFromFinancingActivities      yNum `json:"totalCashFromFinancingActivities"`
	CapitalExpenditures                   yNum `json:"capitalExpenditures"`
}

func (f *YahooFetcher) get(ctx context.Context, u string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("yahoo read body: %w", err)
	}
	return body, resp.StatusCode, nil
}

func (f *YahooFetcher) fetchSummary(ctx context.Context, symbol, modules string) (*yahooSummaryResult, error) {
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		f.BaseURL, url.PathEscape(symbol), url.QueryEscape(modules))

	body, status, err := f.get(ctx, u)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("yahoo quoteSummary %s: %w", symbol, ErrSymbolNotFound)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("yahoo quoteSummary: status %d, body: %s", status, string(body))
	}

	var sum yahooSummary
	if err := json.Unmarshal(body, &sum); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if e := sum.QuoteSummary.Error; e != nil {
		if e.Code == "Not Found" {
			return nil, fmt.Errorf("yahoo quoteSummary %s: %w", symbol, ErrSymbolNotFound)
		}
		return nil, fmt.Errorf("yahoo api error: %s", e.Description)
	}
	if len(sum.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("yahoo quoteSummary %s: %w", symbol, ErrSymbolNotFound)
	}
	return &sum.QuoteSummary.Result[0], nil
}

// StockInfo fetches the quote snapshot via quoteSummary. Missing individual
// modules or fields fall back to zero values.
func (f *YahooFetcher) StockInfo(ctx context.Context, symbol string) (*model.StockInfo, error) {
	res, err := f.fetchSummary(ctx, symbol, "price,summaryDetail,defaultKeyStatistics")
	if err != nil {
		return nil, err
	}

	info := &model.StockInfo{
		Symbol:     symbol,
		UpdateTime: time.Now().Format(model.TimeFormat),
	}
	if p := res.Price; p != nil {
		info.CompanyName = p.LongName
		if info.CompanyName == "" {
			info.CompanyName = p.ShortName
		}
		info.CurrentPrice = p.RegularMarketPrice.Raw
		info.PreviousClose = p.RegularMarketPreviousClose.Raw
		info.Volume = p.RegularMarketVolume.Raw
		info.DayHigh = p.RegularMarketDayHigh.Raw
		info.DayLow = p.RegularMarketDayLow.Raw
		info.MarketCap = p.MarketCap.Raw
	}
	if d := res.SummaryDetail; d != nil {
		info.AvgVolume = d.AverageVolume.Raw
		info.YearHigh = d.FiftyTwoWeekHigh.Raw
		info.YearLow = d.FiftyTwoWeekLow.Raw
		info.PERatio = d.TrailingPE.Raw
		info.DividendYield = d.DividendYield.Raw
		info.Beta = d.Beta.Raw
	}
	if k := res.DefaultKeyStatistics; k != nil {
		info.PBRatio = k.PriceToBook.Raw
	}
	return info, nil
}

// FinancialData fetches the latest annual statements via quoteSummary.
// A statement module the provider omits is left nil.
func (f *YahooFetcher) FinancialData(ctx context.Context, symbol string) (*model.FinancialData, error) {
	res, err := f.fetchSummary(ctx, symbol,
		"incomeStatementHistory,balanceSheetHistory,cashflowStatementHistory")
	if err != nil {
		return nil, err
	}

	fd := &model.FinancialData{
		Symbol:     symbol,
		UpdateTime: time.Now().Format(model.TimeFormat),
	}
	if h := res.IncomeStatementHistory; h != nil && len(h.Statements) > 0 {
		s := h.Statements[0]
		fd.IncomeStatement = &model.IncomeStatement{
			TotalRevenue:    s.TotalRevenue.Raw,
			GrossProfit:     s.GrossProfit.Raw,
			OperatingIncome: s.OperatingIncome.Raw,
			NetIncome:       s.NetIncome.Raw,
			EBITDA:          s.EBITDA.Raw,
			FiscalYear:      fiscalYear(s.EndDate),
		}
	}
	if h := res.BalanceSheetHistory; h != nil && len(h.Statements) > 0 {
		s := h.Statements[0]
		fd.BalanceSheet = &model.BalanceSheet{
			TotalAssets:        s.TotalAssets.Raw,
			TotalLiabilities:   s.TotalLiab.Raw,
			TotalEquity:        s.TotalStockholderEquity.Raw,
			CashAndEquivalents: s.Cash.Raw,
			TotalDebt:          s.ShortLongTermDebt.Raw + s.LongTermDebt.Raw,
			FiscalYear:         fiscalYear(s.EndDate),
		}
	}
	if h := res.CashflowStatementHistory; h != nil && len(h.Statements) > 0 {
		s := h.Statements[0]
		fd.CashFlow = &model.CashFlow{
			OperatingCashFlow: s.TotalCashFromOperatingActivities.Raw,
			InvestingCashFlow: s.TotalCashflowsFromInvestingActivities.Raw,
			FinancingCashFlow: s.TotalCashFromFinancingActivities.Raw,
			// Capital expenditures are reported negative.
			FreeCashFlow: s.TotalCashFromOperatingActivities.Raw + s.CapitalExpenditures.Raw,
			FiscalYear:   fiscalYear(s.EndDate),
		}
	}
	return fd, nil
}

func fiscalYear(endDate yNum) int {
	if endDate.Raw == 0 {
		return 0
	}
	return time.Unix(int64(endDate.Raw), 0).UTC().Year()
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// HistoricalPrices fetches daily bars for the given period, sorted by
// ascending date. Null bars (holidays etc.) are dropped.
func (f *YahooFetcher) HistoricalPrices(ctx context.Context, symbol string, period model.Period) ([]model.Bar, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("period %q: %w", period, ErrInvalidPeriod)
	}

	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s",
		f.BaseURL, url.PathEscape(symbol), period)

	body, status, err := f.get(ctx, u)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("yahoo chart %s: %w", symbol, ErrSymbolNotFound)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("yahoo chart: status %d, body: %s", status, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if e := chart.Chart.Error; e != nil {
		if e.Code == "Not Found" {
			return nil, fmt.Errorf("yahoo chart %s: %w", symbol, ErrSymbolNotFound)
		}
		return nil, fmt.Errorf("yahoo api error: %s", e.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo chart %s: no data returned", symbol)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo chart %s: no quote data", symbol)
	}
	quote := result.Indicators.Quote[0]
	bars := make([]model.Bar, 0, len(result.Timestamp))

	// Degraded responses can carry quote arrays shorter than the timestamp
	// list; treat the missing tail as null bars instead of indexing past it.
	at := func(vs []interface{}, i int) float64 {
		if i >= len(vs) {
			return 0
		}
		return toFloat(vs[i])
	}

	for i, ts := range result.Timestamp {
		o := at(quote.Open, i)
		h := at(quote.High, i)
		l := at(quote.Low, i)
		c := at(quote.Close, i)
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue
		}
		bars = append(bars, model.Bar{
			Date:   time.Unix(ts, 0),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: at(quote.Volume, i),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}
