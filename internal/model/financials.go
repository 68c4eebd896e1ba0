package model

// IncomeStatement holds the latest annual income statement line items.
type IncomeStatement struct {
	TotalRevenue    float64 `json:"total_revenue"`
	GrossProfit     float64 `json:"gross_profit"`
	OperatingIncome float64 `json:"operating_income"`
	NetIncome       float64 `json:"net_income"`
	EBITDA          float64 `json:"ebitda"`
	FiscalYear      int     `json:"fiscal_year"`
}

// BalanceSheet holds the latest annual balance sheet line items.
type BalanceSheet struct {
	TotalAssets        float64 `json:"total_assets"`
	TotalLiabilities   float64 `json:"total_liabilities"`
	TotalEquity        float64 `json:"total_equity"`
	CashAndEquivalents float64 `json:"cash_and_equivalents"`
	TotalDebt          float64 `json:"total_debt"`
	FiscalYear         int     `json:"fiscal_year"`
}

// CashFlow holds the latest annual cash flow statement line items.
type CashFlow struct {
	OperatingCashFlow float64 `json:"operating_cash_flow"`
	InvestingCashFlow float64 `json:"investing_cash_flow"`
	FinancingCashFlow float64 `json:"financing_cash_flow"`
	FreeCashFlow      float64 `json:"free_cash_flow"`
	FiscalYear        int     `json:"fiscal_year"`
}

// FinancialData bundles the three statements for one symbol.
// A statement the provider couldn't deliver is nil.
type FinancialData struct {
	Symbol          string           `json:"symbol"`
	IncomeStatement *IncomeStatement `json:"income_statement,omitempty"`
	BalanceSheet    *BalanceSheet    `json:"balance_sheet,omitempty"`
	CashFlow        *CashFlow        `json:"cash_flow,omitempty"`
	UpdateTime      string           `json:"update_time"`
}

// FinancialRatios are derived percentages computed from FinancialData.
// A ratio whose denominator was zero or missing is omitted.
type FinancialRatios struct {
	GrossMargin  float64 `json:"gross_margin,omitempty"`
	NetMargin    float64 `json:"net_margin,omitempty"`
	ROE          float64 `json:"roe,omitempty"`
	ROA          float64 `json:"roa,omitempty"`
	DebtToAssets float64 `json:"debt_to_assets,omitempty"`
	EquityRatio  float64 `json:"equity_ratio,omitempty"`
}

// Snapshot is the complete, self-contained output for one symbol at one
// point in time. This is the unit written to JSON and Excel files.
type Snapshot struct {
	StockInfo       *StockInfo       `json:"stock_info,omitempty"`
	FinancialData   *FinancialData   `json:"financial_data,omitempty"`
	FinancialRatios *FinancialRatios `json:"financial_ratios,omitempty"`
}
