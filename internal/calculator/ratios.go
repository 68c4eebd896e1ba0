package calculator

import "finsight/internal/model"

// CalculateRatios derives financial ratios (as percentages) from the latest
// annual statements. Pure function: a zero or missing denominator leaves the
// corresponding ratio at zero, which the JSON encoding omits.
func CalculateRatios(fd *model.FinancialData) model.FinancialRatios {
	var r model.FinancialRatios
	if fd == nil {
		return r
	}
	income := fd.IncomeStatement
	balance := fd.BalanceSheet

	if income != nil && income.TotalRevenue != 0 {
		r.GrossMargin = income.GrossProfit / income.TotalRevenue * 100
		r.NetMargin = income.NetIncome / income.TotalRevenue * 100
	}
	if income != nil && balance != nil {
		if balance.TotalEquity != 0 {
			r.ROE = income.NetIncome / balance.TotalEquity * 100
		}
		if balance.TotalAssets != 0 {
			r.ROA = income.NetIncome / balance.TotalAssets * 100
		}
	}
	if balance != nil && balance.TotalAssets != 0 {
		r.DebtToAssets = balance.TotalLiabilities / balance.TotalAssets * 100
		r.EquityRatio = balance.TotalEquity / balance.TotalAssets * 100
	}
	return r
}
