package exporter

import (
	"fmt"

	"finsight/internal/model"

	"github.com/xuri/excelize/v2"
)

// WriteExcel writes the snapshot as a multi-sheet xlsx workbook. Each sheet
// carries one header row and one value row, mirroring the JSON field names.
// Sections missing from the snapshot produce no sheet.
func WriteExcel(path string, snap *model.Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	first := true
	addSheet := func(name string, headers []interface{}, values []interface{}) error {
		if first {
			// Reuse the default sheet for the first section.
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return err
			}
			first = false
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return err
			}
		}
		if err := f.SetSheetRow(name, "A1", &headers); err != nil {
			return err
		}
		return f.SetSheetRow(name, "A2", &values)
	}

	if si := snap.StockInfo; si != nil {
		err := addSheet("Stock_Info",
			[]interface{}{"symbol", "company_name", "current_price", "previous_close",
				"market_cap", "volume", "avg_volume", "day_high", "day_low",
				"year_high", "year_low", "pe_ratio", "pb_ratio", "dividend_yield",
				"beta", "update_time"},
			[]interface{}{si.Symbol, si.CompanyName, si.CurrentPrice, si.PreviousClose,
				si.MarketCap, si.Volume, si.AvgVolume, si.DayHigh, si.DayLow,
				si.YearHigh, si.YearLow, si.PERatio, si.PBRatio, si.DividendYield,
				si.Beta, si.UpdateTime})
		if err != nil {
			return fmt.Errorf("stock info sheet: %w", err)
		}
	}

	if fd := snap.FinancialData; fd != nil {
		if is := fd.IncomeStatement; is != nil {
			err := addSheet("Income_Statement",
				[]interface{}{"total_revenue", "gross_profit", "operating_income",
					"net_income", "ebitda", "fiscal_year"},
				[]interface{}{is.TotalRevenue, is.GrossProfit, is.OperatingIncome,
					is.NetIncome, is.EBITDA, is.FiscalYear})
			if err != nil {
				return fmt.Errorf("income statement sheet: %w", err)
			}
		}
		if bs := fd.BalanceSheet; bs != nil {
			err := addSheet("Balance_Sheet",
				[]interface{}{"total_assets", "total_liabilities", "total_equity",
					"cash_and_equivalents", "total_debt", "fiscal_year"},
				[]interface{}{bs.TotalAssets, bs.TotalLiabilities, bs.TotalEquity,
					bs.CashAndEquivalents, bs.TotalDebt, bs.FiscalYear})
			if err != nil {
				return fmt.Errorf("balance sheet sheet: %w", err)
			}
		}
		if cf := fd.CashFlow; cf != nil {
			err := addSheet("Cash_Flow",
				[]interface{}{"operating_cash_flow", "investing_cash_flow",
					"financing_cash_flow", "free_cash_flow", "fiscal_year"},
				[]interface{}{cf.OperatingCashFlow, cf.InvestingCashFlow,
					cf.FinancingCashFlow, cf.FreeCashFlow, cf.FiscalYear})
			if err != nil {
				return fmt.Errorf("cash flow sheet: %w", err)
			}
		}
	}

	if fr := snap.FinancialRatios; fr != nil {
		err := addSheet("Financial_Ratios",
			[]interface{}{"gross_margin", "net_margin", "roe", "roa",
				"debt_to_assets", "equity_ratio"},
			[]interface{}{fr.GrossMargin, fr.NetMargin, fr.ROE, fr.ROA,
				fr.DebtToAssets, fr.EquityRatio})
		if err != nil {
			return fmt.Errorf("ratios sheet: %w", err)
		}
	}

	if first {
		return fmt.Errorf("empty snapshot, nothing to write")
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
