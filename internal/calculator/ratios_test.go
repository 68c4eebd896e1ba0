package calculator

import (
	"math"
	"reflect"
	"testing"

	"finsight/internal/model"
)

func sampleFinancials() *model.FinancialData {
	return &model.FinancialData{
		Symbol: "PDD",
		IncomeStatement: &model.IncomeStatement{
			TotalRevenue: 2000,
			GrossProfit:  1200,
			NetIncome:    500,
			FiscalYear:   2025,
		},
		BalanceSheet: &model.BalanceSheet{
			TotalAssets:      10000,
			TotalLiabilities: 4000,
			TotalEquity:      6000,
			FiscalYear:       2025,
		},
	}
}

func TestCalculateRatios(t *testing.T) {
	r := CalculateRatios(sampleFinancials())

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"gross margin", r.GrossMargin, 60},
		{"net margin", r.NetMargin, 25},
		{"roe", r.ROE, 500.0 / 6000 * 100},
		{"roa", r.ROA, 5},
		{"debt to assets", r.DebtToAssets, 40},
		{"equity ratio", r.EquityRatio, 60},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-9 {
			t.Errorf("%s: got %.6f, want %.6f", c.name, c.got, c.want)
		}
	}
}

func TestCalculateRatios_Pure(t *testing.T) {
	fd := sampleFinancials()
	first := CalculateRatios(fd)
	second := CalculateRatios(fd)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same input produced different output: %+v vs %+v", first, second)
	}
}

func TestCalculateRatios_ZeroDenominators(t *testing.T) {
	fd := &model.FinancialData{
		IncomeStatement: &model.IncomeStatement{TotalRevenue: 0, GrossProfit: 100, NetIncome: 50},
		BalanceSheet:    &model.BalanceSheet{TotalAssets: 0, TotalEquity: 0, TotalLiabilities: 100},
	}
	r := CalculateRatios(fd)
	if r != (model.FinancialRatios{}) {
		t.Errorf("expected all ratios omitted for zero denominators, got %+v", r)
	}
}

func TestCalculateRatios_MissingStatements(t *testing.T) {
	tests := []struct {
		name string
		fd   *model.FinancialData
	}{
		{"nil data", nil},
		{"empty data", &model.FinancialData{}},
		{"income only", &model.FinancialData{
			IncomeStatement: &model.IncomeStatement{TotalRevenue: 100, NetIncome: 10},
		}},
		{"balance only", &model.FinancialData{
			BalanceSheet: &model.BalanceSheet{TotalAssets: 100, TotalEquity: 60, TotalLiabilities: 40},
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := CalculateRatios(tc.fd) // must not panic
			if tc.fd == nil && r != (model.FinancialRatios{}) {
				t.Errorf("nil input should give zero ratios, got %+v", r)
			}
		})
	}
}
