package model

import "fmt"

// Period selects a historical-price time window.
type Period string

const (
	Period1d  Period = "1d"
	Period5d  Period = "5d"
	Period1mo Period = "1mo"
	Period3mo Period = "3mo"
	Period6mo Period = "6mo"
	Period1y  Period = "1y"
	Period2y  Period = "2y"
	Period5y  Period = "5y"
	Period10y Period = "10y"
	PeriodYtd Period = "ytd"
	PeriodMax Period = "max"
)

var validPeriods = map[Period]bool{
	Period1d: true, Period5d: true, Period1mo: true, Period3mo: true,
	Period6mo: true, Period1y: true, Period2y: true, Period5y: true,
	Period10y: true, PeriodYtd: true, PeriodMax: true,
}

// Valid reports whether p is one of the enumerated period tokens.
func (p Period) Valid() bool { return validPeriods[p] }

// ParsePeriod validates a raw period token.
func ParsePeriod(s string) (Period, error) {
	p := Period(s)
	if !p.Valid() {
		return "", fmt.Errorf("invalid period %q", s)
	}
	return p, nil
}
