package model

import "testing"

func TestParsePeriod(t *testing.T) {
	valid := []string{"1d", "5d", "1mo", "3mo", "6mo", "1y", "2y", "5y", "10y", "ytd", "max"}
	for _, s := range valid {
		p, err := ParsePeriod(s)
		if err != nil {
			t.Errorf("ParsePeriod(%q): %v", s, err)
		}
		if !p.Valid() {
			t.Errorf("ParsePeriod(%q) returned invalid period", s)
		}
	}
	for _, s := range []string{"", "7w", "1Y", "year", "0d"} {
		if _, err := ParsePeriod(s); err == nil {
			t.Errorf("ParsePeriod(%q): expected error", s)
		}
	}
}
