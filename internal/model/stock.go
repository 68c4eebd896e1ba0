package model

import "time"

// TimeFormat is the timestamp layout used in snapshots and file contents.
const TimeFormat = "2006-01-02 15:04:05"

// StockInfo is a point-in-time quote snapshot for one symbol.
// Fields the provider doesn't report are left at their zero value.
type StockInfo struct {
	Symbol        string  `json:"symbol"`
	CompanyName   string  `json:"company_name"`
	CurrentPrice  float64 `json:"current_price"`
	PreviousClose float64 `json:"previous_close"`
	MarketCap     float64 `json:"market_cap"`
	Volume        float64 `json:"volume"`
	AvgVolume     float64 `json:"avg_volume"`
	DayHigh       float64 `json:"day_high"`
	DayLow        float64 `json:"day_low"`
	YearHigh      float64 `json:"year_high"`
	YearLow       float64 `json:"year_low"`
	PERatio       float64 `json:"pe_ratio"`
	PBRatio       float64 `json:"pb_ratio"`
	DividendYield float64 `json:"dividend_yield"`
	Beta          float64 `json:"beta"`
	UpdateTime    string  `json:"update_time"`
}

// Bar represents a single daily candlestick.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}
