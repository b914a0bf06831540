package model

import "time"

// Column names in canonical display order.
const (
	ColOpen     = "Open"
	ColHigh     = "High"
	ColLow      = "Low"
	ColClose    = "Close"
	ColAdjClose = "Adj Close"
	ColVolume   = "Volume"
)

var CanonicalColumns = []string{ColOpen, ColHigh, ColLow, ColClose, ColAdjClose, ColVolume}

// Bar is one trading day. AdjClose and Volume are nil when the source
// has no value for that day.
type Bar struct {
	Date     time.Time `json:"date"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	AdjClose *float64  `json:"adjClose,omitempty"`
	Volume   *int64    `json:"volume,omitempty"`
}

// PriceSeries is the daily history of one symbol, oldest bar first.
// Columns lists the fields the source actually provides.
type PriceSeries struct {
	Symbol  string   `json:"symbol"`
	Columns []string `json:"columns"`
	Bars    []Bar    `json:"bars"`
}

func (s PriceSeries) Empty() bool { return len(s.Bars) == 0 }

func (s PriceSeries) HasColumn(name string) bool {
	for _, c := range s.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Closes returns the closing prices in bar order.
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Close
	}
	return out
}

// Table is a titled, already formatted text table.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}
