package model

type YahooInterval string

const (
	Interval1d  YahooInterval = "1d"
	Interval1wk YahooInterval = "1wk"
	Interval1mo YahooInterval = "1mo"
)

// YahooChartResponse is the top-level container of the v8 chart API.
type YahooChartResponse struct {
	Chart ChartData `json:"chart"`
}

type ChartData struct {
	Result []Result    `json:"result"`
	Error  *YahooError `json:"error"`
}

type YahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type Result struct {
	Meta       Meta       `json:"meta"`
	Timestamp  []int64    `json:"timestamp"`
	Indicators Indicators `json:"indicators"`
}

type Meta struct {
	Symbol               string `json:"symbol"`
	Currency             string `json:"currency"`
	ExchangeTimezoneName string `json:"exchangeTimezoneName"`
}

type Indicators struct {
	Quote    []Quote    `json:"quote"`
	AdjClose []AdjClose `json:"adjclose"`
}

// Quote arrays hold null for days without a print, hence the pointers.
type Quote struct {
	Low    []*float64 `json:"low"`
	High   []*float64 `json:"high"`
	Open   []*float64 `json:"open"`
	Volume []*int64   `json:"volume"`
	Close  []*float64 `json:"close"`
}

type AdjClose struct {
	AdjClose []*float64 `json:"adjclose"`
}
