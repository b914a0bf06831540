package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/BuchardsVault/ChartFlow/middleware"
	"github.com/BuchardsVault/ChartFlow/model"
	"github.com/BuchardsVault/ChartFlow/util"
)

type YahooClient struct {
	client *resty.Client
}

func NewYahooClient(cfg model.EnvConfig) *YahooClient {
	client := resty.New().
		SetBaseURL(cfg.YahooBaseUrl).
		SetTimeout(time.Duration(cfg.RequestTimeoutSeconds) * time.Second).
		SetHeaders(map[string]string{
			"Accept":          "application/json",
			"Accept-Encoding": "gzip, deflate, br",
			"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		}).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second).
		OnAfterResponse(middleware.DecompressMiddleware)

	if cfg.RequestsPerSecond > 0 {
		limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
		client.OnBeforeRequest(middleware.RateLimit(limiter))
	}

	return &YahooClient{
		client: client,
	}
}

// GetDailyHistory returns daily bars for [start, end]. Both bounds are
// midnight in the market timezone; the end day is included.
func (y *YahooClient) GetDailyHistory(ctx context.Context, symbol string, start, end time.Time) (model.PriceSeries, error) {
	resp, err := y.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"period1":              strconv.FormatInt(start.Unix(), 10),
			"period2":              strconv.FormatInt(end.AddDate(0, 0, 1).Unix(), 10),
			"interval":             string(model.Interval1d),
			"includeAdjustedClose": "true",
			"events":               "div,splits",
		}).
		SetPathParam("symbol", symbol).
		Get("/{symbol}")

	if err != nil {
		log.Error().Err(err).Str("symbol", symbol).Msg("Error calling yahoo api")
		return model.PriceSeries{}, fmt.Errorf("yahoo request failed for %s: %w", symbol, err)
	}

	// Decoded here rather than with SetResult: resty parses the body
	// before user response middlewares run, so it would see the
	// compressed bytes.
	var chartResponse model.YahooChartResponse
	if err := json.Unmarshal(resp.Body(), &chartResponse); err != nil {
		return model.PriceSeries{}, fmt.Errorf("yahoo response for %s: %w", symbol, err)
	}

	if chartResponse.Chart.Error != nil {
		// Unknown or delisted symbols come back as a 404 with an error
		// payload; to the interpreter that is simply no data.
		if chartResponse.Chart.Error.Code == "Not Found" {
			log.Warn().Str("symbol", symbol).Str("reason", chartResponse.Chart.Error.Description).Msg("yahoo has no data")
			return model.PriceSeries{Symbol: symbol}, nil
		}
		return model.PriceSeries{}, fmt.Errorf("yahoo request failed for %s: %s: %s",
			symbol, chartResponse.Chart.Error.Code, chartResponse.Chart.Error.Description)
	}
	if !resp.IsSuccess() {
		return model.PriceSeries{}, fmt.Errorf("yahoo request failed for %s: status %d", symbol, resp.StatusCode())
	}
	if len(chartResponse.Chart.Result) == 0 {
		return model.PriceSeries{Symbol: symbol}, nil
	}

	return toPriceSeries(symbol, chartResponse.Chart.Result[0]), nil
}

func toPriceSeries(symbol string, result model.Result) model.PriceSeries {
	series := model.PriceSeries{Symbol: symbol}
	if len(result.Indicators.Quote) == 0 || len(result.Timestamp) == 0 {
		return series
	}

	loc := exchangeLocation(result.Meta.ExchangeTimezoneName)

	quote := result.Indicators.Quote[0]
	var adjClose []*float64
	if len(result.Indicators.AdjClose) > 0 {
		adjClose = result.Indicators.AdjClose[0].AdjClose
	}

	series.Columns = []string{model.ColOpen, model.ColHigh, model.ColLow, model.ColClose}
	if adjClose != nil {
		series.Columns = append(series.Columns, model.ColAdjClose)
	}
	series.Columns = append(series.Columns, model.ColVolume)

	series.Bars = make([]model.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		closePrice := at(quote.Close, i)
		if closePrice == nil {
			continue
		}
		bar := model.Bar{
			Date:     tradingDay(ts, loc),
			Open:     valueOr(at(quote.Open, i), *closePrice),
			High:     valueOr(at(quote.High, i), *closePrice),
			Low:      valueOr(at(quote.Low, i), *closePrice),
			Close:    *closePrice,
			AdjClose: at(adjClose, i),
		}
		if i < len(quote.Volume) {
			bar.Volume = quote.Volume[i]
		}
		series.Bars = append(series.Bars, bar)
	}
	return series
}

// exchangeLocation resolves the exchange timezone, sharing
// util.MarketLocation for New York listings.
func exchangeLocation(name string) *time.Location {
	if name == "" || name == util.MarketTimezone {
		return util.MarketLocation
	}
	if l, err := time.LoadLocation(name); err == nil {
		return l
	}
	return util.MarketLocation
}

// tradingDay is the exchange-local date of ts, as midnight in
// util.MarketLocation so bars from every fetch share one location.
func tradingDay(ts int64, exchange *time.Location) time.Time {
	y, m, d := time.Unix(ts, 0).In(exchange).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, util.MarketLocation)
}

func at(values []*float64, i int) *float64 {
	if i < len(values) {
		return values[i]
	}
	return nil
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
