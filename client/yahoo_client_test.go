package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuchardsVault/ChartFlow/model"
	"github.com/BuchardsVault/ChartFlow/util"
)

// Two sessions plus a halted day with a null close.
const chartBody = `{"chart":{"result":[{
  "meta":{"symbol":"AAPL","currency":"USD","exchangeTimezoneName":"America/New_York"},
  "timestamp":[1704205800,1704292200,1704378600],
  "indicators":{
    "quote":[{"open":[187.15,184.22,null],"high":[188.44,185.88,null],"low":[183.89,183.43,null],
              "close":[185.64,184.25,null],"volume":[82488700,null,null]}],
    "adjclose":[{"adjclose":[184.94,183.55,null]}]
  }}],"error":null}}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *YahooClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := model.DefaultEnvConfig()
	cfg.YahooBaseUrl = srv.URL
	cfg.RequestsPerSecond = 0
	return NewYahooClient(cfg)
}

func TestGetDailyHistory(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	start := time.Date(2024, time.January, 2, 0, 0, 0, 0, ny)
	end := time.Date(2024, time.January, 4, 0, 0, 0, 0, ny)

	var query map[string][]string
	var path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chartBody))
	})

	series, err := c.GetDailyHistory(context.Background(), "AAPL", start, end)
	require.NoError(t, err)

	assert.Equal(t, "/AAPL", path)
	assert.Equal(t, []string{"1704171600"}, query["period1"])
	// The end day is inclusive, so period2 is the following midnight.
	assert.Equal(t, []string{"1704430800"}, query["period2"])
	assert.Equal(t, []string{"1d"}, query["interval"])

	assert.Equal(t, "AAPL", series.Symbol)
	assert.Equal(t, []string{"Open", "High", "Low", "Close", "Adj Close", "Volume"}, series.Columns)
	require.Len(t, series.Bars, 2)

	first := series.Bars[0]
	assert.Equal(t, "2024-01-02", first.Date.Format("2006-01-02"))
	assert.Equal(t, 187.15, first.Open)
	assert.Equal(t, 185.64, first.Close)
	require.NotNil(t, first.AdjClose)
	assert.Equal(t, 184.94, *first.AdjClose)
	require.NotNil(t, first.Volume)
	assert.Equal(t, int64(82488700), *first.Volume)

	assert.Nil(t, series.Bars[1].Volume)

	// Every fetch dates its bars in the one shared market location.
	for _, bar := range series.Bars {
		assert.Same(t, util.MarketLocation, bar.Date.Location())
	}
}

func TestGetDailyHistoryUnknownSymbol(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	})

	series, err := c.GetDailyHistory(context.Background(), "ZZZ", time.Now(), time.Now())
	require.NoError(t, err)
	assert.True(t, series.Empty())
	assert.Equal(t, "ZZZ", series.Symbol)
}

func TestGetDailyHistoryServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{}`))
	})

	_, err := c.GetDailyHistory(context.Background(), "AAPL", time.Now(), time.Now())
	assert.ErrorContains(t, err, "status 500")
}

func TestGetDailyHistoryEmptyResult(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[{"meta":{"symbol":"AAPL"},"indicators":{"quote":[{}]}}],"error":null}}`))
	})

	series, err := c.GetDailyHistory(context.Background(), "AAPL", time.Now(), time.Now())
	require.NoError(t, err)
	assert.True(t, series.Empty())
}
