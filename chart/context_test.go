package chart

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuchardsVault/ChartFlow/customerrors"
	"github.com/BuchardsVault/ChartFlow/model"
)

func TestApplyMergesStyleKeysOnly(t *testing.T) {
	ctx := NewContext(DefaultStyle())

	err := ctx.Apply(map[string]any{
		"theme": "dark",
		"width": int64(16),
		"grid":  "off",
		"sma":   int64(20),
		"title": "ignored here",
	})
	require.NoError(t, err)

	assert.Equal(t, Style{Theme: "dark", Width: 16, Height: 6, Grid: false}, ctx.Style())
	assert.True(t, ctx.Style().IsDark())

	require.NoError(t, ctx.Apply(map[string]any{"height": "9", "grid": "true"}))
	assert.Equal(t, Style{Theme: "dark", Width: 16, Height: 9, Grid: true}, ctx.Style())
}

func TestApplyRejectsBadValues(t *testing.T) {
	ctx := NewContext(DefaultStyle())
	err := ctx.Apply(map[string]any{"width": "wide"})
	require.Error(t, err)
	assert.Equal(t, DefaultStyle(), ctx.Style())
}

func TestOpenIsLazyAndResetDiscards(t *testing.T) {
	ctx := NewContext(DefaultStyle())
	assert.False(t, ctx.HasFigure())
	assert.Nil(t, ctx.Figure())

	require.NoError(t, ctx.Apply(map[string]any{"theme": "dark"}))
	fig := ctx.Open(Candlestick)
	require.NotNil(t, fig)
	assert.Same(t, fig, ctx.Open(Line))
	assert.Equal(t, Candlestick, fig.Type)
	assert.Equal(t, "dark", fig.Style.Theme)

	ctx.Reset()
	assert.False(t, ctx.HasFigure())
	assert.Equal(t, DefaultStyle(), ctx.Style())
}

func TestFigureDatesUnion(t *testing.T) {
	d := func(day int) time.Time { return time.Date(2024, time.May, day, 0, 0, 0, 0, time.UTC) }
	fig := &Figure{Series: []Series{
		{Name: "A", Points: []Point{{Date: d(2)}, {Date: d(3)}}},
		{Name: "B", Points: []Point{{Date: d(1)}, {Date: d(3)}}},
	}}
	assert.Equal(t, []time.Time{d(1), d(2), d(3)}, fig.Dates())
}

func TestFigureDatesMatchByDay(t *testing.T) {
	// Each fetch may load its own *time.Location for the same zone.
	load := func() *time.Location {
		loc, err := time.LoadLocation("America/New_York")
		require.NoError(t, err)
		return loc
	}
	series := func(name string, loc *time.Location) model.PriceSeries {
		s := model.PriceSeries{Symbol: name}
		for day := 3; day <= 7; day++ {
			s.Bars = append(s.Bars, model.Bar{Date: time.Date(2024, time.June, day, 0, 0, 0, 0, loc), Close: 1})
		}
		return s
	}

	fig := &Figure{}
	fig.AddPrices(Line, series("AAPL", load()))
	fig.AddPrices(Line, series("MSFT", load()))
	fig.AddPrices(Line, series("SPY", time.FixedZone("", -4*60*60)))

	dates := fig.Dates()
	require.Len(t, dates, 5)
	assert.Equal(t, "2024-06-03", dates[0].Format("2006-01-02"))
	assert.Equal(t, "2024-06-07", dates[4].Format("2006-01-02"))
}

func TestParseType(t *testing.T) {
	for name, want := range map[string]Type{"": Line, "Candlestick": Candlestick, "bar": Bar, "ohlc": OHLC, "line": Line} {
		got, err := ParseType(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseType("pie")
	require.Error(t, err)
	assert.True(t, errors.Is(err, customerrors.ErrUnknownChartType))
	assert.Contains(t, err.Error(), "'pie'")
}

func TestStyleFromConfig(t *testing.T) {
	cfg := model.DefaultEnvConfig()
	cfg.Theme = "dark"
	cfg.Width = 10
	cfg.Grid = false

	style, err := StyleFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, Style{Theme: "dark", Width: 10, Height: 6, Grid: false}, style)
}
