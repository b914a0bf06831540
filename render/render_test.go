package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuchardsVault/ChartFlow/chart"
	"github.com/BuchardsVault/ChartFlow/model"
)

func TestRenderTableMarkdown(t *testing.T) {
	var buf bytes.Buffer
	r := NewTableRenderer(&buf)

	err := r.RenderTable(model.Table{
		Title:   "=== AAPL (2024-01-01 → 2024-01-05) ===",
		Headers: []string{"Date", "Close", "Volume"},
		Rows: [][]string{
			{"2024-01-02", "185.64", "82,488,700"},
			{"2024-01-03", "184.25", "58,414,500"},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "=== AAPL (2024-01-01 → 2024-01-05) ===", lines[0])
	assert.Contains(t, strings.ToLower(lines[1]), "date")
	assert.Contains(t, lines[2], "---")
	assert.Contains(t, lines[3], "185.64")
	assert.Contains(t, lines[4], "58,414,500")
	for _, line := range lines[1:] {
		assert.True(t, strings.HasPrefix(line, "|"), line)
	}
}

func series(symbol string, n int) model.PriceSeries {
	s := model.PriceSeries{Symbol: symbol, Columns: []string{model.ColOpen, model.ColHigh, model.ColLow, model.ColClose}}
	day := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		f := float64(i)
		s.Bars = append(s.Bars, model.Bar{Date: day.AddDate(0, 0, i), Open: 10 + f, High: 12 + f, Low: 9 + f, Close: 11 + f})
	}
	return s
}

func TestRenderChartTitle(t *testing.T) {
	r := NewChartRenderer(t.TempDir(), &bytes.Buffer{})
	ctx := chart.NewContext(chart.DefaultStyle())

	require.NoError(t, r.RenderChart(ctx, series("AAPL", 3), chart.Candlestick, map[string]any{}))
	assert.Equal(t, "AAPL – candlestick", ctx.Figure().Title)

	require.NoError(t, r.RenderChart(ctx, series("MSFT", 3), chart.Candlestick, map[string]any{"title": "Tech"}))
	assert.Equal(t, "Tech", ctx.Figure().Title)
	assert.Len(t, ctx.Figure().Series, 2)
}

func TestFinalizeChartWritesHTML(t *testing.T) {
	for _, typ := range []chart.Type{chart.Candlestick, chart.Line, chart.Bar, chart.OHLC} {
		t.Run(string(typ), func(t *testing.T) {
			dir := t.TempDir()
			var out bytes.Buffer
			r := NewChartRenderer(dir, &out)
			ctx := chart.NewContext(chart.DefaultStyle())
			require.NoError(t, ctx.Apply(map[string]any{"theme": "dark", "grid": "off"}))

			s := series("AAPL", 5)
			require.NoError(t, r.RenderChart(ctx, s, typ, map[string]any{}))
			ctx.Figure().AddOverlay("SMA 2", []time.Time{s.Bars[1].Date, s.Bars[2].Date}, []float64{11.5, 12.5})

			require.NoError(t, r.FinalizeChart(ctx))

			path := filepath.Join(dir, "aapl-"+string(typ)+"-1.html")
			assert.Equal(t, "chart written to "+path+"\n", out.String())
			html, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(html), "echarts")
			assert.Contains(t, string(html), "SMA 2")
			assert.Contains(t, string(html), "2024-01-06")

			// Finalizing leaves the context to its owner.
			assert.True(t, ctx.HasFigure())
		})
	}
}

func TestFinalizeAlignsSymbolsFromDifferentLocations(t *testing.T) {
	dir := t.TempDir()
	r := NewChartRenderer(dir, &bytes.Buffer{})
	ctx := chart.NewContext(chart.DefaultStyle())

	for _, sym := range []string{"AAPL", "MSFT"} {
		loc, err := time.LoadLocation("America/New_York")
		require.NoError(t, err)
		s := series(sym, 5)
		for i := range s.Bars {
			y, m, d := s.Bars[i].Date.Date()
			s.Bars[i].Date = time.Date(y, m, d, 0, 0, 0, 0, loc)
		}
		require.NoError(t, r.RenderChart(ctx, s, chart.Line, map[string]any{"title": "pair"}))
	}
	fig := ctx.Figure()
	require.Len(t, fig.Dates(), 5)

	axis, index := dateAxis(fig)
	assert.Equal(t, []string{"2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05", "2024-01-06"}, axis)
	for _, s := range fig.Series {
		for i, p := range s.Points {
			assert.Equal(t, i, index[p.Date.Format("2006-01-02")], s.Name)
		}
	}

	require.NoError(t, r.FinalizeChart(ctx))
	_, err := os.Stat(filepath.Join(dir, "pair-1.html"))
	assert.NoError(t, err)
}

func TestFinalizeWithoutFigure(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "never")
	r := NewChartRenderer(dir, &bytes.Buffer{})
	require.NoError(t, r.FinalizeChart(chart.NewContext(chart.DefaultStyle())))
	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "aapl-line", slug("AAPL – line"))
	assert.Equal(t, "gspc-vs-ndx", slug("^GSPC vs ^NDX"))
	assert.Equal(t, "chart", slug("→"))
}
