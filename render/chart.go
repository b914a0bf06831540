package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/rs/zerolog/log"

	"github.com/BuchardsVault/ChartFlow/chart"
	"github.com/BuchardsVault/ChartFlow/model"
	"github.com/BuchardsVault/ChartFlow/util"
)

// pixelsPerUnit converts style width/height (inches) to pixels.
const pixelsPerUnit = 100

const themeLight = "white"

// ChartRenderer writes every finished figure to its own HTML page under
// outputDir and prints the page path.
type ChartRenderer struct {
	outputDir string
	out       io.Writer
	count     int
}

func NewChartRenderer(outputDir string, out io.Writer) *ChartRenderer {
	return &ChartRenderer{outputDir: outputDir, out: out}
}

// RenderChart adds series to the figure held by ctx. The "title" option
// names the figure; otherwise the last symbol drawn does.
func (r *ChartRenderer) RenderChart(ctx *chart.Context, series model.PriceSeries, t chart.Type, options map[string]any) error {
	fig := ctx.Open(t)
	fig.AddPrices(t, series)

	if title, ok := options["title"]; ok {
		fig.Title = fmt.Sprint(title)
	} else {
		fig.Title = fmt.Sprintf("%s – %s", series.Symbol, t)
	}
	return nil
}

// FinalizeChart writes the open figure. The caller resets the context.
func (r *ChartRenderer) FinalizeChart(ctx *chart.Context) error {
	fig := ctx.Figure()
	if fig == nil {
		return nil
	}

	page := buildPage(fig)

	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return fmt.Errorf("creating chart directory: %w", err)
	}
	r.count++
	path := filepath.Join(r.outputDir, fmt.Sprintf("%s-%d.html", slug(fig.Title), r.count))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}

	log.Debug().Str("path", path).Int("series", len(fig.Series)).Msg("chart written")
	_, err = fmt.Fprintf(r.out, "chart written to %s\n", path)
	return err
}

type page interface {
	Render(w io.Writer) error
}

func buildPage(fig *chart.Figure) page {
	axis, index := dateAxis(fig)

	global := globalOptions(fig)

	switch fig.Type {
	case chart.Candlestick:
		k := charts.NewKLine()
		k.SetGlobalOptions(global...)
		k.SetXAxis(axis)
		for _, s := range fig.Series {
			if !s.Overlay {
				k.AddSeries(s.Name, klineData(s, index, len(axis)))
			}
		}
		if overlays := overlayLine(fig, axis, index); overlays != nil {
			k.Overlap(overlays)
		}
		return k

	case chart.Bar:
		b := charts.NewBar()
		b.SetGlobalOptions(global...)
		b.SetXAxis(axis)
		for _, s := range fig.Series {
			if !s.Overlay {
				b.AddSeries(s.Name, barData(s, index, len(axis)))
			}
		}
		if overlays := overlayLine(fig, axis, index); overlays != nil {
			b.Overlap(overlays)
		}
		return b
	}

	// Line and OHLC both draw closing prices.
	l := charts.NewLine()
	l.SetGlobalOptions(global...)
	l.SetXAxis(axis)
	for _, s := range fig.Series {
		addLineSeries(l, s, index, len(axis))
	}
	return l
}

// dateAxis labels the x axis and maps each YYYY-MM-DD label to its slot.
func dateAxis(fig *chart.Figure) ([]string, map[string]int) {
	dates := fig.Dates()
	axis := make([]string, len(dates))
	index := make(map[string]int, len(dates))
	for i, d := range dates {
		axis[i] = util.FormatDate(d)
		index[axis[i]] = i
	}
	return axis, index
}

func globalOptions(fig *chart.Figure) []charts.GlobalOpts {
	theme := themeLight
	if fig.Style.IsDark() {
		theme = types.ThemeChalk
	}
	grid := &opts.SplitLine{Show: opts.Bool(fig.Style.Grid)}

	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: fig.Title,
			Theme:     theme,
			Width:     fmt.Sprintf("%dpx", fig.Style.Width*pixelsPerUnit),
			Height:    fmt.Sprintf("%dpx", fig.Style.Height*pixelsPerUnit),
		}),
		charts.WithTitleOpts(opts.Title{Title: fig.Title}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "30"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{SplitLine: grid}),
		charts.WithYAxisOpts(opts.YAxis{Scale: opts.Bool(true), SplitLine: grid}),
	}
}

// overlayLine collects the overlay series of a non-line figure, or nil
// when there are none.
func overlayLine(fig *chart.Figure, axis []string, index map[string]int) *charts.Line {
	var l *charts.Line
	for _, s := range fig.Series {
		if !s.Overlay {
			continue
		}
		if l == nil {
			l = charts.NewLine()
			l.SetXAxis(axis)
		}
		addLineSeries(l, s, index, len(axis))
	}
	return l
}

func addLineSeries(l *charts.Line, s chart.Series, index map[string]int, n int) {
	data := make([]opts.LineData, n)
	for _, p := range s.Points {
		data[index[util.FormatDate(p.Date)]] = opts.LineData{Value: p.Value}
	}
	if s.Overlay {
		l.AddSeries(s.Name, data,
			charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed"}),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
		return
	}
	l.AddSeries(s.Name, data, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
}

// klineData orders each candle as echarts expects: open, close, low, high.
func klineData(s chart.Series, index map[string]int, n int) []opts.KlineData {
	data := make([]opts.KlineData, n)
	for _, p := range s.Points {
		data[index[util.FormatDate(p.Date)]] = opts.KlineData{Value: [4]float64{p.Open, p.Close, p.Low, p.High}}
	}
	return data
}

func barData(s chart.Series, index map[string]int, n int) []opts.BarData {
	data := make([]opts.BarData, n)
	for _, p := range s.Points {
		data[index[util.FormatDate(p.Date)]] = opts.BarData{Value: p.Value}
	}
	return data
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func slug(title string) string {
	s := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if s == "" {
		return "chart"
	}
	return s
}
