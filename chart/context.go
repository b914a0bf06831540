package chart

import (
	"math"
	"sort"
	"time"

	"github.com/BuchardsVault/ChartFlow/model"
	"github.com/BuchardsVault/ChartFlow/util"
)

// Point is one x position of a series. Overlay series only use Value.
type Point struct {
	Date  time.Time
	Open  float64
	High  float64
	Low   float64
	Close float64
	Value float64
}

// Series is one plotted line, bar set or candle set.
type Series struct {
	Name    string
	Type    Type
	Overlay bool
	Points  []Point
}

// Figure is the renderer-independent description of one chart.
type Figure struct {
	Title  string
	Type   Type
	Style  Style
	Series []Series
}

// Dates returns the union of all series dates, oldest first. Dates are
// matched by calendar day, so the same day in two locations counts once.
func (f *Figure) Dates() []time.Time {
	seen := make(map[string]struct{})
	var dates []time.Time
	for _, s := range f.Series {
		for _, p := range s.Points {
			key := util.FormatDate(p.Date)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			dates = append(dates, p.Date)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return util.FormatDate(dates[i]) < util.FormatDate(dates[j]) })
	return dates
}

// Context accumulates one chart. It is owned by the statement executor
// and handed to the renderer; nothing else keeps a reference.
type Context struct {
	defaults Style
	style    Style
	figure   *Figure
}

func NewContext(defaults Style) *Context {
	return &Context{defaults: defaults, style: defaults}
}

func (c *Context) Style() Style { return c.style }

// Apply merges theme, width, height and grid from options into the style.
func (c *Context) Apply(options map[string]any) error {
	style, err := c.style.merge(options)
	if err != nil {
		return err
	}
	c.style = style
	return nil
}

// Figure returns the open figure, or nil.
func (c *Context) Figure() *Figure { return c.figure }

func (c *Context) HasFigure() bool { return c.figure != nil }

// Open returns the open figure, creating it with the current style on
// first use.
func (c *Context) Open(t Type) *Figure {
	if c.figure == nil {
		c.figure = &Figure{Type: t, Style: c.style}
	}
	return c.figure
}

// Reset discards any open figure and restores the default style.
func (c *Context) Reset() {
	c.figure = nil
	c.style = c.defaults
}

// AddPrices appends one symbol's price history as a series of type t.
func (f *Figure) AddPrices(t Type, series model.PriceSeries) {
	points := make([]Point, len(series.Bars))
	for i, b := range series.Bars {
		points[i] = Point{Date: b.Date, Open: b.Open, High: b.High, Low: b.Low, Close: b.Close, Value: b.Close}
	}
	f.Series = append(f.Series, Series{Name: series.Symbol, Type: t, Points: points})
}

// AddOverlay appends a dashed line series. NaN values are skipped.
func (f *Figure) AddOverlay(name string, dates []time.Time, values []float64) {
	points := make([]Point, 0, len(values))
	for i, v := range values {
		if i >= len(dates) || math.IsNaN(v) {
			continue
		}
		points = append(points, Point{Date: dates[i], Value: v})
	}
	f.Series = append(f.Series, Series{Name: name, Type: Line, Overlay: true, Points: points})
}
