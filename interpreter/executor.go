// Package interpreter executes parsed ChartFlow programs.
package interpreter

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/BuchardsVault/ChartFlow/ast"
	"github.com/BuchardsVault/ChartFlow/calendar"
	"github.com/BuchardsVault/ChartFlow/chart"
	"github.com/BuchardsVault/ChartFlow/customerrors"
	"github.com/BuchardsVault/ChartFlow/model"
	"github.com/BuchardsVault/ChartFlow/util"
)

// MarketData fetches daily price history for [start, end], both
// YYYY-MM-DD and inclusive. An empty series is not an error.
type MarketData interface {
	FetchHistory(ctx context.Context, symbol, start, end string) (model.PriceSeries, error)
}

// Renderer draws tables and charts.
type Renderer interface {
	RenderTable(table model.Table) error
	// RenderChart adds one symbol's series to the figure held by ctx.
	RenderChart(ctx *chart.Context, series model.PriceSeries, chartType chart.Type, options map[string]any) error
	// FinalizeChart lays out and displays the open figure.
	FinalizeChart(ctx *chart.Context) error
}

type Options struct {
	// Dates defaults to a resolver over the NYSE calendar and time.Now.
	Dates *DateResolver
	// ChartDefaults defaults to chart.DefaultStyle().
	ChartDefaults *chart.Style
	// Out receives notices; defaults to os.Stdout.
	Out io.Writer
}

// Executor runs statements one at a time, in order. It owns the
// environment and the chart context.
type Executor struct {
	env      *Environment
	chart    *chart.Context
	dates    *DateResolver
	market   MarketData
	renderer Renderer
	out      io.Writer
}

func NewExecutor(market MarketData, renderer Renderer, opts Options) *Executor {
	if opts.Dates == nil {
		opts.Dates = NewDateResolver(calendar.NewNYSE(), nil, nil)
	}
	defaults := chart.DefaultStyle()
	if opts.ChartDefaults != nil {
		defaults = *opts.ChartDefaults
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &Executor{
		env:      NewEnvironment(),
		chart:    chart.NewContext(defaults),
		dates:    opts.Dates,
		market:   market,
		renderer: renderer,
		out:      opts.Out,
	}
}

func (e *Executor) Env() *Environment { return e.env }

// Run executes the program. The first failing statement aborts the run;
// its error is returned prefixed with the statement's line.
func (e *Executor) Run(ctx context.Context, program *ast.Program) error {
	for _, stmt := range program.Statements {
		if err := e.Execute(ctx, stmt); err != nil {
			return fmt.Errorf("line %d: %w", stmt.Position().Line, err)
		}
	}
	return nil
}

func (e *Executor) Execute(ctx context.Context, stmt ast.Statement) error {
	if stmt == nil {
		return fmt.Errorf("%w <nil>", customerrors.ErrUnhandledStatement)
	}
	log.Debug().
		Str("statement", fmt.Sprintf("%T", stmt)).
		Int("line", stmt.Position().Line).
		Msg("executing statement")

	switch s := stmt.(type) {
	case *ast.LetStmt:
		v, err := Evaluate(s.Expr, e.env)
		if err != nil {
			return err
		}
		e.env.Set(s.Name, v)
		return nil

	case *ast.ClearStmt:
		if len(s.Vars) > 0 {
			e.env.Remove(s.Vars...)
		} else {
			e.env.Reset()
		}
		e.chart.Reset()
		return nil

	case *ast.ShowStmt:
		return e.show(ctx, s)

	case *ast.ChartStmt:
		return e.plot(ctx, s)
	}

	return fmt.Errorf("%w %T", customerrors.ErrUnhandledStatement, stmt)
}

func (e *Executor) show(ctx context.Context, s *ast.ShowStmt) error {
	symbols, err := ResolveAssets(s.Asset, e.env)
	if err != nil {
		return err
	}
	start, end, err := e.dates.Resolve(s.Date)
	if err != nil {
		return err
	}

	for _, sym := range symbols {
		series, err := e.market.FetchHistory(ctx, sym, start, end)
		if err != nil {
			return err
		}
		if series.Empty() {
			fmt.Fprintf(e.out, "%s: no data (%s → %s)\n", sym, start, end)
			continue
		}
		if err := e.renderer.RenderTable(NormalizeTable(series, start, end)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) plot(ctx context.Context, s *ast.ChartStmt) error {
	symbols, err := ResolveAssets(s.Asset, e.env)
	if err != nil {
		return err
	}
	start, end, err := e.dates.Resolve(s.Date)
	if err != nil {
		return err
	}
	chartType, err := chart.ParseType(s.ChartType)
	if err != nil {
		return err
	}

	options := make(map[string]Value, len(s.Options))
	natives := make(map[string]any, len(s.Options))
	for _, opt := range s.Options {
		v, err := Evaluate(opt.Value, e.env)
		if err != nil {
			return err
		}
		options[opt.Key] = v
		natives[opt.Key] = toNative(v)
	}

	// Whatever happens below, the next chart statement starts fresh.
	defer e.chart.Reset()

	if err := e.chart.Apply(natives); err != nil {
		return err
	}
	period, overlay := smaPeriod(options)

	for _, sym := range symbols {
		series, err := e.market.FetchHistory(ctx, sym, start, end)
		if err != nil {
			return err
		}
		if series.Empty() {
			return fmt.Errorf("%w %s", customerrors.ErrNoDataForSymbol, sym)
		}
		if err := e.renderer.RenderChart(e.chart, series, chartType, natives); err != nil {
			return err
		}
		if overlay && e.chart.HasFigure() {
			dates := make([]time.Time, len(series.Bars))
			for i, b := range series.Bars {
				dates[i] = b.Date
			}
			e.chart.Figure().AddOverlay(
				fmt.Sprintf("SMA %d", period), dates, util.SimpleMovingAverage(series.Closes(), period))
		}
	}

	if e.chart.HasFigure() {
		return e.renderer.FinalizeChart(e.chart)
	}
	return nil
}

// smaPeriod reads the "sma" option. Anything but a positive integer is
// ignored.
func smaPeriod(options map[string]Value) (int, bool) {
	v, ok := options["sma"]
	if !ok {
		return 0, false
	}
	var period int64
	switch p := v.(type) {
	case Integer:
		period = int64(p)
	case String:
		period, _ = strconv.ParseInt(string(p), 10, 64)
	}
	if period <= 0 {
		log.Warn().Str("sma", v.String()).Msg("ignoring sma option: period must be a positive integer")
		return 0, false
	}
	return int(period), true
}
