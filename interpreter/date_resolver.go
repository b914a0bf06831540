package interpreter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/BuchardsVault/ChartFlow/ast"
	"github.com/BuchardsVault/ChartFlow/calendar"
	"github.com/BuchardsVault/ChartFlow/customerrors"
	"github.com/BuchardsVault/ChartFlow/util"
)

// tradingLookbackMonths bounds how far back "last N days" can reach.
const tradingLookbackMonths = 18

// DateResolver turns date clauses into concrete YYYY-MM-DD ranges.
type DateResolver struct {
	calendar calendar.TradingCalendar
	now      func() time.Time
	market   *time.Location
}

// NewDateResolver builds a resolver. A nil now defaults to time.Now and a
// nil market location to the exchange timezone.
func NewDateResolver(cal calendar.TradingCalendar, now func() time.Time, market *time.Location) *DateResolver {
	if now == nil {
		now = time.Now
	}
	if market == nil {
		market = util.MarketLocation
	}
	return &DateResolver{calendar: cal, now: now, market: market}
}

func (r *DateResolver) Resolve(clause ast.DateClause) (start, end string, err error) {
	switch c := clause.(type) {
	case *ast.ExplicitRange:
		if c.Start == "" || c.End == "" {
			return "", "", fmt.Errorf("%w: range needs both a start and an end", customerrors.ErrBadDateClause)
		}
		return c.Start, c.End, nil

	case *ast.CalendarYear:
		y := strconv.Itoa(c.Year)
		return y + "-01-01", y + "-12-31", nil

	case *ast.RelativeAmount:
		return r.resolveRelative(c.Amount, c.Unit)
	}

	return "", "", customerrors.ErrBadDateClause
}

func (r *DateResolver) resolveRelative(amount int, unit string) (string, string, error) {
	unit = strings.ToLower(unit)
	if strings.HasPrefix(unit, "day") {
		return r.lastTradingDays(amount)
	}

	today := util.StartOfDay(r.now().In(r.market))
	var start time.Time
	switch {
	case strings.HasPrefix(unit, "week"):
		start = today.AddDate(0, 0, -7*amount)
	case strings.HasPrefix(unit, "month"):
		start = util.AddMonths(today, -amount)
	case strings.HasPrefix(unit, "year"):
		start = util.AddYears(today, -amount)
	default:
		return "", "", fmt.Errorf("%w '%s'", customerrors.ErrUnknownTimeUnit, unit)
	}
	return util.FormatDate(start), util.FormatDate(today), nil
}

// lastTradingDays returns the n most recent trading days up to and
// including today in the market timezone.
func (r *DateResolver) lastTradingDays(n int) (string, string, error) {
	today := util.StartOfDay(r.now().In(r.market))
	window := r.calendar.ValidDays(util.AddMonths(today, -tradingLookbackMonths), today.AddDate(0, 0, 1))

	days := make([]time.Time, 0, len(window))
	for _, d := range window {
		if !d.After(today) {
			days = append(days, d)
		}
	}

	if n <= 0 || len(days) < n {
		return "", "", fmt.Errorf("%w: only %d trading days available", customerrors.ErrInsufficientTradingDays, len(days))
	}
	return util.FormatDate(days[len(days)-n]), util.FormatDate(days[len(days)-1]), nil
}
