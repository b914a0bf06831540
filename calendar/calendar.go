// Package calendar provides exchange trading calendars.
package calendar

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/aa"
	"github.com/rickar/cal/v2/us"
)

// TradingCalendar reports the days an exchange is open.
type TradingCalendar interface {
	// ValidDays returns the trading days in [start, end], oldest first,
	// as midnight times in start's location.
	ValidDays(start, end time.Time) []time.Time
}

// ExchangeCalendar is a weekday calendar with a fixed holiday list.
type ExchangeCalendar struct {
	Name     string
	business *cal.BusinessCalendar
}

// NYSE does not close on the Friday before a Saturday New Year's Day.
var nyseNewYear = &cal.Holiday{
	Name:     "New Year's Day",
	Month:    time.January,
	Day:      1,
	Observed: []cal.AltDay{{Day: time.Sunday, Offset: 1}},
	Func:     cal.CalcDayOfMonth,
}

// Juneteenth became an exchange holiday in 2022.
var nyseJuneteenth = &cal.Holiday{
	Name:      "Juneteenth",
	StartYear: 2022,
	Month:     time.June,
	Day:       19,
	Observed: []cal.AltDay{
		{Day: time.Saturday, Offset: -1},
		{Day: time.Sunday, Offset: 1},
	},
	Func: cal.CalcDayOfMonth,
}

// NewNYSE returns the New York Stock Exchange full-day holiday calendar.
func NewNYSE() *ExchangeCalendar {
	c := cal.NewBusinessCalendar()
	c.AddHoliday(
		nyseNewYear,
		us.MlkDay,
		us.PresidentsDay,
		aa.GoodFriday,
		us.MemorialDay,
		nyseJuneteenth,
		us.IndependenceDay,
		us.LaborDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	)
	return &ExchangeCalendar{Name: "NYSE", business: c}
}

func (c *ExchangeCalendar) IsTradingDay(day time.Time) bool {
	return c.business.IsWorkday(day)
}

func (c *ExchangeCalendar) ValidDays(start, end time.Time) []time.Time {
	return validDays(start, end, c.IsTradingDay)
}

// Weekdays treats every Monday to Friday as a trading day.
type Weekdays struct{}

func (Weekdays) ValidDays(start, end time.Time) []time.Time {
	return validDays(start, end, func(d time.Time) bool {
		wd := d.Weekday()
		return wd != time.Saturday && wd != time.Sunday
	})
}

func validDays(start, end time.Time, open func(time.Time) bool) []time.Time {
	day := truncateDay(start)
	last := truncateDay(end.In(start.Location()))

	var days []time.Time
	for !day.After(last) {
		if open(day) {
			days = append(days, day)
		}
		day = day.AddDate(0, 0, 1)
	}
	return days
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
