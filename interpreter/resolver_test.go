package interpreter

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuchardsVault/ChartFlow/ast"
	"github.com/BuchardsVault/ChartFlow/calendar"
	"github.com/BuchardsVault/ChartFlow/customerrors"
)

var newYork = func() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		panic(err)
	}
	return loc
}()

// Wednesday 2024-06-12, mid-session in New York.
func fixedNow() time.Time {
	return time.Date(2024, time.June, 12, 14, 0, 0, 0, newYork)
}

func newTestResolver() *DateResolver {
	return NewDateResolver(calendar.Weekdays{}, fixedNow, newYork)
}

func TestResolveExplicitRange(t *testing.T) {
	r := newTestResolver()
	start, end, err := r.Resolve(&ast.ExplicitRange{Start: "2024-01-05", End: "not-validated"})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-05", start)
	assert.Equal(t, "not-validated", end)

	_, _, err = r.Resolve(&ast.ExplicitRange{Start: "2024-01-05"})
	assert.True(t, errors.Is(err, customerrors.ErrBadDateClause))
}

func TestResolveCalendarYear(t *testing.T) {
	for _, year := range []int{1999, 2024} {
		start, end, err := newTestResolver().Resolve(&ast.CalendarYear{Year: year})
		require.NoError(t, err)
		assert.Equal(t, time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02"), start)
		assert.Equal(t, time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC).Format("2006-01-02"), end)
	}
}

func TestResolveCalendarUnits(t *testing.T) {
	tests := []struct {
		amount int
		unit   string
		start  string
	}{
		{2, "weeks", "2024-05-29"},
		{1, "Week", "2024-06-05"},
		{3, "months", "2024-03-12"},
		{1, "YEAR", "2023-06-12"},
	}
	for _, tt := range tests {
		start, end, err := newTestResolver().Resolve(&ast.RelativeAmount{Amount: tt.amount, Unit: tt.unit})
		require.NoError(t, err, tt.unit)
		assert.Equal(t, tt.start, start, tt.unit)
		assert.Equal(t, "2024-06-12", end, tt.unit)
	}
}

func TestResolveUnknownUnit(t *testing.T) {
	_, _, err := newTestResolver().Resolve(&ast.RelativeAmount{Amount: 3, Unit: "fortnights"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, customerrors.ErrUnknownTimeUnit))
	assert.Contains(t, err.Error(), "fortnights")
}

func TestResolveBadClause(t *testing.T) {
	_, _, err := newTestResolver().Resolve(nil)
	assert.True(t, errors.Is(err, customerrors.ErrBadDateClause))
}

func TestResolveTradingDays(t *testing.T) {
	r := newTestResolver()

	start, end, err := r.Resolve(&ast.RelativeAmount{Amount: 5, Unit: "days"})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-06", start)
	assert.Equal(t, "2024-06-12", end)

	start, end, err = r.Resolve(&ast.RelativeAmount{Amount: 1, Unit: "Day"})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-12", start)
	assert.Equal(t, "2024-06-12", end)
}

func TestResolveTradingDaysFromWeekend(t *testing.T) {
	sunday := func() time.Time { return time.Date(2024, time.June, 16, 10, 0, 0, 0, newYork) }
	r := NewDateResolver(calendar.Weekdays{}, sunday, newYork)

	start, end, err := r.Resolve(&ast.RelativeAmount{Amount: 2, Unit: "days"})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-13", start)
	assert.Equal(t, "2024-06-14", end)
}

func TestResolveTradingDaysOverNYSEYearEnd(t *testing.T) {
	monday := func() time.Time { return time.Date(2022, time.January, 3, 14, 0, 0, 0, newYork) }
	r := NewDateResolver(calendar.NewNYSE(), monday, newYork)

	start, end, err := r.Resolve(&ast.RelativeAmount{Amount: 3, Unit: "days"})
	require.NoError(t, err)
	assert.Equal(t, "2021-12-30", start)
	assert.Equal(t, "2022-01-03", end)

	july := func() time.Time { return time.Date(2026, time.July, 6, 10, 0, 0, 0, newYork) }
	start, end, err = NewDateResolver(calendar.NewNYSE(), july, newYork).Resolve(&ast.RelativeAmount{Amount: 2, Unit: "days"})
	require.NoError(t, err)
	assert.Equal(t, "2026-07-02", start)
	assert.Equal(t, "2026-07-06", end)
}

func TestResolveTradingDaysUsesMarketTimezone(t *testing.T) {
	// 01:00 UTC on Thursday is still Wednesday evening in New York.
	utcNow := func() time.Time { return time.Date(2024, time.June, 13, 1, 0, 0, 0, time.UTC) }
	r := NewDateResolver(calendar.Weekdays{}, utcNow, newYork)

	_, end, err := r.Resolve(&ast.RelativeAmount{Amount: 1, Unit: "days"})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-12", end)
}

func TestResolveInsufficientTradingDays(t *testing.T) {
	_, _, err := newTestResolver().Resolve(&ast.RelativeAmount{Amount: 1000, Unit: "days"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, customerrors.ErrInsufficientTradingDays))
	assert.Contains(t, err.Error(), "trading days available")
}

func TestResolveAssets(t *testing.T) {
	env := NewEnvironment()
	env.Set("one", String("AAPL"))
	env.Set("many", List{String("MSFT"), String("AAPL"), String("GOOG")})

	tests := []struct {
		name string
		spec ast.AssetSpec
		want []string
	}{
		{"string variable", &ast.VariableRef{Name: "one"}, []string{"AAPL"}},
		{"list variable", &ast.VariableRef{Name: "many"}, []string{"MSFT", "AAPL", "GOOG"}},
		{"unbound variable is a ticker", &ast.VariableRef{Name: "TSLA"}, []string{"TSLA"}},
		{"single symbol", &ast.SingleSymbol{Symbol: `"^GSPC"`}, []string{"^GSPC"}},
		{"symbol list", &ast.SymbolList{Symbols: []string{`"B"`, "A", `"C"`}}, []string{"B", "A", "C"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveAssets(tt.spec, env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveAssetsInvalidVariable(t *testing.T) {
	env := NewEnvironment()
	env.Set("n", Integer(5))
	env.Set("mixed", List{String("AAPL"), Integer(1)})
	env.Set("empty", List{})

	for _, name := range []string{"n", "mixed", "empty", "sma"} {
		_, err := ResolveAssets(&ast.VariableRef{Name: name}, env)
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, customerrors.ErrInvalidAssetVariable), name)
	}
}

func TestResolveAssetsBadSpec(t *testing.T) {
	env := NewEnvironment()
	for _, spec := range []ast.AssetSpec{nil, &ast.SymbolList{}, &ast.SingleSymbol{Symbol: `""`}} {
		_, err := ResolveAssets(spec, env)
		assert.True(t, errors.Is(err, customerrors.ErrBadAssetSpecification))
	}
}
