package util

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuchardsVault/ChartFlow/model"
)

const yahooCSV = `Date,Open,High,Low,Close,Adj Close,Volume
2024-01-02,187.15,188.44,183.89,185.64,184.94,82488700
2024-01-03,null,null,null,null,null,null
2024-01-04,182.15,183.09,180.88,181.91,181.22,71983600
`

func TestReadPriceCSV(t *testing.T) {
	series, err := ReadPriceCSV(strings.NewReader(yahooCSV), "AAPL", time.UTC)
	require.NoError(t, err)

	assert.Equal(t, "AAPL", series.Symbol)
	assert.Equal(t, model.CanonicalColumns, series.Columns)
	require.Len(t, series.Bars, 2)

	bar := series.Bars[1]
	assert.Equal(t, "2024-01-04", FormatDate(bar.Date))
	assert.Equal(t, 182.15, bar.Open)
	assert.Equal(t, 181.91, bar.Close)
	require.NotNil(t, bar.AdjClose)
	assert.Equal(t, 181.22, *bar.AdjClose)
	require.NotNil(t, bar.Volume)
	assert.Equal(t, int64(71983600), *bar.Volume)
}

func TestReadPriceCSVCloseOnly(t *testing.T) {
	series, err := ReadPriceCSV(strings.NewReader("Date,Close\n2024-01-02,10.5\n"), "X", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, []string{model.ColClose}, series.Columns)
	require.Len(t, series.Bars, 1)
	assert.Equal(t, 10.5, series.Bars[0].Open)
	assert.Nil(t, series.Bars[0].Volume)
}

func TestReadPriceCSVMissingColumns(t *testing.T) {
	_, err := ReadPriceCSV(strings.NewReader("Date,Open\n2024-01-02,1\n"), "X", time.UTC)
	assert.ErrorContains(t, err, "missing required columns")

	_, err = ReadPriceCSV(strings.NewReader(""), "X", time.UTC)
	assert.ErrorContains(t, err, "failed to read CSV header")
}
