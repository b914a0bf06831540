package interpreter

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/BuchardsVault/ChartFlow/model"
	"github.com/BuchardsVault/ChartFlow/util"
)

var volumePrinter = message.NewPrinter(language.English)

// NormalizeTable formats a price series for display: canonical column
// order restricted to the columns present, dates as YYYY-MM-DD, prices
// with two decimals and volume with thousands separators (missing volume
// reads as 0).
func NormalizeTable(series model.PriceSeries, start, end string) model.Table {
	columns := make([]string, 0, len(model.CanonicalColumns))
	for _, c := range model.CanonicalColumns {
		if series.HasColumn(c) {
			columns = append(columns, c)
		}
	}

	table := model.Table{
		Title:   fmt.Sprintf("=== %s (%s → %s) ===", series.Symbol, start, end),
		Headers: append([]string{"Date"}, columns...),
		Rows:    make([][]string, 0, len(series.Bars)),
	}
	for _, bar := range series.Bars {
		row := make([]string, 0, len(table.Headers))
		row = append(row, util.FormatDate(bar.Date))
		for _, c := range columns {
			row = append(row, formatCell(bar, c))
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func formatCell(bar model.Bar, column string) string {
	switch column {
	case model.ColOpen:
		return formatPrice(bar.Open)
	case model.ColHigh:
		return formatPrice(bar.High)
	case model.ColLow:
		return formatPrice(bar.Low)
	case model.ColClose:
		return formatPrice(bar.Close)
	case model.ColAdjClose:
		if bar.AdjClose == nil {
			return ""
		}
		return formatPrice(*bar.AdjClose)
	case model.ColVolume:
		var volume int64
		if bar.Volume != nil {
			volume = *bar.Volume
		}
		return volumePrinter.Sprintf("%d", volume)
	}
	return ""
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
