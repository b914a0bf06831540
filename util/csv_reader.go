package util

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/BuchardsVault/ChartFlow/model"
)

// ReadPriceCSV parses daily history in the layout of a Yahoo Finance
// download: a header row naming Date and Close plus any of Open, High,
// Low, Adj Close and Volume. Rows without a usable date or close are
// skipped.
func ReadPriceCSV(r io.Reader, symbol string, loc *time.Location) (model.PriceSeries, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("failed to read CSV header: %w", err)
	}

	headerMap := make(map[string]int)
	for i, name := range header {
		headerMap[strings.TrimSpace(name)] = i
	}

	dateIdx, hasDate := headerMap["Date"]
	closeIdx, hasClose := headerMap[model.ColClose]
	if !hasDate || !hasClose {
		return model.PriceSeries{}, fmt.Errorf("missing required columns: Date or Close")
	}

	series := model.PriceSeries{Symbol: symbol}
	for _, c := range model.CanonicalColumns {
		if _, ok := headerMap[c]; ok {
			series.Columns = append(series.Columns, c)
		}
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return model.PriceSeries{}, fmt.Errorf("error reading csv record: %w", err)
		}

		date, err := ParseDate(record[dateIdx], loc)
		if err != nil {
			continue
		}
		closePrice, ok := field(record, closeIdx)
		if !ok {
			continue
		}

		bar := model.Bar{Date: date, Open: closePrice, High: closePrice, Low: closePrice, Close: closePrice}
		if idx, ok := headerMap[model.ColOpen]; ok {
			if v, ok := field(record, idx); ok {
				bar.Open = v
			}
		}
		if idx, ok := headerMap[model.ColHigh]; ok {
			if v, ok := field(record, idx); ok {
				bar.High = v
			}
		}
		if idx, ok := headerMap[model.ColLow]; ok {
			if v, ok := field(record, idx); ok {
				bar.Low = v
			}
		}
		if idx, ok := headerMap[model.ColAdjClose]; ok {
			if v, ok := field(record, idx); ok {
				bar.AdjClose = &v
			}
		}
		if idx, ok := headerMap[model.ColVolume]; ok && idx < len(record) {
			if v, err := strconv.ParseInt(strings.TrimSpace(record[idx]), 10, 64); err == nil {
				bar.Volume = &v
			}
		}
		series.Bars = append(series.Bars, bar)
	}

	return series, nil
}

func field(record []string, idx int) (float64, bool) {
	if idx >= len(record) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(record[idx]), 64)
	return v, err == nil
}
