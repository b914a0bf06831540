package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/BuchardsVault/ChartFlow/customerrors"
	"github.com/BuchardsVault/ChartFlow/model"
	"github.com/BuchardsVault/ChartFlow/util"
)

// CSVMarketService serves history from <dir>/<SYMBOL>.csv files. A
// missing file means no data for that symbol.
type CSVMarketService struct {
	dir string
}

func NewCSVMarketService(dir string) MarketService {
	return &CSVMarketService{dir: dir}
}

func (s *CSVMarketService) FetchHistory(_ context.Context, symbol, start, end string) (model.PriceSeries, error) {
	from, to, err := parseRange(start, end)
	if err != nil {
		return model.PriceSeries{}, err
	}

	if symbol == "" || symbol == ".." || strings.ContainsAny(symbol, `/\`) {
		return model.PriceSeries{}, fmt.Errorf("%w: %q is not a valid symbol", customerrors.ErrBadAssetSpecification, symbol)
	}

	path := filepath.Join(s.dir, symbol+".csv")
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("path", path).Msg("no csv for symbol")
		return model.PriceSeries{Symbol: symbol}, nil
	}
	if err != nil {
		return model.PriceSeries{}, err
	}
	defer f.Close()

	all, err := util.ReadPriceCSV(f, symbol, util.MarketLocation)
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("%s: %w", path, err)
	}
	sort.SliceStable(all.Bars, func(i, j int) bool { return all.Bars[i].Date.Before(all.Bars[j].Date) })

	series := model.PriceSeries{Symbol: symbol, Columns: all.Columns}
	for _, bar := range all.Bars {
		if bar.Date.Before(from) || bar.Date.After(to) {
			continue
		}
		series.Bars = append(series.Bars, bar)
	}
	return series, nil
}
