package service

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	localCache "github.com/BuchardsVault/ChartFlow/cache"
	"github.com/BuchardsVault/ChartFlow/customerrors"
	"github.com/BuchardsVault/ChartFlow/model"
	"github.com/BuchardsVault/ChartFlow/util"
)

// HistoryClient is the upstream price source.
type HistoryClient interface {
	GetDailyHistory(ctx context.Context, symbol string, start, end time.Time) (model.PriceSeries, error)
}

// HistoryStore is an optional second-level cache shared across runs.
type HistoryStore interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	GetAsStruct(ctx context.Context, key string, dest any) (bool, error)
}

type MarketService interface {
	FetchHistory(ctx context.Context, symbol, start, end string) (model.PriceSeries, error)
}

type MarketServiceImpl struct {
	client HistoryClient
	store  HistoryStore
	ttl    time.Duration
}

// NewMarketService wires the client behind the in-process cache and, when
// store is non-nil, a shared store. Only non-empty series are cached.
func NewMarketService(client HistoryClient, store HistoryStore, ttl time.Duration) MarketService {
	return &MarketServiceImpl{client: client, store: store, ttl: ttl}
}

func (s *MarketServiceImpl) FetchHistory(ctx context.Context, symbol, start, end string) (model.PriceSeries, error) {
	from, to, err := parseRange(start, end)
	if err != nil {
		return model.PriceSeries{}, err
	}
	if to.Before(from) {
		return model.PriceSeries{Symbol: symbol}, nil
	}

	cacheKey := "history_" + symbol + "_" + start + "_" + end
	if cached, found := localCache.PriceHistoryCache.Get(cacheKey); found {
		log.Debug().Str("key", cacheKey).Msg("price history cache hit")
		return cached.(model.PriceSeries), nil
	}

	if s.store != nil {
		var series model.PriceSeries
		if ok, err := s.store.GetAsStruct(ctx, cacheKey, &series); ok {
			log.Debug().Str("key", cacheKey).Msg("price history store hit")
			localCache.PriceHistoryCache.Set(cacheKey, series, cache.DefaultExpiration)
			return series, nil
		} else if err != nil {
			log.Warn().Err(err).Str("key", cacheKey).Msg("price history store read failed")
		}
	}

	series, err := s.client.GetDailyHistory(ctx, symbol, from, to)
	if err != nil {
		return model.PriceSeries{}, err
	}
	series.Symbol = symbol

	if !series.Empty() {
		localCache.PriceHistoryCache.Set(cacheKey, series, cache.DefaultExpiration)
		if s.store != nil {
			if err := s.store.Set(ctx, cacheKey, series, s.ttl); err != nil {
				log.Warn().Err(err).Str("key", cacheKey).Msg("price history store write failed")
			}
		}
	}
	return series, nil
}

// parseRange parses inclusive YYYY-MM-DD bounds as market-timezone days.
func parseRange(start, end string) (time.Time, time.Time, error) {
	from, err := util.ParseDate(start, util.MarketLocation)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", customerrors.ErrBadDateClause, err)
	}
	to, err := util.ParseDate(end, util.MarketLocation)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", customerrors.ErrBadDateClause, err)
	}
	return from, to, nil
}
