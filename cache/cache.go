package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// PriceHistoryCache holds fetched series for the life of one run, keyed
// by symbol and date range.
var PriceHistoryCache = cache.New(1*time.Hour, 10*time.Minute)
