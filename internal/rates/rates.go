// Package rates supplies the BTC to USD conversion rate used by the wallet
// display path. The rate comes from the public blockchain.info ticker and is
// cached so a burst of wallet reads does not hammer the feed. A feed outage
// surfaces as ErrUnavailable and never affects the transfer core.
package rates

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var ErrUnavailable = errors.New("conversion rate unavailable")

const cacheKey = "rates:btc_usd"

type Converter interface {
	BTCToUSD(ctx context.Context) (decimal.Decimal, error)
}

// RateCache stores the last fetched rate for a bounded time.
type RateCache interface {
	Get(ctx context.Context) (decimal.Decimal, bool)
	Set(ctx context.Context, rate decimal.Decimal, ttl time.Duration)
}

type tickerEntry struct {
	Last json.Number `json:"last"`
}

// TickerConverter reads the blockchain.info ticker payload
// ({"USD":{"last":...}, ...}) over HTTP.
type TickerConverter struct {
	url    string
	client *http.Client
	cache  RateCache
	ttl    time.Duration
}

func NewTickerConverter(url string, cache RateCache, ttl time.Duration) *TickerConverter {
	return &TickerConverter{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
		cache:  cache,
		ttl:    ttl,
	}
}

func (c *TickerConverter) BTCToUSD(ctx context.Context) (decimal.Decimal, error) {
	if c.cache != nil {
		if rate, ok := c.cache.Get(ctx); ok {
			return rate, nil
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return decimal.Decimal{}, ErrUnavailable
	}
	resp, err := c.client.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("url", c.url).Msg("ticker fetch failed")
		return decimal.Decimal{}, ErrUnavailable
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Str("url", c.url).Msg("ticker returned non-200")
		return decimal.Decimal{}, ErrUnavailable
	}
	var payload map[string]tickerEntry
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Decimal{}, ErrUnavailable
	}
	entry, ok := payload["USD"]
	if !ok {
		return decimal.Decimal{}, ErrUnavailable
	}
	rate, err := decimal.NewFromString(entry.Last.String())
	if err != nil || rate.Sign() <= 0 {
		return decimal.Decimal{}, ErrUnavailable
	}
	if c.cache != nil {
		c.cache.Set(ctx, rate, c.ttl)
	}
	return rate, nil
}

// RedisCache shares the fetched rate across processes.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context) (decimal.Decimal, bool) {
	raw, err := c.client.Get(ctx, cacheKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("rate cache read failed")
		}
		return decimal.Decimal{}, false
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return rate, true
}

func (c *RedisCache) Set(ctx context.Context, rate decimal.Decimal, ttl time.Duration) {
	if err := c.client.Set(ctx, cacheKey, rate.String(), ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("rate cache write failed")
	}
}

// MemoryCache is the single-process fallback when Redis is not configured.
type MemoryCache struct {
	mu        sync.Mutex
	rate      decimal.Decimal
	expiresAt time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

func (c *MemoryCache) Get(_ context.Context) (decimal.Decimal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.expiresAt.IsZero() || time.Now().After(c.expiresAt) {
		return decimal.Decimal{}, false
	}
	return c.rate, true
}

func (c *MemoryCache) Set(_ context.Context, rate decimal.Decimal, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rate = rate
	c.expiresAt = time.Now().Add(ttl)
}
