// Package exchangerate quotes crypto market prices from CoinGecko.
package exchangerate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jubbslineu/tokensale/internal/application/sale/usecases"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
)

const (
	coingeckoBaseURL = "https://api.coingecko.com/api/v3/simple/price"
	// Cache duration for a fetched price
	cacheDuration = 5 * time.Minute
	// Maximum cache age for fallback (15 minutes)
	// If cache is older than this, we refuse to use it even if API fails
	maxCacheAge = 15 * time.Minute
	// HTTP request timeout
	requestTimeout = 10 * time.Second
	// Maximum response body size for exchange rate API (64KB)
	maxResponseSize = 64 << 10
)

// CoinGecko names coins by slug, not ticker.
var coinIDs = map[string]string{
	"TON": "the-open-network",
	"BTC": "bitcoin",
	"ETH": "ethereum",
}

type cachedPrice struct {
	price     decimal.Decimal
	fetchedAt time.Time
}

// CoinGeckoService implements the sale use cases' ExchangeRateService.
type CoinGeckoService struct {
	httpClient *http.Client
	apiKey     string
	logger     logger.Interface

	mu    sync.RWMutex
	cache map[string]cachedPrice
}

func NewCoinGeckoService(apiKey string, logger logger.Interface) *CoinGeckoService {
	return &CoinGeckoService{
		httpClient: &http.Client{Timeout: requestTimeout},
		apiKey:     apiKey,
		logger:     logger,
		cache:      make(map[string]cachedPrice),
	}
}

var _ usecases.ExchangeRateService = (*CoinGeckoService)(nil)

// USDPrice returns the USD price of one unit of the given crypto currency.
// Prices are cached for a few minutes; on fetch failure a cached price is
// served as long as it is not too stale.
func (s *CoinGeckoService) USDPrice(ctx context.Context, currency string) (decimal.Decimal, error) {
	currency = strings.ToUpper(currency)
	now := time.Now().UTC()

	s.mu.RLock()
	cached, ok := s.cache[currency]
	s.mu.RUnlock()

	if ok && now.Sub(cached.fetchedAt) < cacheDuration {
		return cached.price, nil
	}

	price, err := s.fetchPrice(ctx, currency)
	if err != nil {
		if ok && now.Sub(cached.fetchedAt) < maxCacheAge {
			s.logger.Warnw("failed to fetch price, using cached value",
				"currency", currency,
				"error", err,
				"cached_price", cached.price.String(),
				"cache_age", now.Sub(cached.fetchedAt))
			return cached.price, nil
		}
		return decimal.Zero, fmt.Errorf("failed to get %s price: %w", currency, err)
	}

	s.mu.Lock()
	s.cache[currency] = cachedPrice{price: price, fetchedAt: now}
	s.mu.Unlock()

	return price, nil
}

func (s *CoinGeckoService) fetchPrice(ctx context.Context, currency string) (decimal.Decimal, error) {
	coinID, ok := coinIDs[currency]
	if !ok {
		return decimal.Zero, fmt.Errorf("unsupported currency: %s", currency)
	}

	query := url.Values{}
	query.Set("ids", coinID)
	query.Set("vs_currencies", "usd")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		coingeckoBaseURL+"?"+query.Encode(), nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to create request: %w", err)
	}
	if s.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to fetch price: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var data map[string]struct {
		USD decimal.Decimal `json:"usd"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&data); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode response: %w", err)
	}

	quote, ok := data[coinID]
	if !ok || !quote.USD.IsPositive() {
		return decimal.Zero, fmt.Errorf("invalid price from API for %s", currency)
	}

	s.logger.Infow("fetched USD price",
		"currency", currency, "price", quote.USD.String())
	return quote.USD, nil
}
