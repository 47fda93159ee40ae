package coingecko

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"crypto-portfolio-go/internal/config"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// PriceFeed defines the market-data operations the engine depends on.
// Implementations must tolerate partial responses: ids the provider does not
// know are simply absent from the result.
type PriceFeed interface {
	Ping() error
	GetPrices(coinIDs []string) (map[string]float64, error)
	SearchCoin(symbol string) (string, error)
	GetCoinHistory(coinID string, days int) ([][]float64, error)
}

// RestClient is a client for the CoinGecko REST API.
// It implements the PriceFeed interface.
type RestClient struct {
	client   *resty.Client
	currency string
	logger   *zap.Logger
	limiter  *rate.Limiter
}

// ensure RestClient implements the interface
var _ PriceFeed = (*RestClient)(nil)

// NewRestClient creates a new CoinGecko REST API client.
func NewRestClient(cfg *config.CoinGecko, logger *zap.Logger) *RestClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)

	// Initialize the rate limiter
	// rate.Limit is requests per second.
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst)

	return &RestClient{
		client:   client,
		currency: cfg.Currency,
		logger:   logger,
		limiter:  limiter,
	}
}

// doRequest handles the actual request execution with rate limiting and retry logic.
func (c *RestClient) doRequest(ctx context.Context, method, url string, req *resty.Request) (*resty.Response, error) {
	var resp *resty.Response
	var err error
	const maxRetries = 3

	for i := 0; i < maxRetries; i++ {
		// Wait for the rate limiter
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait failed: %w", err)
		}

		c.logger.Debug("Executing request", zap.String("method", method), zap.String("url", c.client.BaseURL+url))
		resp, err = req.Execute(method, url)

		if err == nil && !resp.IsError() {
			return resp, nil // Success
		}

		// Analyze error and decide whether to retry
		shouldRetry := false
		var retryAfter time.Duration

		if resp != nil {
			statusCode := resp.StatusCode()
			if statusCode == http.StatusTooManyRequests {
				shouldRetry = true
				retryAfterHeader := resp.Header().Get("Retry-After")
				if seconds, err := strconv.Atoi(retryAfterHeader); err == nil {
					retryAfter = time.Duration(seconds) * time.Second
				}
			} else if statusCode >= 500 { // Server errors
				shouldRetry = true
			}
		} else { // Network or other client-side errors
			shouldRetry = true
		}

		if !shouldRetry {
			return nil, fmt.Errorf("request failed with status %s: %s", resp.Status(), resp.String())
		}

		// If we should retry, calculate wait time
		if retryAfter == 0 {
			// Exponential backoff: 1s, 2s, 4s
			retryAfter = time.Duration(math.Pow(2, float64(i))) * time.Second
		}

		c.logger.Warn("Request failed, retrying...",
			zap.Int("attempt", i+1),
			zap.Duration("retry_after", retryAfter),
			zap.Error(err),
		)

		select {
		case <-time.After(retryAfter):
			continue
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", maxRetries, err)
}

// Ping checks connectivity to the CoinGecko API.
func (c *RestClient) Ping() error {
	req := c.client.R()
	ctx := context.Background()

	if _, err := c.doRequest(ctx, "GET", "/ping", req); err != nil {
		c.logger.Error("Failed to ping CoinGecko", zap.Error(err))
		return fmt.Errorf("failed to ping CoinGecko: %w", err)
	}
	return nil
}

// GetPrices fetches the current price for the given coin ids, keyed by id.
// Ids unknown to the provider are silently absent from the result.
func (c *RestClient) GetPrices(coinIDs []string) (map[string]float64, error) {
	if len(coinIDs) == 0 {
		return map[string]float64{}, nil
	}

	// Response shape is {"bitcoin": {"usd": 40000.0}, ...}
	var result map[string]map[string]float64

	req := c.client.R().
		SetQueryParam("ids", strings.Join(coinIDs, ",")).
		SetQueryParam("vs_currencies", c.currency).
		SetResult(&result)
	ctx := context.Background()

	if _, err := c.doRequest(ctx, "GET", "/simple/price", req); err != nil {
		return nil, fmt.Errorf("failed to get prices: %w", err)
	}

	prices := make(map[string]float64, len(result))
	for id, quotes := range result {
		if price, ok := quotes[c.currency]; ok {
			prices[id] = price
		}
	}
	return prices, nil
}

// searchResponse represents the response from the /search endpoint.
type searchResponse struct {
	Coins []struct {
		ID     string `json:"id"`
		Symbol string `json:"symbol"`
		Name   string `json:"name"`
	} `json:"coins"`
}

// SearchCoin resolves a user-facing symbol to a CoinGecko coin id. It
// returns the first exact symbol match, or an empty string when the symbol
// is unknown; assets without a resolved id fall back to stale pricing.
func (c *RestClient) SearchCoin(symbol string) (string, error) {
	var result searchResponse

	req := c.client.R().
		SetQueryParam("query", symbol).
		SetResult(&result)
	ctx := context.Background()

	if _, err := c.doRequest(ctx, "GET", "/search", req); err != nil {
		return "", fmt.Errorf("failed to search coin %s: %w", symbol, err)
	}

	for _, coin := range result.Coins {
		if strings.EqualFold(coin.Symbol, symbol) {
			return coin.ID, nil
		}
	}
	return "", nil
}

// marketChartResponse represents the response from the market_chart endpoint.
type marketChartResponse struct {
	Prices [][]float64 `json:"prices"`
}

// GetCoinHistory fetches daily historical prices for a coin as a list of
// [timestamp_ms, price] pairs.
func (c *RestClient) GetCoinHistory(coinID string, days int) ([][]float64, error) {
	var result marketChartResponse

	req := c.client.R().
		SetQueryParam("vs_currency", c.currency).
		SetQueryParam("days", strconv.Itoa(days)).
		SetQueryParam("interval", "daily").
		SetResult(&result)
	ctx := context.Background()

	if _, err := c.doRequest(ctx, "GET", "/coins/"+coinID+"/market_chart", req); err != nil {
		return nil, fmt.Errorf("failed to get history for %s: %w", coinID, err)
	}

	return result.Prices, nil
}
