// Package coingecko implements the market-data provider client:
// the full market listing and the per-coin 7-day price history.
package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"crypto_dash/internal/domain"
	"crypto_dash/internal/infra"
)

const (
	// DefaultBaseURL is the public CoinGecko v3 API root.
	DefaultBaseURL = "https://api.coingecko.com/api/v3"

	// Browser-like UA; the public API occasionally rejects bare Go clients.
	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Error taxonomy. Callers classify failures with errors.Is.
var (
	// ErrTransport covers network-level failures: unreachable host,
	// timeouts, broken reads.
	ErrTransport = errors.New("coingecko: transport error")

	// ErrDecode covers unexpected status codes and malformed payloads.
	ErrDecode = errors.New("coingecko: decode error")
)

// Client talks to the CoinGecko REST API.
// No internal retry: the refresh cadence is the retry policy.
type Client struct {
	baseURL    string
	apiKey     string
	pageSize   int
	httpClient *http.Client
	limiter    *infra.RateLimiter
	breaker    *infra.CircuitBreaker
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sends the CoinGecko demo API key with every request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithPageSize overrides the market listing page size (default 100).
func WithPageSize(n int) Option {
	return func(c *Client) { c.pageSize = n }
}

// WithRateLimit installs a request rate limit in requests per minute.
func WithRateLimit(perMinute float64) Option {
	return func(c *Client) { c.limiter = infra.NewRateLimiterPerMinute(perMinute) }
}

// WithHTTPClient replaces the underlying HTTP client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a CoinGecko client. An empty baseURL selects the
// public endpoint.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:  baseURL,
		pageSize: 100,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		breaker: infra.NewCircuitBreaker("coingecko", 5, 30*time.Second),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchMarkets retrieves the top coins by market cap, denominated in
// currency, including 24h/7d change and the 7-day sparkline.
func (c *Client) FetchMarkets(ctx context.Context, currency string) ([]domain.Coin, error) {
	query := url.Values{}
	query.Set("vs_currency", currency)
	query.Set("order", "market_cap_desc")
	query.Set("per_page", strconv.Itoa(c.pageSize))
	query.Set("page", "1")
	query.Set("sparkline", "true")
	query.Set("price_change_percentage", "24h,7d")

	body, err := c.get(ctx, "/coins/markets", query)
	if err != nil {
		return nil, err
	}

	var entries []marketEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("%w: markets payload: %v", ErrDecode, err)
	}

	coins := make([]domain.Coin, 0, len(entries))
	for _, e := range entries {
		coin := domain.Coin{
			ID:             e.ID,
			Name:           e.Name,
			Symbol:         e.Symbol,
			Image:          e.Image,
			CurrentPrice:   e.CurrentPrice,
			MarketCap:      e.MarketCap,
			MarketCapRank:  e.MarketCapRank,
			High24h:        e.High24h,
			Low24h:         e.Low24h,
			PriceChange24h: e.PriceChange24h,
			PriceChange7d:  e.PriceChange7d,
		}
		if e.Sparkline7d != nil {
			coin.Sparkline = e.Sparkline7d.Price
		}
		coins = append(coins, coin)
	}

	return coins, nil
}

// FetchMarketChart retrieves the trailing price history for one coin in
// the given currency and converts samples to display points.
func (c *Client) FetchMarketChart(ctx context.Context, id, currency string, days int) (domain.HistorySeries, error) {
	query := url.Values{}
	query.Set("vs_currency", currency)
	query.Set("days", strconv.Itoa(days))

	body, err := c.get(ctx, "/coins/"+url.PathEscape(id)+"/market_chart", query)
	if err != nil {
		return nil, err
	}

	var chart marketChartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("%w: market chart payload: %v", ErrDecode, err)
	}

	series := make(domain.HistorySeries, 0, len(chart.Prices))
	for _, pair := range chart.Prices {
		series = append(series, domain.HistoryPoint{
			Time:  domain.FormatHistoryTime(int64(pair[0])),
			Price: pair[1],
		})
	}

	return series, nil
}

// get performs one rate-limited GET through the circuit breaker and
// returns the raw body on HTTP 200.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if !c.breaker.Allow() {
		return nil, fmt.Errorf("%w: %v", ErrTransport, infra.ErrCircuitOpen)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTransport, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.breaker.RecordFailure()
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.breaker.RecordFailure()
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.breaker.RecordFailure()

		var envelope apiError
		if json.Unmarshal(body, &envelope) == nil && envelope.Status.ErrorMessage != "" {
			return nil, fmt.Errorf("%w: api error %d: %s",
				ErrDecode, envelope.Status.ErrorCode, envelope.Status.ErrorMessage)
		}
		return nil, fmt.Errorf("%w: unexpected status code: %d", ErrDecode, resp.StatusCode)
	}

	c.breaker.RecordSuccess()
	return body, nil
}
