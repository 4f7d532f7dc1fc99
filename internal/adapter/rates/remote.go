package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/fxledger/internal/domain"
	"github.com/iho/fxledger/internal/infrastructure/metrics"
)

const (
	// DefaultTimeout bounds each rate API request independently of any
	// caller-supplied deadline.
	DefaultTimeout = 2 * time.Second

	// maxRetries is the number of additional attempts after the first
	// failed request.
	maxRetries = 2
)

// RemoteRateClient fetches exchange rates from the external rate service.
// One request per base currency returns the rates towards all target
// currencies. Rates are transient snapshot data and are never cached
// across calls.
type RemoteRateClient struct {
	endpoint string
	client   *http.Client
	logger   zerolog.Logger
}

// RemoteConfig holds RemoteRateClient configuration.
type RemoteConfig struct {
	// Endpoint is the base URL; the base currency code is appended.
	Endpoint string
	Timeout  time.Duration
}

// NewRemoteRateClient creates a new RemoteRateClient.
func NewRemoteRateClient(cfg RemoteConfig, logger zerolog.Logger) *RemoteRateClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &RemoteRateClient{
		endpoint: strings.TrimRight(cfg.Endpoint, "/") + "/",
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// rateResponse mirrors the rate API body. Rates decode straight into
// decimals; they never pass through a binary float.
type rateResponse struct {
	Result   string                     `json:"result"`
	BaseCode string                     `json:"base_code"`
	Rates    map[string]decimal.Decimal `json:"rates"`
}

// Rate resolves the rate for one pair. The identity pair is always 1
// without a network call. A rate missing from the response, or a
// non-positive one, is ErrRateUnavailable.
func (c *RemoteRateClient) Rate(ctx context.Context, from, to domain.Currency) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	rates := c.FetchRates(ctx, from)

	rate, ok := rates[to]
	if !ok || !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: no rate for %s -> %s", domain.ErrRateUnavailable, from, to)
	}

	return rate, nil
}

// FetchRates returns all rates for a base currency. Transient failures
// (non-2xx, timeout, connection error) are retried up to maxRetries
// times; exhausted retries or a malformed body yield an empty map rather
// than an error, and the caller reports the absent target as unavailable.
func (c *RemoteRateClient) FetchRates(ctx context.Context, from domain.Currency) map[domain.Currency]decimal.Decimal {
	start := time.Now()
	defer func() {
		metrics.RateFetchDuration.WithLabelValues("external").Observe(time.Since(start).Seconds())
	}()

	var rates map[domain.Currency]decimal.Decimal

	operation := func() error {
		fetched, err := c.fetchOnce(ctx, from)
		if err != nil {
			return err
		}

		rates = fetched

		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	if err := backoff.Retry(operation, b); err != nil {
		metrics.RateFetchErrors.WithLabelValues("external").Inc()
		c.logger.Warn().
			Err(err).
			Str("base", from.String()).
			Msg("failed to fetch exchange rates")

		return map[domain.Currency]decimal.Decimal{}
	}

	return rates
}

func (c *RemoteRateClient) fetchOnce(ctx context.Context, from domain.Currency) (map[domain.Currency]decimal.Decimal, error) {
	url := c.endpoint + from.String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rate request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("rate API returned status %d", resp.StatusCode)
	}

	// A malformed body is not transient; retrying would fetch the same
	// bytes again.
	var body rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to decode rate response: %w", err))
	}

	rates := make(map[domain.Currency]decimal.Decimal, len(body.Rates))
	for code, rate := range body.Rates {
		rates[domain.Currency(strings.ToUpper(code))] = rate
	}

	return rates, nil
}
