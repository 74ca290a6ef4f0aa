// Package maps wraps the Google Maps web services used for place search
// and leg routing. All calls go through one retrying, circuit-broken HTTP
// client so a flaky upstream degrades gracefully instead of stalling the
// wizard.
package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// ErrUpstreamUnavailable is returned when the circuit breaker is open or
// retries are exhausted.
var ErrUpstreamUnavailable = errors.New("maps upstream unavailable")

// ClientConfig holds tuning for the maps client.
type ClientConfig struct {
	APIKey  string
	BaseURL string // e.g. https://maps.googleapis.com
	Country string // ISO 3166-1 alpha-2, biases place search
	Timeout time.Duration

	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultClientConfig returns sensible defaults; only the API key must be
// supplied.
func DefaultClientConfig(apiKey string) ClientConfig {
	return ClientConfig{
		APIKey:          apiKey,
		BaseURL:         "https://maps.googleapis.com",
		Country:         "lk",
		Timeout:         10 * time.Second,
		MaxRetries:      3,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     5 * time.Second,
	}
}

// Client calls the Google Maps web services.
type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*http.Response]
	config     ClientConfig
	logger     *zap.Logger
}

// NewClient builds a maps client from the given config.
func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://maps.googleapis.com"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.InitialInterval == 0 {
		cfg.InitialInterval = 100 * time.Millisecond
	}
	if cfg.MaxInterval == 0 {
		cfg.MaxInterval = 5 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        "google-maps",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    breaker,
		config:     cfg,
		logger:     logger,
	}
}

type serverError struct {
	StatusCode int
}

func (e *serverError) Error() string {
	return "maps server error: " + http.StatusText(e.StatusCode)
}

// getJSON issues a GET against path with the given query, retrying
// transient failures (5xx, network errors) with exponential backoff, and
// decodes the JSON response into out. The API key is appended here so
// callers never handle it.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	query.Set("key", c.config.APIKey)
	endpoint := c.config.BaseURL + path + "?" + query.Encode()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.config.InitialInterval
	bo.MaxInterval = c.config.MaxInterval
	bo.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, c.config.MaxRetries), ctx)

	var body []byte
	operation := func() error {
		resp, err := c.breaker.Execute(func() (*http.Response, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
			if err != nil {
				return nil, err
			}
			r, err := c.httpClient.Do(req)
			if err != nil {
				return nil, err
			}
			if r.StatusCode >= 500 {
				r.Body.Close()
				return nil, &serverError{StatusCode: r.StatusCode}
			}
			return r, nil
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(ErrUpstreamUnavailable)
			}
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			// 4xx means we sent something wrong; retrying won't help.
			return backoff.Permanent(fmt.Errorf("maps request rejected: %s", resp.Status))
		}
		body, err = io.ReadAll(resp.Body)
		return err
	}

	if err := backoff.Retry(operation, policy); err != nil {
		c.logger.Warn("maps request failed", zap.String("path", path), zap.Error(err))
		return err
	}
	return json.Unmarshal(body, out)
}
