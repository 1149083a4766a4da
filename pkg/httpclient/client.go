package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/juniper/pkg/tracing"
)

const (
	// DefaultTimeout is the default request timeout
	DefaultTimeout = 30 * time.Second

	// MaxResponseSize is the maximum response body size (10MB)
	MaxResponseSize = 10 * 1024 * 1024
)

// ErrNotFound is returned when the peer answers 404 for the requested
// resource. Callers treat it as "absent", not a failure.
var ErrNotFound = errors.New("resource not found")

// Client wraps the HTTP client with logging, trace propagation and size
// limits for peer service calls.
type Client struct {
	client *http.Client
	logger ectologger.Logger
}

// Config holds HTTP client configuration
type Config struct {
	Timeout         time.Duration
	MaxIdleConns    int
	IdleConnTimeout time.Duration
}

// DefaultConfig returns default HTTP client configuration
func DefaultConfig() Config {
	return Config{
		Timeout:         DefaultTimeout,
		MaxIdleConns:    100,
		IdleConnTimeout: 90 * time.Second,
	}
}

// NewClient creates a new HTTP client
func NewClient(cfg Config, logger ectologger.Logger) *Client {
	transport := &http.Transport{
		MaxIdleConns:    cfg.MaxIdleConns,
		IdleConnTimeout: cfg.IdleConnTimeout,
	}

	return &Client{
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		logger: logger,
	}
}

// GetJSON performs a GET against url and decodes the JSON body into out.
// The active trace context is propagated via the traceparent header. A 404
// returns ErrNotFound; other non-2xx statuses are failures.
func (c *Client) GetJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if traceparent := tracing.GetTraceParent(ctx); traceparent != "" {
		req.Header.Set("traceparent", traceparent)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.WithContext(ctx).WithError(err).Errorf("HTTP request failed: GET %s", url)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if len(body) > MaxResponseSize {
		return fmt.Errorf("response body too large: %d bytes (max %d)", len(body), MaxResponseSize)
	}

	c.logger.WithContext(ctx).WithFields(map[string]any{
		"url":         url,
		"status_code": resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("Peer request completed")

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}
	return nil
}
