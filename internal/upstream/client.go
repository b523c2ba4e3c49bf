// Package upstream fetches user profiles and posts from the JSONPlaceholder
// style REST source and maps them into domain view models.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"

	"github.com/nfrund/userdash/internal/config"
	"github.com/nfrund/userdash/internal/domain"
)

// Options configures a Client. Zero values fall back to the config defaults,
// except RPS where zero disables pacing.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	RPS        float64
	Burst      int
	HTTPClient *http.Client
}

// Client talks to the upstream REST source.
type Client struct {
	baseURL  string
	http     *http.Client
	limiter  *rate.Limiter
	validate *validator.Validate
}

// NewClient creates a Client from opts.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = config.DefaultUpstreamBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = config.DefaultUpstreamTimeout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = newHTTPClient(opts.Timeout)
	}

	limit := rate.Inf
	burst := opts.Burst
	if opts.RPS > 0 {
		limit = rate.Limit(opts.RPS)
	}
	if burst < 1 {
		burst = 1
	}

	return &Client{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		http:     opts.HTTPClient,
		limiter:  rate.NewLimiter(limit, burst),
		validate: validator.New(),
	}
}

// NewClientFromConfig creates a Client using the application configuration.
func NewClientFromConfig(cfg config.Provider) *Client {
	return NewClient(Options{
		BaseURL: cfg.GetUpstreamBaseURL(),
		Timeout: cfg.GetUpstreamTimeout(),
		RPS:     cfg.GetUpstreamRPS(),
		Burst:   cfg.GetUpstreamBurst(),
	})
}

// BaseURL returns the upstream root the client sends requests to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: timeout,
		ForceAttemptHTTP2:     true,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// getJSON performs one GET request and decodes a successful body into out.
// A non-2xx status yields a *domain.FetchFailure for resource.
func (c *Client) getJSON(ctx context.Context, resource, endpoint string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for upstream rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building %s request: %w", resource, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", resource, err)
	}
	defer resp.Body.Close()

	slog.Debug("Upstream request completed",
		"resource", resource,
		"url", endpoint,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &domain.FetchFailure{Resource: resource, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", domain.ErrMalformedResponse, resource, err)
	}
	return nil
}
