package request

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"geoquiz/pkg/cache"
	"geoquiz/pkg/tracker"
	"geoquiz/pkg/version"
)

// ErrRetriesExhausted is returned when every attempt of a fetch failed with
// a retryable condition. The last cause is wrapped alongside it.
var ErrRetriesExhausted = errors.New("retries exhausted")

var defaultUserAgent = fmt.Sprintf("geoquiz-pipeline/%s", version.Version)

// StatusError reports a non-2xx response.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: status %d", e.URL, e.Status)
}

// Options tune a Client. Zero values select the defaults.
type Options struct {
	Retries   int           // attempts per fetch, default 3
	Delay     time.Duration // pause between attempts, default 2s
	Timeout   time.Duration // per attempt, 0 means none
	UserAgent string
	Cache     cache.Cacher // optional
	Tracker   *tracker.Tracker
	Logger    *slog.Logger
}

// Client fetches remote sources with a fixed-delay retry policy.
type Client struct {
	httpClient *http.Client
	cache      cache.Cacher
	tracker    *tracker.Tracker
	logger     *slog.Logger
	retries    int
	delay      time.Duration
	userAgent  string
}

// New creates a Client.
func New(opts Options) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		cache:      opts.Cache,
		tracker:    opts.Tracker,
		logger:     opts.Logger,
		retries:    opts.Retries,
		delay:      opts.Delay,
		userAgent:  opts.UserAgent,
	}
	if c.retries < 1 {
		c.retries = 3
	}
	if c.delay <= 0 {
		c.delay = 2 * time.Second
	}
	if c.userAgent == "" {
		c.userAgent = defaultUserAgent
	}
	if c.tracker == nil {
		c.tracker = tracker.New()
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Tracker returns the statistics collector of the client.
func (c *Client) Tracker() *tracker.Tracker {
	return c.tracker
}

// Get fetches u and returns the response body. Network errors, 429 and 5xx
// responses are retried; any other non-2xx status fails immediately.
func (c *Client) Get(ctx context.Context, u string) ([]byte, error) {
	parsed, err := url.Parse(u)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	host := parsed.Host

	if c.cache != nil {
		if val, hit := c.cache.GetCache(ctx, u); hit {
			c.tracker.TrackCacheHit(host)
			c.logger.Debug("Cache Hit", "url", u, "bytes", len(val))
			return val, nil
		}
		c.tracker.TrackCacheMiss(host)
	}

	body, err := c.executeWithRetry(ctx, u, host)
	if err != nil {
		c.tracker.TrackFailure(host)
		return nil, err
	}
	c.tracker.TrackSuccess(host, len(body))

	if c.cache != nil {
		if err := c.cache.SetCache(ctx, u, body); err != nil {
			c.logger.Error("Failed to cache response", "url", u, "error", err)
		}
	}
	return body, nil
}

func (c *Client) executeWithRetry(ctx context.Context, u, host string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		if attempt > 1 {
			c.tracker.TrackRetry(host)
			select {
			case <-time.After(c.delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		body, retry, err := c.attempt(ctx, u)
		if err == nil {
			return body, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !retry {
			return nil, err
		}
		lastErr = err
		if attempt < c.retries {
			c.logger.Warn("Fetch failed, retrying", "url", u, "attempt", attempt, "of", c.retries, "error", err)
		}
	}
	return nil, fmt.Errorf("GET %s after %d attempts: %w", u, c.retries, errors.Join(ErrRetriesExhausted, lastErr))
}

// attempt performs one request. retry reports whether a failure is transient.
func (c *Client) attempt(ctx context.Context, u string) (body []byte, retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug("Network Request", "host", req.URL.Host, "path", req.URL.Path)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, true, &StatusError{URL: u, Status: resp.StatusCode}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, false, &StatusError{URL: u, Status: resp.StatusCode}
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("read error: %w", err)
	}
	c.logger.Info("Fetched", "url", u, "bytes", len(body), "elapsed", time.Since(start).Round(time.Millisecond))
	return body, false, nil
}
