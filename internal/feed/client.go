// Package feed fetches similar-artist lists from a third-party HTTP service.
// The service is not assumed to be available; every failure is reported as
// ErrFeed so callers can degrade instead of aborting.
package feed

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/time/rate"

	"github.com/agenthands/bore/internal/metrics"
)

// ErrFeed marks any network, status or parse failure of the remote feed.
var ErrFeed = errors.New("remote feed unavailable")

// Client fetches a resource body by URL.
type Client interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPClient is a Client with a per-call timeout, a body size cap and a
// shared request rate limit.
type HTTPClient struct {
	client         *http.Client
	userAgent      string
	timeout        time.Duration
	maxContentSize int64
	limiter        *rate.Limiter
}

// NewHTTPClient creates a feed client. A non-positive requestsPerMinute
// disables rate limiting.
func NewHTTPClient(timeout time.Duration, userAgent string, maxContentSize int64, requestsPerMinute int) *HTTPClient {
	limit := rate.Inf
	if requestsPerMinute > 0 {
		limit = rate.Limit(float64(requestsPerMinute) / 60.0)
	}

	return &HTTPClient{
		client: &http.Client{
			Transport: &http.Transport{
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: timeout,
				MaxIdleConns:          10,
				IdleConnTimeout:       90 * time.Second,
			},
			Timeout: timeout,
		},
		userAgent:      userAgent,
		timeout:        timeout,
		maxContentSize: maxContentSize,
		limiter:        rate.NewLimiter(limit, 1),
	}
}

func (c *HTTPClient) Fetch(ctx context.Context, url string) (body []byte, err error) {
	done := metrics.TimeFetch()
	defer func() { done(err == nil) }()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "rate limit wait"), ErrFeed)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "create request"), ErrFeed)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "fetch"), ErrFeed)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Mark(errors.Newf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)), ErrFeed)
	}

	body, err = io.ReadAll(io.LimitReader(resp.Body, c.maxContentSize+1))
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "read body"), ErrFeed)
	}
	if int64(len(body)) > c.maxContentSize {
		return nil, errors.Mark(errors.Newf("content too large (exceeds %d bytes)", c.maxContentSize), ErrFeed)
	}

	return body, nil
}
