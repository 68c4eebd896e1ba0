package fetcher

import (
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// rlClient wraps an http.Client with a token-bucket rate limiter so that
// provider requests are paced regardless of which call site issues them.
type rlClient struct {
	client  *http.Client
	limiter *rate.Limiter
}

// newRLClient builds a rate-limited client with optional proxy support.
// ratePerSec <= 0 disables pacing.
func newRLClient(proxyURL string, ratePerSec float64) *rlClient {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	limit := rate.Inf
	if ratePerSec > 0 {
		limit = rate.Limit(ratePerSec)
	}
	return &rlClient{
		client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		limiter: rate.NewLimiter(limit, 1),
	}
}

func (c *rlClient) Do(req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return c.client.Do(req)
}
