package houdiniswap

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Option configures a Client at construction time.
type Option func(*Client)

// WithBaseURL overrides the API base URL. When absent, the HOUDINI_SWAP_API_URL
// environment variable is consulted before falling back to production.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithAPIVersion sets the protocol version sent in the X-API-Version header.
func WithAPIVersion(version string) Option {
	return func(c *Client) {
		c.apiVersion = version
	}
}

// WithMaxRetries sets the maximum number of retry attempts on top of the
// initial attempt.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		c.maxRetries = n
	}
}

// WithBackoffFactor sets the multiplier for exponential retry backoff:
// the wait before retrying attempt n is factor * 2^n seconds.
func WithBackoffFactor(f float64) Option {
	return func(c *Client) {
		c.backoffFactor = f
	}
}

// WithCache enables TTL memoization of token list operations.
func WithCache(ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = newTokenCache()
		c.cacheTTL = ttl
	}
}

// WithRateLimiter installs a client-side token bucket applied before every
// attempt, to stay under the server's rate limit rather than react to it.
func WithRateLimiter(requestsPerSecond float64, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}

// WithHTTPClient supplies a custom HTTP client. The per-request timeout
// configured on the Client still applies.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithInsecureSkipVerify disables TLS certificate verification. Testing only.
func WithInsecureSkipVerify() Option {
	return func(c *Client) {
		c.insecureSkipVerify = true
	}
}

// WithLogger sets the logging collaborator. The authorization value is
// redacted before any log emission.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics enables Prometheus metrics on the default registerer.
func WithMetrics() Option {
	return func(c *Client) {
		c.metrics = NewMetricsCollector()
	}
}

// WithMetricsCollector sets a custom metrics collector.
func WithMetricsCollector(collector *MetricsCollector) Option {
	return func(c *Client) {
		c.metrics = collector
	}
}
