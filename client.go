package houdiniswap

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/actuallyrizzn/houdiniswap-sdk/internal/backoff"
)

const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://api-partner.houdiniswap.com"

	// EnvAPIURL overrides the base URL when no WithBaseURL option is given.
	EnvAPIURL = "HOUDINI_SWAP_API_URL"

	headerAPIVersion = "X-API-Version"

	defaultTimeout       = 30 * time.Second
	defaultAPIVersion    = "v1"
	defaultMaxRetries    = 3
	defaultBackoffFactor = 1.0
	defaultCacheTTL      = 5 * time.Minute
	defaultPageSize      = 100

	maxErrorBodyLen = 500
)

const (
	endpointTokens       = "/tokens"
	endpointDEXTokens    = "/dexTokens"
	endpointQuote        = "/quote"
	endpointDEXQuote     = "/dexQuote"
	endpointExchange     = "/exchange"
	endpointDEXExchange  = "/dexExchange"
	endpointDEXApprove   = "/dexApprove"
	endpointDEXConfirmTx = "/dexConfirmTx"
	endpointStatus       = "/status"
	endpointMinMax       = "/minMax"
	endpointVolume       = "/volume"
	endpointWeeklyVolume = "/weeklyVolume"
)

// Client executes typed operations against the Houdini Swap partner API.
//
// The underlying transport is shared and connection-pooled across all calls
// on one instance, but the client as a whole is not safe for concurrent use
// by multiple goroutines without external synchronization: use one instance
// per goroutine, or ExecuteParallel, which isolates each call. Credentials
// are held in unexported fields with no accessor; the only code path that
// reads them back is authorization header construction.
type Client struct {
	apiKey    string
	apiSecret string

	baseURL            string
	timeout            time.Duration
	apiVersion         string
	insecureSkipVerify bool
	maxRetries         int
	backoffFactor      float64

	httpClient *http.Client
	backoff    backoff.Exponential
	limiter    *rate.Limiter
	cache      *tokenCache
	cacheTTL   time.Duration
	metrics    *MetricsCollector
	logger     Logger

	closeOnce sync.Once
}

// New constructs a Client for the given credentials, applying the provided
// functional options. Credential validation happens before anything else;
// a key or secret containing ':' fails immediately with a ValidationError
// and no network activity.
func New(apiKey, apiSecret string, options ...Option) (*Client, error) {
	if err := validateCredentials(apiKey, apiSecret); err != nil {
		return nil, err
	}

	c := &Client{
		apiKey:        apiKey,
		apiSecret:     apiSecret,
		timeout:       defaultTimeout,
		apiVersion:    defaultAPIVersion,
		maxRetries:    defaultMaxRetries,
		backoffFactor: defaultBackoffFactor,
		cacheTTL:      defaultCacheTTL,
	}

	for _, option := range options {
		option(c)
	}

	if err := c.validateConfiguration(); err != nil {
		return nil, err
	}

	// Base URL resolution: option > environment variable > production.
	if c.baseURL == "" {
		if env := os.Getenv(EnvAPIURL); env != "" {
			c.baseURL = env
		} else {
			c.baseURL = DefaultBaseURL
		}
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")

	c.backoff = backoff.Exponential{Factor: c.backoffFactor, Max: time.Hour}

	if c.httpClient == nil {
		transport := &http.Transport{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
		}
		if c.insecureSkipVerify {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		}
		c.httpClient = &http.Client{
			Transport: transport,
			Timeout:   c.timeout,
		}
	} else {
		c.httpClient.Timeout = c.timeout
	}

	return c, nil
}

func (c *Client) validateConfiguration() error {
	if c.timeout <= 0 {
		return newValidationErrorf("timeout must be positive, got %v", c.timeout)
	}
	if c.maxRetries < 0 {
		return newValidationErrorf("max retries must be >= 0, got %d", c.maxRetries)
	}
	if c.backoffFactor < 0 {
		return newValidationErrorf("backoff factor must be >= 0, got %v", c.backoffFactor)
	}
	if c.cache != nil && c.cacheTTL <= 0 {
		return newValidationErrorf("cache TTL must be positive, got %v", c.cacheTTL)
	}
	return nil
}

// Close releases the pooled transport. It is idempotent; closing twice is a
// no-op.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.httpClient.CloseIdleConnections()
	})
}

// ClearCache empties the token cache unconditionally.
func (c *Client) ClearCache() {
	if c.cache != nil {
		c.cache.clear()
	}
}

// request executes one logical API call with retry, rate-limit and backoff
// handling, returning the decoded JSON body. Caller-supplied query and body
// maps are defensively copied before use so a caller holding a reference
// cannot mutate a request mid-flight.
func (c *Client) request(ctx context.Context, method, endpoint string, query url.Values, body map[string]any) (any, error) {
	endpointURL := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	if len(query) > 0 {
		endpointURL += "?" + cloneValues(query).Encode()
	}

	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(cloneBody(body))
		if err != nil {
			return nil, &Error{Message: "encoding request body", Cause: err}
		}
	}

	start := time.Now()
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if c.metrics != nil {
				c.metrics.RecordRetry(method, endpoint)
			}
			if c.logger != nil {
				c.logger.Info("retrying request",
					"method", method, "endpoint", endpoint,
					"attempt", attempt+1, "maxAttempts", c.maxRetries+1)
			}
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, &NetworkError{Message: "request cancelled while rate limited", Cause: err}
			}
		}

		result, retryable, wait, err := c.doAttempt(ctx, method, endpoint, endpointURL, bodyBytes, attempt)
		if err == nil {
			if c.metrics != nil {
				c.metrics.RecordRequest(method, endpoint, http.StatusOK, time.Since(start))
			}
			return result, nil
		}
		lastErr = err

		if !retryable || attempt == c.maxRetries {
			c.recordFailure(method, endpoint, err, time.Since(start))
			return nil, err
		}

		if c.logger != nil {
			c.logger.Warn("request failed, backing off",
				"method", method, "endpoint", endpoint,
				"attempt", attempt+1, "wait", wait, "error", err.Error())
		}
		if err := c.sleep(ctx, wait); err != nil {
			return nil, &NetworkError{Message: "request cancelled during backoff", Cause: err}
		}
	}

	// The loop always returns; kept as a safety net.
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, &Error{Message: "request failed after all retries"}
}

// doAttempt performs a single HTTP exchange and classifies the outcome.
// retryable reports whether the failure class may be retried; wait is the
// backoff to apply before the next attempt.
func (c *Client) doAttempt(ctx context.Context, method, endpoint, endpointURL string, bodyBytes []byte, attempt int) (result any, retryable bool, wait time.Duration, err error) {
	var reader io.Reader
	if bodyBytes != nil {
		reader = bytes.NewReader(bodyBytes)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpointURL, reader)
	if err != nil {
		return nil, true, c.backoff.Delay(attempt), &Error{Message: "building request", Cause: err}
	}
	req.Header.Set("Authorization", c.apiKey+":"+c.apiSecret)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerAPIVersion, c.apiVersion)

	if c.logger != nil {
		headers := map[string]string{
			"Authorization":  req.Header.Get("Authorization"),
			"Content-Type":   req.Header.Get("Content-Type"),
			headerAPIVersion: req.Header.Get(headerAPIVersion),
		}
		c.logger.Debug("request", "method", method, "endpoint", endpoint,
			"attempt", attempt+1, "headers", redactHeaders(headers))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, c.backoff.Delay(attempt),
			&NetworkError{Message: fmt.Sprintf("%s %s failed", method, endpoint), Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, c.backoff.Delay(attempt),
			&NetworkError{Message: "reading response body", Cause: err}
	}

	if c.logger != nil {
		c.logger.Debug("response", "method", method, "endpoint", endpoint, "statusCode", resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, false, 0, &AuthenticationError{Message: "authentication failed: invalid API credentials"}

	case resp.StatusCode == http.StatusTooManyRequests:
		wait := c.rateLimitWait(resp.Header.Get("Retry-After"), attempt)
		message, payload := decodeErrorBody(raw, "Rate limit exceeded")
		return nil, true, wait, &APIError{
			Message:    message + ". Please wait before retrying.",
			StatusCode: resp.StatusCode,
			Response:   payload,
		}

	case isRetryableStatus(resp.StatusCode):
		message, payload := decodeErrorBody(raw, fmt.Sprintf("API error: %d", resp.StatusCode))
		if payload == nil && len(raw) > 0 {
			message = fmt.Sprintf("API error: %d - %s", resp.StatusCode, truncate(string(raw), maxErrorBodyLen))
		}
		return nil, true, c.backoff.Delay(attempt), &APIError{
			Message:    message,
			StatusCode: resp.StatusCode,
			Response:   payload,
		}

	case resp.StatusCode >= http.StatusBadRequest:
		message, payload := decodeErrorBody(raw, fmt.Sprintf("API error: %d", resp.StatusCode))
		if payload == nil && len(raw) > 0 {
			message = fmt.Sprintf("API error: %d - %s", resp.StatusCode, truncate(string(raw), maxErrorBodyLen))
		}
		return nil, false, 0, &APIError{
			Message:    message,
			StatusCode: resp.StatusCode,
			Response:   payload,
		}
	}

	decoded, err := decodeJSON(raw)
	if err != nil {
		// Some endpoints legitimately return a bare boolean or string.
		return map[string]any{"response": strings.TrimSpace(string(raw))}, false, 0, nil
	}
	return decoded, false, 0, nil
}

// rateLimitWait honors a Retry-After value, parsed as seconds. When the
// header is absent or unparseable the exponential backoff applies, doubled.
func (c *Client) rateLimitWait(retryAfter string, attempt int) time.Duration {
	if retryAfter != "" {
		if seconds, err := strconv.ParseFloat(strings.TrimSpace(retryAfter), 64); err == nil && seconds >= 0 {
			return time.Duration(seconds * float64(time.Second))
		}
	}
	return c.backoff.RateLimitDelay(attempt)
}

func (c *Client) recordFailure(method, endpoint string, err error, duration time.Duration) {
	if c.logger != nil {
		c.logger.Error("request failed", "method", method, "endpoint", endpoint, "error", err.Error())
	}
	if c.metrics == nil {
		return
	}
	kind := "unexpected"
	statusCode := 0
	switch e := err.(type) {
	case *AuthenticationError:
		kind = "authentication"
		statusCode = http.StatusUnauthorized
	case *APIError:
		kind = "api"
		statusCode = e.StatusCode
	case *NetworkError:
		kind = "network"
	}
	c.metrics.RecordError(kind, endpoint)
	c.metrics.RecordRequest(method, endpoint, statusCode, duration)
}

// sleep blocks for d, honoring context cancellation.
func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// decodeJSON parses a response body preserving numeric wire text via
// json.Number, so monetary values reach the decimal layer undistorted.
func decodeJSON(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// decodeErrorBody extracts the server's error message from a failed
// response. payload is nil when the body was not a JSON object.
func decodeErrorBody(raw []byte, fallback string) (string, any) {
	decoded, err := decodeJSON(raw)
	if err != nil {
		return fallback, nil
	}
	if obj, ok := decoded.(map[string]any); ok {
		if msg, ok := obj["message"].(string); ok && msg != "" {
			return msg, obj
		}
		return fallback, obj
	}
	return fallback, decoded
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func cloneValues(values url.Values) url.Values {
	cloned := make(url.Values, len(values))
	for k, v := range values {
		cloned[k] = append([]string(nil), v...)
	}
	return cloned
}

func cloneBody(body map[string]any) map[string]any {
	cloned := make(map[string]any, len(body))
	for k, v := range body {
		cloned[k] = v
	}
	return cloned
}
