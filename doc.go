// Package houdiniswap is a typed client SDK for the Houdini Swap REST API:
//
//   - Typed operations for tokens, quotes, exchange submission, approval,
//     confirmation, status and volume statistics
//   - Retries with exponential backoff and Retry-After aware rate-limit
//     handling
//   - Exact-decimal money handling end to end (shopspring/decimal, never
//     binary floating point)
//   - Optional TTL caching of token listings and an optional client-side
//     rate limiter
//   - Bounded-parallel fan-out for batches of independent calls
//   - Polling helpers for waiting on transaction lifecycle states
//   - Prometheus metrics and pluggable structured logging with credential
//     redaction
//
// Design goals:
//   - Small surface area, functional options configure everything
//   - Typed errors for every failure class (ValidationError,
//     AuthenticationError, APIError, NetworkError)
//   - Safe concurrent use of a single *Client instance
//   - Records decoded once from wire payloads and never mutated afterwards
//
// Typical usage:
//
//	client, err := houdiniswap.New(apiKey, apiSecret,
//	    houdiniswap.WithCache(5*time.Minute),
//	    houdiniswap.WithMaxRetries(3),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	quote, err := client.GetCEXQuote(ctx, "1.0", "ETH", "BNB", false, nil)
//
// State-changing calls (PostCEXExchange, PostDEXExchange) are submitted at
// most once per attempt chain but the API's own idempotency is out of the
// SDK's hands; correlate outcomes through GetStatus with the returned
// houdini id.
package houdiniswap
