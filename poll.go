package houdiniswap

import (
	"context"
	"fmt"
	"time"
)

const (
	defaultPollInterval    = 5 * time.Second
	defaultStatusTimeout   = 5 * time.Minute
	defaultTerminalTimeout = 10 * time.Minute
)

// WaitForStatus polls the status endpoint until the transaction reaches
// target. timeout and pollInterval fall back to 5 minutes and 5 seconds when
// non-positive. On expiry it returns a PollTimeoutError carrying the last
// observed status; the deadline is checked between iterations, so a slow
// final request may overshoot it slightly.
func (c *Client) WaitForStatus(ctx context.Context, houdiniID string, target TransactionStatus, timeout, pollInterval time.Duration) (Status, error) {
	if timeout <= 0 {
		timeout = defaultStatusTimeout
	}
	return c.pollStatus(ctx, houdiniID, timeout, pollInterval,
		func(s TransactionStatus) bool { return s == target },
		fmt.Sprintf("timeout waiting for status %s", target))
}

// WaitForTerminal polls the status endpoint until the transaction reaches a
// terminal state (FINISHED, EXPIRED, FAILED or REFUNDED). timeout and
// pollInterval fall back to 10 minutes and 5 seconds when non-positive.
func (c *Client) WaitForTerminal(ctx context.Context, houdiniID string, timeout, pollInterval time.Duration) (Status, error) {
	if timeout <= 0 {
		timeout = defaultTerminalTimeout
	}
	return c.pollStatus(ctx, houdiniID, timeout, pollInterval,
		TransactionStatus.IsTerminal,
		"timeout waiting for transaction to finish")
}

func (c *Client) pollStatus(ctx context.Context, houdiniID string, timeout, pollInterval time.Duration, done func(TransactionStatus) bool, timeoutMsg string) (Status, error) {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	deadline := time.Now().Add(timeout)

	for {
		status, err := c.GetStatus(ctx, houdiniID)
		if err != nil {
			return Status{}, err
		}
		if done(status.Status) {
			return status, nil
		}
		if time.Now().After(deadline) {
			return Status{}, &PollTimeoutError{Message: timeoutMsg, LastStatus: status.Status}
		}
		if c.logger != nil {
			c.logger.Debug("transaction not ready, polling again",
				"houdini_id", houdiniID, "status", status.Status.String(), "interval", pollInterval)
		}
		if err := c.sleep(ctx, pollInterval); err != nil {
			return Status{}, &NetworkError{Message: "polling cancelled", Cause: err}
		}
	}
}

// DEXTokensPager walks the paginated DEX token listing lazily, one page per
// call. It is not safe for concurrent use.
type DEXTokensPager struct {
	client   *Client
	chain    string
	pageSize int
	page     int
	total    int
	fetched  int
	done     bool
}

// NewDEXTokensPager returns a pager over the DEX token listing. chain is an
// optional short-name filter; pageSize falls back to 100 when non-positive.
func (c *Client) NewDEXTokensPager(chain string, pageSize int) *DEXTokensPager {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &DEXTokensPager{client: c, chain: chain, pageSize: pageSize, page: 1}
}

// NextPage fetches the next page of tokens. It returns (nil, nil) once all
// pages have been consumed; an empty page from the server also ends the
// iteration, guarding against a server-reported count that overshoots.
func (p *DEXTokensPager) NextPage(ctx context.Context) ([]DEXToken, error) {
	if p.done {
		return nil, nil
	}
	result, err := p.client.GetDEXTokens(ctx, p.page, p.pageSize, p.chain)
	if err != nil {
		return nil, err
	}
	if len(result.Tokens) == 0 {
		p.done = true
		return nil, nil
	}
	p.page++
	p.total = result.Count
	p.fetched += len(result.Tokens)
	if p.fetched >= p.total {
		p.done = true
	}
	return result.Tokens, nil
}

// Reset rewinds the pager to the first page.
func (p *DEXTokensPager) Reset() {
	p.page = 1
	p.total = 0
	p.fetched = 0
	p.done = false
}

// GetAllDEXTokens collects every page of the DEX token listing into a single
// slice. For very large listings prefer NewDEXTokensPager to bound memory.
func (c *Client) GetAllDEXTokens(ctx context.Context, chain string, pageSize int) ([]DEXToken, error) {
	pager := c.NewDEXTokensPager(chain, pageSize)
	var tokens []DEXToken
	for {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		if page == nil {
			return tokens, nil
		}
		tokens = append(tokens, page...)
	}
}
