package houdiniswap

import (
	"fmt"
	"sync"
	"time"
)

// tokenCache memoizes decoded token list responses keyed by operation name
// plus normalized parameters. Expiry happens on read: a stale entry is
// treated as a miss and overwritten by the next successful call, which is
// acceptable because the key space (page/pageSize/chain combinations) is
// small and bounded in practice.
type tokenCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	value    any
	storedAt time.Time
}

func newTokenCache() *tokenCache {
	return &tokenCache{entries: make(map[string]cacheEntry)}
}

func (c *tokenCache) get(key string, ttl time.Duration) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Since(entry.storedAt) >= ttl {
		return nil, false
	}
	return entry.value, true
}

func (c *tokenCache) set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, storedAt: time.Now()}
}

func (c *tokenCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

const cacheKeyCEXTokens = "cex_tokens"

func cacheKeyDEXTokens(page, pageSize int, chain string) string {
	if chain == "" {
		chain = "all"
	}
	return fmt.Sprintf("dex_tokens_%d_%d_%s", page, pageSize, chain)
}
