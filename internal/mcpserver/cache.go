package mcpserver

import (
	"sync"
	"time"

	"github.com/dbx-labs/databricks-mcp/internal/databricks"
)

// statementCache keeps recent SQL statement results so get_query_results can
// serve repeat reads without another round trip. Entries expire after a TTL
// and are removed by a background cleanup goroutine.
type statementCache struct {
	mu      sync.RWMutex
	results map[string]*cachedStatement
	ttl     time.Duration
	done    chan struct{}
}

type cachedStatement struct {
	result    *databricks.StatementResult
	expiresAt time.Time
}

func newStatementCache(ttl time.Duration) *statementCache {
	c := &statementCache{
		results: make(map[string]*cachedStatement),
		ttl:     ttl,
		done:    make(chan struct{}),
	}
	go c.cleanupLoop()
	return c
}

// store caches a statement result under its statement id. Results without a
// terminal state are not cached; the statement may still change.
func (c *statementCache) store(result *databricks.StatementResult) {
	if result == nil || result.StatementID == "" {
		return
	}
	if result.Status.State != "SUCCEEDED" && result.Status.State != "FAILED" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[result.StatementID] = &cachedStatement{
		result:    result,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// get returns a cached result, or nil if absent or expired.
func (c *statementCache) get(statementID string) *databricks.StatementResult {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cached, ok := c.results[statementID]
	if !ok || time.Now().After(cached.expiresAt) {
		return nil
	}
	return cached.result
}

func (c *statementCache) cleanupLoop() {
	ticker := time.NewTicker(c.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.done:
			return
		}
	}
}

func (c *statementCache) removeExpired() {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()
	for id, cached := range c.results {
		if now.After(cached.expiresAt) {
			delete(c.results, id)
		}
	}
}

// Close stops the cleanup goroutine.
func (c *statementCache) Close() {
	close(c.done)
}
