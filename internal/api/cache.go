package api

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/carscope/carscope/internal/inspection"
	"github.com/carscope/carscope/pkg/surface"
)

// ReportCache is a thread-safe LRU cache for rendered report summaries.
type ReportCache struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]*cacheEntry
	order   []string // oldest first
}

type cacheEntry struct {
	summary *surface.Summary
}

// NewReportCache creates a cache with the given maximum number of entries.
// If maxSize <= 0, it defaults to 256.
func NewReportCache(maxSize int) *ReportCache {
	if maxSize <= 0 {
		maxSize = 256
	}
	return &ReportCache{
		maxSize: maxSize,
		entries: make(map[string]*cacheEntry),
	}
}

// reportKey changes whenever the inspection is saved.
func reportKey(id string, updatedAt time.Time) string {
	return id + "@" + strconv.FormatInt(updatedAt.UnixNano(), 10)
}

// Len returns the number of cached summaries.
func (c *ReportCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Get retrieves a summary from the cache, or nil if not found.
func (c *ReportCache) Get(key string) *surface.Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil
	}

	// Move to end (most recently used)
	c.moveToEnd(key)
	return entry.summary
}

// Put adds a summary to the cache, evicting the oldest if full.
func (c *ReportCache) Put(key string, summary *surface.Summary) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		c.entries[key] = &cacheEntry{summary: summary}
		c.moveToEnd(key)
		return
	}

	// Evict oldest if at capacity
	for len(c.entries) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = &cacheEntry{summary: summary}
	c.order = append(c.order, key)
}

func (c *ReportCache) moveToEnd(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, key)
			return
		}
	}
}

// summary returns the cached summary for ins or renders and caches it.
func (h *Handler) summary(r *http.Request, ins *inspection.Inspection) (*surface.Summary, error) {
	key := reportKey(ins.ID, ins.UpdatedAt)
	if s := h.cache.Get(key); s != nil {
		return s, nil
	}
	s, err := h.inspections.Summary(r.Context(), ins)
	if err != nil {
		return nil, err
	}
	h.cache.Put(key, s)
	return s, nil
}
