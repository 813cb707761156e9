// Package ordercache holds the render-pass cache that hands a curated
// order from the block render phase to the query build phase. It is
// never a source of truth: every entry is reconstructable from the
// owning page's persisted block attributes.
package ordercache

import (
	"sync"
	"time"
)

// Defaults for entry lifetime and sweep amortization. Tunables, not
// contracts; overridden from config.
const (
	DefaultTTL            = 300 * time.Second
	DefaultSweepThreshold = 50
)

type entry struct {
	ids        []int64
	capturedAt time.Time
}

// Cache maps query identities to captured ordered-ID lists with a
// bounded lifetime per entry. Safe for concurrent use.
type Cache struct {
	mu             sync.Mutex
	entries        map[string]entry
	ttl            time.Duration
	sweepThreshold int
	now            func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL overrides the entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.ttl = ttl }
}

// WithSweepThreshold overrides the entry count past which Set sweeps
// expired entries.
func WithSweepThreshold(n int) Option {
	return func(c *Cache) { c.sweepThreshold = n }
}

// WithClock injects a clock for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New creates a Cache with the given options.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries:        make(map[string]entry),
		ttl:            DefaultTTL,
		sweepThreshold: DefaultSweepThreshold,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Set stores the ordered-ID list for a query identity, stamping it with
// the current time. Once the entry count exceeds the sweep threshold,
// expired entries are evicted; sweeping here rather than on every write
// amortizes the cleanup cost.
func (c *Cache) Set(identity string, ids []int64) {
	if identity == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[identity] = entry{ids: cloneIDs(ids), capturedAt: c.now()}

	if len(c.entries) > c.sweepThreshold {
		c.sweepLocked()
	}
}

// Delete drops the entry for a query identity, if present.
func (c *Cache) Delete(identity string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, identity)
}

// Get returns the cached ordered-ID list for a query identity, or
// ok=false if the entry is missing or expired. Expired entries are
// evicted lazily here.
func (c *Cache) Get(identity string) ([]int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[identity]
	if !ok {
		return nil, false
	}
	if c.expiredLocked(e) {
		delete(c.entries, identity)
		return nil, false
	}
	return cloneIDs(e.ids), true
}

// MostRecent returns the freshest unexpired entry across all
// identities. Supports the permissive resolver fallback for
// environments where identity correlation fails; never used in strict
// mode.
func (c *Cache) MostRecent() ([]int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var (
		best  entry
		found bool
	)
	for _, e := range c.entries {
		if c.expiredLocked(e) {
			continue
		}
		if !found || e.capturedAt.After(best.capturedAt) {
			best = e
			found = true
		}
	}
	if !found {
		return nil, false
	}
	return cloneIDs(best.ids), true
}

// Len returns the current entry count, including not-yet-swept expired
// entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// expiredLocked reports whether e has outlived the TTL. Callers hold mu.
func (c *Cache) expiredLocked(e entry) bool {
	return c.now().Sub(e.capturedAt) >= c.ttl
}

// sweepLocked removes all expired entries. Callers hold mu.
func (c *Cache) sweepLocked() {
	for identity, e := range c.entries {
		if c.expiredLocked(e) {
			delete(c.entries, identity)
		}
	}
}

// cloneIDs copies an ID slice so callers cannot mutate cached state.
func cloneIDs(ids []int64) []int64 {
	if ids == nil {
		return nil
	}
	out := make([]int64, len(ids))
	copy(out, ids)
	return out
}
