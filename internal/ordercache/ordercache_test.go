package ordercache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced clock for deterministic TTL tests.
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestCache(opts ...Option) (*Cache, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	opts = append(opts, WithClock(clock.now))
	return New(opts...), clock
}

func TestSetGet(t *testing.T) {
	c, _ := newTestCache()

	c.Set("front-feed", []int64{3, 1})

	ids, ok := c.Get("front-feed")
	require.True(t, ok)
	assert.Equal(t, []int64{3, 1}, ids)
}

func TestGet_Missing(t *testing.T) {
	c, _ := newTestCache()

	_, ok := c.Get("absent")
	assert.False(t, ok)
}

func TestGet_TTLBoundary(t *testing.T) {
	c, clock := newTestCache()

	c.Set("front-feed", []int64{1})

	clock.advance(299 * time.Second)
	_, ok := c.Get("front-feed")
	assert.True(t, ok, "entry at t=299 should still be retrievable")

	clock.advance(2 * time.Second)
	_, ok = c.Get("front-feed")
	assert.False(t, ok, "entry at t=301 should be expired")
}

func TestGet_ExpiredEntryEvicted(t *testing.T) {
	c, clock := newTestCache()

	c.Set("front-feed", []int64{1})
	clock.advance(DefaultTTL)

	_, ok := c.Get("front-feed")
	require.False(t, ok)
	assert.Equal(t, 0, c.Len(), "expired entry should be evicted on read")
}

func TestSet_EmptyIdentityIgnored(t *testing.T) {
	c, _ := newTestCache()

	c.Set("", []int64{1})
	assert.Equal(t, 0, c.Len())
}

func TestSet_SweepPastThreshold(t *testing.T) {
	c, clock := newTestCache(WithSweepThreshold(5))

	for i := 0; i < 5; i++ {
		c.Set(fmt.Sprintf("q%d", i), []int64{int64(i)})
	}
	clock.advance(DefaultTTL)

	// All five are now expired; the sixth Set crosses the threshold and
	// triggers the sweep.
	c.Set("fresh", []int64{99})
	assert.Equal(t, 1, c.Len())

	ids, ok := c.Get("fresh")
	require.True(t, ok)
	assert.Equal(t, []int64{99}, ids)
}

func TestSet_ReplacesEntry(t *testing.T) {
	c, _ := newTestCache()

	c.Set("q", []int64{1, 2})
	c.Set("q", []int64{2, 1})

	ids, ok := c.Get("q")
	require.True(t, ok)
	assert.Equal(t, []int64{2, 1}, ids)
}

func TestMostRecent(t *testing.T) {
	c, clock := newTestCache()

	c.Set("older", []int64{1})
	clock.advance(10 * time.Second)
	c.Set("newer", []int64{2})

	ids, ok := c.MostRecent()
	require.True(t, ok)
	assert.Equal(t, []int64{2}, ids)
}

func TestMostRecent_SkipsExpired(t *testing.T) {
	c, clock := newTestCache(WithTTL(30 * time.Second))

	c.Set("stale", []int64{1})
	clock.advance(20 * time.Second)
	c.Set("fresh", []int64{2})
	clock.advance(15 * time.Second)

	// "stale" is now 35s old (expired), "fresh" is 15s old.
	ids, ok := c.MostRecent()
	require.True(t, ok)
	assert.Equal(t, []int64{2}, ids)

	clock.advance(20 * time.Second)
	_, ok = c.MostRecent()
	assert.False(t, ok)
}

func TestGet_ReturnsCopy(t *testing.T) {
	c, _ := newTestCache()

	c.Set("q", []int64{1, 2, 3})

	ids, _ := c.Get("q")
	ids[0] = 99

	again, _ := c.Get("q")
	assert.Equal(t, []int64{1, 2, 3}, again)
}
