// Package query caches read results by (entity, lookup) the way the site's
// data-fetching layer does: entries are served from memory while fresh,
// refetched once stale, and dropped after a period without access.
// Concurrent fetches for the same key share one call. Errors are never cached.
//
// Cached values are shared between callers. Use FetchCopy when callers may
// mutate what they get back.
package query

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/goliatone/go-atlas/internal/logging"
	"github.com/goliatone/go-atlas/pkg/interfaces"
)

const (
	DefaultFreshFor   = 5 * time.Minute
	DefaultEvictAfter = 10 * time.Minute
)

// Key identifies a cached result. Distinct lookups never share a key.
type Key struct {
	Entity string
	Lookup string
}

func (k Key) String() string {
	return k.Entity + ":" + k.Lookup
}

// FetchFunc loads the value for a key.
type FetchFunc func(ctx context.Context) (any, error)

type entry struct {
	value     any
	fetchedAt time.Time
	usedAt    time.Time
}

// Client is safe for concurrent use.
type Client struct {
	mu         sync.Mutex
	entries    map[Key]*entry
	generation map[string]uint64
	group      singleflight.Group
	freshFor   time.Duration
	evictAfter time.Duration
	now        func() time.Time
	logger     interfaces.Logger
	disabled   bool
}

// Option configures a Client.
type Option func(*Client)

func WithFreshFor(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.freshFor = d
		}
	}
}

func WithEvictAfter(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.evictAfter = d
		}
	}
}

// WithClock overrides the internal time source.
func WithClock(clock func() time.Time) Option {
	return func(c *Client) {
		if clock != nil {
			c.now = clock
		}
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDisabled turns the client into a pass-through that still coalesces
// in-flight calls but keeps nothing.
func WithDisabled(disabled bool) Option {
	return func(c *Client) {
		c.disabled = disabled
	}
}

// NewClient constructs a client with the default 5m fresh and 10m eviction windows.
func NewClient(opts ...Option) *Client {
	c := &Client{
		entries:    make(map[Key]*entry),
		generation: make(map[string]uint64),
		freshFor:   DefaultFreshFor,
		evictAfter: DefaultEvictAfter,
		now:        time.Now,
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Fetch returns the cached value for key while fresh, otherwise calls fn.
func Fetch[T any](ctx context.Context, c *Client, key Key, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	value, err := c.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		return zero, nil
	}
	return typed, nil
}

// FetchCopy is Fetch with every result passed through clone, so callers never
// share cached values.
func FetchCopy[T any](ctx context.Context, c *Client, key Key, fn func(context.Context) (T, error), clone func(T) T) (T, error) {
	value, err := Fetch(ctx, c, key, fn)
	if err != nil || clone == nil {
		return value, err
	}
	return clone(value), nil
}

// Fetch serves key from memory while fresh. Stale or missing entries are
// loaded through fn; concurrent callers for the same key share that call.
// The shared call is detached from the cancellation of whichever caller
// started it, and each caller stops waiting when its own ctx is done.
func (c *Client) Fetch(ctx context.Context, key Key, fn FetchFunc) (any, error) {
	if c == nil {
		return fn(ctx)
	}

	if value, ok := c.lookup(key); ok {
		c.logger.Trace("query.cache.hit", "key", key.String())
		return value, nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	results := c.group.DoChan(key.String(), func() (any, error) {
		gen := c.currentGeneration(key.Entity)
		result, err := fn(fetchCtx)
		if err != nil {
			return nil, err
		}
		if !c.storeIfCurrent(key, result, gen) {
			c.logger.Trace("query.fetch.discarded", "key", key.String())
		}
		return result, nil
	})

	select {
	case <-ctx.Done():
		c.logger.Debug("query.fetch.abandoned", "key", key.String(), "error", ctx.Err())
		return nil, ctx.Err()
	case res := <-results:
		if res.Err != nil {
			c.logger.Debug("query.fetch.failed", "key", key.String(), "error", res.Err)
			return nil, res.Err
		}
		if res.Shared {
			c.logger.Trace("query.fetch.shared", "key", key.String())
		}
		return res.Val, nil
	}
}

func (c *Client) lookup(key Key) (any, bool) {
	if c.disabled {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.sweepLocked(now)

	cached, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	cached.usedAt = now
	if now.Sub(cached.fetchedAt) >= c.freshFor {
		return nil, false
	}
	return cached.value, true
}

func (c *Client) currentGeneration(entity string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation[entity]
}

// storeIfCurrent keeps value unless the entity was invalidated after gen was
// read, in which case the result predates the invalidation.
func (c *Client) storeIfCurrent(key Key, value any, gen uint64) bool {
	if c.disabled {
		return true
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generation[key.Entity] != gen {
		return false
	}
	now := c.now()
	c.entries[key] = &entry{value: value, fetchedAt: now, usedAt: now}
	return true
}

// Invalidate drops a single key. Fetches for the entity already in flight
// still answer their callers but are not cached.
func (c *Client) Invalidate(key Key) {
	if c == nil {
		return
	}
	c.mu.Lock()
	delete(c.entries, key)
	c.generation[key.Entity]++
	c.mu.Unlock()
	c.group.Forget(key.String())
}

// InvalidateEntity drops every key for the entity.
func (c *Client) InvalidateEntity(entity string) {
	if c == nil {
		return
	}
	entity = strings.TrimSpace(entity)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation[entity]++
	for key := range c.entries {
		if key.Entity == entity {
			delete(c.entries, key)
			c.group.Forget(key.String())
		}
	}
}

// Sweep evicts entries unused for longer than the eviction window and
// reports how many were dropped.
func (c *Client) Sweep() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sweepLocked(c.now())
}

// Len reports the number of cached entries.
func (c *Client) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Client) sweepLocked(now time.Time) int {
	evicted := 0
	for key, cached := range c.entries {
		if now.Sub(cached.usedAt) >= c.evictAfter {
			delete(c.entries, key)
			evicted++
		}
	}
	return evicted
}
