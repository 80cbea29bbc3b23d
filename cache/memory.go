package cache

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/ZaguanLabs/lexbridge"
)

// DefaultMaxSize is the capacity used when NewResultCache gets a
// non-positive size.
const DefaultMaxSize = 1000

// ResultCache is a bounded cache of resolution results with LRU-by-last-
// access eviction. Every mutation is persisted to the configured Store in
// the background; persistence failures are logged and never surface to
// callers.
//
// All methods are safe for concurrent use.
type ResultCache struct {
	mu      sync.Mutex
	entries map[string]*Entry
	maxSize int
	ttl     time.Duration
	now     func() time.Time
	logger  *slog.Logger

	store Store
	w     *writer
}

// Option is a functional option for configuring the ResultCache.
type Option func(*ResultCache)

// WithStore sets the durable store. Without one the cache is memory-only.
func WithStore(s Store) Option {
	return func(c *ResultCache) {
		c.store = s
	}
}

// WithLogger sets the logger for persistence warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *ResultCache) {
		c.logger = logger
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *ResultCache) {
		c.now = now
	}
}

// WithTTL expires entries this long after they were written. Expired
// entries behave as misses and are dropped on access. Zero disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(c *ResultCache) {
		if ttl < 0 {
			ttl = 0
		}
		c.ttl = ttl
	}
}

// NewResultCache creates an empty cache holding at most maxSize entries.
// If a store is configured, a background writer is started; call Close to
// stop it.
func NewResultCache(maxSize int, opts ...Option) *ResultCache {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	c := &ResultCache{
		entries: make(map[string]*Entry),
		maxSize: maxSize,
		now:     time.Now,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.store != nil {
		c.w = newWriter(c)
	}

	return c
}

// Open creates a cache backed by store and loads its last snapshot. Loading
// is best-effort: a missing, unreadable or invalid snapshot is logged and
// the cache starts empty.
func Open(ctx context.Context, maxSize int, store Store, opts ...Option) *ResultCache {
	c := NewResultCache(maxSize, append(opts, WithStore(store))...)

	snap, err := store.Load(ctx)
	switch {
	case errors.Is(err, ErrNotFound):
		c.logger.Debug("no persisted cache, starting empty")
		return c
	case err != nil:
		c.logger.Warn("loading persisted cache failed, starting empty",
			"error", &lexbridge.PersistenceError{Op: "load", Cause: err})
		return c
	}

	if err := c.replace(snap, false); err != nil {
		c.logger.Warn("persisted cache rejected, starting empty", "error", err)
		return c
	}

	c.logger.Debug("loaded persisted cache", "entries", c.Len())
	return c
}

// Get returns a copy of the entry for (from, to, text). A hit updates
// LastAccessedAt and AccessCount; a miss changes nothing.
func (c *ResultCache) Get(from, to, text string) (*Entry, bool) {
	key := lexbridge.CacheKey(from, to, text)

	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		c.mu.Unlock()
		return nil, false
	}

	now := c.now()
	if c.expired(e, now) {
		delete(c.entries, key)
		c.mu.Unlock()
		c.changed()
		return nil, false
	}

	e.LastAccessedAt = now
	e.AccessCount++
	out := *e
	c.mu.Unlock()

	c.changed()
	return &out, true
}

// Put stores result under (from, to, text). A new key evicts the least
// recently accessed entry first when the cache is full. Writing an existing
// key replaces it and resets its bookkeeping.
//
// A result with an unknown Method or a NaN confidence is dropped and logged;
// other confidences are clamped to [0, 1]. Every stored entry therefore
// survives an export and import.
func (c *ResultCache) Put(from, to, text string, result lexbridge.ResolutionResult) {
	if !result.Method.Valid() || math.IsNaN(result.Confidence) {
		c.logger.Warn("refusing to cache invalid result",
			"from", from,
			"to", to,
			"method", int(result.Method),
			"confidence", result.Confidence,
		)
		return
	}
	result.Confidence = min(max(result.Confidence, 0), 1)

	key := lexbridge.CacheKey(from, to, text)

	c.mu.Lock()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictOldestLocked()
	}

	now := c.now()
	c.entries[key] = &Entry{
		Key:            key,
		OriginalText:   text,
		TranslatedText: result.TranslatedText,
		SourceLanguage: from,
		TargetLanguage: to,
		Confidence:     result.Confidence,
		Method:         result.Method,
		CreatedAt:      now,
		LastAccessedAt: now,
		AccessCount:    1,
	}
	c.mu.Unlock()

	c.changed()
}

// EvictOldest removes the entry with the smallest LastAccessedAt. Ties go to
// the lexicographically smallest key. It returns the removed key.
func (c *ResultCache) EvictOldest() (string, bool) {
	c.mu.Lock()
	key, ok := c.evictOldestLocked()
	c.mu.Unlock()

	if ok {
		c.changed()
	}
	return key, ok
}

func (c *ResultCache) evictOldestLocked() (string, bool) {
	var oldest *Entry
	for _, e := range c.entries {
		if oldest == nil || olderThan(e, oldest) {
			oldest = e
		}
	}
	if oldest == nil {
		return "", false
	}
	delete(c.entries, oldest.Key)
	return oldest.Key, true
}

// olderThan orders entries by LastAccessedAt, then key.
func olderThan(a, b *Entry) bool {
	if !a.LastAccessedAt.Equal(b.LastAccessedAt) {
		return a.LastAccessedAt.Before(b.LastAccessedAt)
	}
	return a.Key < b.Key
}

func (c *ResultCache) expired(e *Entry, now time.Time) bool {
	return c.ttl > 0 && now.Sub(e.CreatedAt) > c.ttl
}

// Clear removes every entry and the persisted snapshot.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*Entry)
	c.mu.Unlock()

	if c.w != nil {
		c.w.requestClear()
	}
	c.changed()
}

// Len returns the number of entries.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// MaxSize returns the capacity.
func (c *ResultCache) MaxSize() int {
	return c.maxSize
}

// Lookup implements lexbridge.ResultCache.
func (c *ResultCache) Lookup(from, to, text string) (*lexbridge.ResolutionResult, bool) {
	e, ok := c.Get(from, to, text)
	if !ok {
		return nil, false
	}
	r := e.Result()
	return &r, true
}

// Store implements lexbridge.ResultCache.
func (c *ResultCache) Store(from, to, text string, result lexbridge.ResolutionResult) {
	c.Put(from, to, text, result)
}

// changed schedules a background save.
func (c *ResultCache) changed() {
	if c.w != nil {
		c.w.signal()
	}
}

var _ lexbridge.ResultCache = (*ResultCache)(nil)
