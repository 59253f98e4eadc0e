package videos

import (
	"context"
	"sync"
	"time"

	"github.com/vidfriends/videoembed/internal/logging"
)

type cacheEntry struct {
	set     ThumbnailSet
	expires time.Time
}

// CachingSource wraps another Source with a TTL cache and a per-lookup
// timeout. Failed lookups are not cached.
type CachingSource struct {
	base    Source
	ttl     time.Duration
	timeout time.Duration
	now     func() time.Time

	mu    sync.RWMutex
	items map[string]cacheEntry
	// epoch advances on every Invalidate; lookups started in an older epoch
	// are not stored.
	epoch uint64
}

// NewCachingSource returns a Source that caches lookups for ttl and bounds
// each base lookup by timeout. A non-positive timeout disables the bound.
func NewCachingSource(base Source, ttl, timeout time.Duration) *CachingSource {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CachingSource{
		base:    base,
		ttl:     ttl,
		timeout: timeout,
		now:     time.Now,
		items:   make(map[string]cacheEntry),
	}
}

// Thumbnails returns the cached set when fresh, otherwise it delegates to the
// base source and stores the result.
func (c *CachingSource) Thumbnails(ctx context.Context, videoID string) (ThumbnailSet, error) {
	if c == nil || c.base == nil {
		return ThumbnailSet{}, ErrSourceUnavailable
	}

	now := c.now()

	c.mu.RLock()
	entry, ok := c.items[videoID]
	epoch := c.epoch
	c.mu.RUnlock()
	if ok && now.Before(entry.expires) {
		return entry.set, nil
	}

	lookupCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	lookupCtx, span := logging.StartSpan(lookupCtx, "thumbnail lookup")
	defer span.End()

	set, err := c.base.Thumbnails(lookupCtx, videoID)
	if err != nil {
		span.Fail(err)
		return ThumbnailSet{}, err
	}

	c.mu.Lock()
	c.evictExpiredLocked(now)
	if c.epoch == epoch {
		c.items[videoID] = cacheEntry{set: set, expires: now.Add(c.ttl)}
	}
	c.mu.Unlock()

	return set, nil
}

func (c *CachingSource) evictExpiredLocked(now time.Time) {
	for id, entry := range c.items {
		if !now.Before(entry.expires) {
			delete(c.items, id)
		}
	}
}

// Invalidate drops the cached set for videoID.
func (c *CachingSource) Invalidate(videoID string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	delete(c.items, videoID)
	c.epoch++
	c.mu.Unlock()
}
