package kommuneinfo

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// CachedSource wraps a Source with a TTL cache. Only successful, non-empty
// fetches are cached; a failure falls through to the next call so a
// transient outage does not pin an empty registry for the whole TTL.
type CachedSource struct {
	src   Source
	ttl   time.Duration
	clock clockwork.Clock

	mu        sync.Mutex
	cached    []Municipality
	fetchedAt time.Time
}

// NewCachedSource wraps src with a TTL cache. Pass a nil clock to use real
// time.
func NewCachedSource(src Source, ttl time.Duration, clock clockwork.Clock) *CachedSource {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &CachedSource{src: src, ttl: ttl, clock: clock}
}

func (c *CachedSource) Municipalities(ctx context.Context) ([]Municipality, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil && c.clock.Since(c.fetchedAt) < c.ttl {
		return c.cached, nil
	}

	municipalities, err := c.src.Municipalities(ctx)
	if err != nil {
		return nil, err
	}
	if len(municipalities) > 0 {
		c.cached = municipalities
		c.fetchedAt = c.clock.Now()
	}
	return municipalities, nil
}
