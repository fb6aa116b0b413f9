package cache

import (
	"context"
	"sync"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/user"
)

// MemoryUserCache is the single-process fallback used when Redis is not
// configured.
type MemoryUserCache struct {
	entries sync.Map
	ttl     time.Duration
	now     func() time.Time
}

type memoryEntry struct {
	value     user.Verified
	expiresAt time.Time
}

func NewMemoryUserCache(ttl time.Duration) *MemoryUserCache {
	return &MemoryUserCache{ttl: ttl, now: time.Now}
}

func (c *MemoryUserCache) Get(_ context.Context, id uint) (*user.Verified, error) {
	val, ok := c.entries.Load(id)
	if !ok {
		return nil, nil
	}
	entry := val.(memoryEntry)
	if c.now().After(entry.expiresAt) {
		c.entries.Delete(id)
		return nil, nil
	}
	v := entry.value
	return &v, nil
}

func (c *MemoryUserCache) Put(_ context.Context, v user.Verified) error {
	c.entries.Store(v.ID, memoryEntry{value: v, expiresAt: c.now().Add(c.ttl)})
	return nil
}

func (c *MemoryUserCache) Invalidate(_ context.Context, id uint) error {
	c.entries.Delete(id)
	return nil
}

var _ user.VerifiedCache = (*MemoryUserCache)(nil)
