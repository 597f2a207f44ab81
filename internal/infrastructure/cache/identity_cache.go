package cache

import (
	"sync"
	"time"

	"github.com/pratapsingh123om/WQAM-FINAL/internal/domain"
)

// entry is one resolved identity with its expiry.
type entry struct {
	identity  domain.Identity
	expiresAt time.Time
}

// IdentityCache is a thread-safe TTL cache of resolved identities keyed by
// the token they were resolved with. The TTL is kept short: a cached entry
// can mask a server-side revocation for at most that long, and only on
// render paths (authenticated API calls still hit the backend).
// Implements domain.IdentityCache.
type IdentityCache struct {
	mu      sync.RWMutex
	entries map[string]*entry
	ttl     time.Duration
	done    chan struct{}
}

// NewIdentityCache creates a cache with the given TTL and starts its
// cleanup loop.
func NewIdentityCache(ttl time.Duration) *IdentityCache {
	c := &IdentityCache{
		entries: make(map[string]*entry),
		ttl:     ttl,
		done:    make(chan struct{}),
	}
	go c.cleanupLoop()
	return c
}

// Get returns the cached identity for token, if present and unexpired.
func (c *IdentityCache) Get(token string) (*domain.Identity, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, found := c.entries[token]
	if !found || time.Now().After(e.expiresAt) {
		return nil, false
	}
	identity := e.identity
	return &identity, true
}

// Set stores a resolved identity under token.
func (c *IdentityCache) Set(token string, identity domain.Identity) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[token] = &entry{
		identity:  identity,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Evict drops the entry for token, if any. Called whenever the credential
// store is cleared so a dead token cannot resolve from cache.
func (c *IdentityCache) Evict(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, token)
}

// Close stops the cleanup loop.
func (c *IdentityCache) Close() {
	close(c.done)
}

func (c *IdentityCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for token, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, token)
		}
	}
}

func (c *IdentityCache) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.done:
			return
		}
	}
}
