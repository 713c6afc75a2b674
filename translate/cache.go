package translate

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/zeebo/xxh3"
)

// Fingerprint returns a short stable hash of query, used as a cache key and
// to correlate log lines.
func Fingerprint(query string) string {
	return fmt.Sprintf("%016x", xxh3.HashString(query))
}

// Cache memoises translations by query fingerprint.
type Cache struct {
	cache *gocache.Cache
}

// NewCache creates a cache whose entries expire after ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{cache: gocache.New(ttl, 2*ttl)}
}

// Get returns the cached translation of query.
func (c *Cache) Get(query string) (Translation, bool) {
	v, found := c.cache.Get(Fingerprint(query))
	if !found {
		return Translation{}, false
	}

	tr, ok := v.(Translation)
	if !ok || tr.Cypher != query {
		return Translation{}, false
	}

	return tr, true
}

// Set stores tr under its query.
func (c *Cache) Set(tr Translation) {
	c.cache.SetDefault(Fingerprint(tr.Cypher), tr)
}

// Len returns the number of cached translations, expired ones included until
// the next cleanup.
func (c *Cache) Len() int {
	return c.cache.ItemCount()
}
