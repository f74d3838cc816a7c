package data

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sync"
	"time"
)

// CacheEntry represents a cached weather response.
type CacheEntry struct {
	Weather   *WeatherFile
	ExpiresAt time.Time
}

// WeatherCache provides in-memory caching for Open-Meteo responses.
// Archive data for a past year never changes, but the cache still
// expires entries so a long-lived server cannot grow without bound.
type WeatherCache struct {
	mu    sync.RWMutex
	store map[string]*CacheEntry
	ttl   time.Duration
}

var globalCache *WeatherCache
var cacheOnce sync.Once

// GetCache returns the global cache instance if caching is enabled via
// ENABLE_WEATHER_CACHE=true. Returns nil when disabled.
func GetCache() *WeatherCache {
	if os.Getenv("ENABLE_WEATHER_CACHE") != "true" {
		return nil
	}

	cacheOnce.Do(func() {
		ttl := 24 * time.Hour
		if ttlStr := os.Getenv("WEATHER_CACHE_TTL"); ttlStr != "" {
			if parsed, err := time.ParseDuration(ttlStr); err == nil {
				ttl = parsed
			}
		}

		globalCache = &WeatherCache{
			store: make(map[string]*CacheEntry),
			ttl:   ttl,
		}

		go globalCache.cleanup()
	})

	return globalCache
}

// Get retrieves a cached response if available and not expired.
func (c *WeatherCache) Get(key string) (*WeatherFile, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[key]
	if !exists {
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Weather, true
}

// Set stores a response in the cache.
func (c *WeatherCache) Set(key string, wf *WeatherFile) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = &CacheEntry{
		Weather:   wf,
		ExpiresAt: time.Now().Add(c.ttl),
	}
}

// Clear removes all entries from the cache.
func (c *WeatherCache) Clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*CacheEntry)
}

// cleanup periodically removes expired entries.
func (c *WeatherCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, entry := range c.store {
			if now.After(entry.ExpiresAt) {
				delete(c.store, key)
			}
		}
		c.mu.Unlock()
	}
}

// GenerateCacheKey creates a cache key from query parameters.
func GenerateCacheKey(q WeatherQuery) string {
	keyStr := fmt.Sprintf("%.4f:%.4f:%d", q.Latitude, q.Longitude, q.Year)
	hash := sha256.Sum256([]byte(keyStr))
	return hex.EncodeToString(hash[:])
}
