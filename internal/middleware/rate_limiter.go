package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/HanreDelport/Inventory-Manager/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// rateEntry tracks request counts per IP within a sliding window.
type rateEntry struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

var (
	loginRateMap   = make(map[string]*rateEntry)
	loginRateMapMu sync.Mutex

	apiRateMap   = make(map[string]*rateEntry)
	apiRateMapMu sync.Mutex
)

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !allow(c.ClientIP(), loginRateMap, &loginRateMapMu, 20, time.Minute) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Too many login attempts. Try again in a minute."))
			return
		}
		c.Next()
	}
}

// RateLimiter returns a general-purpose sliding-window rate limiter.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !allow(c.ClientIP(), apiRateMap, &apiRateMapMu, limit, window) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Too many requests. Try again shortly."))
			return
		}
		c.Next()
	}
}

func allow(ip string, entries map[string]*rateEntry, mu *sync.Mutex, limit int, window time.Duration) bool {
	mu.Lock()
	entry, exists := entries[ip]
	if !exists {
		entry = &rateEntry{}
		entries[ip] = entry
	}
	mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	if now.After(entry.windowEnd) {
		entry.count = 0
		entry.windowEnd = now.Add(window)
	}
	entry.count++
	return entry.count <= limit
}

// Periodically removes expired entries from both rate limiter maps to prevent
// memory growth from IPs that never return.

const purgeInterval = 5 * time.Minute

func init() {
	go purgeExpiredEntries()
}

func purgeExpiredEntries() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		purged := purgeMap(loginRateMap, &loginRateMapMu) + purgeMap(apiRateMap, &apiRateMapMu)
		if purged > 0 {
			log.Debug().Int("entries_purged", purged).Msg("rate limiter maps purged")
		}
	}
}

func purgeMap(entries map[string]*rateEntry, mu *sync.Mutex) int {
	now := time.Now()
	mu.Lock()
	defer mu.Unlock()
	purged := 0
	for ip, entry := range entries {
		entry.mu.Lock()
		if now.After(entry.windowEnd) {
			delete(entries, ip)
			purged++
		}
		entry.mu.Unlock()
	}
	return purged
}
