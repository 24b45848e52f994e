package api

import (
	"strconv"
	"sync"
	"time"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-gonic/gin"
)

// responseCache caches GET responses per project. Entries are keyed by the
// project's generation, so bumping it on link or unlink makes every earlier
// entry unreachable; they then expire with their TTL.
type responseCache struct {
	store *persist.MemoryStore
	ttl   time.Duration

	mu          sync.RWMutex
	generations map[string]uint64
}

func newResponseCache(ttl time.Duration) *responseCache {
	return &responseCache{
		store:       persist.NewMemoryStore(ttl),
		ttl:         ttl,
		generations: make(map[string]uint64),
	}
}

func (rc *responseCache) generation(projectID string) uint64 {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.generations[projectID]
}

// invalidate drops every cached response of the project.
func (rc *responseCache) invalidate(projectID string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.generations[projectID]++
}

func (rc *responseCache) middleware() gin.HandlerFunc {
	return cache.Cache(rc.store, rc.ttl, cache.WithCacheStrategyByRequest(func(c *gin.Context) (bool, cache.Strategy) {
		projectID := c.Param("id")
		return true, cache.Strategy{
			CacheKey: projectID + "#" + strconv.FormatUint(rc.generation(projectID), 10) + "#" + c.Request.RequestURI,
		}
	}))
}
