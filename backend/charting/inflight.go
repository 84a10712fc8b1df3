package charting

import (
	"github.com/ReneKroon/ttlcache"
	"sync"
	"time"
)

// Inflight remembers which clients have an ask outstanding. Entries expire
// after ttl so a request that never returns cannot lock a client out.
type Inflight struct {
	mtx   sync.Mutex
	cache *ttlcache.Cache
	ttl   time.Duration
}

func NewInflight(ttl time.Duration) *Inflight {
	cache := ttlcache.NewCache()
	// retries from a blocked client must not push the deadline back
	cache.SkipTtlExtensionOnHit(true)
	return &Inflight{cache: cache, ttl: ttl}
}

func (i *Inflight) Acquire(key string) bool {
	i.mtx.Lock()
	defer i.mtx.Unlock()
	if _, found := i.cache.Get(key); found {
		return false
	}
	i.cache.SetWithTTL(key, time.Now(), i.ttl)
	return true
}

func (i *Inflight) Release(key string) {
	i.mtx.Lock()
	defer i.mtx.Unlock()
	i.cache.Remove(key)
}

func (i *Inflight) Close() {
	i.cache.Close()
}
