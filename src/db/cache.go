package db

import (
	"log"
	"sync"

	"github.com/dgraph-io/ristretto"
)

// Dashboard responses are cached per user so any write to a user's
// segments, budgets or expenses can drop exactly that user's entries.
// The key registry exists because ristretto has no scan-by-prefix.
var (
	Cache              *ristretto.Cache
	DashboardCacheKeys = struct {
		sync.RWMutex
		m map[int]map[string]struct{}
	}{m: make(map[int]map[string]struct{})}
)

func InitCache() {
	var err error
	Cache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}
}

func SetDashboardCache(userID int, cacheKey string, value interface{}) {
	if Cache == nil {
		return
	}
	DashboardCacheKeys.Lock()
	if DashboardCacheKeys.m[userID] == nil {
		DashboardCacheKeys.m[userID] = make(map[string]struct{})
	}
	DashboardCacheKeys.m[userID][cacheKey] = struct{}{}
	DashboardCacheKeys.Unlock()
	Cache.Set(cacheKey, value, 1)
}

func GetDashboardCache(cacheKey string) (interface{}, bool) {
	if Cache == nil {
		return nil, false
	}
	return Cache.Get(cacheKey)
}

// ClearDashboardCache drops every cached dashboard for one user. Called
// after any mutation of that user's data.
func ClearDashboardCache(userID int) {
	if Cache == nil {
		return
	}
	DashboardCacheKeys.Lock()
	for key := range DashboardCacheKeys.m[userID] {
		Cache.Del(key)
	}
	delete(DashboardCacheKeys.m, userID)
	DashboardCacheKeys.Unlock()
}
