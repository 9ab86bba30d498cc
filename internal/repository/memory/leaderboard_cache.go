package memory

import (
	"time"

	"peer-support-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

const leaderboardKey = "leaderboard"

// LeaderboardCache keeps the aggregated leaderboard in memory so the ranking
// query does not run on every request.
type LeaderboardCache struct {
	cache *cache.Cache
}

func NewLeaderboardCache() *LeaderboardCache {
	c := cache.New(5*time.Minute, 10*time.Minute)
	return &LeaderboardCache{
		cache: c,
	}
}

func (r *LeaderboardCache) Save(rows []contract.LeaderboardRow) {
	r.cache.Set(leaderboardKey, rows, cache.DefaultExpiration)
}

func (r *LeaderboardCache) Get() ([]contract.LeaderboardRow, bool) {
	if x, found := r.cache.Get(leaderboardKey); found {
		return x.([]contract.LeaderboardRow), true
	}
	return nil, false
}

func (r *LeaderboardCache) Invalidate() {
	r.cache.Delete(leaderboardKey)
}
