package service

import (
	"context"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// ChainHeightKey is written by the chain follower every block.
const ChainHeightKey = "modgate:chain:height"

const heightCacheKey = "height"

// ClockService resolves the host chain's logical clock. The follower
// publishes the tip height into redis; reads are memoized for a second so
// a burst of calls inside one block does not hammer redis.
type ClockService struct {
	rdb   *redis.Client
	cache *gocache.Cache
}

func NewClockService(rdb *redis.Client) *ClockService {
	return &ClockService{
		rdb:   rdb,
		cache: gocache.New(time.Second, 5*time.Second),
	}
}

func (s *ClockService) Now(ctx context.Context) (int64, error) {
	if cached, ok := s.cache.Get(heightCacheKey); ok {
		return cached.(int64), nil
	}

	value, err := s.rdb.Get(ctx, ChainHeightKey).Result()
	if err != nil {
		return 0, errors.Wrap(err, "chain height unavailable")
	}
	height, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "malformed chain height")
	}

	s.cache.Set(heightCacheKey, height, gocache.DefaultExpiration)
	return height, nil
}
