package cache

import (
	"github.com/redis/go-redis/v9"
)

// Open creates a Redis client from a redis:// or rediss:// URL. It does not dial;
// callers Ping when they need the connection verified.
func Open(url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opt), nil
}
