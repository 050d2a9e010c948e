package database

import (
	"github.com/redis/go-redis/v9"
)

// NewRedis creates the Redis client backing the per-user refresh-token
// creation lock. Connectivity is checked with a ping at startup, not here.
func NewRedis(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}
