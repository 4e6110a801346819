package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nexview/nexview-backend/config"
)

// OpenRedis connects to the metadata cache. A cache outage is not fatal:
// callers get a nil client and the video layer falls back to direct
// provider calls.
func OpenRedis(ctx context.Context, cfg *config.RedisConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pctx).Err(); err != nil {
		log.Printf("Redis unavailable at %s, caching disabled: %v", cfg.Addr, err)
		client.Close()
		return nil
	}

	return client
}
