package db

import (
	"context"
	"os"

	"github.com/LauraM111/jobtowners-backend-sub001/utils"

	"github.com/redis/go-redis/v9"
)

// Redis is nil when no REDIS_ADDR is configured. Callers that use it for
// dedup fall back to their idempotent code paths.
var Redis *redis.Client

func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		utils.LogInfo("REDIS_ADDR not defined, webhook and reminder dedup run without Redis")
		return
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		utils.LogError(err, "Error connecting to Redis")
		return
	}

	Redis = rdb
	utils.LogSuccess("Redis connection successful")
}
