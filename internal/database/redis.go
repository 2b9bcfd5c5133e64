package database

import (
	"context"
	"fmt"
	"time"

	"linkup/backend/internal/config"
	"linkup/backend/pkg/logger"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client
var Ctx = context.Background()

// InitRedis connects the shared redis client. A missing redis is not fatal:
// rate limiting and the online-set mirror degrade to no-ops.
func InitRedis() {
	if config.AppConfig.RedisAddr == "" {
		logger.Warn().Msg("REDIS_ADDR not set, rate limiting disabled")
		return
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       0,
	})

	if _, err := Redis.Ping(Ctx).Result(); err != nil {
		logger.Warn().Err(err).Msg("Failed to connect to Redis, rate limiting disabled")
		Redis = nil
		return
	}

	logger.Info().Msg("Connected to Redis")
}

// CheckRateLimit allows at most limit calls per duration for the given user.
// Returns true when the call is allowed.
func CheckRateLimit(userID uint, action string, limit int, duration time.Duration) (bool, error) {
	if Redis == nil {
		return true, nil
	}

	key := fmt.Sprintf("rate_limit:%s:%d", action, userID)
	count, err := Redis.Incr(Ctx, key).Result()
	if err != nil {
		return false, err
	}

	if count == 1 {
		Redis.Expire(Ctx, key, duration)
	}

	return count <= int64(limit), nil
}

// MarkOnline mirrors a presence transition into the shared online_users set.
// Best effort: failures are logged, never propagated.
func MarkOnline(userID uint, online bool) {
	if Redis == nil {
		return
	}

	var err error
	if online {
		err = Redis.SAdd(Ctx, "online_users", userID).Err()
	} else {
		err = Redis.SRem(Ctx, "online_users", userID).Err()
	}
	if err != nil {
		logger.Warn().Err(err).Uint("userID", userID).Msg("Failed to update online set")
	}
}
