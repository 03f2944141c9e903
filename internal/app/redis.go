package app

import (
	"github.com/svara-ai/task-manager-api/internal/cache"
	"github.com/svara-ai/task-manager-api/internal/config"
)

var globalCache cache.Cache

// ConnectRedis wires the optional cache. The application keeps running
// without it when Redis is not configured or unreachable.
func ConnectRedis() {
	cfg := config.Global().Redis
	if cfg.URL == "" {
		globalLogger.Info().Msg("redis not configured, running without cache")
		return
	}

	c, err := cache.NewRedisCache(cfg.URL)
	if err != nil {
		globalLogger.Warn().
			Err(err).
			Msg("failed to connect to redis, running without cache")
		return
	}

	globalCache = c
	globalLogger.Info().Msg("connected to redis")
}
