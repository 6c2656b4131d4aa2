package config

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

var RedisClient *redis.Client

const renderCacheTTL = 10 * time.Minute
const renderCacheKeyPrefix = "post:html:"

// InitRedis connects the optional render cache. The cache accelerates
// the public blog pages; everything degrades gracefully without it.
func InitRedis() {
	redisURL := viper.GetString("REDIS_URL")
	if redisURL == "" {
		log.Println("REDIS_URL not configured, render cache disabled")
		return
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("Warning: failed to parse REDIS_URL: %v - render cache disabled", err)
		return
	}

	RedisClient = redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := RedisClient.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: failed to connect to Redis: %v - render cache disabled", err)
		RedisClient = nil
		return
	}
	log.Println("Redis render cache connected")
}

// GetCachedRender returns the cached HTML for a post slug, if any.
func GetCachedRender(ctx context.Context, slug string) (string, bool) {
	if RedisClient == nil {
		return "", false
	}
	val, err := RedisClient.Get(ctx, renderCacheKeyPrefix+slug).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// SetCachedRender stores rendered HTML for a post slug. Failures are
// ignored; the cache is best effort.
func SetCachedRender(ctx context.Context, slug, html string) {
	if RedisClient == nil {
		return
	}
	RedisClient.Set(ctx, renderCacheKeyPrefix+slug, html, renderCacheTTL)
}

// InvalidateRender drops the cached HTML for a slug after an edit.
func InvalidateRender(ctx context.Context, slug string) {
	if RedisClient == nil {
		return
	}
	RedisClient.Del(ctx, renderCacheKeyPrefix+slug)
}
