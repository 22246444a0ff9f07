package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"hub/config"
	"hub/metrics"

	"github.com/redis/go-redis/v9"
)

// Cache absorbs the client's 30-second notification polls. When no redis
// host is configured it stays nil and every lookup is a miss.
var Cache *redis.Client

// InitCache connects to redis if configured
func InitCache() {
	if config.RedisHost == "" {
		log.Println("Redis not configured, notification cache disabled")
		return
	}
	Cache = redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", config.RedisHost, config.RedisPort),
	})
	if err := Cache.Ping(context.Background()).Err(); err != nil {
		log.Println("Redis unreachable, notification cache disabled: ", err)
		Cache = nil
	}
}

func summaryKey(username string) string {
	return config.DefaultNotificationCacheConfig.KeyPrefix + "summary:" + username
}

// GetCachedSummary returns a fresh cached summary for the user, if any
func GetCachedSummary(username string) (*NotificationSummary, bool) {
	if Cache == nil {
		return nil, false
	}
	raw, err := Cache.Get(context.Background(), summaryKey(username)).Bytes()
	if err != nil {
		metrics.CacheMisses.Inc()
		return nil, false
	}
	var summary NotificationSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		metrics.CacheMisses.Inc()
		return nil, false
	}
	metrics.CacheHits.Inc()
	return &summary, true
}

// StoreCachedSummary caches a computed summary for the configured TTL
func StoreCachedSummary(username string, summary *NotificationSummary) {
	if Cache == nil {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	ttl := config.DefaultNotificationCacheConfig.SummaryTTL
	if err := Cache.Set(context.Background(), summaryKey(username), raw, ttl).Err(); err != nil {
		log.Println("Failed to cache notification summary: ", err)
	}
}

// InvalidateNotificationCache drops the user's cached summary so the next
// poll recomputes it
func InvalidateNotificationCache(username string) {
	if Cache == nil {
		return
	}
	if err := Cache.Del(context.Background(), summaryKey(username)).Err(); err != nil {
		log.Println("Failed to invalidate notification cache: ", err)
	}
}
