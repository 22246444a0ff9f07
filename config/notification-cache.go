package config

import "time"

// Notification cache configuration
type NotificationCacheConfig struct {
	SummaryTTL time.Duration // How long a computed notification summary stays valid
	KeyPrefix  string        // Redis key namespace
}

var DefaultNotificationCacheConfig = NotificationCacheConfig{
	SummaryTTL: 15 * time.Second,
	KeyPrefix:  "hub:notif:",
}
