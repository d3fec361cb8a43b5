package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HealthStatus represents current status of external services.
// A nil pointer means the dependency is not in use.
type HealthStatus struct {
	Mongo     *bool     `json:"mongo,omitempty"`
	Redis     *bool     `json:"redis,omitempty"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// CheckHealth pings the configured dependencies once and stores the result.
func CheckHealth(redisClient *redis.Client, mongoClient *mongo.Client) HealthStatus {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	status := HealthStatus{CheckedAt: time.Now()}
	if redisClient != nil {
		ok := redisClient.Ping(ctx).Err() == nil
		status.Redis = &ok
	}
	if mongoClient != nil {
		ok := mongoClient.Ping(ctx, nil) == nil
		status.Mongo = &ok
	}

	mu.Lock()
	currentHealth = status
	mu.Unlock()
	return status
}

// StartHealthMonitor schedules a health check every minute. The returned
// scheduler must be stopped on shutdown.
func StartHealthMonitor(redisClient *redis.Client, mongoClient *mongo.Client) (*cron.Cron, error) {
	logger := GetLogger()
	CheckHealth(redisClient, mongoClient)

	c := cron.New()
	_, err := c.AddFunc("@every 1m", func() {
		status := CheckHealth(redisClient, mongoClient)
		if (status.Redis != nil && !*status.Redis) || (status.Mongo != nil && !*status.Mongo) {
			logger.Warn("dependency health check failed", zap.Any("status", status))
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
