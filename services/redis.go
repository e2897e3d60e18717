package services

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

// RedisService fronts the cache used for leaderboard snapshots.
type RedisService struct {
	appContext.DefaultService
	redis *redis.Client
}

const REDIS_SVC = "redis_svc"

func (svc RedisService) Id() string {
	return REDIS_SVC
}

func (svc *RedisService) Configure(ctx *appContext.Context) error {
	svc.initRedisClient()
	return svc.DefaultService.Configure(ctx)
}

func (svc *RedisService) Start() error {
	if svc.redis != nil {
		ctx := context.Background()
		_, err := svc.redis.Ping(ctx).Result()
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
	}
	return nil
}

func (svc *RedisService) initRedisClient() {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	redisPassword := os.Getenv("REDIS_PASSWORD")

	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			redisDB = db
		}
	}

	svc.redis = redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       redisDB,
	})
}

func (svc *RedisService) GetClient() *redis.Client {
	return svc.redis
}

func (svc *RedisService) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if svc.redis == nil {
		return fmt.Errorf("redis client not initialized")
	}

	data, err := sonic.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return svc.redis.Set(ctx, key, data, expiration).Err()
}

// GetJSON leaves dest untouched and returns false on a cache miss.
func (svc *RedisService) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if svc.redis == nil {
		return false, fmt.Errorf("redis client not initialized")
	}

	result, err := svc.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, sonic.UnmarshalString(result, dest)
}

func (svc *RedisService) Delete(ctx context.Context, keys ...string) error {
	if svc.redis == nil {
		return fmt.Errorf("redis client not initialized")
	}

	return svc.redis.Del(ctx, keys...).Err()
}

func (svc *RedisService) Increment(ctx context.Context, key string) (int64, error) {
	if svc.redis == nil {
		return 0, fmt.Errorf("redis client not initialized")
	}

	return svc.redis.Incr(ctx, key).Result()
}

func (svc *RedisService) Expire(ctx context.Context, key string, expiration time.Duration) error {
	if svc.redis == nil {
		return fmt.Errorf("redis client not initialized")
	}

	return svc.redis.Expire(ctx, key, expiration).Err()
}
