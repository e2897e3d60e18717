package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/lumen-learning/lumen_api/shared"
)

// RateLimitService throttles abuse-prone endpoints with a fixed window
// counter per client IP, kept in redis so limits hold across instances.
type RateLimitService struct {
	appContext.DefaultService

	configs map[string]*RateLimitConfig
	mutex   sync.RWMutex

	redisSvc *RedisService
}

// RateLimitConfig represents rate limiting configuration
type RateLimitConfig struct {
	EndpointType string
	MaxRequests  int64
	WindowSize   time.Duration
	Description  string
	IsActive     bool
}

const RATE_LIMIT_SVC = "rate_limit_svc"

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *appContext.Context) error {
	svc.configs = make(map[string]*RateLimitConfig)
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	svc.initDefaultConfigs()
	return nil
}

func (svc *RateLimitService) initDefaultConfigs() {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	svc.configs = map[string]*RateLimitConfig{
		"login": {
			EndpointType: "login",
			MaxRequests:  10,
			WindowSize:   15 * time.Minute,
			Description:  "Login attempts rate limit",
			IsActive:     true,
		},
		"register": {
			EndpointType: "register",
			MaxRequests:  5,
			WindowSize:   15 * time.Minute,
			Description:  "Registration rate limit",
			IsActive:     true,
		},
		"topic_event": {
			EndpointType: "topic_event",
			MaxRequests:  120,
			WindowSize:   time.Minute,
			Description:  "Practice event ingestion rate limit",
			IsActive:     true,
		},
		"activity": {
			EndpointType: "activity",
			MaxRequests:  30,
			WindowSize:   time.Minute,
			Description:  "Daily activity touch rate limit",
			IsActive:     true,
		},
	}
}

func (svc *RateLimitService) config(endpointType string) *RateLimitConfig {
	svc.mutex.RLock()
	defer svc.mutex.RUnlock()
	return svc.configs[endpointType]
}

// Allow counts one hit for the client in the endpoint's current window and
// reports whether it stays under the limit. Redis failures fail open.
func (svc *RateLimitService) Allow(endpointType, clientIP string) bool {
	cfg := svc.config(endpointType)
	if cfg == nil || !cfg.IsActive {
		return true
	}

	ctx := context.Background()
	window := time.Now().Unix() / int64(cfg.WindowSize.Seconds())
	key := fmt.Sprintf("ratelimit:%s:%s:%d", endpointType, clientIP, window)

	count, err := svc.redisSvc.Increment(ctx, key)
	if err != nil {
		log.WithError(err).Warn("Rate limit counter unavailable, allowing request")
		return true
	}
	if count == 1 {
		if err := svc.redisSvc.Expire(ctx, key, cfg.WindowSize); err != nil {
			log.WithError(err).Warn("Failed to expire rate limit counter")
		}
	}

	return count <= cfg.MaxRequests
}

// Middleware rejects requests over the endpoint's limit with a 429.
func (svc *RateLimitService) Middleware(endpointType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !svc.Allow(endpointType, c.IP()) {
			log.Warnf("Rate limit exceeded: %s from %s", endpointType, c.IP())
			return shared.ResponseJSON(c, fiber.StatusTooManyRequests, "Too many requests", nil)
		}
		return c.Next()
	}
}
