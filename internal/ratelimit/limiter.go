package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aurafarming/mailportal/internal/config"
	redis "github.com/redis/go-redis/v9"
)

const (
	keyRegister      = "portal:register:%s"
	keyCheckUsername = "portal:check:%s"
)

// PortalLimiter throttles the public registration endpoints per client
// address. A nil limiter allows everything, so the portal degrades to
// unthrottled rather than unavailable when redis is absent.
type PortalLimiter struct {
	enabled bool

	bucket *TokenBucket

	registerRate  float64
	registerBurst int
	checkRate     float64
	checkBurst    int
}

func NewPortalLimiter(cfg config.Config) (*PortalLimiter, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled {
		return nil, nil
	}

	addr := strings.TrimSpace(limitCfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("rate limit redis addr is required")
	}
	if limitCfg.RegisterRate <= 0 || limitCfg.RegisterBurst <= 0 {
		return nil, errors.New("register rate limit must be positive")
	}
	if limitCfg.CheckUsernameRate <= 0 || limitCfg.CheckUsernameBurst <= 0 {
		return nil, errors.New("check-username rate limit must be positive")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(limitCfg.RedisPassword),
		DB:       limitCfg.RedisDB,
	})

	return &PortalLimiter{
		enabled:       true,
		bucket:        NewTokenBucket(client),
		registerRate:  limitCfg.RegisterRate,
		registerBurst: limitCfg.RegisterBurst,
		checkRate:     limitCfg.CheckUsernameRate,
		checkBurst:    limitCfg.CheckUsernameBurst,
	}, nil
}

func (l *PortalLimiter) Enabled() bool {
	return l != nil && l.enabled
}

func (l *PortalLimiter) AllowRegister(ctx context.Context, clientAddr string) (Result, error) {
	if !l.Enabled() {
		return Result{Allowed: true}, nil
	}
	key := fmt.Sprintf(keyRegister, strings.TrimSpace(clientAddr))
	return l.bucket.Allow(ctx, key, l.registerRate, l.registerBurst)
}

func (l *PortalLimiter) AllowCheckUsername(ctx context.Context, clientAddr string) (Result, error) {
	if !l.Enabled() {
		return Result{Allowed: true}, nil
	}
	key := fmt.Sprintf(keyCheckUsername, strings.TrimSpace(clientAddr))
	return l.bucket.Allow(ctx, key, l.checkRate, l.checkBurst)
}
