package service

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"portfoliopal/api/internal/config"
)

// LoginThrottle caps credential attempts per client address over a fixed
// window, backed by redis counters so every instance shares the same view.
// It fails open: if redis is unreachable the attempt is allowed and the
// failure logged, so an outage never locks everyone out.
type LoginThrottle struct {
	client *redis.Client
	cfg    config.ThrottleConfig
	log    zerolog.Logger
}

func NewLoginThrottle(client *redis.Client, cfg config.ThrottleConfig, log zerolog.Logger) *LoginThrottle {
	return &LoginThrottle{
		client: client,
		cfg:    cfg,
		log:    log,
	}
}

// Allow reports whether another attempt from key is permitted and records
// the attempt.
func (t *LoginThrottle) Allow(ctx context.Context, key string) bool {
	if t.client == nil || t.cfg.MaxAttempts <= 0 {
		return true
	}

	redisKey := fmt.Sprintf("throttle:auth:%s", key)

	count, err := t.client.Incr(ctx, redisKey).Result()
	if err != nil {
		t.log.Warn().Err(err).Str("key", key).Msg("throttle counter unavailable")
		return true
	}
	if count == 1 {
		if err := t.client.Expire(ctx, redisKey, t.cfg.Window).Err(); err != nil {
			t.log.Warn().Err(err).Str("key", key).Msg("throttle expiry not set")
		}
	}

	return count <= int64(t.cfg.MaxAttempts)
}
