package leads

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"

	"github.com/wolfman30/launch216/pkg/logging"
)

// VelocityGuard caps how many valid submissions one client may make per
// window. It counts, it never deduplicates: identical payloads under the
// limit are all dispatched.
type VelocityGuard struct {
	redis  *redis.Client
	logger *logging.Logger
	config VelocityConfig
}

// VelocityConfig contains velocity check configuration.
type VelocityConfig struct {
	MaxSubmissions int
	Window         time.Duration
	KeyPrefix      string
}

// DefaultVelocityConfig returns default velocity limits.
func DefaultVelocityConfig() VelocityConfig {
	return VelocityConfig{
		MaxSubmissions: 10,
		Window:         time.Hour,
		KeyPrefix:      "velocity:lead",
	}
}

// VelocityResult contains the result of a velocity check.
type VelocityResult struct {
	Allowed      bool
	CurrentCount int
	MaxAllowed   int
	WindowExpiry time.Time
}

// NewVelocityGuard creates a guard backed by Redis.
func NewVelocityGuard(redisClient *redis.Client, config VelocityConfig, logger *logging.Logger) *VelocityGuard {
	if logger == nil {
		logger = logging.Default()
	}
	defaults := DefaultVelocityConfig()
	if config.MaxSubmissions <= 0 {
		config.MaxSubmissions = defaults.MaxSubmissions
	}
	if config.Window <= 0 {
		config.Window = defaults.Window
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = defaults.KeyPrefix
	}
	return &VelocityGuard{
		redis:  redisClient,
		logger: logger,
		config: config,
	}
}

// Check counts one submission for clientKey. Redis failures fail open.
func (v *VelocityGuard) Check(ctx context.Context, clientKey string) *VelocityResult {
	ctx, span := leadsTracer.Start(ctx, "leads.velocity_check")
	defer span.End()

	if v == nil || v.redis == nil {
		return &VelocityResult{Allowed: true}
	}

	key := fmt.Sprintf("%s:%s", v.config.KeyPrefix, clientKey)
	count, expiry, err := v.incrementAndGet(ctx, key, v.config.Window)
	if err != nil {
		v.logger.Error("velocity check failed", "error", err, "key", key)
		span.SetAttributes(attribute.Bool("velocity.unavailable", true))
		return &VelocityResult{Allowed: true, MaxAllowed: v.config.MaxSubmissions}
	}

	result := &VelocityResult{
		Allowed:      count <= v.config.MaxSubmissions,
		CurrentCount: count,
		MaxAllowed:   v.config.MaxSubmissions,
		WindowExpiry: expiry,
	}
	if !result.Allowed {
		v.logger.Warn("lead submission velocity exceeded",
			"client", logging.HashPII(clientKey),
			"count", count,
			"max", v.config.MaxSubmissions,
		)
		span.SetAttributes(attribute.Bool("velocity.exceeded", true))
	}
	return result
}

// Reset clears the counter for clientKey.
func (v *VelocityGuard) Reset(ctx context.Context, clientKey string) error {
	if v == nil || v.redis == nil {
		return nil
	}
	return v.redis.Del(ctx, fmt.Sprintf("%s:%s", v.config.KeyPrefix, clientKey)).Err()
}

func (v *VelocityGuard) incrementAndGet(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	count, err := v.redis.Incr(ctx, key).Result()
	if err != nil {
		return 0, time.Time{}, err
	}

	// Expiry is set only on the first increment so the window is fixed.
	if count == 1 {
		if err := v.redis.Expire(ctx, key, window).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("set velocity window: %w", err)
		}
	}

	ttl, err := v.redis.TTL(ctx, key).Result()
	if err != nil {
		return int(count), time.Now().Add(window), nil
	}
	if ttl < 0 {
		// A counter without a TTL would block the client forever.
		if err := v.redis.Expire(ctx, key, window).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("repair velocity window: %w", err)
		}
		ttl = window
	}

	return int(count), time.Now().Add(ttl), nil
}
