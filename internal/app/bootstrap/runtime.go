package bootstrap

import (
	"context"
	"crypto/tls"
	"strings"

	"github.com/redis/go-redis/v9"

	appconfig "github.com/wolfman30/launch216/internal/config"
	"github.com/wolfman30/launch216/internal/leads"
	"github.com/wolfman30/launch216/pkg/logging"
)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available, submission velocity guard disabled", "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// BuildVelocityGuard returns the submission velocity guard, or nil when Redis
// is not configured.
func BuildVelocityGuard(redisClient *redis.Client, cfg *appconfig.Config, logger *logging.Logger) *leads.VelocityGuard {
	if redisClient == nil || cfg == nil {
		return nil
	}
	return leads.NewVelocityGuard(redisClient, leads.VelocityConfig{
		MaxSubmissions: cfg.SubmissionVelocityMax,
		Window:         cfg.SubmissionVelocityWindow,
	}, logger)
}
