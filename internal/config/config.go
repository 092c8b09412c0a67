package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Email delivery
	EmailProvider  string
	ResendAPIKey   string
	SendGridAPIKey string
	FromEmail      string
	FromName       string
	RecipientEmail string

	// Site branding used in the landing page and the lead email
	SiteName             string
	SiteDomain           string
	FallbackContactEmail string

	// HTTP surface
	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
	MetricsEnabled     bool

	// Optional Redis-backed submission velocity guard
	RedisAddr                string
	RedisPassword            string
	RedisTLS                 bool
	SubmissionVelocityMax    int
	SubmissionVelocityWindow time.Duration

	// AWS (SES delivery)
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string

	// leadctl
	LeadAPIBaseURL string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		EmailProvider:  strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "auto"))),
		ResendAPIKey:   getEnv("RESEND_API_KEY", ""),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		FromEmail:      getEnv("EMAIL_FROM_ADDRESS", "onboarding@resend.dev"),
		FromName:       getEnv("EMAIL_FROM_NAME", "216 LAUNCH"),
		RecipientEmail: strings.TrimSpace(getEnv("RECIPIENT_EMAIL", "")),

		SiteName:             getEnv("SITE_NAME", "216 LAUNCH"),
		SiteDomain:           getEnv("SITE_DOMAIN", "216launch.com"),
		FallbackContactEmail: getEnv("FALLBACK_CONTACT_EMAIL", "info@216launch.com"),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),
		RateLimitRPS:       getEnvAsFloat("RATE_LIMIT_RPS", 1),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 5),
		MetricsEnabled:     getEnvAsBool("METRICS_ENABLED", true),

		RedisAddr:                getEnv("REDIS_ADDR", ""),
		RedisPassword:            getEnv("REDIS_PASSWORD", ""),
		RedisTLS:                 getEnvAsBool("REDIS_TLS", false),
		SubmissionVelocityMax:    getEnvAsInt("SUBMISSION_VELOCITY_MAX", 10),
		SubmissionVelocityWindow: getEnvAsDuration("SUBMISSION_VELOCITY_WINDOW", time.Hour),

		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),

		LeadAPIBaseURL: strings.TrimRight(getEnv("LEAD_API_BASE_URL", "http://localhost:8080"), "/"),
	}
}

// SenderAddress formats the From header value, e.g. "216 LAUNCH <onboarding@resend.dev>".
func (c *Config) SenderAddress() string {
	name := strings.TrimSpace(c.FromName)
	if name == "" {
		return c.FromEmail
	}
	return name + " <" + c.FromEmail + ">"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma separated variable, dropping blanks.
func getEnvAsList(key string) []string {
	raw := strings.TrimSpace(getEnv(key, ""))
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
