package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "ENV", "LOG_LEVEL", "EMAIL_PROVIDER", "EMAIL_FROM_ADDRESS", "EMAIL_FROM_NAME",
		"RECIPIENT_EMAIL", "SITE_NAME", "CORS_ALLOWED_ORIGINS", "RATE_LIMIT_RPS",
		"SUBMISSION_VELOCITY_WINDOW", "LEAD_API_BASE_URL", "METRICS_ENABLED",
	} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.EmailProvider != "auto" {
		t.Fatalf("expected auto email provider, got %s", cfg.EmailProvider)
	}
	if cfg.RecipientEmail != "" {
		t.Fatalf("expected empty recipient, got %s", cfg.RecipientEmail)
	}
	if cfg.SenderAddress() != "216 LAUNCH <onboarding@resend.dev>" {
		t.Fatalf("unexpected sender address %q", cfg.SenderAddress())
	}
	if cfg.SiteName != "216 LAUNCH" || cfg.SiteDomain != "216launch.com" {
		t.Fatalf("unexpected site branding %q %q", cfg.SiteName, cfg.SiteDomain)
	}
	if cfg.CORSAllowedOrigins != nil {
		t.Fatalf("expected no CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitRPS != 1 || cfg.RateLimitBurst != 5 {
		t.Fatalf("unexpected rate limit %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.SubmissionVelocityWindow != time.Hour {
		t.Fatalf("expected default velocity window, got %s", cfg.SubmissionVelocityWindow)
	}
	if !cfg.MetricsEnabled {
		t.Fatalf("expected metrics enabled by default")
	}
	if cfg.LeadAPIBaseURL != "http://localhost:8080" {
		t.Fatalf("unexpected lead api base url %s", cfg.LeadAPIBaseURL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("EMAIL_PROVIDER", " SendGrid ")
	t.Setenv("RECIPIENT_EMAIL", " leads@216launch.com ")
	t.Setenv("EMAIL_FROM_NAME", "")
	t.Setenv("EMAIL_FROM_ADDRESS", "hello@216launch.com")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://216launch.com, ,https://www.216launch.com")
	t.Setenv("RATE_LIMIT_RPS", "0.5")
	t.Setenv("SUBMISSION_VELOCITY_MAX", "3")
	t.Setenv("SUBMISSION_VELOCITY_WINDOW", "15m")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("LEAD_API_BASE_URL", "https://216launch.com/")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.EmailProvider != "sendgrid" {
		t.Fatalf("expected normalized provider, got %q", cfg.EmailProvider)
	}
	if cfg.RecipientEmail != "leads@216launch.com" {
		t.Fatalf("expected trimmed recipient, got %q", cfg.RecipientEmail)
	}
	if cfg.FromName != "216 LAUNCH" {
		t.Fatalf("expected default from name when blank, got %q", cfg.FromName)
	}
	if cfg.SenderAddress() != "216 LAUNCH <hello@216launch.com>" {
		t.Fatalf("unexpected sender address %q", cfg.SenderAddress())
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://www.216launch.com" {
		t.Fatalf("unexpected CORS origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitRPS != 0.5 {
		t.Fatalf("expected rate override, got %v", cfg.RateLimitRPS)
	}
	if cfg.SubmissionVelocityMax != 3 || cfg.SubmissionVelocityWindow != 15*time.Minute {
		t.Fatalf("unexpected velocity config %d/%s", cfg.SubmissionVelocityMax, cfg.SubmissionVelocityWindow)
	}
	if !cfg.RedisTLS {
		t.Fatalf("expected redis tls enabled")
	}
	if cfg.LeadAPIBaseURL != "https://216launch.com" {
		t.Fatalf("expected trailing slash trimmed, got %s", cfg.LeadAPIBaseURL)
	}
}

func TestSenderAddressWithoutName(t *testing.T) {
	cfg := &Config{FromEmail: "leads@216launch.com", FromName: "  "}
	if got := cfg.SenderAddress(); got != "leads@216launch.com" {
		t.Fatalf("expected bare address, got %q", got)
	}
}
