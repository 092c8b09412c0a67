package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/wolfman30/launch216/cmd/mainconfig"
	appconfig "github.com/wolfman30/launch216/internal/config"
	"github.com/wolfman30/launch216/internal/notify"
	"github.com/wolfman30/launch216/pkg/logging"
)

// BuildEmailSender selects the delivery provider named by EMAIL_PROVIDER.
// "auto" prefers Resend, then SendGrid, then the stub sender.
func BuildEmailSender(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (notify.EmailSender, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}

	provider := strings.ToLower(strings.TrimSpace(cfg.EmailProvider))
	if provider == "" || provider == "auto" {
		switch {
		case cfg.ResendAPIKey != "":
			provider = notify.ProviderResend
		case cfg.SendGridAPIKey != "":
			provider = notify.ProviderSendGrid
		default:
			provider = notify.ProviderStub
		}
	}

	switch provider {
	case notify.ProviderResend:
		sender := notify.NewResendSender(notify.ResendConfig{
			APIKey:    cfg.ResendAPIKey,
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
		}, logger)
		if sender == nil {
			return nil, fmt.Errorf("bootstrap: RESEND_API_KEY is required for the resend provider")
		}
		logger.Info("resend email sender initialized")
		return sender, nil

	case notify.ProviderSendGrid:
		sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
		}, logger)
		if sender == nil {
			return nil, fmt.Errorf("bootstrap: SENDGRID_API_KEY is required for the sendgrid provider")
		}
		logger.Info("sendgrid email sender initialized")
		return sender, nil

	case notify.ProviderSES:
		client, err := mainconfig.NewSESClient(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: load aws config: %w", err)
		}
		logger.Info("ses email sender initialized", "region", cfg.AWSRegion)
		return notify.NewSESSender(client, notify.SESConfig{
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
		}, logger), nil

	case notify.ProviderStub:
		logger.Warn("email delivery disabled, leads are only logged (set RESEND_API_KEY or EMAIL_PROVIDER)")
		return notify.NewStubEmailSender(logger), nil

	default:
		return nil, fmt.Errorf("bootstrap: unknown EMAIL_PROVIDER %q", cfg.EmailProvider)
	}
}
