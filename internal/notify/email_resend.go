package notify

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/wolfman30/launch216/pkg/logging"
)

// resendEmails is the slice of the Resend SDK the sender uses.
type resendEmails interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendSender sends emails via the Resend API.
type ResendSender struct {
	emails    resendEmails
	fromEmail string
	fromName  string
	logger    *logging.Logger
}

// ResendConfig holds configuration for Resend.
type ResendConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// NewResendSender creates a new Resend email sender. It returns nil when no
// API key is configured.
func NewResendSender(cfg ResendConfig, logger *logging.Logger) *ResendSender {
	if cfg.APIKey == "" {
		return nil
	}
	client := resend.NewClient(cfg.APIKey)
	return newResendSender(client.Emails, cfg, logger)
}

func newResendSender(emails resendEmails, cfg ResendConfig, logger *logging.Logger) *ResendSender {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.FromName == "" {
		cfg.FromName = "216 LAUNCH"
	}
	return &ResendSender{
		emails:    emails,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		logger:    logger,
	}
}

// Send sends an email via Resend.
func (s *ResendSender) Send(ctx context.Context, msg EmailMessage) (Receipt, error) {
	if s == nil || s.emails == nil {
		return Receipt{}, fmt.Errorf("notify: resend client not configured")
	}
	if err := msg.Validate(); err != nil {
		return Receipt{}, err
	}

	ctx, span := startSendSpan(ctx, ProviderResend, msg)

	fromName, fromEmail := splitAddress(msg.From, s.fromName, s.fromEmail)
	params := &resend.SendEmailRequest{
		From:    formatAddress(fromName, fromEmail),
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Body,
	}

	sent, err := s.emails.SendWithContext(ctx, params)
	if err != nil {
		s.logger.Error("resend send failed", "error", err, "to", msg.To)
		err = fmt.Errorf("notify: resend send failed: %w", err)
		endSendSpan(span, Receipt{}, err)
		return Receipt{Provider: ProviderResend}, err
	}
	if sent == nil || sent.Id == "" {
		err := fmt.Errorf("notify: resend returned no message id")
		endSendSpan(span, Receipt{}, err)
		return Receipt{Provider: ProviderResend}, err
	}

	receipt := Receipt{ID: sent.Id, Provider: ProviderResend}
	s.logger.Info("email sent via resend", "to", msg.To, "subject", msg.Subject, "message_id", receipt.ID)
	endSendSpan(span, receipt, nil)
	return receipt, nil
}

var _ EmailSender = (*ResendSender)(nil)
