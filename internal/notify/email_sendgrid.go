package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/wolfman30/launch216/pkg/logging"
)

type sendGridClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridSender sends emails via SendGrid API.
type SendGridSender struct {
	client    sendGridClient
	fromEmail string
	fromName  string
	logger    *logging.Logger
}

// SendGridConfig holds configuration for SendGrid.
type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// NewSendGridSender creates a new SendGrid email sender.
func NewSendGridSender(cfg SendGridConfig, logger *logging.Logger) *SendGridSender {
	if cfg.APIKey == "" {
		return nil
	}
	return newSendGridSender(sendgrid.NewSendClient(cfg.APIKey), cfg, logger)
}

func newSendGridSender(client sendGridClient, cfg SendGridConfig, logger *logging.Logger) *SendGridSender {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.FromName == "" {
		cfg.FromName = "216 LAUNCH"
	}
	return &SendGridSender{
		client:    client,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		logger:    logger,
	}
}

// Send sends an email via SendGrid. The delivery id is SendGrid's
// X-Message-Id response header.
func (s *SendGridSender) Send(ctx context.Context, msg EmailMessage) (Receipt, error) {
	if s == nil || s.client == nil {
		return Receipt{}, fmt.Errorf("notify: sendgrid client not configured")
	}
	if err := msg.Validate(); err != nil {
		return Receipt{}, err
	}

	ctx, span := startSendSpan(ctx, ProviderSendGrid, msg)

	fromName, fromEmail := splitAddress(msg.From, s.fromName, s.fromEmail)
	from := mail.NewEmail(fromName, fromEmail)
	to := mail.NewEmail(msg.ToName, msg.To)

	text := msg.Body
	if text == "" {
		text = msg.HTML
	}
	html := msg.HTML
	if html == "" {
		html = msg.Body
	}
	message := mail.NewSingleEmail(from, msg.Subject, to, text, html)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		s.logger.Error("sendgrid send failed", "error", err, "to", msg.To)
		err = fmt.Errorf("notify: sendgrid send failed: %w", err)
		endSendSpan(span, Receipt{}, err)
		return Receipt{Provider: ProviderSendGrid}, err
	}

	if response.StatusCode >= 400 {
		s.logger.Error("sendgrid returned error status", "status", response.StatusCode, "body", response.Body, "to", msg.To)
		err := fmt.Errorf("notify: sendgrid returned status %d", response.StatusCode)
		endSendSpan(span, Receipt{}, err)
		return Receipt{Provider: ProviderSendGrid}, err
	}

	receipt := Receipt{ID: headerValue(response.Headers, "X-Message-Id"), Provider: ProviderSendGrid}
	if receipt.ID == "" {
		err := fmt.Errorf("notify: sendgrid returned no message id")
		endSendSpan(span, Receipt{}, err)
		return Receipt{Provider: ProviderSendGrid}, err
	}

	s.logger.Info("email sent via sendgrid", "to", msg.To, "subject", msg.Subject, "status", response.StatusCode, "message_id", receipt.ID)
	endSendSpan(span, receipt, nil)
	return receipt, nil
}

func headerValue(headers map[string][]string, key string) string {
	for k, values := range headers {
		if strings.EqualFold(k, key) && len(values) > 0 {
			return strings.TrimSpace(values[0])
		}
	}
	return ""
}

var _ EmailSender = (*SendGridSender)(nil)
