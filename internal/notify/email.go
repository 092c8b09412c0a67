package notify

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wolfman30/launch216/pkg/logging"
)

var notifyTracer = otel.Tracer("launch216.internal.notify")

// EmailSender defines the interface for sending emails.
// Implementations can be swapped (Resend, SendGrid, SES) without changing callers.
// A nil error always comes with a Receipt carrying the provider's delivery id.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) (Receipt, error)
}

// EmailMessage represents an email to be sent.
type EmailMessage struct {
	From    string // Optional "Name <addr>" override of the sender default
	To      string
	ToName  string
	Subject string
	Body    string // Plain text body
	HTML    string // Optional HTML body
}

// Receipt identifies a message accepted by a provider.
type Receipt struct {
	ID       string `json:"id"`
	Provider string `json:"provider"`
}

// Provider names.
const (
	ProviderResend   = "resend"
	ProviderSendGrid = "sendgrid"
	ProviderSES      = "ses"
	ProviderStub     = "stub"
)

// Validate checks the fields every provider needs.
func (m EmailMessage) Validate() error {
	if strings.TrimSpace(m.To) == "" {
		return fmt.Errorf("notify: recipient address is required")
	}
	if strings.TrimSpace(m.Subject) == "" {
		return fmt.Errorf("notify: subject is required")
	}
	if m.Body == "" && m.HTML == "" {
		return fmt.Errorf("notify: message has no content")
	}
	return nil
}

// splitAddress parses "Name <addr>" into its parts, falling back to the
// defaults when raw is empty or unparsable.
func splitAddress(raw, defaultName, defaultEmail string) (string, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultName, defaultEmail
	}
	addr, err := mail.ParseAddress(raw)
	if err != nil {
		return defaultName, raw
	}
	return addr.Name, addr.Address
}

func formatAddress(name, email string) string {
	if strings.TrimSpace(name) == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

func startSendSpan(ctx context.Context, provider string, msg EmailMessage) (context.Context, trace.Span) {
	ctx, span := notifyTracer.Start(ctx, "notify.send")
	span.SetAttributes(
		attribute.String("notify.provider", provider),
		attribute.Int("notify.html_bytes", len(msg.HTML)),
		attribute.Int("notify.text_bytes", len(msg.Body)),
	)
	return ctx, span
}

func endSendSpan(span trace.Span, receipt Receipt, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.String("notify.message_id", receipt.ID))
	}
	span.End()
}

// StubEmailSender is a sender for local development and tests. It logs the
// message and returns a synthetic delivery id.
type StubEmailSender struct {
	logger *logging.Logger
}

// NewStubEmailSender creates a stub email sender that logs but doesn't send.
func NewStubEmailSender(logger *logging.Logger) *StubEmailSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &StubEmailSender{logger: logger}
}

// Send logs the email but doesn't actually send it.
func (s *StubEmailSender) Send(ctx context.Context, msg EmailMessage) (Receipt, error) {
	_, span := startSendSpan(ctx, ProviderStub, msg)
	if err := msg.Validate(); err != nil {
		endSendSpan(span, Receipt{}, err)
		return Receipt{}, err
	}
	receipt := Receipt{ID: "stub-" + uuid.NewString(), Provider: ProviderStub}
	s.logger.Info("stub email sender: would send email", "to", msg.To, "subject", msg.Subject, "message_id", receipt.ID)
	endSendSpan(span, receipt, nil)
	return receipt, nil
}

var _ EmailSender = (*StubEmailSender)(nil)
