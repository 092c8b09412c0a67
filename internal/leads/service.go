package leads

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/wolfman30/launch216/internal/notify"
	"github.com/wolfman30/launch216/pkg/logging"
)

var leadsTracer = otel.Tracer("launch216.internal.leads")

// Stage is a step of the per-request submission lifecycle.
type Stage string

const (
	StageReceived           Stage = "received"
	StageMethodChecked      Stage = "method_checked"
	StageFieldsValidated    Stage = "fields_validated"
	StageEmailFormatChecked Stage = "email_format_checked"
	StagePhoneFormatChecked Stage = "phone_format_checked"
	StageRendered           Stage = "rendered"
	StageDispatched         Stage = "dispatched"
	StageResponded          Stage = "responded"
)

// Recorder receives submission outcomes. metrics.LeadMetrics implements it.
type Recorder interface {
	ObserveSubmission(outcome string)
	ObserveDispatch(provider, status string, seconds float64)
}

// ServiceConfig addresses the lead notification.
type ServiceConfig struct {
	From      string
	Recipient string
}

// Service renders a validated submission and hands it to the email sender.
// It holds no per-request state.
type Service struct {
	sender   notify.EmailSender
	renderer *Renderer
	cfg      ServiceConfig
	recorder Recorder
	logger   *logging.Logger
}

// NewService wires the dispatch path. recorder may be nil.
func NewService(sender notify.EmailSender, renderer *Renderer, cfg ServiceConfig, recorder Recorder, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	if renderer == nil {
		renderer = NewRenderer(Branding{})
	}
	return &Service{
		sender:   sender,
		renderer: renderer,
		cfg:      cfg,
		recorder: recorder,
		logger:   logger,
	}
}

// Dispatch sends the lead email once and returns the provider receipt. An
// invalid submission is rejected with a *ValidationError before rendering.
// Failures are returned as *DispatchError and never retried.
func (s *Service) Dispatch(ctx context.Context, sub Submission) (notify.Receipt, error) {
	if err := sub.Validate(); err != nil {
		return notify.Receipt{}, err
	}

	ctx, span := leadsTracer.Start(ctx, "leads.dispatch")
	defer span.End()
	span.SetAttributes(attribute.Bool("lead.has_website", sub.HasWebsite()))

	if s.sender == nil {
		err := &DispatchError{Stage: StageDispatched, Err: errors.New("email sender not configured")}
		span.SetStatus(codes.Error, err.Error())
		return notify.Receipt{}, err
	}

	rendered, err := s.renderer.Render(sub)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return notify.Receipt{}, &DispatchError{Stage: StageRendered, Err: err}
	}

	start := time.Now()
	receipt, err := s.sender.Send(ctx, notify.EmailMessage{
		From:    s.cfg.From,
		To:      s.cfg.Recipient,
		Subject: rendered.Subject,
		HTML:    rendered.HTML,
		Body:    rendered.Text,
	})
	elapsed := time.Since(start).Seconds()
	if err != nil {
		s.observeDispatch(receipt.Provider, "error", elapsed)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return notify.Receipt{}, &DispatchError{Stage: StageDispatched, Err: err}
	}

	s.observeDispatch(receipt.Provider, "sent", elapsed)
	span.SetAttributes(attribute.String("lead.message_id", receipt.ID))
	s.logger.Info("lead email dispatched",
		"message_id", receipt.ID,
		"provider", receipt.Provider,
		"business", sub.BusinessName,
		"contact", logging.MaskEmail(sub.Email),
	)
	return receipt, nil
}

func (s *Service) observeDispatch(provider, status string, seconds float64) {
	if s.recorder == nil {
		return
	}
	if provider == "" {
		provider = "unknown"
	}
	s.recorder.ObserveDispatch(provider, status, seconds)
}
