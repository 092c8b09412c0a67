package leads

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/wolfman30/launch216/internal/notify"
	"github.com/wolfman30/launch216/pkg/logging"
)

const maxSubmissionBytes = 64 << 10

// Dispatcher sends a validated lead. *Service implements it.
type Dispatcher interface {
	Dispatch(ctx context.Context, sub Submission) (notify.Receipt, error)
}

// Guard limits submissions per client. *VelocityGuard implements it.
type Guard interface {
	Check(ctx context.Context, clientKey string) *VelocityResult
}

// Handler handles the contact form endpoint.
type Handler struct {
	dispatcher Dispatcher
	guard      Guard
	recorder   Recorder
	logger     *logging.Logger
}

// HandlerOption customises a Handler.
type HandlerOption func(*Handler)

// WithGuard enables the submission velocity guard.
func WithGuard(g Guard) HandlerOption {
	return func(h *Handler) {
		h.guard = g
	}
}

// WithRecorder reports submission outcomes.
func WithRecorder(r Recorder) HandlerOption {
	return func(h *Handler) {
		h.recorder = r
	}
}

// NewHandler creates a new leads handler
func NewHandler(dispatcher Dispatcher, logger *logging.Logger, opts ...HandlerOption) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	h := &Handler{
		dispatcher: dispatcher,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SuccessResponse is the 200 body.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

// ErrorResponse is the body for every rejection and failure.
type ErrorResponse struct {
	Error    string   `json:"error"`
	Required []string `json:"required,omitempty"`
	Message  string   `json:"message,omitempty"`
}

// Outcome labels reported to the Recorder.
const (
	OutcomeMethodNotAllowed = "method_not_allowed"
	OutcomeInvalidBody      = "invalid_body"
	OutcomeMissingFields    = "missing_fields"
	OutcomeBadEmail         = "bad_email"
	OutcomeBadPhone         = "bad_phone"
	OutcomeRateLimited      = "rate_limited"
	OutcomeDispatched       = "dispatched"
	OutcomeDispatchFailed   = "dispatch_failed"
)

// SubmitLead handles /api/submit-lead for every method; only POST is accepted.
func (h *Handler) SubmitLead(w http.ResponseWriter, r *http.Request) {
	stage := StageReceived

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		h.reject(w, r, stage, OutcomeMethodNotAllowed, http.StatusMethodNotAllowed, ErrMethodNotAllowed, ErrorResponse{Error: "Method not allowed"})
		return
	}
	stage = StageMethodChecked

	var sub Submission
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSubmissionBytes)).Decode(&sub); err != nil {
		h.fail(w, r, stage, OutcomeInvalidBody, fmt.Errorf("decode request body: %w", err))
		return
	}
	sub = sub.Normalize()

	if err := sub.Validate(); err != nil {
		var verr *ValidationError
		if !errors.As(err, &verr) {
			h.fail(w, r, stage, OutcomeDispatchFailed, err)
			return
		}
		switch verr.Reason {
		case ReasonBadEmailFormat:
			h.reject(w, r, StageFieldsValidated, OutcomeBadEmail, http.StatusBadRequest, verr, ErrorResponse{Error: "Invalid email format"})
		case ReasonBadPhoneFormat:
			h.reject(w, r, StageEmailFormatChecked, OutcomeBadPhone, http.StatusBadRequest, verr, ErrorResponse{Error: "Invalid phone number format"})
		default:
			h.reject(w, r, stage, OutcomeMissingFields, http.StatusBadRequest, verr, ErrorResponse{
				Error:    "Missing required fields",
				Required: RequiredFields(),
			})
		}
		return
	}
	stage = StagePhoneFormatChecked

	if h.guard != nil {
		if result := h.guard.Check(r.Context(), clientKey(r)); result != nil && !result.Allowed {
			h.reject(w, r, stage, OutcomeRateLimited, http.StatusTooManyRequests, ErrTooManySubmissions, ErrorResponse{
				Error: "Too many submissions, please try again later",
			})
			return
		}
	}

	receipt, err := h.dispatcher.Dispatch(r.Context(), sub)
	if err != nil {
		var derr *DispatchError
		if errors.As(err, &derr) {
			stage = derr.Stage
		}
		h.fail(w, r, stage, OutcomeDispatchFailed, err)
		return
	}

	h.observe(OutcomeDispatched)
	h.logger.Info("lead submission handled",
		"stage", StageResponded,
		"status", http.StatusOK,
		"message_id", receipt.ID,
		"request_id", requestID(r),
	)
	writeJSON(w, http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Form submitted successfully! We'll be in touch soon.",
		ID:      receipt.ID,
	})
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request, stage Stage, outcome string, status int, cause error, body ErrorResponse) {
	h.observe(outcome)
	h.logger.Info("lead submission rejected",
		"stage", stage,
		"outcome", outcome,
		"status", status,
		"reason", cause,
		"request_id", requestID(r),
	)
	writeJSON(w, status, body)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, stage Stage, outcome string, err error) {
	h.observe(outcome)
	h.logger.Error("error processing form submission",
		"error", err,
		"stage", stage,
		"request_id", requestID(r),
	)

	message := err.Error()
	var derr *DispatchError
	if errors.As(err, &derr) {
		message = derr.Err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "Failed to process submission",
		Message: message,
	})
}

func (h *Handler) observe(outcome string) {
	if h.recorder != nil {
		h.recorder.ObserveSubmission(outcome)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// clientKey identifies the caller for the velocity guard. chi's RealIP
// middleware has already rewritten RemoteAddr when running behind a proxy.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}

func requestID(r *http.Request) string {
	if id := chimiddleware.GetReqID(r.Context()); id != "" {
		return id
	}
	return r.Header.Get("X-Request-ID")
}
