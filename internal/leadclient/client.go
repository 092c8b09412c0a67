// Package leadclient submits the contact form to the lead endpoint and
// drives a View with the result. It mirrors the landing page script so the
// client-side contract can be exercised from Go.
package leadclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/wolfman30/launch216/internal/leads"
)

// Messages shown to the user.
const (
	MsgMissingFields = "Please fill in all required fields."
	MsgInvalidEmail  = "Please enter a valid email address."
	MsgSucceeded     = "Thank you! We'll be in touch within 24 hours."
	MsgGenericError  = "Something went wrong. Please try again."
	MsgUnreachable   = "Unable to submit form. Please email us directly at "
)

const submitPath = "/api/submit-lead"

// Form holds the raw values typed by the user.
type Form struct {
	BusinessName string
	YourName     string
	Email        string
	PhoneNumber  string
	WebsiteURL   string
}

// Trimmed returns the form with surrounding whitespace removed.
func (f Form) Trimmed() Form {
	return Form{
		BusinessName: strings.TrimSpace(f.BusinessName),
		YourName:     strings.TrimSpace(f.YourName),
		Email:        strings.TrimSpace(f.Email),
		PhoneNumber:  strings.TrimSpace(f.PhoneNumber),
		WebsiteURL:   strings.TrimSpace(f.WebsiteURL),
	}
}

func (f Form) submission() leads.Submission {
	return leads.Submission{
		BusinessName: f.BusinessName,
		YourName:     f.YourName,
		PhoneNumber:  f.PhoneNumber,
		Email:        f.Email,
		WebsiteURL:   f.WebsiteURL,
	}
}

// MessageKind selects how a message is styled.
type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

// View is the surface the client renders into.
type View interface {
	ShowMessage(kind MessageKind, text string)
	SetBusy(busy bool)
	Reset()
}

// Tracker receives a conversion event after a successful submission.
type Tracker interface {
	Track(event string, params map[string]string)
}

// Result classifies a Submit call.
type Result int

const (
	OutcomeInvalid Result = iota
	OutcomeSucceeded
	OutcomeRejected
	OutcomeFailed
)

func (r Result) String() string {
	switch r {
	case OutcomeInvalid:
		return "invalid"
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeRejected:
		return "rejected"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// Outcome reports what Submit did.
type Outcome struct {
	Result     Result
	StatusCode int
	ID         string
	Message    string
	Err        error
}

// Client posts forms to a lead endpoint.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	tracker       Tracker
	fallbackEmail string
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default 15s-timeout client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTracker reports successful submissions as conversions.
func WithTracker(t Tracker) Option {
	return func(c *Client) {
		c.tracker = t
	}
}

// WithFallbackEmail sets the address shown when the API is unreachable.
func WithFallbackEmail(addr string) Option {
	return func(c *Client) {
		if addr = strings.TrimSpace(addr); addr != "" {
			c.fallbackEmail = addr
		}
	}
}

// New returns a client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		fallbackEmail: "info@216launch.com",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type response struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Error   string `json:"error"`
}

// Submit validates the form locally, posts it once and renders the result.
// The busy state set before the request is always cleared.
func (c *Client) Submit(ctx context.Context, form Form, view View) Outcome {
	form = form.Trimmed()

	if form.BusinessName == "" || form.YourName == "" || form.Email == "" || form.PhoneNumber == "" {
		view.ShowMessage(MessageError, MsgMissingFields)
		return Outcome{Result: OutcomeInvalid, Message: MsgMissingFields}
	}
	if !leads.ValidEmail(form.Email) {
		view.ShowMessage(MessageError, MsgInvalidEmail)
		return Outcome{Result: OutcomeInvalid, Message: MsgInvalidEmail}
	}

	view.SetBusy(true)
	defer view.SetBusy(false)

	status, body, err := c.post(ctx, form)
	if err != nil {
		msg := MsgUnreachable + c.fallbackEmail
		view.ShowMessage(MessageError, msg)
		return Outcome{Result: OutcomeFailed, StatusCode: status, Message: msg, Err: err}
	}

	if status >= 200 && status < 300 && body.Success {
		view.ShowMessage(MessageSuccess, MsgSucceeded)
		view.Reset()
		if c.tracker != nil {
			c.tracker.Track("form_submission", map[string]string{
				"event_category": "engagement",
				"event_label":    "contact_form",
			})
		}
		return Outcome{Result: OutcomeSucceeded, StatusCode: status, ID: body.ID, Message: MsgSucceeded}
	}

	msg := body.Error
	if msg == "" {
		msg = MsgGenericError
	}
	view.ShowMessage(MessageError, msg)
	return Outcome{Result: OutcomeRejected, StatusCode: status, Message: msg}
}

func (c *Client) post(ctx context.Context, form Form) (int, response, error) {
	payload, err := json.Marshal(form.submission())
	if err != nil {
		return 0, response{}, fmt.Errorf("leadclient: encode form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+submitPath, bytes.NewReader(payload))
	if err != nil {
		return 0, response{}, fmt.Errorf("leadclient: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, response{}, fmt.Errorf("leadclient: post: %w", err)
	}
	defer resp.Body.Close()

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return resp.StatusCode, response{}, fmt.Errorf("leadclient: decode response: %w", err)
	}
	return resp.StatusCode, body, nil
}
