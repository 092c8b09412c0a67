package leads

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/launch216/internal/notify"
	"github.com/wolfman30/launch216/pkg/logging"
)

type recordingSender struct {
	mu       sync.Mutex
	messages []notify.EmailMessage
	err      error
}

func (s *recordingSender) Send(_ context.Context, msg notify.EmailMessage) (notify.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	if s.err != nil {
		return notify.Receipt{Provider: "fake"}, s.err
	}
	return notify.Receipt{ID: fmt.Sprintf("msg-%d", len(s.messages)), Provider: "fake"}, nil
}

func (s *recordingSender) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

type recordedDispatch struct {
	provider, status string
}

type fakeRecorder struct {
	mu          sync.Mutex
	submissions []string
	dispatches  []recordedDispatch
}

func (f *fakeRecorder) ObserveSubmission(outcome string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submissions = append(f.submissions, outcome)
}

func (f *fakeRecorder) ObserveDispatch(provider, status string, _ float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dispatches = append(f.dispatches, recordedDispatch{provider, status})
}

func newTestService(sender notify.EmailSender, rec Recorder) *Service {
	return NewService(sender, NewRenderer(Branding{}), ServiceConfig{
		From:      "216 LAUNCH <onboarding@resend.dev>",
		Recipient: "leads@216launch.com",
	}, rec, logging.New("error"))
}

func TestServiceDispatchSendsOnce(t *testing.T) {
	sender := &recordingSender{}
	rec := &fakeRecorder{}
	svc := newTestService(sender, rec)

	receipt, err := svc.Dispatch(context.Background(), validSubmission())
	require.NoError(t, err)
	assert.Equal(t, "msg-1", receipt.ID)

	require.Equal(t, 1, sender.calls())
	msg := sender.messages[0]
	assert.Equal(t, "216 LAUNCH <onboarding@resend.dev>", msg.From)
	assert.Equal(t, "leads@216launch.com", msg.To)
	assert.Contains(t, msg.Subject, "Acme")
	assert.Contains(t, msg.Subject, "Jane Doe")
	assert.Contains(t, msg.HTML, `href="https://acme.com"`)
	assert.Contains(t, msg.Body, "Current Website: https://acme.com")

	assert.Equal(t, []recordedDispatch{{"fake", "sent"}}, rec.dispatches)
}

func TestServiceDispatchRejectsInvalidBeforeRendering(t *testing.T) {
	sender := &recordingSender{}
	svc := newTestService(sender, nil)

	sub := validSubmission()
	sub.Email = "not-an-email"
	_, err := svc.Dispatch(context.Background(), sub)

	require.ErrorIs(t, err, ErrInvalidEmail)
	assert.Zero(t, sender.calls())
}

func TestServiceDispatchWrapsSenderFailureWithoutRetry(t *testing.T) {
	sender := &recordingSender{err: errors.New("resend: 503 service unavailable")}
	rec := &fakeRecorder{}
	svc := newTestService(sender, rec)

	_, err := svc.Dispatch(context.Background(), validSubmission())
	require.Error(t, err)

	var derr *DispatchError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, StageDispatched, derr.Stage)
	assert.Equal(t, "resend: 503 service unavailable", derr.Err.Error())
	assert.Equal(t, 1, sender.calls())
	assert.Equal(t, []recordedDispatch{{"fake", "error"}}, rec.dispatches)
}

func TestServiceDispatchWithoutSender(t *testing.T) {
	svc := newTestService(nil, nil)
	_, err := svc.Dispatch(context.Background(), validSubmission())

	var derr *DispatchError
	require.ErrorAs(t, err, &derr)
}

func TestServiceDispatchIsNotIdempotent(t *testing.T) {
	sender := &recordingSender{}
	svc := newTestService(sender, nil)

	first, err := svc.Dispatch(context.Background(), validSubmission())
	require.NoError(t, err)
	second, err := svc.Dispatch(context.Background(), validSubmission())
	require.NoError(t, err)

	assert.Equal(t, 2, sender.calls())
	assert.NotEqual(t, first.ID, second.ID)
}

func TestServiceDispatchWithStubSender(t *testing.T) {
	svc := newTestService(notify.NewStubEmailSender(logging.New("error")), nil)

	receipt, err := svc.Dispatch(context.Background(), validSubmission())
	require.NoError(t, err)
	assert.Equal(t, notify.ProviderStub, receipt.Provider)
	assert.NotEmpty(t, receipt.ID)
}

func TestServiceDispatchFailsWithoutRecipient(t *testing.T) {
	svc := NewService(notify.NewStubEmailSender(logging.New("error")), nil, ServiceConfig{}, nil, logging.New("error"))

	_, err := svc.Dispatch(context.Background(), validSubmission())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recipient address is required")
}
