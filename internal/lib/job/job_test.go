package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elien2016/customers/internal/lib/email"
)

type fakeSender struct {
	err  error
	sent []WelcomeEmailPayload
}

func (f *fakeSender) SendWelcomeEmail(to, firstName string) error {
	f.sent = append(f.sent, WelcomeEmailPayload{To: to, FirstName: firstName})
	return f.err
}

func newTestService(sender WelcomeSender) *JobService {
	logger := zerolog.Nop()
	return &JobService{mailer: sender, logger: &logger}
}

func TestNewWelcomeEmailTask(t *testing.T) {
	task, err := NewWelcomeEmailTask("ada@example.com", "Ada")
	require.NoError(t, err)

	assert.Equal(t, TaskWelcome, task.Type())
	assert.JSONEq(t, `{"to":"ada@example.com","first_name":"Ada"}`, string(task.Payload()))
}

func TestHandleWelcomeEmailTask(t *testing.T) {
	sender := &fakeSender{}
	j := newTestService(sender)

	task, err := NewWelcomeEmailTask("ada@example.com", "Ada")
	require.NoError(t, err)

	require.NoError(t, j.Mux().ProcessTask(context.Background(), task))
	assert.Equal(t, []WelcomeEmailPayload{{To: "ada@example.com", FirstName: "Ada"}}, sender.sent)
}

func TestHandleWelcomeEmailTaskSendFailureRetries(t *testing.T) {
	sendErr := errors.New("resend unavailable")
	j := newTestService(&fakeSender{err: sendErr})

	payload, err := json.Marshal(WelcomeEmailPayload{To: "ada@example.com", FirstName: "Ada"})
	require.NoError(t, err)

	err = j.handleWelcomeEmailTask(context.Background(), asynq.NewTask(TaskWelcome, payload))
	assert.ErrorIs(t, err, sendErr)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleWelcomeEmailTaskUnconfiguredMailerSkipsRetry(t *testing.T) {
	j := newTestService(&fakeSender{err: email.ErrNotConfigured})

	task, err := NewWelcomeEmailTask("ada@example.com", "Ada")
	require.NoError(t, err)

	err = j.handleWelcomeEmailTask(context.Background(), task)
	assert.ErrorIs(t, err, email.ErrNotConfigured)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleWelcomeEmailTaskBadPayloadSkipsRetry(t *testing.T) {
	sender := &fakeSender{}
	j := newTestService(sender)

	err := j.handleWelcomeEmailTask(context.Background(), asynq.NewTask(TaskWelcome, []byte("not json")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, sender.sent)
}

func TestMuxRoutesWelcomeTask(t *testing.T) {
	task, err := NewWelcomeEmailTask("ada@example.com", "Ada")
	require.NoError(t, err)

	j := newTestService(&fakeSender{})
	mux := j.Mux()
	h, pattern := mux.Handler(task)
	assert.Equal(t, TaskWelcome, pattern)
	assert.NotNil(t, h)
}

func TestEnqueueWelcomeEmailFailsFastWhilePaused(t *testing.T) {
	j := newTestService(&fakeSender{})
	assert.False(t, j.Paused())

	j.Pause()
	assert.True(t, j.Paused())

	// Client is nil: a paused service must not reach it.
	err := j.EnqueueWelcomeEmail(context.Background(), "ada@example.com", "Ada")
	assert.ErrorIs(t, err, ErrQueueUnavailable)
}

func TestPausedExpires(t *testing.T) {
	j := newTestService(&fakeSender{})
	j.pausedUntil.Store(time.Now().Add(-time.Second).UnixNano())

	assert.False(t, j.Paused())
}
