package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/notify"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, to, subject, body string) error {
	return m.Called(ctx, to, subject, body).Error(0)
}

type countingSweeper struct {
	calls atomic.Int32
	err   error
}

func (s *countingSweeper) Execute(context.Context) (appointment.SweepResult, error) {
	s.calls.Add(1)
	return appointment.SweepResult{Pending: 2}, s.err
}

func TestMuxDeliversEmails(t *testing.T) {
	ctx := context.Background()
	mailer := new(mockMailer)
	mailer.On("Send", ctx, "ana@example.com", "Confirm your appointment", mock.Anything).Return(nil).Once()
	mailer.On("Send", ctx, "ana@example.com", mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()

	mux := NewMux(notify.NewDirectNotifier(mailer), &countingSweeper{}, zerolog.Nop())

	task, err := notify.NewConfirmationTask(notify.Confirmation{Email: "ana@example.com", Name: "Ana", Link: "http://x/1"})
	require.NoError(t, err)
	require.NoError(t, mux.ProcessTask(ctx, task))

	reward, err := notify.NewRewardTask(notify.Reward{Email: "ana@example.com", Name: "Ana"})
	require.NoError(t, err)
	assert.ErrorContains(t, mux.ProcessTask(ctx, reward), "smtp down")

	mailer.AssertExpectations(t)
}

func TestMuxSkipsRetryOnBadPayload(t *testing.T) {
	mux := NewMux(notify.NewDirectNotifier(new(mockMailer)), &countingSweeper{}, zerolog.Nop())

	err := mux.ProcessTask(context.Background(), asynq.NewTask(notify.TypeConfirmationEmail, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	payload, _ := json.Marshal(map[string]int{"email": 1})
	err = mux.ProcessTask(context.Background(), asynq.NewTask(notify.TypeRewardEmail, payload))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestMuxSweep(t *testing.T) {
	sweeper := &countingSweeper{}
	mux := NewMux(notify.NewDirectNotifier(new(mockMailer)), sweeper, zerolog.Nop())

	require.NoError(t, mux.ProcessTask(context.Background(), NewSweepTask()))
	assert.Equal(t, int32(1), sweeper.calls.Load())

	sweeper.err = errors.New("db gone")
	assert.Error(t, mux.ProcessTask(context.Background(), NewSweepTask()))
}

func TestRunTicker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sweeper := &countingSweeper{}

	done := make(chan struct{})
	go func() {
		RunTicker(ctx, 5*time.Millisecond, sweeper, zerolog.Nop())
		close(done)
	}()

	assert.Eventually(t, func() bool { return sweeper.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ticker did not stop")
	}
}
