// Package worker runs the background side of the service: queued emails
// and the periodic expiry sweep.
package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barber-booking/internal/notify"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

const (
	TypeSweep = "maintenance:sweep"

	QueueMaintenance = "maintenance"
)

// Sweeper is satisfied by *appointment.SweepExpired.
type Sweeper interface {
	Execute(ctx context.Context) (appointment.SweepResult, error)
}

func NewSweepTask() *asynq.Task {
	return asynq.NewTask(TypeSweep, nil, asynq.Queue(QueueMaintenance), asynq.MaxRetry(0))
}

// NewMux routes every task type the service enqueues. Emails are
// delivered through notifier, which must not enqueue again.
func NewMux(notifier notify.Notifier, sweeper Sweeper, log zerolog.Logger) *asynq.ServeMux {
	log = log.With().Str("component", "worker").Logger()
	mux := asynq.NewServeMux()

	mux.HandleFunc(notify.TypeConfirmationEmail, func(ctx context.Context, t *asynq.Task) error {
		var msg notify.Confirmation
		if err := json.Unmarshal(t.Payload(), &msg); err != nil {
			return fmt.Errorf("decode confirmation: %v: %w", err, asynq.SkipRetry)
		}
		return notifier.SendConfirmation(ctx, msg)
	})

	mux.HandleFunc(notify.TypeRewardEmail, func(ctx context.Context, t *asynq.Task) error {
		var msg notify.Reward
		if err := json.Unmarshal(t.Payload(), &msg); err != nil {
			return fmt.Errorf("decode reward: %v: %w", err, asynq.SkipRetry)
		}
		return notifier.SendReward(ctx, msg)
	})

	mux.HandleFunc(TypeSweep, func(ctx context.Context, _ *asynq.Task) error {
		return sweep(ctx, sweeper, log)
	})

	return mux
}

func sweep(ctx context.Context, sweeper Sweeper, log zerolog.Logger) error {
	res, err := sweeper.Execute(ctx)
	if err != nil {
		log.Error().Err(err).Msg("sweep failed")
		return err
	}
	log.Info().
		Int("pending", res.Pending).
		Int("confirmed", res.Confirmed).
		Int64("working_hours", res.WorkingHours).
		Msg("sweep done")
	return nil
}
