package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TypeConfirmationEmail = "email:confirmation"
	TypeRewardEmail       = "email:reward"

	QueueEmails = "emails"
)

func NewConfirmationTask(msg Confirmation) (*asynq.Task, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeConfirmationEmail, payload,
		asynq.Queue(QueueEmails), asynq.MaxRetry(5), asynq.Timeout(30*time.Second)), nil
}

func NewRewardTask(msg Reward) (*asynq.Task, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeRewardEmail, payload,
		asynq.Queue(QueueEmails), asynq.MaxRetry(5), asynq.Timeout(30*time.Second)), nil
}

// Enqueuer is the part of *asynq.Client the notifier uses.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueNotifier defers delivery to the worker through asynq.
type QueueNotifier struct {
	client Enqueuer
}

func NewQueueNotifier(client Enqueuer) *QueueNotifier {
	return &QueueNotifier{client: client}
}

func (n *QueueNotifier) SendConfirmation(ctx context.Context, msg Confirmation) error {
	task, err := NewConfirmationTask(msg)
	if err != nil {
		return fmt.Errorf("build confirmation task: %w", err)
	}
	if _, err := n.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue confirmation: %w", err)
	}
	return nil
}

func (n *QueueNotifier) SendReward(ctx context.Context, msg Reward) error {
	task, err := NewRewardTask(msg)
	if err != nil {
		return fmt.Errorf("build reward task: %w", err)
	}
	if _, err := n.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue reward: %w", err)
	}
	return nil
}

var _ Notifier = (*QueueNotifier)(nil)
