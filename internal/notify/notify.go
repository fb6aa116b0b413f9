// Package notify delivers booking emails, either directly or through the
// asynq task queue.
package notify

import (
	"context"
	"fmt"
)

type Confirmation struct {
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	Date     string  `json:"date"`
	TimeSlot string  `json:"time_slot"`
	Type     string  `json:"type"`
	Price    float64 `json:"price"`
	Link     string  `json:"link"`
}

// Reward is sent when a customer's attendance reaches the reward threshold.
type Reward struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type Notifier interface {
	SendConfirmation(ctx context.Context, msg Confirmation) error
	SendReward(ctx context.Context, msg Reward) error
}

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// DirectNotifier renders messages and hands them to a Mailer in the
// calling goroutine.
type DirectNotifier struct {
	mailer Mailer
}

func NewDirectNotifier(mailer Mailer) *DirectNotifier {
	return &DirectNotifier{mailer: mailer}
}

func (n *DirectNotifier) SendConfirmation(ctx context.Context, msg Confirmation) error {
	subject, body := RenderConfirmation(msg)
	if err := n.mailer.Send(ctx, msg.Email, subject, body); err != nil {
		return fmt.Errorf("send confirmation: %w", err)
	}
	return nil
}

func (n *DirectNotifier) SendReward(ctx context.Context, msg Reward) error {
	subject, body := RenderReward(msg)
	if err := n.mailer.Send(ctx, msg.Email, subject, body); err != nil {
		return fmt.Errorf("send reward: %w", err)
	}
	return nil
}

func RenderConfirmation(msg Confirmation) (subject, body string) {
	subject = "Confirm your appointment"
	body = fmt.Sprintf(
		"Hi %s,\n\nYou requested a %s on %s at %s (%.2f).\n"+
			"Confirm it by opening the link below:\n\n%s\n\n"+
			"Unconfirmed requests are released automatically.\n",
		msg.Name, msg.Type, msg.Date, msg.TimeSlot, msg.Price, msg.Link,
	)
	return subject, body
}

func RenderReward(msg Reward) (subject, body string) {
	subject = "You earned a discount"
	body = fmt.Sprintf(
		"Hi %s,\n\nThanks for your visits! Your next service comes with a discount.\n",
		msg.Name,
	)
	return subject, body
}

var _ Notifier = (*DirectNotifier)(nil)
