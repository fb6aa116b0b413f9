package schedule

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

var ErrNotFound = errors.New("working hours not found")

type Repository interface {
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// GetWorkingHours returns ErrNotFound when the date has no document.
	GetWorkingHours(ctx context.Context, date string) (*models.WorkingHours, error)

	// LockWorkingHours inserts fallback when the date has no document yet
	// and returns the row locked for the rest of the transaction.
	LockWorkingHours(ctx context.Context, date string, fallback *models.WorkingHours) (*models.WorkingHours, error)

	SaveWorkingHours(ctx context.Context, wh *models.WorkingHours) error
}
