package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

var ErrNotFound = errors.New("record not found")

type Repository interface {
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// -------- Working hours --------
	GetWorkingHours(
		ctx context.Context,
		date string,
	) (*models.WorkingHours, error)

	LockWorkingHours(
		ctx context.Context,
		date string,
		fallback *models.WorkingHours,
	) (*models.WorkingHours, error)

	SaveWorkingHours(
		ctx context.Context,
		wh *models.WorkingHours,
	) error

	DeleteExpiredWorkingHours(
		ctx context.Context,
		now time.Time,
	) (int64, error)

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	GetAppointmentByToken(
		ctx context.Context,
		token string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error

	ListAppointmentsByDate(
		ctx context.Context,
		date string,
	) ([]models.Appointment, error)

	ListConfirmedByDate(
		ctx context.Context,
		date string,
	) ([]models.Appointment, error)

	ListExpired(
		ctx context.Context,
		now time.Time,
	) ([]models.Appointment, error)

	// -------- Slot claims --------

	// ClaimSlots fails with a unique violation when any slot is taken.
	ClaimSlots(
		ctx context.Context,
		appointmentID uint,
		date string,
		slots []string,
	) error

	ReleaseClaims(
		ctx context.Context,
		appointmentID uint,
	) error

	// -------- User / Price --------
	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	SaveUser(
		ctx context.Context,
		u *models.User,
	) error

	GetPrice(
		ctx context.Context,
		serviceType string,
	) (*models.Price, error)
}
