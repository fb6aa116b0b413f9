package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ======================================================
// SETTINGS
// ======================================================

type Settings struct {
	Timezone           string
	Schedule           schedule.Defaults
	PendingTTL         time.Duration
	CancellationWindow time.Duration
	PublicBaseURL      string
}

func NewSettings(cfg *config.Config) Settings {
	return Settings{
		Timezone: cfg.Timezone,
		Schedule: schedule.Defaults{
			StartTime: cfg.DefaultStartTime,
			EndTime:   cfg.DefaultEndTime,
			Step:      cfg.SlotStepMinutes,
			TTL:       cfg.WorkingHoursTTL,
		},
		PendingTTL:         cfg.PendingTTL,
		CancellationWindow: cfg.CancellationWindow,
		PublicBaseURL:      cfg.PublicBaseURL,
	}
}

func (s Settings) location() *time.Location {
	return timezone.Location(s.Timezone)
}

func (s Settings) clock() func() time.Time {
	return func() time.Time { return timezone.NowIn(s.Timezone) }
}

func (s Settings) confirmationLink(token string) string {
	return s.PublicBaseURL + "/appointments/confirmation/" + token
}

// ======================================================
// SHARED STEPS
// ======================================================

// loadDay gathers the engine input for a date.
func loadDay(ctx context.Context, repo domain.Repository, s Settings, date string) (domain.AvailabilityInput, error) {
	wh, err := repo.GetWorkingHours(ctx, date)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return domain.AvailabilityInput{}, err
	}

	base, err := schedule.BaseSlots(wh, s.Schedule)
	if err != nil {
		return domain.AvailabilityInput{}, err
	}

	confirmed, err := repo.ListConfirmedByDate(ctx, date)
	if err != nil {
		return domain.AvailabilityInput{}, err
	}

	return domain.AvailabilityInput{
		BaseSlots:    base,
		Confirmed:    confirmed,
		WorkingHours: wh,
		Step:         s.Schedule.Step,
	}, nil
}

func validateDate(date string, loc *time.Location) (time.Time, error) {
	day, err := timezone.ParseDate(date, loc)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness(httperr.CodeInvalidFormat)
	}
	return day, nil
}

// removeAppointment deletes ap inside tx. A confirmed appointment first
// gives back its slot claims and its provisional slot bookkeeping.
func removeAppointment(
	ctx context.Context,
	tx domain.Repository,
	s Settings,
	ap *models.Appointment,
	now time.Time,
) error {
	if domain.Status(ap.Status) == domain.StatusConfirmed {
		wh, err := tx.LockWorkingHours(ctx, ap.Date, nil)
		switch {
		case errors.Is(err, domain.ErrNotFound):
		case err != nil:
			return err
		case schedule.References(wh, ap.ID):
			schedule.Release(wh, ap.ID)
			schedule.Touch(wh, now, s.Schedule.TTL)
			if err := tx.SaveWorkingHours(ctx, wh); err != nil {
				return err
			}
		}

		if err := tx.ReleaseClaims(ctx, ap.ID); err != nil {
			return err
		}
	}
	return tx.DeleteAppointment(ctx, ap.ID)
}
