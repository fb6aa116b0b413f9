package appointment

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/domain/slot"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ConfirmAppointment struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	settings Settings

	now func() time.Time
}

func NewConfirmAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	settings Settings,
) *ConfirmAppointment {
	return &ConfirmAppointment{
		repo:     repo,
		audit:    audit,
		settings: settings,
		now:      settings.clock(),
	}
}

// Execute confirms the pending booking behind token. The date lock, the
// slot claims and the status flip commit together, so of two pending
// bookings racing for one slot exactly one is confirmed.
func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	token string,
) (*models.Appointment, error) {

	now := uc.now()
	var confirmed *models.Appointment

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {

		// --------------------------------------------------
		// Token
		// --------------------------------------------------
		ap, err := tx.GetAppointmentByToken(ctx, token)
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrBusiness(httperr.CodeTokenNotFound)
		}
		if err != nil {
			return err
		}
		if err := domain.CanConfirm(ap, now); err != nil {
			return err
		}

		day, err := validateDate(ap.Date, uc.settings.location())
		if err != nil {
			return err
		}

		// --------------------------------------------------
		// Date lock + re-validation
		// --------------------------------------------------
		wh, err := tx.LockWorkingHours(ctx, ap.Date, uc.settings.Schedule.NewWorkingHours(ap.Date, now))
		if err != nil {
			return fmt.Errorf("lock working hours: %w", err)
		}

		base, err := schedule.BaseSlots(wh, uc.settings.Schedule)
		if err != nil {
			return err
		}
		others, err := tx.ListConfirmedByDate(ctx, ap.Date)
		if err != nil {
			return err
		}

		serviceType := domain.ServiceType(ap.Type)
		state := domain.AvailabilityInput{
			BaseSlots:    base,
			Confirmed:    others,
			WorkingHours: wh,
			Step:         uc.settings.Schedule.Step,
		}
		if err := domain.CheckBookable(domain.BookingRequest{TimeSlot: ap.TimeSlot, Type: serviceType}, state); err != nil {
			return err
		}

		// --------------------------------------------------
		// Claims
		// --------------------------------------------------
		occupied := domain.Occupied(ap, uc.settings.Schedule.Step)
		if err := tx.ClaimSlots(ctx, ap.ID, ap.Date, occupied); err != nil {
			if httperr.IsUniqueViolation(err) {
				return httperr.ErrBusiness(httperr.CodeSlotConflict)
			}
			return fmt.Errorf("claim slots: %w", err)
		}

		// --------------------------------------------------
		// Provisional slots
		// --------------------------------------------------
		if !slices.Contains(base, ap.TimeSlot) {
			if !schedule.MarkBooked(wh, ap.TimeSlot, ap.ID) {
				return httperr.ErrBusiness(httperr.CodeSlotConflict)
			}
		}
		if serviceType.IsDouble() && len(occupied) == 2 {
			shifted, err := slot.AddOffset(occupied[1], domain.HairAndBeardOverrun)
			if err != nil {
				return err
			}
			// a remainder past the end of the day or inside the break is not offered
			if schedule.FitsDay(wh, shifted, domain.TypeBeard.DurationMinutes()) {
				schedule.AddShifted(wh, occupied[1], shifted, ap.ID)
			}
		}

		schedule.Touch(wh, now, uc.settings.Schedule.TTL)
		if err := tx.SaveWorkingHours(ctx, wh); err != nil {
			return fmt.Errorf("save working hours: %w", err)
		}

		domain.Confirm(ap, day)
		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return fmt.Errorf("update appointment: %w", err)
		}

		confirmed = ap
		return nil
	})
	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeSlotConflict) {
			metrics.IncSlotConflict()
		}
		return nil, err
	}

	metrics.IncBookingConfirmed(confirmed.Type)

	uc.audit.Dispatch(audit.Event{
		UserID:   &confirmed.UserID,
		Action:   "appointment_confirmed",
		Entity:   "appointment",
		EntityID: &confirmed.ID,
	})

	return confirmed, nil
}
