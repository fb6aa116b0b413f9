package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
)

type CancelInput struct {
	AppointmentID uint
	ActorID       uint
	// Admin skips the owner and grace window checks.
	Admin bool
}

type CancelAppointment struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	settings Settings

	now func() time.Time
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	settings Settings,
) *CancelAppointment {
	return &CancelAppointment{
		repo:     repo,
		audit:    audit,
		settings: settings,
		now:      settings.clock(),
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	in CancelInput,
) error {

	now := uc.now()

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		ap, err := tx.GetAppointment(ctx, in.AppointmentID)
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
		}
		if err != nil {
			return err
		}

		if !in.Admin {
			if err := domain.CanSelfCancel(ap, in.ActorID, now, uc.settings.CancellationWindow); err != nil {
				return err
			}
		}

		return removeAppointment(ctx, tx, uc.settings, ap, now)
	})
	if err != nil {
		return err
	}

	actor := "self"
	action := "appointment_cancelled"
	if in.Admin {
		actor = "admin"
		action = "appointment_cancelled_by_admin"
	}
	metrics.IncBookingCancelled(actor)

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   action,
		Entity:   "appointment",
		EntityID: &in.AppointmentID,
	})

	return nil
}
