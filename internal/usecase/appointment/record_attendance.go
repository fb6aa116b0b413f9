package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/attendance"
	userdomain "github.com/BruksfildServices01/barber-booking/internal/domain/user"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notify"
)

type RecordAttendanceInput struct {
	AppointmentID uint
	Attended      bool
	ActorID       uint
}

type RecordAttendanceOutput struct {
	UserID     uint   `json:"user_id"`
	Attendance int    `json:"attendance"`
	Rights     string `json:"rights"`
	Rewarded   bool   `json:"rewarded"`
}

// RecordAttendance applies the attendance policy to the owner of a
// confirmed appointment, once per appointment.
type RecordAttendance struct {
	repo     domain.Repository
	cache    userdomain.VerifiedCache
	notifier notify.Notifier
	audit    *audit.Dispatcher
	log      zerolog.Logger
}

func NewRecordAttendance(
	repo domain.Repository,
	cache userdomain.VerifiedCache,
	notifier notify.Notifier,
	audit *audit.Dispatcher,
	log zerolog.Logger,
) *RecordAttendance {
	return &RecordAttendance{
		repo:     repo,
		cache:    cache,
		notifier: notifier,
		audit:    audit,
		log:      log.With().Str("component", "attendance").Logger(),
	}
}

func (uc *RecordAttendance) Execute(
	ctx context.Context,
	in RecordAttendanceInput,
) (*RecordAttendanceOutput, error) {

	var (
		out  RecordAttendanceOutput
		user *models.User
	)

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		ap, err := tx.GetAppointment(ctx, in.AppointmentID)
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
		}
		if err != nil {
			return err
		}
		if err := domain.CanRecordAttendance(ap); err != nil {
			return err
		}

		user, err = tx.GetUser(ctx, ap.UserID)
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrBusiness(httperr.CodeUserNotFound)
		}
		if err != nil {
			return err
		}

		if in.Attended {
			user.Attendance, out.Rewarded = attendance.RecordAttended(user.Attendance)
		} else {
			user.Attendance = attendance.RecordMissed(user.Attendance)
		}
		if err := tx.SaveUser(ctx, user); err != nil {
			return fmt.Errorf("save user: %w", err)
		}

		ap.AttendanceRecorded = true
		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	out.UserID = user.ID
	out.Attendance = user.Attendance
	out.Rights = user.Rights

	if err := uc.cache.Invalidate(ctx, user.ID); err != nil {
		uc.log.Warn().Err(err).Uint("user_id", user.ID).Msg("verified user cache invalidation failed")
	}

	if out.Rewarded {
		reward := notify.Reward{Email: user.Email, Name: user.FullName()}
		if err := uc.notifier.SendReward(ctx, reward); err != nil {
			uc.log.Error().Err(err).Uint("user_id", user.ID).Msg("reward email failed")
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "attendance_recorded",
		Entity:   "appointment",
		EntityID: &in.AppointmentID,
		Metadata: map[string]any{"attended": in.Attended, "attendance": out.Attendance},
	})

	return &out, nil
}
