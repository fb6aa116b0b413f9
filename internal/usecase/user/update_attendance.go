package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain/attendance"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/user"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type UpdateAttendanceInput struct {
	UserID     uint
	Attendance int
	ActorID    uint
}

// UpdateAttendance is the admin override of the attendance counter.
// Rights follow from the new value.
type UpdateAttendance struct {
	repo  domain.Repository
	cache domain.VerifiedCache
	audit *audit.Dispatcher
	log   zerolog.Logger
}

func NewUpdateAttendance(
	repo domain.Repository,
	cache domain.VerifiedCache,
	audit *audit.Dispatcher,
	log zerolog.Logger,
) *UpdateAttendance {
	return &UpdateAttendance{
		repo:  repo,
		cache: cache,
		audit: audit,
		log:   log.With().Str("component", "attendance").Logger(),
	}
}

func (uc *UpdateAttendance) Execute(
	ctx context.Context,
	in UpdateAttendanceInput,
) (*models.User, error) {

	if err := attendance.Validate(in.Attendance); err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidAttendance)
	}

	u, err := uc.repo.GetByID(ctx, in.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeUserNotFound)
	}
	if err != nil {
		return nil, err
	}

	previous := u.Attendance
	u.Attendance = in.Attendance
	if err := uc.repo.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	if err := uc.cache.Invalidate(ctx, u.ID); err != nil {
		uc.log.Warn().Err(err).Uint("user_id", u.ID).Msg("verified user cache invalidation failed")
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "attendance_updated",
		Entity:   "user",
		EntityID: &u.ID,
		Metadata: map[string]int{"from": previous, "to": u.Attendance},
	})

	return u, nil
}
