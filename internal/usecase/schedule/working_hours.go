package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

func validateDate(date, tz string) error {
	if _, err := timezone.ParseDate(date, timezone.Location(tz)); err != nil {
		return httperr.ErrBusiness(httperr.CodeInvalidFormat)
	}
	return nil
}

// ======================================================
// SET
// ======================================================

type SetWorkingHoursInput struct {
	Date       string
	StartTime  string
	EndTime    string
	BreakStart string
	BreakEnd   string
	ActorID    uint
}

// SetWorkingHours replaces the hours of a date. Provisional slots and
// blocks already recorded on the date are kept.
type SetWorkingHours struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	defaults domain.Defaults
	tz       string

	now func() time.Time
}

func NewSetWorkingHours(
	repo domain.Repository,
	audit *audit.Dispatcher,
	defaults domain.Defaults,
	tz string,
) *SetWorkingHours {
	return &SetWorkingHours{
		repo:     repo,
		audit:    audit,
		defaults: defaults,
		tz:       tz,
		now:      func() time.Time { return timezone.NowIn(tz) },
	}
}

func (uc *SetWorkingHours) Execute(
	ctx context.Context,
	in SetWorkingHoursInput,
) (*models.WorkingHours, error) {

	if err := validateDate(in.Date, uc.tz); err != nil {
		return nil, err
	}
	if err := domain.ValidateHours(in.StartTime, in.EndTime, in.BreakStart, in.BreakEnd); err != nil {
		return nil, err
	}

	now := uc.now()
	var saved *models.WorkingHours

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		wh, err := tx.LockWorkingHours(ctx, in.Date, uc.defaults.NewWorkingHours(in.Date, now))
		if err != nil {
			return fmt.Errorf("lock working hours: %w", err)
		}

		wh.StartTime = in.StartTime
		wh.EndTime = in.EndTime
		wh.BreakStart = in.BreakStart
		wh.BreakEnd = in.BreakEnd
		domain.Touch(wh, now, uc.defaults.TTL)

		if err := tx.SaveWorkingHours(ctx, wh); err != nil {
			return fmt.Errorf("save working hours: %w", err)
		}
		saved = wh
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "working_hours_set",
		Entity:   "working_hours",
		EntityID: &saved.ID,
		Metadata: in,
	})

	return saved, nil
}

// ======================================================
// GET
// ======================================================

type GetWorkingHours struct {
	repo domain.Repository
	tz   string
}

func NewGetWorkingHours(repo domain.Repository, tz string) *GetWorkingHours {
	return &GetWorkingHours{repo: repo, tz: tz}
}

func (uc *GetWorkingHours) Execute(
	ctx context.Context,
	date string,
) (*models.WorkingHours, error) {

	if err := validateDate(date, uc.tz); err != nil {
		return nil, err
	}

	wh, err := uc.repo.GetWorkingHours(ctx, date)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeWorkingHoursNotFound)
	}
	return wh, err
}
