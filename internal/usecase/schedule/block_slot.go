package schedule

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type BlockSlotInput struct {
	Date     string
	TimeSlot string
	ActorID  uint
}

// BlockSlot withholds a slot of the day from booking. Blocking an already
// blocked slot succeeds without change.
type BlockSlot struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	defaults domain.Defaults
	tz       string

	now func() time.Time
}

func NewBlockSlot(
	repo domain.Repository,
	audit *audit.Dispatcher,
	defaults domain.Defaults,
	tz string,
) *BlockSlot {
	return &BlockSlot{
		repo:     repo,
		audit:    audit,
		defaults: defaults,
		tz:       tz,
		now:      func() time.Time { return timezone.NowIn(tz) },
	}
}

func (uc *BlockSlot) Execute(
	ctx context.Context,
	in BlockSlotInput,
) (*models.WorkingHours, error) {

	if err := validateDate(in.Date, uc.tz); err != nil {
		return nil, err
	}

	now := uc.now()
	var saved *models.WorkingHours

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		wh, err := tx.LockWorkingHours(ctx, in.Date, uc.defaults.NewWorkingHours(in.Date, now))
		if err != nil {
			return fmt.Errorf("lock working hours: %w", err)
		}

		base, err := domain.BaseSlots(wh, uc.defaults)
		if err != nil {
			return err
		}
		if !slices.Contains(base, in.TimeSlot) && !slices.Contains(domain.OpenCustomSlots(wh), in.TimeSlot) {
			return httperr.ErrBusiness(httperr.CodeInvalidSlot)
		}

		if domain.Block(wh, in.TimeSlot) {
			domain.Touch(wh, now, uc.defaults.TTL)
			if err := tx.SaveWorkingHours(ctx, wh); err != nil {
				return fmt.Errorf("save working hours: %w", err)
			}
		}
		saved = wh
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "slot_blocked",
		Entity:   "working_hours",
		EntityID: &saved.ID,
		Metadata: map[string]string{"date": in.Date, "time_slot": in.TimeSlot},
	})

	return saved, nil
}

// UnblockSlot lifts a manual block. Blocks held by appointments are not
// affected.
type UnblockSlot struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	defaults domain.Defaults
	tz       string

	now func() time.Time
}

func NewUnblockSlot(
	repo domain.Repository,
	audit *audit.Dispatcher,
	defaults domain.Defaults,
	tz string,
) *UnblockSlot {
	return &UnblockSlot{
		repo:     repo,
		audit:    audit,
		defaults: defaults,
		tz:       tz,
		now:      func() time.Time { return timezone.NowIn(tz) },
	}
}

func (uc *UnblockSlot) Execute(
	ctx context.Context,
	in BlockSlotInput,
) (*models.WorkingHours, error) {

	if err := validateDate(in.Date, uc.tz); err != nil {
		return nil, err
	}

	now := uc.now()
	var saved *models.WorkingHours

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		wh, err := tx.LockWorkingHours(ctx, in.Date, nil)
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrBusiness(httperr.CodeBlockNotFound)
		}
		if err != nil {
			return fmt.Errorf("lock working hours: %w", err)
		}

		if !domain.Unblock(wh, in.TimeSlot) {
			return httperr.ErrBusiness(httperr.CodeBlockNotFound)
		}
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
		Action:   "slot_unblocked",
		Entity:   "working_hours",
		EntityID: &saved.ID,
		Metadata: map[string]string{"date": in.Date, "time_slot": in.TimeSlot},
	})

	return saved, nil
}
