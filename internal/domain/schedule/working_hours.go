// Package schedule resolves a day's base slots and keeps the provisional
// slot bookkeeping on the per-date WorkingHours aggregate.
package schedule

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/slot"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Defaults apply to dates without stored working hours.
type Defaults struct {
	StartTime string
	EndTime   string
	Step      int
	TTL       time.Duration
}

func (d Defaults) NewWorkingHours(date string, now time.Time) *models.WorkingHours {
	wh := &models.WorkingHours{
		Date:      date,
		StartTime: d.StartTime,
		EndTime:   d.EndTime,
	}
	Touch(wh, now, d.TTL)
	return wh
}

// BaseSlots generates the cadence for wh, or for the defaults when wh is nil.
func BaseSlots(wh *models.WorkingHours, d Defaults) ([]string, error) {
	if wh == nil {
		return slot.GenerateSlots(d.StartTime, d.EndTime, "", "", d.Step)
	}
	return slot.GenerateSlots(wh.StartTime, wh.EndTime, wh.BreakStart, wh.BreakEnd, d.Step)
}

// Touch refreshes the expiry of the document.
func Touch(wh *models.WorkingHours, now time.Time, ttl time.Duration) {
	wh.ExpiresAt = now.Add(ttl)
}

// ValidateHours checks an admin-provided day. The break is optional but
// both bounds must be given together and fall inside the day.
func ValidateHours(start, end, breakStart, breakEnd string) error {
	invalid := httperr.ErrBusiness(httperr.CodeInvalidFormat)

	s, err := slot.MinutesSinceMidnight(start)
	if err != nil {
		return err
	}
	e, err := slot.MinutesSinceMidnight(end)
	if err != nil {
		return err
	}
	if s >= e {
		return invalid
	}

	if breakStart == "" && breakEnd == "" {
		return nil
	}
	if breakStart == "" || breakEnd == "" {
		return invalid
	}
	bs, err := slot.MinutesSinceMidnight(breakStart)
	if err != nil {
		return err
	}
	be, err := slot.MinutesSinceMidnight(breakEnd)
	if err != nil {
		return err
	}
	if bs >= be || bs < s || be > e {
		return invalid
	}
	return nil
}
