// Package slot implements arithmetic over "HH:MM" time-of-day strings.
package slot

import (
	"fmt"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// DefaultStep is the booking cadence in minutes.
const DefaultStep = 40

var ErrInvalidFormat = httperr.ErrBusiness(httperr.CodeInvalidFormat)

// MinutesSinceMidnight parses a strict "HH:MM" value.
func MinutesSinceMidnight(t string) (int, error) {
	if len(t) != 5 || t[2] != ':' {
		return 0, ErrInvalidFormat
	}
	h, ok1 := twoDigits(t[0], t[1])
	m, ok2 := twoDigits(t[3], t[4])
	if !ok1 || !ok2 || h > 23 || m > 59 {
		return 0, ErrInvalidFormat
	}
	return h*60 + m, nil
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// Format renders minutes as "HH:MM". Values past 23:59 are not wrapped.
func Format(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// AddOffset moves t by delta minutes. The result is floored at "00:00"
// and never wraps, so callers must check it stays inside the working day.
func AddOffset(t string, delta int) (string, error) {
	m, err := MinutesSinceMidnight(t)
	if err != nil {
		return "", err
	}
	return Format(m + delta), nil
}

// IsAfter reports whether a is strictly later than b.
func IsAfter(a, b string) (bool, error) {
	ma, err := MinutesSinceMidnight(a)
	if err != nil {
		return false, err
	}
	mb, err := MinutesSinceMidnight(b)
	if err != nil {
		return false, err
	}
	return ma > mb, nil
}

// IsRegularSlot reports whether t lies on the step cadence that starts at start.
func IsRegularSlot(t, start string, step int) bool {
	if step <= 0 {
		return false
	}
	mt, err := MinutesSinceMidnight(t)
	if err != nil {
		return false
	}
	ms, err := MinutesSinceMidnight(start)
	if err != nil {
		return false
	}
	return mt >= ms && (mt-ms)%step == 0
}

// NextRegularSlot is the slot one step after s.
func NextRegularSlot(s string, step int) (string, error) {
	return AddOffset(s, step)
}

// GenerateSlots walks from start in step increments while the current
// value is not after end. Values in [breakStart, breakEnd) are skipped;
// an empty break bound disables the break.
func GenerateSlots(start, end, breakStart, breakEnd string, step int) ([]string, error) {
	if step <= 0 {
		return nil, ErrInvalidFormat
	}
	from, err := MinutesSinceMidnight(start)
	if err != nil {
		return nil, err
	}
	to, err := MinutesSinceMidnight(end)
	if err != nil {
		return nil, err
	}

	bs, be := -1, -1
	if breakStart != "" && breakEnd != "" {
		if bs, err = MinutesSinceMidnight(breakStart); err != nil {
			return nil, err
		}
		if be, err = MinutesSinceMidnight(breakEnd); err != nil {
			return nil, err
		}
	}

	slots := make([]string, 0, (to-from)/step+1)
	for cur := from; cur <= to; cur += step {
		if bs >= 0 && cur >= bs && cur < be {
			continue
		}
		slots = append(slots, Format(cur))
	}
	return slots, nil
}
