// Package attendance holds the bounded attendance counter that drives
// rewards and account suspension.
package attendance

import "github.com/BruksfildServices01/barber-booking/internal/httperr"

const (
	Min             = -3
	Max             = 5
	RewardThreshold = 5
)

type Rights string

const (
	RightsRegular   Rights = "regular"
	RightsSuspended Rights = "suspended"
)

var ErrOutOfRange = httperr.ErrBusiness(httperr.CodeInvalidAttendance)

// RecordAttended adds a visit. Reaching the reward threshold resets the
// counter and reports rewarded=true.
func RecordAttended(current int) (next int, rewarded bool) {
	next = clamp(current + 1)
	if next >= RewardThreshold {
		return 0, true
	}
	return next, false
}

// RecordMissed registers a no-show. A positive counter drops to zero,
// otherwise it goes down by one.
func RecordMissed(current int) int {
	if current > 0 {
		return 0
	}
	return clamp(current - 1)
}

func RightsFor(a int) Rights {
	if a <= Min {
		return RightsSuspended
	}
	return RightsRegular
}

// Validate checks an administrative override.
func Validate(a int) error {
	if a < Min || a > Max {
		return ErrOutOfRange
	}
	return nil
}

func clamp(a int) int {
	switch {
	case a < Min:
		return Min
	case a > Max:
		return Max
	}
	return a
}
