package schedule

import (
	"github.com/BruksfildServices01/barber-booking/internal/domain/slot"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// CustomSlotMinutes is the length of a shifted or intermediate slot.
const CustomSlotMinutes = 30

// IsBlocked reports whether t is withheld, manually or by an appointment.
func IsBlocked(wh *models.WorkingHours, t string) bool {
	if wh == nil {
		return false
	}
	for _, b := range wh.BlockedSlots {
		if b.TimeSlot == t {
			return true
		}
	}
	return false
}

// FitsDay reports whether a service of length minutes starting at t begins
// no later than the day's end time and stays clear of the break.
func FitsDay(wh *models.WorkingHours, t string, length int) bool {
	start, err := slot.MinutesSinceMidnight(t)
	if err != nil {
		return false
	}
	end, err := slot.MinutesSinceMidnight(wh.EndTime)
	if err != nil || start > end {
		return false
	}
	if wh.BreakStart == "" || wh.BreakEnd == "" {
		return true
	}
	bs, err := slot.MinutesSinceMidnight(wh.BreakStart)
	if err != nil {
		return false
	}
	be, err := slot.MinutesSinceMidnight(wh.BreakEnd)
	if err != nil {
		return false
	}
	return start+length <= bs || start >= be
}

// OpenCustomSlots lists unbooked shifted and intermediate times that still
// fit the day's hours.
func OpenCustomSlots(wh *models.WorkingHours) []string {
	if wh == nil {
		return nil
	}
	var out []string
	for _, s := range wh.ShiftedSlots {
		if !s.IsBooked && FitsDay(wh, s.ShiftedTime, CustomSlotMinutes) {
			out = append(out, s.ShiftedTime)
		}
	}
	for _, s := range wh.IntermediateSlots {
		if !s.IsBooked && FitsDay(wh, s.SlotTime, CustomSlotMinutes) {
			out = append(out, s.SlotTime)
		}
	}
	return out
}

func HasOpenCustomSlot(wh *models.WorkingHours, t string) bool {
	for _, s := range OpenCustomSlots(wh) {
		if s == t {
			return true
		}
	}
	return false
}

// AddShifted records the 30-minute remainder of a cadence slot partly
// consumed by appointmentID.
func AddShifted(wh *models.WorkingHours, original, shifted string, appointmentID uint) {
	wh.ShiftedSlots = append(wh.ShiftedSlots, models.ShiftedSlot{
		OriginalTime:              original,
		ShiftedTime:               shifted,
		CreatedDueToAppointmentID: appointmentID,
	})
}

// MarkBooked assigns the first open custom slot at t to appointmentID.
func MarkBooked(wh *models.WorkingHours, t string, appointmentID uint) bool {
	id := appointmentID
	for i := range wh.ShiftedSlots {
		s := &wh.ShiftedSlots[i]
		if s.ShiftedTime == t && !s.IsBooked {
			s.IsBooked = true
			s.BookedAppointmentID = &id
			return true
		}
	}
	for i := range wh.IntermediateSlots {
		s := &wh.IntermediateSlots[i]
		if s.SlotTime == t && !s.IsBooked {
			s.IsBooked = true
			s.BookedAppointmentID = &id
			return true
		}
	}
	return false
}

// Release removes every trace of appointmentID from the aggregate.
//
// Custom slots it had booked are reopened. Entries it created are
// dropped, except that a shifted slot already booked by another
// appointment B is handed over to B: it becomes an intermediate slot
// owned by B, and the cadence slot it overlaps is blocked by B. Those
// entries go away in turn when B is released.
func Release(wh *models.WorkingHours, appointmentID uint) {
	for i := range wh.ShiftedSlots {
		s := &wh.ShiftedSlots[i]
		if s.BookedAppointmentID != nil && *s.BookedAppointmentID == appointmentID {
			s.IsBooked = false
			s.BookedAppointmentID = nil
		}
	}
	for i := range wh.IntermediateSlots {
		s := &wh.IntermediateSlots[i]
		if s.BookedAppointmentID != nil && *s.BookedAppointmentID == appointmentID {
			s.IsBooked = false
			s.BookedAppointmentID = nil
		}
	}

	shifted := wh.ShiftedSlots[:0]
	for _, s := range wh.ShiftedSlots {
		if s.CreatedDueToAppointmentID != appointmentID {
			shifted = append(shifted, s)
			continue
		}
		if s.IsBooked && s.BookedAppointmentID != nil {
			owner := *s.BookedAppointmentID
			wh.IntermediateSlots = append(wh.IntermediateSlots, models.IntermediateSlot{
				SlotTime:                  s.ShiftedTime,
				CreatedDueToAppointmentID: owner,
				IsBooked:                  true,
				BookedAppointmentID:       &owner,
			})
			wh.BlockedSlots = append(wh.BlockedSlots, models.BlockedSlot{
				TimeSlot:  s.OriginalTime,
				BlockedBy: &owner,
				Date:      wh.Date,
			})
		}
	}
	wh.ShiftedSlots = shifted

	intermediate := wh.IntermediateSlots[:0]
	for _, s := range wh.IntermediateSlots {
		if s.CreatedDueToAppointmentID != appointmentID {
			intermediate = append(intermediate, s)
		}
	}
	wh.IntermediateSlots = intermediate

	blocked := wh.BlockedSlots[:0]
	for _, b := range wh.BlockedSlots {
		if b.BlockedBy == nil || *b.BlockedBy != appointmentID {
			blocked = append(blocked, b)
		}
	}
	wh.BlockedSlots = blocked
}

// References reports whether any entry was created by or booked for
// appointmentID.
func References(wh *models.WorkingHours, appointmentID uint) bool {
	for _, s := range wh.ShiftedSlots {
		if s.CreatedDueToAppointmentID == appointmentID ||
			(s.BookedAppointmentID != nil && *s.BookedAppointmentID == appointmentID) {
			return true
		}
	}
	for _, s := range wh.IntermediateSlots {
		if s.CreatedDueToAppointmentID == appointmentID ||
			(s.BookedAppointmentID != nil && *s.BookedAppointmentID == appointmentID) {
			return true
		}
	}
	for _, b := range wh.BlockedSlots {
		if b.BlockedBy != nil && *b.BlockedBy == appointmentID {
			return true
		}
	}
	return false
}

// Block withholds t manually. It returns false when t is already
// manually blocked.
func Block(wh *models.WorkingHours, t string) bool {
	for _, b := range wh.BlockedSlots {
		if b.TimeSlot == t && b.BlockedBy == nil {
			return false
		}
	}
	wh.BlockedSlots = append(wh.BlockedSlots, models.BlockedSlot{
		TimeSlot: t,
		Date:     wh.Date,
	})
	return true
}

// Unblock lifts a manual block. Blocks held by appointments are kept.
func Unblock(wh *models.WorkingHours, t string) bool {
	removed := false
	kept := wh.BlockedSlots[:0]
	for _, b := range wh.BlockedSlots {
		if b.TimeSlot == t && b.BlockedBy == nil {
			removed = true
			continue
		}
		kept = append(kept, b)
	}
	wh.BlockedSlots = kept
	return removed
}
