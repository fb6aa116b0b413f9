package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/slot"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// NewPending builds an unconfirmed booking.
func NewPending(userID uint, t ServiceType, date, timeSlot, token string, now time.Time, ttl time.Duration) *models.Appointment {
	return &models.Appointment{
		UserID:          userID,
		Type:            string(t),
		Date:            date,
		TimeSlot:        timeSlot,
		Status:          string(StatusPending),
		ConfirmationHex: &token,
		BookedAt:        now,
		ExpiresAt:       now.Add(ttl),
	}
}

// CanConfirm rejects anything that is not a live pending booking. Every
// failure is reported as token_not_found so stale links keep failing.
func CanConfirm(ap *models.Appointment, now time.Time) error {
	if Status(ap.Status) != StatusPending || ap.ConfirmationHex == nil {
		return httperr.ErrBusiness(httperr.CodeTokenNotFound)
	}
	if now.After(ap.ExpiresAt) {
		return httperr.ErrBusiness(httperr.CodeTokenNotFound)
	}
	return nil
}

// Confirm flips the booking and moves its expiry to one day after the
// appointment date.
func Confirm(ap *models.Appointment, day time.Time) {
	ap.Status = string(StatusConfirmed)
	ap.ConfirmationHex = nil
	ap.ExpiresAt = day.AddDate(0, 0, 1)
}

// CanSelfCancel applies the owner-only grace window.
func CanSelfCancel(ap *models.Appointment, actorID uint, now time.Time, window time.Duration) error {
	if ap.UserID != actorID {
		return httperr.ErrBusiness(httperr.CodeForbidden)
	}
	if now.Sub(ap.BookedAt) > window {
		return httperr.ErrBusiness(httperr.CodeCancellationWindowExpired)
	}
	return nil
}

// CanRecordAttendance allows one attendance decision per confirmed booking.
func CanRecordAttendance(ap *models.Appointment) error {
	if Status(ap.Status) != StatusConfirmed {
		return httperr.ErrBusiness(httperr.CodeAppointmentNotConfirmed)
	}
	if ap.AttendanceRecorded {
		return httperr.ErrBusiness(httperr.CodeAttendanceRecorded)
	}
	return nil
}

// Occupied lists the slots an appointment holds: one, or two for
// Hair and Beard.
func Occupied(ap *models.Appointment, step int) []string {
	if !ServiceType(ap.Type).IsDouble() {
		return []string{ap.TimeSlot}
	}
	next, err := slot.NextRegularSlot(ap.TimeSlot, step)
	if err != nil {
		return []string{ap.TimeSlot}
	}
	return []string{ap.TimeSlot, next}
}
