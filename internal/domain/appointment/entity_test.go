package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

func TestParseServiceType(t *testing.T) {
	for _, s := range []string{"Hair", "Beard", "Hair and Beard"} {
		got, err := ParseServiceType(s)
		require.NoError(t, err)
		assert.Equal(t, ServiceType(s), got)
	}

	_, err := ParseServiceType("hair")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidFormat))
}

func TestPendingLifecycle(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	ap := NewPending(7, TypeHair, "2026-03-10", "09:40", "abc", now, time.Hour)

	assert.Equal(t, string(StatusPending), ap.Status)
	assert.Equal(t, now, ap.BookedAt)
	assert.Equal(t, now.Add(time.Hour), ap.ExpiresAt)
	require.NotNil(t, ap.ConfirmationHex)

	t.Run("expired token", func(t *testing.T) {
		err := CanConfirm(ap, now.Add(61*time.Minute))
		assert.True(t, httperr.IsBusiness(err, httperr.CodeTokenNotFound))
	})

	require.NoError(t, CanConfirm(ap, now.Add(time.Minute)))

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	Confirm(ap, day)
	assert.Equal(t, string(StatusConfirmed), ap.Status)
	assert.Nil(t, ap.ConfirmationHex)
	assert.Equal(t, day.AddDate(0, 0, 1), ap.ExpiresAt)

	t.Run("confirming twice fails", func(t *testing.T) {
		err := CanConfirm(ap, now.Add(time.Minute))
		assert.True(t, httperr.IsBusiness(err, httperr.CodeTokenNotFound))
	})
}

func TestCanSelfCancel(t *testing.T) {
	booked := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	ap := NewPending(7, TypeBeard, "2026-03-10", "09:40", "abc", booked, time.Hour)
	window := 600 * time.Second

	assert.NoError(t, CanSelfCancel(ap, 7, booked.Add(600*time.Second), window))

	err := CanSelfCancel(ap, 7, booked.Add(601*time.Second), window)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeCancellationWindowExpired))

	err = CanSelfCancel(ap, 8, booked, window)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))
}

func TestCanRecordAttendance(t *testing.T) {
	ap := confirmed(1, TypeHair, "09:00")
	assert.NoError(t, CanRecordAttendance(&ap))

	ap.AttendanceRecorded = true
	assert.True(t, httperr.IsBusiness(CanRecordAttendance(&ap), httperr.CodeAttendanceRecorded))

	pending := NewPending(1, TypeHair, "2026-03-10", "09:00", "x", time.Now(), time.Hour)
	assert.True(t, httperr.IsBusiness(CanRecordAttendance(pending), httperr.CodeAppointmentNotConfirmed))
}

func TestOccupied(t *testing.T) {
	single := confirmed(1, TypeHair, "09:00")
	assert.Equal(t, []string{"09:00"}, Occupied(&single, 40))

	double := confirmed(2, TypeHairAndBeard, "10:00")
	assert.Equal(t, []string{"10:00", "10:40"}, Occupied(&double, 40))
}

func TestDurationMinutes(t *testing.T) {
	assert.Equal(t, 40, TypeHair.DurationMinutes())
	assert.Equal(t, 30, TypeBeard.DurationMinutes())
	assert.Equal(t, 50, TypeHairAndBeard.DurationMinutes())
}
