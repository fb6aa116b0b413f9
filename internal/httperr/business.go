package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ===============================
// Business error codes
// ===============================

const (
	CodeInvalidFormat             = "invalid_format"
	CodeSlotInPast                = "slot_in_past"
	CodeInvalidSlot               = "invalid_slot"
	CodeSlotUnavailable           = "slot_unavailable"
	CodeSlotConflict              = "slot_conflict"
	CodeTokenNotFound             = "token_not_found"
	CodeCancellationWindowExpired = "cancellation_window_expired"
	CodeForbidden                 = "forbidden"
	CodeAppointmentNotFound       = "appointment_not_found"
	CodeAppointmentNotConfirmed   = "appointment_not_confirmed"
	CodeAttendanceRecorded        = "attendance_already_recorded"
	CodeInvalidAttendance         = "invalid_attendance"
	CodeWorkingHoursNotFound      = "working_hours_not_found"
	CodeBlockNotFound             = "block_not_found"
	CodeUserNotFound              = "user_not_found"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode returns the code of the first BusinessError in err's chain.
func BusinessCode(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}

// IsUniqueViolation reports whether err comes from a unique constraint,
// either translated by gorm or raw from postgres (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
