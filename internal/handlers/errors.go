package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

var businessStatus = map[string]int{
	httperr.CodeInvalidFormat:             http.StatusBadRequest,
	httperr.CodeSlotInPast:                http.StatusBadRequest,
	httperr.CodeInvalidSlot:               http.StatusBadRequest,
	httperr.CodeInvalidAttendance:         http.StatusBadRequest,
	httperr.CodeWorkingHoursNotFound:      http.StatusBadRequest,
	httperr.CodeSlotUnavailable:           http.StatusConflict,
	httperr.CodeSlotConflict:              http.StatusConflict,
	httperr.CodeAppointmentNotConfirmed:   http.StatusConflict,
	httperr.CodeAttendanceRecorded:        http.StatusConflict,
	httperr.CodeTokenNotFound:             http.StatusGone,
	httperr.CodeCancellationWindowExpired: http.StatusForbidden,
	httperr.CodeForbidden:                 http.StatusForbidden,
	httperr.CodeAppointmentNotFound:       http.StatusNotFound,
	httperr.CodeBlockNotFound:             http.StatusNotFound,
	httperr.CodeUserNotFound:              http.StatusNotFound,
}

var businessMessage = map[string]string{
	httperr.CodeInvalidFormat:             "Malformed date, time or service type.",
	httperr.CodeSlotInPast:                "The slot has already started.",
	httperr.CodeInvalidSlot:               "The slot is not offered for this service.",
	httperr.CodeInvalidAttendance:         "Attendance must be between -3 and 5.",
	httperr.CodeWorkingHoursNotFound:      "No working hours are set for this date.",
	httperr.CodeSlotUnavailable:           "The slot is blocked.",
	httperr.CodeSlotConflict:              "The slot is already taken.",
	httperr.CodeAppointmentNotConfirmed:   "The appointment is not confirmed.",
	httperr.CodeAttendanceRecorded:        "Attendance was already recorded for this appointment.",
	httperr.CodeTokenNotFound:             "The confirmation link is invalid or has expired.",
	httperr.CodeCancellationWindowExpired: "The cancellation window has passed.",
	httperr.CodeForbidden:                 "Not allowed.",
	httperr.CodeAppointmentNotFound:       "Appointment not found.",
	httperr.CodeBlockNotFound:             "No manual block at this slot.",
	httperr.CodeUserNotFound:              "User not found.",
}

// respondError maps usecase errors to responses. Anything that is not a
// business error is attached to the context for the request log and
// answered with 500.
func respondError(c *gin.Context, err error) {
	if code, ok := httperr.BusinessCode(err); ok {
		status, known := businessStatus[code]
		if !known {
			status = http.StatusBadRequest
		}
		httperr.Write(c, status, code, businessMessage[code])
		return
	}

	_ = c.Error(err)
	httperr.Internal(c, "internal_error", "Unexpected error.")
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return 0, false
	}
	return uint(id), true
}
