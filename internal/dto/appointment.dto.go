package dto

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AppointmentListDTO struct {
	ID                 uint      `json:"id"`
	Type               string    `json:"type"`
	Date               string    `json:"date"`
	TimeSlot           string    `json:"time_slot"`
	Status             string    `json:"status"`
	BookedAt           time.Time `json:"booked_at"`
	UserID             uint      `json:"user_id"`
	CustomerName       string    `json:"customer_name,omitempty"`
	CustomerEmail      string    `json:"customer_email,omitempty"`
	AttendanceRecorded bool      `json:"attendance_recorded"`
}

// FromAppointment maps an appointment. Customer fields are filled only
// when withCustomer is set and the user was preloaded.
func FromAppointment(ap models.Appointment, withCustomer bool) AppointmentListDTO {
	out := AppointmentListDTO{
		ID:                 ap.ID,
		Type:               ap.Type,
		Date:               ap.Date,
		TimeSlot:           ap.TimeSlot,
		Status:             ap.Status,
		BookedAt:           ap.BookedAt,
		UserID:             ap.UserID,
		AttendanceRecorded: ap.AttendanceRecorded,
	}
	if withCustomer && ap.User != nil {
		out.CustomerName = ap.User.FullName()
		out.CustomerEmail = ap.User.Email
	}
	return out
}

// DaySchedule is the availability view of one date.
type DaySchedule struct {
	Date         string               `json:"date"`
	Slots        []string             `json:"slots"`
	Appointments []AppointmentListDTO `json:"appointments"`
}
