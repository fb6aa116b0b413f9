package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/export"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	availability *ucAppointment.GetAvailability
	book         *ucAppointment.BookAppointment
	confirm      *ucAppointment.ConfirmAppointment
	cancel       *ucAppointment.CancelAppointment
	attendance   *ucAppointment.RecordAttendance
	listByDate   *ucAppointment.ListAppointmentsByDate
}

func NewAppointmentHandler(
	availability *ucAppointment.GetAvailability,
	book *ucAppointment.BookAppointment,
	confirm *ucAppointment.ConfirmAppointment,
	cancel *ucAppointment.CancelAppointment,
	attendance *ucAppointment.RecordAttendance,
	listByDate *ucAppointment.ListAppointmentsByDate,
) *AppointmentHandler {
	return &AppointmentHandler{
		availability: availability,
		book:         book,
		confirm:      confirm,
		cancel:       cancel,
		attendance:   attendance,
		listByDate:   listByDate,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookRequest struct {
	Date     string `json:"date" binding:"required"`
	TimeSlot string `json:"time_slot" binding:"required"`
	Type     string `json:"type" binding:"required"`
}

type AttendanceRequest struct {
	Attended *bool `json:"attended" binding:"required"`
}

// ======================================================
// CUSTOMER
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	out, err := h.availability.Execute(c.Request.Context(), ucAppointment.GetAvailabilityInput{
		Date:     c.Param("date"),
		ViewerID: middleware.UserID(c),
		Admin:    middleware.IsAdmin(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, out)
}

func (h *AppointmentHandler) Book(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), ucAppointment.BookInput{
		UserID:   middleware.UserID(c),
		Date:     req.Date,
		TimeSlot: req.TimeSlot,
		Type:     req.Type,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.Accepted(c, gin.H{
		"status":      "confirmation_sent",
		"appointment": dto.FromAppointment(*ap, false),
	})
}

// Confirm is reached from the emailed link, without a session.
func (h *AppointmentHandler) Confirm(c *gin.Context) {
	ap, err := h.confirm.Execute(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"status":      "confirmed",
		"appointment": dto.FromAppointment(*ap, false),
	})
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.doCancel(c, false)
}

// ======================================================
// ADMIN
// ======================================================

func (h *AppointmentHandler) AdminCancel(c *gin.Context) {
	h.doCancel(c, true)
}

func (h *AppointmentHandler) doCancel(c *gin.Context, admin bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	err := h.cancel.Execute(c.Request.Context(), ucAppointment.CancelInput{
		AppointmentID: id,
		ActorID:       middleware.UserID(c),
		Admin:         admin,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"status": "cancelled", "id": id})
}

func (h *AppointmentHandler) RecordAttendance(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req AttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Field attended is required.")
		return
	}

	out, err := h.attendance.Execute(c.Request.Context(), ucAppointment.RecordAttendanceInput{
		AppointmentID: id,
		Attended:      *req.Attended,
		ActorID:       middleware.UserID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, out)
}

func (h *AppointmentHandler) Export(c *gin.Context) {
	date := c.Param("date")

	apps, err := h.listByDate.Execute(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteDay(&buf, date, apps); err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.FileName(date)+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
