package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucUser "github.com/BruksfildServices01/barber-booking/internal/usecase/user"
)

type UserHandler struct {
	updateAttendance *ucUser.UpdateAttendance
}

func NewUserHandler(updateAttendance *ucUser.UpdateAttendance) *UserHandler {
	return &UserHandler{updateAttendance: updateAttendance}
}

type UpdateAttendanceRequest struct {
	Attendance *int `json:"attendance" binding:"required"`
}

func (h *UserHandler) UpdateAttendance(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Field attendance is required.")
		return
	}

	u, err := h.updateAttendance.Execute(c.Request.Context(), ucUser.UpdateAttendanceInput{
		UserID:     id,
		Attendance: *req.Attendance,
		ActorID:    middleware.UserID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, u)
}
