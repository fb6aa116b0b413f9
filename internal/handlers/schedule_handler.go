package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucSchedule "github.com/BruksfildServices01/barber-booking/internal/usecase/schedule"
)

type ScheduleHandler struct {
	set     *ucSchedule.SetWorkingHours
	get     *ucSchedule.GetWorkingHours
	block   *ucSchedule.BlockSlot
	unblock *ucSchedule.UnblockSlot
}

func NewScheduleHandler(
	set *ucSchedule.SetWorkingHours,
	get *ucSchedule.GetWorkingHours,
	block *ucSchedule.BlockSlot,
	unblock *ucSchedule.UnblockSlot,
) *ScheduleHandler {
	return &ScheduleHandler{set: set, get: get, block: block, unblock: unblock}
}

type WorkingHoursRequest struct {
	Date       string `json:"date" binding:"required"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
}

type BlockSlotRequest struct {
	Date     string `json:"date" binding:"required"`
	TimeSlot string `json:"time_slot" binding:"required"`
}

func (h *ScheduleHandler) SetWorkingHours(c *gin.Context) {
	var req WorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	wh, err := h.set.Execute(c.Request.Context(), ucSchedule.SetWorkingHoursInput{
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		BreakStart: req.BreakStart,
		BreakEnd:   req.BreakEnd,
		ActorID:    middleware.UserID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, wh)
}

func (h *ScheduleHandler) GetWorkingHours(c *gin.Context) {
	wh, err := h.get.Execute(c.Request.Context(), c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, wh)
}

func (h *ScheduleHandler) BlockSlot(c *gin.Context) {
	var req BlockSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	wh, err := h.block.Execute(c.Request.Context(), ucSchedule.BlockSlotInput{
		Date:     req.Date,
		TimeSlot: req.TimeSlot,
		ActorID:  middleware.UserID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, wh)
}

func (h *ScheduleHandler) UnblockSlot(c *gin.Context) {
	var req BlockSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	wh, err := h.unblock.Execute(c.Request.Context(), ucSchedule.BlockSlotInput{
		Date:     req.Date,
		TimeSlot: req.TimeSlot,
		ActorID:  middleware.UserID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, wh)
}
