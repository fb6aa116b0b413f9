package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/domain/user"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
)

type MeHandler struct {
	users user.Repository
}

func NewMeHandler(users user.Repository) *MeHandler {
	return &MeHandler{users: users}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	u, err := h.users.GetByID(c.Request.Context(), middleware.UserID(c))
	if errors.Is(err, user.ErrNotFound) {
		httperr.NotFound(c, httperr.CodeUserNotFound, "User not found.")
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"user": u})
}
