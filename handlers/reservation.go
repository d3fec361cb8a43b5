package handlers

import (
	"net/http"

	"reservo/models"
	"reservo/services/booking"
	"reservo/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReservationHandler serves the public slot and reservation endpoints.
type ReservationHandler struct {
	Service booking.ReservationService
}

func NewReservationHandler(svc booking.ReservationService) *ReservationHandler {
	return &ReservationHandler{Service: svc}
}

// GetSlots handles GET /api/slots?date=YYYY-MM-DD.
func (h *ReservationHandler) GetSlots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "date query parameter is required")
		return
	}
	slots, err := h.Service.Slots(c.Request.Context(), date)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

// Reserve handles POST /api/reserve.
func (h *ReservationHandler) Reserve(c *gin.Context) {
	var req models.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	resp, err := h.Service.Reserve(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	getLogger(c).Info("reservation processed",
		zap.String("date", req.Date),
		zap.String("time", req.Time),
		zap.Int("partySize", req.PartySize),
		zap.String("action", string(resp.Action)),
	)
	c.JSON(http.StatusOK, resp)
}
