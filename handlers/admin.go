// File: reservo/handlers/admin.go
package handlers

import (
	"net/http"

	"reservo/models"
	"reservo/services/booking"
	"reservo/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler exposes the document and the administrative overrides.
type AdminHandler struct {
	Service booking.ReservationService
}

func NewAdminHandler(svc booking.ReservationService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

// GetDataHandler returns the whole document.
func (ah *AdminHandler) GetDataHandler(c *gin.Context) {
	doc, err := ah.Service.Document(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// UpdateConfigHandler replaces opening hours, default capacity and messages.
func (ah *AdminHandler) UpdateConfigHandler(c *gin.Context) {
	var update models.GlobalConfigUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	if err := ah.Service.UpdateConfig(c.Request.Context(), update); err != nil {
		writeServiceError(c, err)
		return
	}
	getLogger(c).Info("configuration updated",
		zap.Int("openingHour", update.OpeningHour),
		zap.Int("closingHour", update.ClosingHour),
		zap.Int("defaultCapacity", update.DefaultCapacity),
	)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DayDetailsHandler returns the per-hour breakdown of a day.
func (ah *AdminHandler) DayDetailsHandler(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "date query parameter is required")
		return
	}
	details, err := ah.Service.DayDetails(c.Request.Context(), date)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// UpdateSlotHandler force-sets the booked count and capacity of a slot.
func (ah *AdminHandler) UpdateSlotHandler(c *gin.Context) {
	var update models.AdminSlotUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	if err := ah.Service.OverrideSlot(c.Request.Context(), update); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
