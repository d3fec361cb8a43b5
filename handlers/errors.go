package handlers

import (
	"errors"
	"net/http"

	"reservo/services/booking"
	"reservo/utils"

	"github.com/gin-gonic/gin"
)

// writeServiceError maps booking errors onto status codes.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrInvalidDate),
		errors.Is(err, booking.ErrInvalidTime),
		errors.Is(err, booking.ErrInvalidPartySize),
		errors.Is(err, booking.ErrInvalidConfig):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
	case errors.Is(err, booking.ErrSlotUnavailable):
		utils.JSONError(c, http.StatusConflict, "Slot unavailable", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}
