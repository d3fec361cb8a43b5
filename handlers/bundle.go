// File: reservo/handlers/bundle.go
package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Public endpoints
	GetSlotsHandler gin.HandlerFunc
	ReserveHandler  gin.HandlerFunc
	ChatHandler     gin.HandlerFunc

	// Admin endpoints
	AdminDataHandler       gin.HandlerFunc
	AdminConfigHandler     gin.HandlerFunc
	AdminDayDetailsHandler gin.HandlerFunc
	AdminUpdateSlotHandler gin.HandlerFunc

	HealthHandler gin.HandlerFunc
}

// NewHandlerBundle wires the handlers of one reservation service and chat controller.
func NewHandlerBundle(reservations *ReservationHandler, chat *ChatHandler, admin *AdminHandler) *HandlerBundle {
	return &HandlerBundle{
		GetSlotsHandler:        reservations.GetSlots,
		ReserveHandler:         reservations.Reserve,
		ChatHandler:            chat.Chat,
		AdminDataHandler:       admin.GetDataHandler,
		AdminConfigHandler:     admin.UpdateConfigHandler,
		AdminDayDetailsHandler: admin.DayDetailsHandler,
		AdminUpdateSlotHandler: admin.UpdateSlotHandler,
		HealthHandler:          HealthHandler,
	}
}
