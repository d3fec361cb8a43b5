package handlers

import (
	"context"
	"net/http"

	"reservo/models"
	"reservo/utils"

	"github.com/gin-gonic/gin"
)

// ChatResponder answers one chat message for a client.
type ChatResponder interface {
	Handle(ctx context.Context, clientID, text string) string
}

type ChatHandler struct {
	Controller ChatResponder
}

func NewChatHandler(ctrl ChatResponder) *ChatHandler {
	return &ChatHandler{Controller: ctrl}
}

// Chat handles POST /api/chat. Conversation faults are answered in the
// reply text, so this only fails on a malformed payload.
func (h *ChatHandler) Chat(c *gin.Context) {
	var msg models.ChatMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	reply := h.Controller.Handle(c.Request.Context(), msg.ClientID, msg.Message)
	c.JSON(http.StatusOK, models.ChatResponse{Response: reply})
}
