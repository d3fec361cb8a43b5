package models

// ChatState tags where a conversation currently stands.
type ChatState string

const (
	StateInitial             ChatState = "INITIAL"
	StateWaitingSize         ChatState = "WAITING_SIZE"
	StateWaitingNewSize      ChatState = "WAITING_NEW_SIZE"
	StateWaitingNewDate      ChatState = "WAITING_NEW_DATE"
	StateWaitingConfirmation ChatState = "WAITING_CONFIRMATION"
	StateWaitingMoreOptions  ChatState = "WAITING_MORE_OPTIONS"
	StateWaitingName         ChatState = "WAITING_NAME"
	StateWaitingEmail        ChatState = "WAITING_EMAIL"
)

// BookingDraft accumulates the unconfirmed booking attributes of a conversation.
type BookingDraft struct {
	Date          string `json:"date,omitempty"`
	Time          string `json:"time,omitempty"`          // offered slot
	RequestedTime string `json:"requestedTime,omitempty"` // what the client asked for, if anything
	Size          int    `json:"size,omitempty"`
	Name          string `json:"name,omitempty"`
}

// ChatSession holds context between chat messages of one client.
type ChatSession struct {
	ClientID   string       `json:"clientId"`
	State      ChatState    `json:"state"`
	Draft      BookingDraft `json:"draft"`
	MemoryDate string       `json:"memoryDate,omitempty"`
}

// NewChatSession returns the session a client starts with on first contact.
func NewChatSession(clientID string) *ChatSession {
	return &ChatSession{ClientID: clientID, State: StateInitial}
}

// ChatMessage is the payload of POST /api/chat.
type ChatMessage struct {
	Message  string `json:"message"`
	ClientID string `json:"client_id" binding:"required"`
}

// ChatResponse carries the agent's reply.
type ChatResponse struct {
	Response string `json:"response"`
}
