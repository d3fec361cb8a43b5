package models

// TimestampLayout is the created_at format kept compatible with existing data files.
const TimestampLayout = "2006-01-02 15:04:05"

// BookingRecord is an immutable audit entry for a committed reservation.
type BookingRecord struct {
	ID        string `bson:"id,omitempty" json:"id,omitempty"`
	Date      string `bson:"date" json:"date"` // "YYYY-MM-DD"
	Time      string `bson:"time" json:"time"` // "HH:00"
	Name      string `bson:"name" json:"name"`
	Email     string `bson:"email" json:"email"`
	Size      int    `bson:"size" json:"size"`
	CreatedAt string `bson:"created_at" json:"created_at"`
}

// ReservationAction is the outcome of a structured reservation request.
type ReservationAction string

const (
	ActionAccept      ReservationAction = "ACCEPT"
	ActionAlternative ReservationAction = "ALTERNATIVE"
	ActionReject      ReservationAction = "REJECT"
)

// ReservationRequest is the payload of POST /api/reserve.
type ReservationRequest struct {
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	FirstName string `json:"firstname" binding:"required"`
	LastName  string `json:"lastname"`
	Email     string `json:"email" binding:"required,email"`
	PartySize int    `json:"party_size" binding:"required,min=1"`
}

// ReservationResponse tells the client whether the slot was taken or what to try instead.
type ReservationResponse struct {
	Action  ReservationAction `json:"action"`
	Message string            `json:"message"`
	Slot    string            `json:"slot,omitempty"`
}
