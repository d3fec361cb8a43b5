package models

// ReminderPayload is the body of a queued booking reminder.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Size      int    `json:"size"`
	FireDate  string `json:"fireDate"` // RFC3339
}
