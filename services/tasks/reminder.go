package tasks

import (
	"encoding/json"
	"time"

	"reservo/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// NewReminderTask builds a booking reminder processed at fireAt; the booking
// id doubles as task id so a booking is never reminded twice.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt), asynq.MaxRetry(3)}
	if payload.BookingID != "" {
		opts = append(opts, asynq.TaskID("reminder:"+payload.BookingID))
	}
	return task, opts, nil
}

// ParseReminderPayload decodes the body of a reminder task.
func ParseReminderPayload(task *asynq.Task) (models.ReminderPayload, error) {
	var p models.ReminderPayload
	err := json.Unmarshal(task.Payload(), &p)
	return p, err
}
