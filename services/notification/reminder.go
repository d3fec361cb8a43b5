package notification

import (
	"context"
	"fmt"
	"time"

	"reservo/models"
	"reservo/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Enqueuer is the part of *asynq.Client the reminder service needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ReminderNotificationService logs each confirmation and schedules a
// reminder to fire lead before the booked hour.
type ReminderNotificationService struct {
	queue    Enqueuer
	lead     time.Duration
	location *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

func NewReminderNotificationService(queue Enqueuer, lead time.Duration, logger *zap.Logger) *ReminderNotificationService {
	return &ReminderNotificationService{
		queue:    queue,
		lead:     lead,
		location: time.Local,
		now:      time.Now,
		logger:   logger,
	}
}

func (s *ReminderNotificationService) BookingConfirmed(ctx context.Context, record models.BookingRecord) error {
	s.logger.Info("booking confirmed",
		zap.String("bookingID", record.ID),
		zap.String("date", record.Date),
		zap.String("time", record.Time),
		zap.Int("size", record.Size),
	)

	slotAt, err := time.ParseInLocation("2006-01-02 15:04", record.Date+" "+record.Time, s.location)
	if err != nil {
		return fmt.Errorf("parse booking slot: %w", err)
	}
	fireAt := slotAt.Add(-s.lead)
	if !fireAt.After(s.now()) {
		s.logger.Debug("reminder skipped, slot too close", zap.String("bookingID", record.ID))
		return nil
	}

	task, opts, err := tasks.NewReminderTask(models.ReminderPayload{
		BookingID: record.ID,
		Name:      record.Name,
		Email:     record.Email,
		Date:      record.Date,
		Time:      record.Time,
		Size:      record.Size,
		FireDate:  fireAt.Format(time.RFC3339),
	}, fireAt)
	if err != nil {
		return fmt.Errorf("build reminder task: %w", err)
	}
	info, err := s.queue.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("enqueue reminder: %w", err)
	}
	s.logger.Info("reminder scheduled",
		zap.String("bookingID", record.ID),
		zap.String("taskID", info.ID),
		zap.Time("fireAt", fireAt),
	)
	return nil
}
