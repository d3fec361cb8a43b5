package notification

import (
	"context"

	"reservo/models"

	"go.uber.org/zap"
)

// LogNotificationService only records confirmations in the log.
type LogNotificationService struct {
	logger *zap.Logger
}

func NewLogNotificationService(logger *zap.Logger) *LogNotificationService {
	return &LogNotificationService{logger: logger}
}

func (s *LogNotificationService) BookingConfirmed(ctx context.Context, record models.BookingRecord) error {
	s.logger.Info("booking confirmed",
		zap.String("bookingID", record.ID),
		zap.String("date", record.Date),
		zap.String("time", record.Time),
		zap.Int("size", record.Size),
		zap.String("name", record.Name),
	)
	return nil
}
