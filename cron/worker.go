package cron

import (
	"context"
	"fmt"

	"reservo/config"
	"reservo/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RedisQueueOpt is the asynq connection for the reminder queue.
func RedisQueueOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitReminderWorker starts the reminder worker in the background. The
// returned server must be shut down on exit.
func InitReminderWorker(logger *zap.Logger) (*asynq.Server, error) {
	srv := asynq.NewServer(
		RedisQueueOpt(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(logger))

	if err := srv.Start(mux); err != nil {
		return nil, fmt.Errorf("start reminder worker: %w", err)
	}
	logger.Info("reminder worker started", zap.String("redis", config.AppConfig.RedisAddr))
	return srv, nil
}

func handleReminderTask(logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseReminderPayload(task)
		if err != nil {
			logger.Error("invalid reminder payload", zap.Error(err))
			return fmt.Errorf("decode reminder: %v: %w", err, asynq.SkipRetry)
		}
		logger.Info("booking reminder due",
			zap.String("bookingID", p.BookingID),
			zap.String("name", p.Name),
			zap.String("email", p.Email),
			zap.String("date", p.Date),
			zap.String("time", p.Time),
			zap.Int("size", p.Size),
		)
		return nil
	}
}
