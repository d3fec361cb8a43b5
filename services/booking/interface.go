package booking

import (
	"context"
	"sync"
	"time"

	documentRepo "reservo/database/repository/document"
	"reservo/models"
	"reservo/services/notification"

	"go.uber.org/zap"
)

// ReservationService owns every read and write of the agent document.
type ReservationService interface {
	Snapshot(ctx context.Context) (*Allocator, error)
	Slots(ctx context.Context, date string) ([]models.SlotStatus, error)
	Reserve(ctx context.Context, req models.ReservationRequest) (*models.ReservationResponse, error)
	Confirm(ctx context.Context, draft models.BookingDraft, email string) (*models.BookingRecord, error)
	Document(ctx context.Context) (*models.Document, error)
	UpdateConfig(ctx context.Context, update models.GlobalConfigUpdate) error
	DayDetails(ctx context.Context, date string) ([]models.DaySlotDetail, error)
	OverrideSlot(ctx context.Context, update models.AdminSlotUpdate) error
}

// DefaultReservationService serializes load, mutate and save behind one mutex.
type DefaultReservationService struct {
	Store           documentRepo.DocumentStore
	NotificationSvc notification.NotificationService
	Logger          *zap.Logger
	Now             func() time.Time

	mu sync.Mutex
}

func NewReservationService(store documentRepo.DocumentStore, notifSvc notification.NotificationService, logger *zap.Logger) *DefaultReservationService {
	return &DefaultReservationService{
		Store:           store,
		NotificationSvc: notifSvc,
		Logger:          logger,
		Now:             time.Now,
	}
}
