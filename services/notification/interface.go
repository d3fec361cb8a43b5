package notification

import (
	"context"

	"reservo/models"
)

// NotificationService is told about every committed booking.
type NotificationService interface {
	BookingConfirmed(ctx context.Context, record models.BookingRecord) error
}
