package conversation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	sessionRepo "reservo/database/repository/session"
	"reservo/models"
	"reservo/services/booking"

	"go.uber.org/zap"
)

// BookingService is what the controller needs from the reservation service.
type BookingService interface {
	Snapshot(ctx context.Context) (*booking.Allocator, error)
	Confirm(ctx context.Context, draft models.BookingDraft, email string) (*models.BookingRecord, error)
}

// Controller runs chat messages through the state machine, one message at
// a time per client.
type Controller struct {
	bookings BookingService
	sessions sessionRepo.SessionRepository
	logger   *zap.Logger
	now      func() time.Time
	locks    keyedMutex
}

func NewController(bookings BookingService, sessions sessionRepo.SessionRepository, logger *zap.Logger) *Controller {
	return &Controller{
		bookings: bookings,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
		locks:    keyedMutex{locks: make(map[string]*keyLock)},
	}
}

// SetClock replaces the wall clock used to resolve relative dates.
func (c *Controller) SetClock(now func() time.Time) {
	c.now = now
}

// Handle answers one message. Any fault is logged and answered with a
// generic message, leaving the stored session as it was.
func (c *Controller) Handle(ctx context.Context, clientID, text string) (reply string) {
	unlock := c.locks.lock(clientID)
	defer unlock()

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("chat handler panicked",
				zap.String("clientID", clientID),
				zap.Any("panic", r),
			)
			reply = replyTechnicalFail
		}
	}()

	reply, err := c.handle(ctx, clientID, text)
	if err != nil {
		c.logger.Error("chat message failed", zap.String("clientID", clientID), zap.Error(err))
		return replyTechnicalFail
	}
	return reply
}

func (c *Controller) handle(ctx context.Context, clientID, text string) (string, error) {
	session, err := c.sessions.Get(ctx, clientID)
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	session.ClientID = clientID

	alloc, err := c.bookings.Snapshot(ctx)
	if err != nil {
		return "", fmt.Errorf("snapshot availability: %w", err)
	}

	out := Transition(*session, text, c.now(), alloc)

	if out.Commit != nil {
		record, err := c.bookings.Confirm(ctx, out.Commit.Draft, out.Commit.Email)
		if errors.Is(err, booking.ErrSlotUnavailable) {
			return c.slotTaken(ctx, session, out.Commit.Draft)
		}
		if err != nil {
			return "", fmt.Errorf("confirm booking: %w", err)
		}
		c.logger.Info("chat booking committed",
			zap.String("clientID", clientID),
			zap.String("bookingID", record.ID),
			zap.String("date", record.Date),
			zap.String("time", record.Time),
			zap.Int("size", record.Size),
		)
	}

	if out.Destroy {
		if err := c.sessions.Delete(ctx, clientID); err != nil {
			if out.Commit != nil {
				// The booking is durable; a stale session only costs a re-prompt.
				c.logger.Warn("failed to drop session after booking", zap.String("clientID", clientID), zap.Error(err))
				return out.Reply, nil
			}
			return "", fmt.Errorf("delete session: %w", err)
		}
		return out.Reply, nil
	}

	if err := c.sessions.Put(ctx, &out.Session); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return out.Reply, nil
}

// slotTaken restarts negotiation for the same day and party after the
// offered slot filled up between proposal and confirmation.
func (c *Controller) slotTaken(ctx context.Context, session *models.ChatSession, draft models.BookingDraft) (string, error) {
	c.logger.Info("offered slot taken before confirmation",
		zap.String("clientID", session.ClientID),
		zap.String("date", draft.Date),
		zap.String("time", draft.Time),
	)
	next := models.NewChatSession(session.ClientID)
	next.MemoryDate = draft.Date
	next.Draft = models.BookingDraft{Date: draft.Date, Size: draft.Size}
	if err := c.sessions.Put(ctx, next); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return replySlotTaken(draft.Date, draft.Time), nil
}

type keyLock struct {
	sync.Mutex
	refs int
}

// keyedMutex hands out one mutex per key and forgets keys nobody holds.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
