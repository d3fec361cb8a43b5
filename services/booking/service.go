package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	documentRepo "reservo/database/repository/document"
	"reservo/models"
	"reservo/services/parser"

	"go.uber.org/zap"
)

const maxSaveAttempts = 3

// update runs fn on a freshly loaded document and saves it when fn reports
// a change. A version conflict reruns the whole unit of work.
func (s *DefaultReservationService) update(ctx context.Context, fn func(doc *models.Document) (bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for attempt := 1; ; attempt++ {
		doc, err := s.Store.Load(ctx)
		if err != nil {
			return fmt.Errorf("load document: %w", err)
		}
		changed, err := fn(doc)
		if err != nil || !changed {
			return err
		}
		err = s.Store.Save(ctx, doc)
		if errors.Is(err, documentRepo.ErrVersionConflict) && attempt < maxSaveAttempts {
			s.Logger.Warn("document changed concurrently, retrying", zap.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return fmt.Errorf("save document: %w", err)
		}
		return nil
	}
}

func (s *DefaultReservationService) load(ctx context.Context) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.Store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	return doc, nil
}

// Snapshot returns an allocator over the current document. It does not see
// later commits.
func (s *DefaultReservationService) Snapshot(ctx context.Context) (*Allocator, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return NewAllocator(doc), nil
}

func (s *DefaultReservationService) Document(ctx context.Context) (*models.Document, error) {
	return s.load(ctx)
}

func (s *DefaultReservationService) Slots(ctx context.Context, date string) ([]models.SlotStatus, error) {
	if !parser.ValidDate(date) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	alloc, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return alloc.DaySlots(date), nil
}

func (s *DefaultReservationService) DayDetails(ctx context.Context, date string) ([]models.DaySlotDetail, error) {
	if !parser.ValidDate(date) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	alloc, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return alloc.DayDetails(date), nil
}

// Reserve books the requested slot when it fits and otherwise proposes the
// best alternative of the day without booking it.
func (s *DefaultReservationService) Reserve(ctx context.Context, req models.ReservationRequest) (*models.ReservationResponse, error) {
	slot, err := normalizeSlot(req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	if req.PartySize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPartySize, req.PartySize)
	}
	name := strings.TrimSpace(req.FirstName + " " + req.LastName)

	var (
		resp   *models.ReservationResponse
		record *models.BookingRecord
	)
	err = s.update(ctx, func(doc *models.Document) (bool, error) {
		alloc := NewAllocator(doc)
		record = nil
		if alloc.Bookable(req.Date, slot, req.PartySize) {
			rec := Commit(doc, req.Date, slot, req.PartySize, name, req.Email, s.Now())
			record = &rec
			resp = &models.ReservationResponse{
				Action:  models.ActionAccept,
				Message: render(doc.Messages.Success, slot),
				Slot:    slot,
			}
			return true, nil
		}

		best := alloc.FindBestSlot(req.Date, &slot, &req.PartySize)
		if best == nil {
			resp = &models.ReservationResponse{
				Action:  models.ActionReject,
				Message: render(doc.Messages.Failure, ""),
			}
			return false, nil
		}
		resp = &models.ReservationResponse{
			Action:  models.ActionAlternative,
			Message: render(doc.Messages.Alternative, best.Time),
			Slot:    best.Time,
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	if record != nil {
		s.notify(ctx, *record)
	}
	return resp, nil
}

// Confirm commits a conversation draft after checking, under the document
// lock, that the offered slot still fits.
func (s *DefaultReservationService) Confirm(ctx context.Context, draft models.BookingDraft, email string) (*models.BookingRecord, error) {
	if draft.Date == "" || draft.Time == "" || draft.Size < 1 {
		return nil, ErrIncompleteDraft
	}

	var record models.BookingRecord
	err := s.update(ctx, func(doc *models.Document) (bool, error) {
		if !NewAllocator(doc).Bookable(draft.Date, draft.Time, draft.Size) {
			return false, ErrSlotUnavailable
		}
		record = Commit(doc, draft.Date, draft.Time, draft.Size, draft.Name, email, s.Now())
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, record)
	return &record, nil
}

// UpdateConfig replaces the opening window, default capacity and the
// message templates present in the update.
func (s *DefaultReservationService) UpdateConfig(ctx context.Context, update models.GlobalConfigUpdate) error {
	if update.OpeningHour < 0 || update.OpeningHour >= update.ClosingHour || update.ClosingHour > 24 {
		return fmt.Errorf("%w: opening hours must satisfy 0 <= opening < closing <= 24", ErrInvalidConfig)
	}
	if update.DefaultCapacity < 0 {
		return fmt.Errorf("%w: default capacity must not be negative", ErrInvalidConfig)
	}

	return s.update(ctx, func(doc *models.Document) (bool, error) {
		doc.Config.OpeningHour = update.OpeningHour
		doc.Config.ClosingHour = update.ClosingHour
		doc.Config.DefaultCapacity = update.DefaultCapacity
		for key, text := range update.Messages {
			switch key {
			case "success":
				doc.Messages.Success = text
			case "alternative":
				doc.Messages.Alternative = text
			case "failure":
				doc.Messages.Failure = text
			}
		}
		return true, nil
	})
}

// OverrideSlot force-sets the booked count and the capacity of one slot.
func (s *DefaultReservationService) OverrideSlot(ctx context.Context, update models.AdminSlotUpdate) error {
	slot, err := normalizeSlot(update.Date, update.Time)
	if err != nil {
		return err
	}
	if update.Booked < 0 || update.Capacity < 0 {
		return fmt.Errorf("%w: booked and capacity must not be negative", ErrInvalidConfig)
	}

	err = s.update(ctx, func(doc *models.Document) (bool, error) {
		if doc.Overrides[update.Date] == nil {
			doc.Overrides[update.Date] = map[string]int{}
		}
		doc.Overrides[update.Date][slot] = update.Capacity
		if doc.Reservations[update.Date] == nil {
			doc.Reservations[update.Date] = map[string]int{}
		}
		doc.Reservations[update.Date][slot] = update.Booked
		return true, nil
	})
	if err != nil {
		return err
	}
	s.Logger.Info("slot overridden",
		zap.String("date", update.Date),
		zap.String("time", slot),
		zap.Int("booked", update.Booked),
		zap.Int("capacity", update.Capacity),
	)
	return nil
}

// notify never fails the booking: the commit is already durable.
func (s *DefaultReservationService) notify(ctx context.Context, record models.BookingRecord) {
	if s.NotificationSvc == nil {
		return
	}
	if err := s.NotificationSvc.BookingConfirmed(ctx, record); err != nil {
		s.Logger.Error("booking notification failed", zap.String("bookingID", record.ID), zap.Error(err))
	}
}

func normalizeSlot(date, t string) (string, error) {
	if !parser.ValidDate(date) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	h, ok := parser.ParseHour(t)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidTime, t)
	}
	return parser.FormatHour(h), nil
}

// render fills the optional {slot} placeholder of a message template.
func render(template, slot string) string {
	return strings.ReplaceAll(template, "{slot}", slot)
}
