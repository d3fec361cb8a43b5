package conversation

import (
	"context"
	"errors"
	"testing"
	"time"

	documentRepo "reservo/database/repository/document"
	sessionRepo "reservo/database/repository/session"
	"reservo/models"
	"reservo/services/booking"

	"go.uber.org/zap"
)

type harness struct {
	store    *documentRepo.MemoryDocumentStore
	sessions *sessionRepo.MemorySessionRepo
	svc      *booking.DefaultReservationService
	ctrl     *Controller
}

func newHarness(seed *models.Document) *harness {
	store := documentRepo.NewMemoryDocumentStore(seed)
	svc := booking.NewReservationService(store, nil, zap.NewNop())
	sessions := sessionRepo.NewMemorySessionRepo()
	ctrl := NewController(svc, sessions, zap.NewNop())
	ctrl.SetClock(func() time.Time { return fixedNow })
	return &harness{store: store, sessions: sessions, svc: svc, ctrl: ctrl}
}

func (h *harness) session(t *testing.T, clientID string) *models.ChatSession {
	t.Helper()
	s, err := h.sessions.Get(context.Background(), clientID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	return s
}

func (h *harness) load(t *testing.T, date, slot string) int {
	t.Helper()
	doc, err := h.store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return doc.Reservations[date][slot]
}

func TestControllerBooksThroughChat(t *testing.T) {
	h := newHarness(nil)
	ctx := context.Background()

	h.ctrl.Handle(ctx, "c1", "le 5 à 20h 4 personnes")
	if s := h.session(t, "c1"); s.State != models.StateWaitingConfirmation {
		t.Fatalf("state = %s", s.State)
	}
	h.ctrl.Handle(ctx, "c1", "oui")
	if s := h.session(t, "c1"); s.State != models.StateWaitingName {
		t.Fatalf("state = %s", s.State)
	}
	h.ctrl.Handle(ctx, "c1", "Dupont")
	if s := h.session(t, "c1"); s.State != models.StateWaitingEmail {
		t.Fatalf("state = %s", s.State)
	}
	if reply := h.ctrl.Handle(ctx, "c1", "bad-email"); reply != replyInvalidEmail {
		t.Fatalf("reply = %q", reply)
	}
	if s := h.session(t, "c1"); s.State != models.StateWaitingEmail {
		t.Fatalf("state = %s", s.State)
	}

	reply := h.ctrl.Handle(ctx, "c1", "dupont@example.com")
	if reply != replyBooked("Dupont", "dupont@example.com", fifth, "20:00") {
		t.Fatalf("reply = %q", reply)
	}
	if got := h.load(t, fifth, "20:00"); got != 4 {
		t.Fatalf("load = %d, want 4", got)
	}
	if h.sessions.Len() != 0 {
		t.Fatal("session should be destroyed after booking")
	}
}

func TestControllerFullDay(t *testing.T) {
	doc := models.DefaultDocument()
	doc.Reservations[fifth] = fullDay()
	h := newHarness(doc)

	reply := h.ctrl.Handle(context.Background(), "c1", "le 5 à 20h 2 personnes")
	if reply != replyDayFull(fifth) {
		t.Fatalf("reply = %q", reply)
	}
	if s := h.session(t, "c1"); s.State != models.StateWaitingNewDate {
		t.Fatalf("state = %s", s.State)
	}
}

func TestControllerSlotTakenBeforeConfirmation(t *testing.T) {
	h := newHarness(nil)
	ctx := context.Background()

	for _, msg := range []string{"le 5 à 20h 4 personnes", "oui", "Dupont"} {
		h.ctrl.Handle(ctx, "c1", msg)
	}

	// Another client takes a seat at the offered hour.
	_, err := h.svc.Reserve(ctx, models.ReservationRequest{
		Date: fifth, Time: "20:00", FirstName: "Marie", Email: "marie@example.com", PartySize: 1,
	})
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}

	reply := h.ctrl.Handle(ctx, "c1", "dupont@example.com")
	if reply != replySlotTaken(fifth, "20:00") {
		t.Fatalf("reply = %q", reply)
	}
	if got := h.load(t, fifth, "20:00"); got != 1 {
		t.Fatalf("load = %d, want 1", got)
	}
	s := h.session(t, "c1")
	if s.State != models.StateInitial || s.MemoryDate != fifth || s.Draft.Size != 4 {
		t.Fatalf("session = %+v", s)
	}

	// "oui" now proposes the best remaining slot for the same party.
	h.ctrl.Handle(ctx, "c1", "oui")
	if s := h.session(t, "c1"); s.State != models.StateWaitingConfirmation || s.Draft.Size != 4 || s.Draft.Time == "20:00" {
		t.Fatalf("session = %+v", s)
	}
}

type brokenBookings struct {
	panicOnSnapshot bool
	confirmErr      error
	alloc           *booking.Allocator
}

func (b *brokenBookings) Snapshot(ctx context.Context) (*booking.Allocator, error) {
	if b.panicOnSnapshot {
		panic("boom")
	}
	return b.alloc, nil
}

func (b *brokenBookings) Confirm(ctx context.Context, draft models.BookingDraft, email string) (*models.BookingRecord, error) {
	return nil, b.confirmErr
}

func TestControllerFaultsLeaveSessionUnchanged(t *testing.T) {
	sessions := sessionRepo.NewMemorySessionRepo()
	ctx := context.Background()
	waiting := &models.ChatSession{
		ClientID: "c1",
		State:    models.StateWaitingEmail,
		Draft:    models.BookingDraft{Date: fifth, Time: "20:00", Size: 2, Name: "Dupont"},
	}
	if err := sessions.Put(ctx, waiting); err != nil {
		t.Fatalf("put: %v", err)
	}

	broken := &brokenBookings{confirmErr: errors.New("disk full"), alloc: allocatorWith(nil)}
	ctrl := NewController(broken, sessions, zap.NewNop())

	if reply := ctrl.Handle(ctx, "c1", "dupont@example.com"); reply != replyTechnicalFail {
		t.Fatalf("reply = %q", reply)
	}
	if s, _ := sessions.Get(ctx, "c1"); *s != *waiting {
		t.Fatalf("session changed after a failed commit: %+v", s)
	}

	broken.panicOnSnapshot = true
	if reply := ctrl.Handle(ctx, "c1", "dupont@example.com"); reply != replyTechnicalFail {
		t.Fatalf("reply = %q", reply)
	}
	if s, _ := sessions.Get(ctx, "c1"); *s != *waiting {
		t.Fatalf("session changed after a panic: %+v", s)
	}

	// The lock for c1 was released despite the panic.
	broken.panicOnSnapshot = false
	broken.confirmErr = nil
	done := make(chan struct{})
	go func() {
		ctrl.Handle(ctx, "c1", "reset")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("client lock was not released")
	}
	if sessions.Len() != 0 {
		t.Fatal("reset should drop the session")
	}
}
