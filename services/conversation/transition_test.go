package conversation

import (
	"strings"
	"testing"
	"time"

	"reservo/models"
	"reservo/services/booking"
)

var fixedNow = time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC)

const fifth = "2024-06-05"

func allocatorWith(booked map[string]int) *booking.Allocator {
	doc := models.DefaultDocument()
	if booked != nil {
		doc.Reservations[fifth] = booked
	}
	return booking.NewAllocator(doc)
}

func fullDay() map[string]int {
	booked := map[string]int{}
	for _, t := range booking.NewAllocator(models.DefaultDocument()).Hours() {
		booked[t] = 4
	}
	return booked
}

func step(t *testing.T, s models.ChatSession, text string, avail Availability) Outcome {
	t.Helper()
	out := Transition(s, text, fixedNow, avail)
	if out.Reply == "" {
		t.Fatalf("empty reply for %q", text)
	}
	return out
}

func TestTransitionFullFlow(t *testing.T) {
	avail := allocatorWith(nil)
	s := *models.NewChatSession("c1")

	out := step(t, s, "le 5 à 20h 4 personnes", avail)
	if out.Session.State != models.StateWaitingConfirmation {
		t.Fatalf("state = %s", out.Session.State)
	}
	d := out.Session.Draft
	if d.Date != fifth || d.Time != "20:00" || d.Size != 4 || d.RequestedTime != "20:00" {
		t.Fatalf("draft = %+v", d)
	}
	if !strings.Contains(out.Reply, "Disponible") {
		t.Fatalf("reply = %q, want the exact-match template", out.Reply)
	}

	out = step(t, out.Session, "Oui !", avail)
	if out.Session.State != models.StateWaitingName {
		t.Fatalf("state = %s", out.Session.State)
	}
	out = step(t, out.Session, "Dupont", avail)
	if out.Session.State != models.StateWaitingEmail || out.Session.Draft.Name != "Dupont" {
		t.Fatalf("session = %+v", out.Session)
	}
	out = step(t, out.Session, "bad-email", avail)
	if out.Session.State != models.StateWaitingEmail || out.Commit != nil || out.Destroy {
		t.Fatalf("bad email must re-prompt, got %+v", out)
	}
	out = step(t, out.Session, "dupont@example.com", avail)
	if !out.Destroy || out.Commit == nil {
		t.Fatalf("expected commit and destroy, got %+v", out)
	}
	if out.Commit.Email != "dupont@example.com" || out.Commit.Draft.Time != "20:00" || out.Commit.Draft.Size != 4 {
		t.Fatalf("commit = %+v", out.Commit)
	}
}

func TestTransitionAsksForDateThenSize(t *testing.T) {
	avail := allocatorWith(nil)
	s := *models.NewChatSession("c1")

	out := step(t, s, "bonjour", avail)
	if out.Session.State != models.StateInitial || out.Reply != replyAskDate {
		t.Fatalf("got %+v", out)
	}

	out = step(t, out.Session, "le 5 à 21h", avail)
	if out.Session.State != models.StateWaitingSize || out.Session.Draft.RequestedTime != "21:00" {
		t.Fatalf("got %+v", out.Session)
	}

	out = step(t, out.Session, "on sera 3", avail)
	if out.Session.State != models.StateWaitingConfirmation {
		t.Fatalf("state = %s", out.Session.State)
	}
	if d := out.Session.Draft; d.Date != fifth || d.Time != "21:00" || d.Size != 3 {
		t.Fatalf("draft = %+v, want the hour asked before the size prompt", d)
	}
}

func TestTransitionProposalTemplates(t *testing.T) {
	s := *models.NewChatSession("c1")

	out := step(t, s, "le 5 pour 2 personnes", allocatorWith(nil))
	if out.Reply != replyProposal(fifth, "19:00") {
		t.Fatalf("reply = %q", out.Reply)
	}

	out = step(t, s, "le 5 à 19h 2 personnes", allocatorWith(map[string]int{"19:00": 4}))
	if out.Reply != replyOtherTime("19:00", fifth, "18:00") {
		t.Fatalf("reply = %q", out.Reply)
	}
}

func TestTransitionDeclineThenListAll(t *testing.T) {
	avail := allocatorWith(fullDayExcept("12:00", "20:00"))
	s := *models.NewChatSession("c1")

	out := step(t, s, "le 5 à 20h 2 personnes", avail)
	out = step(t, out.Session, "non", avail)
	if out.Session.State != models.StateWaitingMoreOptions {
		t.Fatalf("state = %s", out.Session.State)
	}
	out = step(t, out.Session, "montre", avail)
	if out.Session.State != models.StateInitial || out.Session.MemoryDate != fifth {
		t.Fatalf("session = %+v", out.Session)
	}
	if out.Reply != replySlotList(fifth, []string{"12:00", "20:00"}) {
		t.Fatalf("reply = %q", out.Reply)
	}

	// The remembered date and size carry the next choice.
	out = step(t, out.Session, "12h", avail)
	if d := out.Session.Draft; out.Session.State != models.StateWaitingConfirmation || d.Time != "12:00" || d.Size != 2 {
		t.Fatalf("session = %+v", out.Session)
	}
}

func TestTransitionConfirmationFallsThroughToPipeline(t *testing.T) {
	avail := allocatorWith(nil)
	s := *models.NewChatSession("c1")

	out := step(t, s, "le 5 à 20h 2 personnes", avail)
	out = step(t, out.Session, "plutôt 21h", avail)
	if d := out.Session.Draft; out.Session.State != models.StateWaitingConfirmation || d.Time != "21:00" || d.Size != 2 {
		t.Fatalf("session = %+v", out.Session)
	}
}

func TestTransitionFullDayAsksNewDate(t *testing.T) {
	avail := allocatorWith(fullDay())
	s := *models.NewChatSession("c1")

	out := step(t, s, "le 5 à 20h 2 personnes", avail)
	if out.Session.State != models.StateWaitingNewDate || out.Reply != replyDayFull(fifth) {
		t.Fatalf("got %+v", out)
	}

	declined := step(t, out.Session, "non", avail)
	if declined.Session.State != models.StateInitial || declined.Session.Draft != (models.BookingDraft{}) || declined.Session.MemoryDate != "" {
		t.Fatalf("decline must clear the draft, got %+v", declined.Session)
	}

	accepted := step(t, out.Session, "oui", avail)
	if accepted.Session.State != models.StateInitial || accepted.Session.MemoryDate != "" || accepted.Session.Draft.Date != "" {
		t.Fatalf("accept must forget the date, got %+v", accepted.Session)
	}
	if accepted.Session.Draft.Size != 2 {
		t.Fatalf("size should survive a date change, got %+v", accepted.Session.Draft)
	}

	// A new date goes straight through the pipeline.
	next := step(t, out.Session, "le 6", avail)
	if next.Session.State != models.StateWaitingConfirmation || next.Session.Draft.Date != "2024-06-06" {
		t.Fatalf("got %+v", next.Session)
	}
}

func TestTransitionPartyTooLarge(t *testing.T) {
	booked := fullDayExcept("13:00")
	booked["13:00"] = 1
	avail := allocatorWith(booked)
	s := *models.NewChatSession("c1")

	out := step(t, s, "le 5 à 20h 6 personnes", avail)
	if out.Session.State != models.StateWaitingNewSize || out.Reply != replyTooLarge(fifth, 6, 3, "13:00") {
		t.Fatalf("got %+v", out)
	}

	again := step(t, out.Session, "oui", avail)
	if again.Session.State != models.StateWaitingNewSize || again.Reply != replyAskNumber {
		t.Fatalf("got %+v", again)
	}

	resized := step(t, out.Session, "3", avail)
	if d := resized.Session.Draft; resized.Session.State != models.StateWaitingConfirmation || d.Time != "13:00" || d.Size != 3 {
		t.Fatalf("got %+v", resized.Session)
	}

	declined := step(t, out.Session, "non", avail)
	if declined.Session.State != models.StateWaitingNewDate {
		t.Fatalf("state = %s", declined.Session.State)
	}
}

func TestTransitionReset(t *testing.T) {
	s := models.ChatSession{ClientID: "c1", State: models.StateWaitingEmail, Draft: models.BookingDraft{Date: fifth, Size: 2}}
	out := Transition(s, "Annuler", fixedNow, allocatorWith(nil))
	if !out.Destroy || out.Commit != nil || out.Reply != replyReset {
		t.Fatalf("got %+v", out)
	}
}

func fullDayExcept(open ...string) map[string]int {
	booked := fullDay()
	for _, t := range open {
		delete(booked, t)
	}
	return booked
}
