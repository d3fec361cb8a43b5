package conversation

import (
	"strings"
	"time"

	"reservo/models"
	"reservo/services/booking"
	"reservo/services/parser"
)

// Availability is the read side of the allocator the state machine consults.
type Availability interface {
	FindBestSlot(date string, requested *string, size *int) *models.BestSlot
	AllAvailableSlots(date string, size int) []string
	AnalyzeDayStatus(date string) (maxFree int, bestTime string)
}

// Commit asks the caller to book the draft under the given email.
type Commit struct {
	Draft models.BookingDraft
	Email string
}

// Outcome is the result of one message. Session is the next session unless
// Destroy is set, in which case the session is dropped.
type Outcome struct {
	Session models.ChatSession
	Reply   string
	Commit  *Commit
	Destroy bool
}

// Transition advances a conversation by one message. It has no side
// effects: committing and storing the session are left to the caller.
func Transition(session models.ChatSession, text string, now time.Time, avail Availability) Outcome {
	msg := normalize(text)

	if isReset(msg) {
		return Outcome{Session: *models.NewChatSession(session.ClientID), Reply: replyReset, Destroy: true}
	}

	switch session.State {
	case models.StateWaitingConfirmation:
		if isAffirmative(msg) {
			session.State = models.StateWaitingName
			return Outcome{Session: session, Reply: replyAskName}
		}
		if isNegative(msg) {
			session.State = models.StateWaitingMoreOptions
			return Outcome{Session: session, Reply: replyMoreOptions}
		}

	case models.StateWaitingMoreOptions:
		if isAffirmative(msg) {
			return listSlots(session, avail)
		}

	case models.StateWaitingName:
		name := strings.TrimSpace(text)
		if name == "" {
			return Outcome{Session: session, Reply: replyNameAgain}
		}
		session.Draft.Name = name
		session.State = models.StateWaitingEmail
		return Outcome{Session: session, Reply: replyAskEmail(name)}

	case models.StateWaitingEmail:
		email := strings.TrimSpace(text)
		if !parser.IsEmail(email) {
			return Outcome{Session: session, Reply: replyInvalidEmail}
		}
		d := session.Draft
		return Outcome{
			Session: session,
			Reply:   replyBooked(d.Name, email, d.Date, d.Time),
			Commit:  &Commit{Draft: d, Email: email},
			Destroy: true,
		}

	case models.StateWaitingSize, models.StateWaitingNewSize:
		if size, ok := partySize(text, now); ok {
			session.Draft.Size = size
			return runPipeline(session, "", now, avail, true)
		}
		if session.State == models.StateWaitingNewSize {
			if isAffirmative(msg) {
				return Outcome{Session: session, Reply: replyAskNumber}
			}
			if isNegative(msg) {
				session.State = models.StateWaitingNewDate
				return Outcome{Session: session, Reply: replyAskOtherDate}
			}
		}

	case models.StateWaitingNewDate:
		if isNegative(msg) {
			return Outcome{Session: *models.NewChatSession(session.ClientID), Reply: replyFarewell}
		}
		if isAffirmative(msg) {
			session.State = models.StateInitial
			session.MemoryDate = ""
			session.Draft.Date = ""
			session.Draft.Time = ""
			return Outcome{Session: session, Reply: replyAskNewDate}
		}
	}

	return runPipeline(session, text, now, avail, false)
}

// runPipeline resolves date, size and time from the message and the
// session memory, then asks the allocator for a slot. fromSizePrompt keeps
// the hour requested before the size question.
func runPipeline(session models.ChatSession, text string, now time.Time, avail Availability, fromSizePrompt bool) Outcome {
	session.State = models.StateInitial
	extracted := parser.Extract(text, now)

	date := session.MemoryDate
	if date == "" {
		date = session.Draft.Date
	}
	if extracted.Date != nil {
		date = *extracted.Date
	}
	if date == "" {
		return Outcome{Session: session, Reply: replyAskDate}
	}
	session.MemoryDate = date

	requested := ""
	switch {
	case extracted.Time != nil:
		requested = *extracted.Time
	case text != "":
		requested, _ = parser.BareHour(text)
	}
	if requested == "" && fromSizePrompt {
		requested = session.Draft.RequestedTime
	}

	size := session.Draft.Size
	if extracted.Size != nil {
		size = *extracted.Size
	}
	if size < 1 {
		session.Draft = models.BookingDraft{Date: date, RequestedTime: requested}
		session.State = models.StateWaitingSize
		return Outcome{Session: session, Reply: replyAskSize(date)}
	}

	var timePtr *string
	if requested != "" {
		timePtr = &requested
	}
	session.Draft = models.BookingDraft{Date: date, RequestedTime: requested, Size: size}

	best := avail.FindBestSlot(date, timePtr, &size)
	if best == nil {
		free, at := avail.AnalyzeDayStatus(date)
		if free == 0 {
			session.State = models.StateWaitingNewDate
			return Outcome{Session: session, Reply: replyDayFull(date)}
		}
		session.State = models.StateWaitingNewSize
		return Outcome{Session: session, Reply: replyTooLarge(date, size, free, at)}
	}

	session.Draft.Time = best.Time
	session.State = models.StateWaitingConfirmation
	switch {
	case requested != "" && best.Time == requested:
		return Outcome{Session: session, Reply: replyExact(date, best.Time, size)}
	case requested != "":
		return Outcome{Session: session, Reply: replyOtherTime(requested, date, best.Time)}
	default:
		return Outcome{Session: session, Reply: replyProposal(date, best.Time)}
	}
}

func listSlots(session models.ChatSession, avail Availability) Outcome {
	date := session.Draft.Date
	if date == "" {
		date = session.MemoryDate
	}
	size := session.Draft.Size
	if size < 1 {
		size = booking.DefaultPartySize
	}

	session.State = models.StateInitial
	session.MemoryDate = date
	slots := avail.AllAvailableSlots(date, size)
	if len(slots) == 0 {
		return Outcome{Session: session, Reply: replyNothingLeft(date)}
	}
	return Outcome{Session: session, Reply: replySlotList(date, slots)}
}

// partySize prefers an explicit size phrase and otherwise takes the first number.
func partySize(text string, now time.Time) (int, bool) {
	if s := parser.Extract(text, now).Size; s != nil && *s >= 1 {
		return *s, true
	}
	n, ok := parser.FirstNumber(text)
	return n, ok && n >= 1
}
