package booking

import (
	"math"
	"sort"

	"reservo/models"
	"reservo/services/parser"
)

const (
	// ExactMatchScore is returned when the requested hour fits; no formula score reaches it.
	ExactMatchScore  = 1000.0
	DefaultPartySize = 2
	DefaultAnchor    = "19:00"

	proximityWeight    = 0.85
	loadWeight         = 0.15
	proximityCutoff    = 180 // minutes
	proximityPerMinute = 0.5
)

// Allocator ranks the hours of a day for a party against one document snapshot.
type Allocator struct {
	doc      *models.Document
	capacity CapacityView
}

func NewAllocator(doc *models.Document) *Allocator {
	return &Allocator{doc: doc, capacity: CapacityView{doc: doc}}
}

func (a *Allocator) Capacity() CapacityView { return a.capacity }

// Hours lists the bookable hours "HH:00" in [opening, closing).
func (a *Allocator) Hours() []string {
	cfg := a.doc.Config
	var out []string
	for h := max(cfg.OpeningHour, 0); h < cfg.ClosingHour && h < 24; h++ {
		out = append(out, parser.FormatHour(h))
	}
	return out
}

// InWindow reports whether t is one of the opening hours.
func (a *Allocator) InWindow(t string) bool {
	h, ok := parser.ParseHour(t)
	return ok && h >= a.doc.Config.OpeningHour && h < a.doc.Config.ClosingHour
}

// Bookable reports whether the party can be seated at exactly t.
func (a *Allocator) Bookable(date, t string, size int) bool {
	return a.InWindow(t) && a.capacity.Fits(date, t, size)
}

// FindBestSlot returns the requested hour when it fits, otherwise the
// highest scoring hour that fits, or nil when nothing does. Ties go to
// the earliest hour.
func (a *Allocator) FindBestSlot(date string, requested *string, size *int) *models.BestSlot {
	party := DefaultPartySize
	if size != nil {
		party = *size
	}
	anchor := a.anchor(requested)

	var candidates []models.BestSlot
	for _, t := range a.Hours() {
		if !a.capacity.Fits(date, t, party) {
			continue
		}
		if requested != nil && t == *requested {
			return &models.BestSlot{Time: t, Score: ExactMatchScore, IsExact: true}
		}
		candidates = append(candidates, models.BestSlot{
			Time:  t,
			Score: a.score(date, t, anchor),
		})
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	best := candidates[0]
	return &best
}

// AllAvailableSlots lists every hour that fits the party, in hour order.
func (a *Allocator) AllAvailableSlots(date string, size int) []string {
	out := []string{}
	for _, t := range a.Hours() {
		if a.capacity.Fits(date, t, size) {
			out = append(out, t)
		}
	}
	return out
}

// AnalyzeDayStatus returns the largest number of free seats in any single
// hour and that hour, earliest on ties. maxFree is never negative.
func (a *Allocator) AnalyzeDayStatus(date string) (maxFree int, bestTime string) {
	first := true
	for _, t := range a.Hours() {
		rem := a.capacity.Remaining(date, t)
		if first || rem > maxFree {
			maxFree, bestTime, first = rem, t, false
		}
	}
	if maxFree < 0 {
		maxFree = 0
	}
	return maxFree, bestTime
}

// DaySlots is the public availability of each opening hour.
func (a *Allocator) DaySlots(date string) []models.SlotStatus {
	out := []models.SlotStatus{}
	for _, t := range a.Hours() {
		rem := a.capacity.Remaining(date, t)
		out = append(out, models.SlotStatus{Time: t, Available: max(rem, 0), Full: rem <= 0})
	}
	return out
}

// DayDetails is the admin breakdown of each opening hour with its bookings.
func (a *Allocator) DayDetails(date string) []models.DaySlotDetail {
	clients := map[string][]models.SlotClient{}
	for _, b := range a.doc.BookingsDetails {
		if b.Date == date {
			clients[b.Time] = append(clients[b.Time], models.SlotClient{Name: b.Name, Email: b.Email, Size: b.Size})
		}
	}

	out := []models.DaySlotDetail{}
	for _, t := range a.Hours() {
		booked := a.capacity.CurrentLoad(date, t)
		capacity := a.capacity.EffectiveCapacity(date, t)
		list := clients[t]
		if list == nil {
			list = []models.SlotClient{}
		}
		out = append(out, models.DaySlotDetail{
			Time:      t,
			Booked:    booked,
			Capacity:  capacity,
			Available: capacity - booked,
			Clients:   list,
		})
	}
	return out
}

func (a *Allocator) anchor(requested *string) int {
	if requested != nil {
		if h, ok := parser.ParseHour(*requested); ok {
			return h * 60
		}
	}
	for _, p := range a.doc.Config.PeakHours {
		if h, ok := parser.ParseHour(p); ok {
			return h * 60
		}
	}
	h, _ := parser.ParseHour(DefaultAnchor)
	return h * 60
}

// score favours proximity to the anchor over an emptier slot; capacity is
// known to be positive for any slot that fits.
func (a *Allocator) score(date, t string, anchorMinutes int) float64 {
	h, _ := parser.ParseHour(t)
	diff := math.Abs(float64(h*60 - anchorMinutes))

	proximity := 0.0
	if diff <= proximityCutoff {
		proximity = math.Max(0, 100-diff*proximityPerMinute)
	}
	capacity := float64(a.capacity.EffectiveCapacity(date, t))
	load := (1 - float64(a.capacity.CurrentLoad(date, t))/capacity) * 100

	return proximityWeight*proximity + loadWeight*load
}
