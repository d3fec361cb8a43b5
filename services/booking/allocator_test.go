package booking

import (
	"reflect"
	"testing"

	"reservo/models"
)

const day = "2024-06-10"

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func docWith(booked map[string]int) *models.Document {
	doc := models.DefaultDocument()
	if booked != nil {
		doc.Reservations[day] = booked
	}
	return doc
}

func TestFindBestSlotExactMatch(t *testing.T) {
	best := NewAllocator(docWith(nil)).FindBestSlot(day, strPtr("19:00"), intPtr(4))
	if best == nil || best.Time != "19:00" || !best.IsExact || best.Score != ExactMatchScore {
		t.Fatalf("got %+v, want exact 19:00", best)
	}
}

func TestFindBestSlotExactMatchBeatsHigherFormulaScore(t *testing.T) {
	// 12:00 is half booked, 11:00 is empty; the requested hour still wins.
	best := NewAllocator(docWith(map[string]int{"12:00": 2})).FindBestSlot(day, strPtr("12:00"), intPtr(2))
	if best == nil || best.Time != "12:00" || !best.IsExact {
		t.Fatalf("got %+v, want exact 12:00", best)
	}
}

func TestFindBestSlotRequestedFull(t *testing.T) {
	best := NewAllocator(docWith(map[string]int{"19:00": 4})).FindBestSlot(day, strPtr("19:00"), intPtr(2))
	if best == nil {
		t.Fatal("expected an alternative")
	}
	if best.IsExact || best.Time != "18:00" {
		t.Fatalf("got %+v, want the earlier of the two nearest hours", best)
	}
}

func TestFindBestSlotPrefersNearerBusierSlot(t *testing.T) {
	doc := docWith(map[string]int{"17:00": 4, "18:00": 3, "19:00": 4, "20:00": 4})
	best := NewAllocator(doc).FindBestSlot(day, strPtr("19:00"), intPtr(1))
	if best == nil || best.Time != "18:00" {
		t.Fatalf("got %+v, want 18:00", best)
	}
}

func TestFindBestSlotWithoutTimeUsesPeakHour(t *testing.T) {
	best := NewAllocator(docWith(nil)).FindBestSlot(day, nil, nil)
	if best == nil || best.Time != "19:00" || best.IsExact {
		t.Fatalf("got %+v, want non-exact 19:00", best)
	}

	doc := docWith(nil)
	doc.Config.PeakHours = []string{"12:00"}
	best = NewAllocator(doc).FindBestSlot(day, nil, nil)
	if best == nil || best.Time != "12:00" {
		t.Fatalf("got %+v, want anchor on first peak hour", best)
	}
}

func TestFindBestSlotNeverExceedsRemaining(t *testing.T) {
	doc := docWith(map[string]int{"13:00": 1, "19:00": 3, "20:00": 2})
	doc.Overrides[day] = map[string]int{"14:00": 0, "15:00": 6, "21:00": 1}
	alloc := NewAllocator(doc)

	for size := 1; size <= 7; size++ {
		for _, req := range []*string{nil, strPtr("19:00"), strPtr("14:00"), strPtr("11:00")} {
			best := alloc.FindBestSlot(day, req, intPtr(size))
			if best == nil {
				continue
			}
			if rem := alloc.Capacity().Remaining(day, best.Time); rem < size {
				t.Fatalf("size %d: got %s with remaining %d", size, best.Time, rem)
			}
		}
	}
	if best := alloc.FindBestSlot(day, nil, intPtr(6)); best == nil || best.Time != "15:00" {
		t.Fatalf("got %+v, want the only slot seating 6", best)
	}
	if best := alloc.FindBestSlot(day, nil, intPtr(7)); best != nil {
		t.Fatalf("got %+v, want nil", best)
	}
}

func TestCapacityView(t *testing.T) {
	doc := docWith(map[string]int{"19:00": 5, "20:00": -2})
	doc.Overrides[day] = map[string]int{"19:00": 3}
	c := NewAllocator(doc).Capacity()

	if got := c.EffectiveCapacity(day, "19:00"); got != 3 {
		t.Fatalf("override capacity = %d", got)
	}
	if got := c.EffectiveCapacity(day, "18:00"); got != 4 {
		t.Fatalf("default capacity = %d", got)
	}
	if got := c.CurrentLoad(day, "20:00"); got != 0 {
		t.Fatalf("negative load read as %d", got)
	}
	for _, tm := range []string{"18:00", "19:00", "20:00"} {
		if c.Remaining(day, tm) != c.EffectiveCapacity(day, tm)-c.CurrentLoad(day, tm) {
			t.Fatalf("remaining identity broken at %s", tm)
		}
	}
	if got := c.Remaining(day, "19:00"); got != -2 {
		t.Fatalf("remaining = %d, want -2", got)
	}
}

func TestAllAvailableSlotsStableAndOrdered(t *testing.T) {
	doc := docWith(map[string]int{"11:00": 4, "19:00": 3})
	doc.Config.OpeningHour, doc.Config.ClosingHour = 11, 15
	alloc := NewAllocator(doc)

	first := alloc.AllAvailableSlots(day, 2)
	second := alloc.AllAvailableSlots(day, 2)
	want := []string{"12:00", "13:00", "14:00"}
	if !reflect.DeepEqual(first, want) || !reflect.DeepEqual(first, second) {
		t.Fatalf("got %v then %v, want %v", first, second, want)
	}
}

func TestAnalyzeDayStatus(t *testing.T) {
	doc := docWith(map[string]int{"12:00": 1})
	doc.Config.OpeningHour, doc.Config.ClosingHour = 11, 14
	doc.Overrides[day] = map[string]int{"11:00": 2, "13:00": 3}
	free, at := NewAllocator(doc).AnalyzeDayStatus(day)
	if free != 3 || at != "12:00" {
		t.Fatalf("got (%d, %s), want (3, 12:00)", free, at)
	}

	full := docWith(map[string]int{"11:00": 4, "12:00": 6, "13:00": 4})
	full.Config.OpeningHour, full.Config.ClosingHour = 11, 14
	free, at = NewAllocator(full).AnalyzeDayStatus(day)
	if free != 0 || at != "11:00" {
		t.Fatalf("got (%d, %s), want (0, 11:00)", free, at)
	}
}

func TestDaySlotsAndDetails(t *testing.T) {
	doc := docWith(map[string]int{"19:00": 6})
	doc.Config.OpeningHour, doc.Config.ClosingHour = 19, 21
	doc.BookingsDetails = []models.BookingRecord{
		{Date: day, Time: "19:00", Name: "Dupont", Email: "d@example.com", Size: 6},
		{Date: "2024-06-11", Time: "19:00", Name: "Other", Email: "o@example.com", Size: 2},
	}
	alloc := NewAllocator(doc)

	slots := alloc.DaySlots(day)
	want := []models.SlotStatus{{Time: "19:00", Available: 0, Full: true}, {Time: "20:00", Available: 4, Full: false}}
	if !reflect.DeepEqual(slots, want) {
		t.Fatalf("slots = %+v", slots)
	}

	details := alloc.DayDetails(day)
	if len(details) != 2 {
		t.Fatalf("details = %+v", details)
	}
	if details[0].Available != -2 || len(details[0].Clients) != 1 || details[0].Clients[0].Name != "Dupont" {
		t.Fatalf("19:00 details = %+v", details[0])
	}
	if details[1].Clients == nil || len(details[1].Clients) != 0 {
		t.Fatalf("20:00 clients = %#v", details[1].Clients)
	}
}

func TestBookableRespectsOpeningHours(t *testing.T) {
	alloc := NewAllocator(docWith(nil))
	if alloc.Bookable(day, "03:00", 1) || alloc.Bookable(day, "23:00", 1) {
		t.Fatal("hours outside the opening window must not be bookable")
	}
	if !alloc.Bookable(day, "22:00", 4) || alloc.Bookable(day, "22:00", 5) {
		t.Fatal("22:00 should seat exactly 4")
	}
}
