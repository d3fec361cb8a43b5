package models

// SlotKey identifies a whole-hour booking unit.
type SlotKey struct {
	Date string `json:"date"` // "YYYY-MM-DD"
	Time string `json:"time"` // "HH:00"
}

// SlotStatus is the public availability view of one hour.
type SlotStatus struct {
	Time      string `json:"time"`
	Available int    `json:"available"` // clamped at 0 for display
	Full      bool   `json:"full"`
}

// SlotClient is one booking shown in the admin day breakdown.
type SlotClient struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Size  int    `json:"size"`
}

// DaySlotDetail is the admin view of one hour: counters plus who booked it.
type DaySlotDetail struct {
	Time      string       `json:"time"`
	Booked    int          `json:"booked"`
	Capacity  int          `json:"capacity"`
	Available int          `json:"available"` // not clamped, may be negative after an override
	Clients   []SlotClient `json:"clients"`
}

// BestSlot is the allocator's pick for a request.
type BestSlot struct {
	Time    string  `json:"time"`
	Score   float64 `json:"score"`
	IsExact bool    `json:"is_exact"`
}

// GlobalConfigUpdate is the payload of POST /api/admin/config.
type GlobalConfigUpdate struct {
	OpeningHour     int               `json:"opening_hour"`
	ClosingHour     int               `json:"closing_hour"`
	DefaultCapacity int               `json:"default_capacity"`
	Messages        map[string]string `json:"messages"`
}

// AdminSlotUpdate force-sets the counters of a single slot.
type AdminSlotUpdate struct {
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Booked   int    `json:"booked"`
	Capacity int    `json:"capacity"`
}
