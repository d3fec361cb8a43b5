package models

// DocumentID is the key of the single agent document in the mongo store.
const DocumentID = "agent"

// AgentConfig holds the opening window and the default slot capacity.
type AgentConfig struct {
	OpeningHour     int      `bson:"opening_hour" json:"opening_hour"`
	ClosingHour     int      `bson:"closing_hour" json:"closing_hour"` // exclusive
	DefaultCapacity int      `bson:"default_capacity" json:"default_capacity"`
	PeakHours       []string `bson:"peak_hours" json:"peak_hours"` // e.g. "19:00"
}

// Messages are the user-facing templates returned by the structured reserve endpoint.
type Messages struct {
	Success     string `bson:"success" json:"success"`
	Alternative string `bson:"alternative" json:"alternative"`
	Failure     string `bson:"failure" json:"failure"`
}

// Document is the whole persisted state of the restaurant.
type Document struct {
	ID              string                    `bson:"_id" json:"-"`
	Config          AgentConfig               `bson:"config" json:"config"`
	Messages        Messages                  `bson:"messages" json:"messages"`
	Reservations    map[string]map[string]int `bson:"reservations" json:"reservations"` // date -> time -> booked
	Overrides       map[string]map[string]int `bson:"overrides" json:"overrides"`       // date -> time -> capacity
	BookingsDetails []BookingRecord           `bson:"bookings_details" json:"bookings_details"`
	Version         int                       `bson:"version" json:"version"`
}

// DefaultDocument returns the document created when nothing is persisted yet.
func DefaultDocument() *Document {
	return &Document{
		ID: DocumentID,
		Config: AgentConfig{
			OpeningHour:     11,
			ClosingHour:     23,
			DefaultCapacity: 4,
			PeakHours:       []string{"19:00", "20:00"},
		},
		Messages: Messages{
			Success:     "Confirmé.",
			Alternative: "Complet.",
			Failure:     "Complet.",
		},
		Reservations:    map[string]map[string]int{},
		Overrides:       map[string]map[string]int{},
		BookingsDetails: []BookingRecord{},
	}
}

// Normalize back-fills the parts a partially shaped document may lack.
func (d *Document) Normalize() {
	if d.ID == "" {
		d.ID = DocumentID
	}
	if d.Reservations == nil {
		d.Reservations = map[string]map[string]int{}
	}
	if d.Overrides == nil {
		d.Overrides = map[string]map[string]int{}
	}
	if d.BookingsDetails == nil {
		d.BookingsDetails = []BookingRecord{}
	}
	if d.Config.PeakHours == nil {
		d.Config.PeakHours = []string{}
	}
}

// Clone returns a deep copy, so a failed save never leaks a half-applied mutation.
func (d *Document) Clone() *Document {
	out := *d
	out.Config.PeakHours = append([]string(nil), d.Config.PeakHours...)
	out.Reservations = cloneNested(d.Reservations)
	out.Overrides = cloneNested(d.Overrides)
	out.BookingsDetails = append([]BookingRecord(nil), d.BookingsDetails...)
	out.Normalize()
	return &out
}

func cloneNested(in map[string]map[string]int) map[string]map[string]int {
	out := make(map[string]map[string]int, len(in))
	for date, slots := range in {
		inner := make(map[string]int, len(slots))
		for t, v := range slots {
			inner[t] = v
		}
		out[date] = inner
	}
	return out
}
