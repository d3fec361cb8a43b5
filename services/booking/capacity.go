package booking

import "reservo/models"

// CapacityView answers capacity questions against one document snapshot.
type CapacityView struct {
	doc *models.Document
}

// EffectiveCapacity returns the override for the exact slot, else the default.
func (c CapacityView) EffectiveCapacity(date, t string) int {
	if slots, ok := c.doc.Overrides[date]; ok {
		if v, ok := slots[t]; ok {
			return v
		}
	}
	return c.doc.Config.DefaultCapacity
}

// CurrentLoad returns the booked count, 0 when unset. It is never negative.
func (c CapacityView) CurrentLoad(date, t string) int {
	if n := c.doc.Reservations[date][t]; n > 0 {
		return n
	}
	return 0
}

// Remaining may be negative after an administrative override; clamp only for display.
func (c CapacityView) Remaining(date, t string) int {
	return c.EffectiveCapacity(date, t) - c.CurrentLoad(date, t)
}

func (c CapacityView) Fits(date, t string, size int) bool {
	return c.EffectiveCapacity(date, t) > 0 && c.Remaining(date, t) >= size
}
