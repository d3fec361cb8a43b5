package booking

import (
	"strings"
	"time"

	"reservo/models"

	"github.com/google/uuid"
)

const (
	defaultBookingName  = "Inconnu"
	defaultBookingEmail = "Non renseigné"
)

// Commit adds size to the slot's occupancy and appends the audit record.
// The caller persists the document; nothing here touches storage.
func Commit(doc *models.Document, date, t string, size int, name, email string, now time.Time) models.BookingRecord {
	if strings.TrimSpace(name) == "" {
		name = defaultBookingName
	}
	if strings.TrimSpace(email) == "" {
		email = defaultBookingEmail
	}
	if doc.Reservations == nil {
		doc.Reservations = map[string]map[string]int{}
	}
	if doc.Reservations[date] == nil {
		doc.Reservations[date] = map[string]int{}
	}
	doc.Reservations[date][t] = max(doc.Reservations[date][t], 0) + size

	record := models.BookingRecord{
		ID:        uuid.New().String(),
		Date:      date,
		Time:      t,
		Name:      name,
		Email:     email,
		Size:      size,
		CreatedAt: now.Format(models.TimestampLayout),
	}
	doc.BookingsDetails = append(doc.BookingsDetails, record)
	return record
}
