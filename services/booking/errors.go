package booking

import "errors"

var (
	// ErrSlotUnavailable means the slot cannot hold the party any more.
	ErrSlotUnavailable  = errors.New("slot unavailable")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidTime      = errors.New("invalid time")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrInvalidPartySize = errors.New("party size must be at least 1")
	ErrIncompleteDraft  = errors.New("incomplete booking draft")
)
