// File: database/repository/session/interface.go
package sessionRepo

import (
	"context"

	"reservo/models"
)

// SessionRepository keeps chat sessions between messages.
// Get never returns nil: an unknown client gets a fresh INITIAL session.
type SessionRepository interface {
	Get(ctx context.Context, clientID string) (*models.ChatSession, error)
	Put(ctx context.Context, session *models.ChatSession) error
	Delete(ctx context.Context, clientID string) error
}
