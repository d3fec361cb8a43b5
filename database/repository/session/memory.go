package sessionRepo

import (
	"context"
	"sync"

	"reservo/models"
)

type MemorySessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]models.ChatSession
}

func NewMemorySessionRepo() *MemorySessionRepo {
	return &MemorySessionRepo{sessions: make(map[string]models.ChatSession)}
}

func (r *MemorySessionRepo) Get(ctx context.Context, clientID string) (*models.ChatSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[clientID]
	if !ok {
		return models.NewChatSession(clientID), nil
	}
	return &s, nil
}

func (r *MemorySessionRepo) Put(ctx context.Context, session *models.ChatSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ClientID] = *session
	return nil
}

func (r *MemorySessionRepo) Delete(ctx context.Context, clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, clientID)
	return nil
}

// Len reports how many sessions are held.
func (r *MemorySessionRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
