package documentRepo

import (
	"context"
	"sync"

	"reservo/models"
)

// MemoryDocumentStore keeps the document in process. Load hands out deep
// copies and Save enforces the same version check as the mongo store.
type MemoryDocumentStore struct {
	mu    sync.Mutex
	doc   *models.Document
	saves int
}

func NewMemoryDocumentStore(seed *models.Document) *MemoryDocumentStore {
	if seed == nil {
		seed = models.DefaultDocument()
	}
	seed.Normalize()
	return &MemoryDocumentStore{doc: seed.Clone()}
}

func (s *MemoryDocumentStore) Load(ctx context.Context) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone(), nil
}

func (s *MemoryDocumentStore) Save(ctx context.Context, doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc.Version != s.doc.Version {
		return ErrVersionConflict
	}
	next := doc.Clone()
	next.Version++
	s.doc = next
	s.saves++
	doc.Version = next.Version
	return nil
}

// Saves reports how many saves succeeded.
func (s *MemoryDocumentStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
