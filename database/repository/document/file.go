package documentRepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"reservo/models"
)

type fileDocumentStore struct {
	path string
	mu   sync.Mutex
}

// NewFileDocumentStore keeps the document as an indented JSON file.
func NewFileDocumentStore(path string) (DocumentStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}
	return &fileDocumentStore{path: path}, nil
}

func (s *fileDocumentStore) Load(ctx context.Context) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		doc := models.DefaultDocument()
		if err := s.writeUnlocked(doc); err != nil {
			return nil, fmt.Errorf("create default document: %w", err)
		}
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	// Decoding over the defaults keeps them for every key the file lacks.
	doc := models.DefaultDocument()
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, doc); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
	}
	doc.Normalize()
	return doc, nil
}

func (s *fileDocumentStore) Save(ctx context.Context, doc *models.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := *doc
	next.Version++
	if err := s.writeUnlocked(&next); err != nil {
		return err
	}
	doc.Version = next.Version
	return nil
}

// writeUnlocked writes to a temp file and renames it over the target, so
// readers never observe a half-written document.
func (s *fileDocumentStore) writeUnlocked(doc *models.Document) error {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace document: %w", err)
	}
	return nil
}
