// File: database/repository/document/interface.go
package documentRepo

import (
	"context"
	"errors"

	"reservo/models"
)

// ErrVersionConflict is returned by Save when the document changed since it was loaded.
var ErrVersionConflict = errors.New("document version conflict")

// DocumentStore loads and saves the whole agent document.
// Load creates and persists the defaults when nothing exists yet and
// back-fills missing parts of a partially shaped document.
// Save persists atomically and bumps doc.Version on success.
type DocumentStore interface {
	Load(ctx context.Context) (*models.Document, error)
	Save(ctx context.Context, doc *models.Document) error
}
