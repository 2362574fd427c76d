// Package store persists diagram documents, one per project.
//
// A [Store] keeps the latest [diagram.Document] for each project title.
// Putting a document for a title that already exists replaces it, keeping
// the original ID. Two backends are provided:
//
//   - [Memory] keeps documents in process memory for tests and the CLI
//   - [Mongo] stores them in a MongoDB collection for the API server
//
// Titles are validated with [errors.ValidateProjectTitle] before any
// backend is touched.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vipuljat/ProjectBasedLearning/pkg/diagram"
	apperrors "github.com/vipuljat/ProjectBasedLearning/pkg/errors"
)

// ErrNotFound is returned when no document exists for a project title.
var ErrNotFound = errors.New("document not found")

// Store is the interface for diagram document backends.
type Store interface {
	// Put inserts or replaces the document for doc.ProjectTitle. A missing ID
	// or StoredAt is filled in; doc is updated in place.
	Put(ctx context.Context, doc *diagram.Document) error

	// Get returns the document for title, or ErrNotFound.
	Get(ctx context.Context, title string) (*diagram.Document, error)

	// List returns a summary of every document, sorted by title.
	List(ctx context.Context) ([]Summary, error)

	// Delete removes the document for title, or returns ErrNotFound.
	Delete(ctx context.Context, title string) error

	// Close releases the backend connection.
	Close(ctx context.Context) error
}

// Summary describes a stored document without its payloads.
type Summary struct {
	ID           string         `json:"id"`
	ProjectTitle string         `json:"project_title"`
	Kinds        []diagram.Kind `json:"kinds"`
	StoredAt     time.Time      `json:"stored_at"`
}

// Summarize builds the Summary of doc.
func Summarize(doc *diagram.Document) Summary {
	return Summary{
		ID:           doc.ID,
		ProjectTitle: doc.ProjectTitle,
		Kinds:        doc.Diagrams.Kinds(),
		StoredAt:     doc.StoredAt,
	}
}

// IsNotFound reports whether err means the document does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// notFound wraps ErrNotFound with a NOT_FOUND code for API responses.
func notFound(title string) error {
	return apperrors.Wrap(apperrors.ErrCodeNotFound, ErrNotFound, "no diagrams stored for project %q", title)
}

// prepare validates doc and fills in generated fields.
func prepare(doc *diagram.Document, now time.Time) error {
	if doc == nil {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "document is nil")
	}
	if err := apperrors.ValidateProjectTitle(doc.ProjectTitle); err != nil {
		return err
	}
	if doc.Diagrams.Empty() {
		return apperrors.New(apperrors.ErrCodeInvalidPayload, "project %q has no diagrams", doc.ProjectTitle)
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.StoredAt.IsZero() {
		doc.StoredAt = now.UTC()
	}
	return nil
}

// clone deep-copies doc through its JSON form.
func clone(doc *diagram.Document) (*diagram.Document, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("copy document: %w", err)
	}
	var out diagram.Document
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("copy document: %w", err)
	}
	return &out, nil
}
