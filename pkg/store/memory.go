package store

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/vipuljat/ProjectBasedLearning/pkg/diagram"
	apperrors "github.com/vipuljat/ProjectBasedLearning/pkg/errors"
)

// Memory is an in-process Store. Documents are copied on the way in and out
// so that callers cannot mutate stored state.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]*diagram.Document
	now  func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string]*diagram.Document), now: time.Now}
}

func (m *Memory) Put(ctx context.Context, doc *diagram.Document) error {
	if err := prepare(doc, m.now()); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if prev, ok := m.docs[doc.ProjectTitle]; ok {
		doc.ID = prev.ID
	}
	cp, err := clone(doc)
	if err != nil {
		return err
	}
	m.docs[doc.ProjectTitle] = cp
	return nil
}

func (m *Memory) Get(ctx context.Context, title string) (*diagram.Document, error) {
	if err := apperrors.ValidateProjectTitle(title); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[title]
	if !ok {
		return nil, notFound(title)
	}
	return clone(doc)
}

func (m *Memory) List(ctx context.Context) ([]Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Summary, 0, len(m.docs))
	for _, doc := range m.docs {
		out = append(out, Summarize(doc))
	}
	slices.SortFunc(out, func(a, b Summary) int {
		return strings.Compare(a.ProjectTitle, b.ProjectTitle)
	})
	return out, nil
}

func (m *Memory) Delete(ctx context.Context, title string) error {
	if err := apperrors.ValidateProjectTitle(title); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.docs[title]; !ok {
		return notFound(title)
	}
	delete(m.docs, title)
	return nil
}

func (m *Memory) Close(ctx context.Context) error { return nil }

var _ Store = (*Memory)(nil)
