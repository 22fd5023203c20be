// Package memory provides in-memory driven adapters used by tests and
// dry runs.
package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/fireload-cli/internal/core/domain"
	"github.com/custodia-labs/fireload-cli/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
// Documents live in a per-collection map and survive only for the
// process lifetime.
type DocumentStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]any
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		collections: make(map[string]map[string]map[string]any),
	}
}

// Upload stores one document. With merge true, incoming fields overlay
// the existing document; otherwise the document is replaced.
func (s *DocumentStore) Upload(_ context.Context, collection, documentID string, fields map[string]any, merge bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]map[string]any)
		s.collections[collection] = docs
	}

	existing, ok := docs[documentID]
	if !merge || !ok {
		existing = make(map[string]any, len(fields))
	}
	for k, v := range fields {
		existing[k] = v
	}
	docs[documentID] = existing

	return nil
}

// Close is a no-op for the in-memory store.
func (s *DocumentStore) Close() error { return nil }

// Get retrieves a stored document. Used by tests and dry-run output.
func (s *DocumentStore) Get(collection, documentID string) (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.collections[collection][documentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

// Count returns the number of documents in a collection.
func (s *DocumentStore) Count(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection])
}
