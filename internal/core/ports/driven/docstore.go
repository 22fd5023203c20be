package driven

import "context"

// DocumentStore persists assembled documents in a document-oriented
// database. Implementations exist for Firestore, MongoDB and an
// in-memory store used by tests and dry runs.
type DocumentStore interface {
	// Upload writes one document's fields to a collection.
	// With merge true, existing fields not present in fields survive;
	// otherwise the stored document is replaced wholesale.
	Upload(ctx context.Context, collection, documentID string, fields map[string]any, merge bool) error

	// Close releases the underlying connection.
	Close() error
}
