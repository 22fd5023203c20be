package driving

import (
	"context"

	"github.com/custodia-labs/fireload-cli/internal/core/domain"
)

// Uploader converts a CSV file into documents and persists them.
type Uploader interface {
	// Upload processes every row of the collection spec's CSV file and uploads
	// one document per identifier group. Fatal conditions (unreadable
	// source, malformed schema, missing identifier column) abort the
	// run; recoverable ones degrade per row and are counted.
	Upload(ctx context.Context, spec *domain.CollectionSpec) (*UploadResult, error)
}

// HistoryViewer exposes the journal of past upload runs.
type HistoryViewer interface {
	// Recent returns the most recent runs, newest first.
	Recent(ctx context.Context, limit int) ([]domain.UploadRun, error)
}

// UploadResult summarises a completed upload run.
type UploadResult struct {
	// Collection is the resolved target collection name.
	Collection string

	// Rows is the number of CSV rows consumed.
	Rows int

	// Documents is the number of documents uploaded.
	Documents int

	// Warnings counts recoverable conditions encountered.
	Warnings int
}
