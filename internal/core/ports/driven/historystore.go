package driven

import (
	"context"

	"github.com/custodia-labs/fireload-cli/internal/core/domain"
)

// HistoryStore journals completed upload runs for the history command.
type HistoryStore interface {
	// Record appends one finished run to the journal.
	Record(ctx context.Context, run *domain.UploadRun) error

	// Recent returns the most recent runs, newest first.
	Recent(ctx context.Context, limit int) ([]domain.UploadRun, error)

	// Close releases the underlying database handle.
	Close() error
}
