package driven

import (
	"context"

	"github.com/custodia-labs/fireload-cli/internal/core/domain"
)

// RowSource yields raw rows from a delimited-text source.
// The header line defines column names; column order and row order are
// preserved exactly as they appear in the source.
type RowSource interface {
	// Headers returns the column headers in source order.
	Headers(ctx context.Context) ([]string, error)

	// Rows reads every row. The iteration is forward-only and finite;
	// rows are delivered in file order.
	Rows(ctx context.Context) ([]domain.Row, error)
}

// RowSourceFactory opens a RowSource for a file path.
type RowSourceFactory interface {
	// Open prepares a source for reading. A missing or unreadable file
	// fails here, before any document is built.
	Open(path string) (RowSource, error)
}
