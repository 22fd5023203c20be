package domain

import "time"

// UploadRun records one completed invocation of the upload pipeline.
type UploadRun struct {
	// ID is a generated run identifier.
	ID string

	// CSVPath is the source file for the run.
	CSVPath string

	// Collection is the target collection name.
	Collection string

	// Backend names the document store adapter used.
	Backend string

	// Rows is the number of CSV rows consumed.
	Rows int

	// Documents is the number of documents uploaded.
	Documents int

	// Warnings counts recoverable conditions (skipped rows, string
	// fallbacks) reported during the run.
	Warnings int

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time
	FinishedAt time.Time
}
