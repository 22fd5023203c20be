package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/fireload-cli/internal/core/domain"
	"github.com/custodia-labs/fireload-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fireload-cli/internal/core/ports/driving"
	"github.com/custodia-labs/fireload-cli/internal/logger"
)

// Ensure UploadService implements the interface.
var _ driving.Uploader = (*UploadService)(nil)

// UploadService orchestrates one CSV-to-document-store run: read rows,
// assemble documents, upload each one, journal the run.
type UploadService struct {
	rows    driven.RowSourceFactory
	store   driven.DocumentStore
	history driven.HistoryStore

	backend   string
	assembler Assembler
}

// NewUploadService creates an upload service. The history store is
// optional; a nil store disables journalling.
func NewUploadService(
	rows driven.RowSourceFactory,
	store driven.DocumentStore,
	history driven.HistoryStore,
	backend string,
	assembler Assembler,
) *UploadService {
	return &UploadService{
		rows:      rows,
		store:     store,
		history:   history,
		backend:   backend,
		assembler: assembler,
	}
}

// Upload processes the collection spec's CSV file and uploads one document per
// identifier group. Documents handed to the store before a failure are
// not rolled back.
func (s *UploadService) Upload(ctx context.Context, spec *domain.CollectionSpec) (*driving.UploadResult, error) {
	started := time.Now()
	collection := spec.CollectionName()
	logger.Info("Targeting collection: %s", collection)

	source, err := s.rows.Open(spec.FilePath)
	if err != nil {
		return nil, fmt.Errorf("open row source: %w", err)
	}

	headers, err := source.Headers(ctx)
	if err != nil {
		return nil, fmt.Errorf("read headers: %w", err)
	}
	if !headersContain(headers, s.assembler.identifier()) {
		return nil, fmt.Errorf("%w: %q", domain.ErrMissingIdentifier, s.assembler.identifier())
	}

	schema, err := spec.Schema()
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	if schema == nil {
		logger.Info("No schema found at %s, using flat items structure", spec.SchemaFilePath())
	} else {
		logger.Info("Loaded schema from %s", spec.SchemaFilePath())
	}

	rows, err := source.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	docs, warnings, err := s.assembler.Assemble(rows, schema)
	if err != nil {
		return nil, err
	}

	for _, doc := range docs {
		if err := s.store.Upload(ctx, collection, doc.ID, doc.Fields, spec.Merge); err != nil {
			return nil, fmt.Errorf("upload document %q: %w", doc.ID, err)
		}
		logger.Debug("Uploaded document %s to %s", doc.ID, collection)
	}

	result := &driving.UploadResult{
		Collection: collection,
		Rows:       len(rows),
		Documents:  len(docs),
		Warnings:   warnings,
	}

	s.journal(ctx, spec, result, started)

	logger.Info("Uploaded %d documents (%d rows, %d warnings)",
		result.Documents, result.Rows, result.Warnings)
	return result, nil
}

// journal records the finished run. Journalling is best effort and
// never fails the upload.
func (s *UploadService) journal(ctx context.Context, spec *domain.CollectionSpec, result *driving.UploadResult, started time.Time) {
	if s.history == nil {
		return
	}

	run := &domain.UploadRun{
		ID:         uuid.New().String(),
		CSVPath:    spec.FilePath,
		Collection: result.Collection,
		Backend:    s.backend,
		Rows:       result.Rows,
		Documents:  result.Documents,
		Warnings:   result.Warnings,
		StartedAt:  started,
		FinishedAt: time.Now(),
	}

	if err := s.history.Record(ctx, run); err != nil {
		logger.Warn("Failed to journal upload run: %v", err)
	}
}

func headersContain(headers []string, idColumn string) bool {
	for _, h := range headers {
		if fieldName(h) == idColumn {
			return true
		}
	}
	return false
}
