// Package firestore persists documents through the Firestore REST API.
package firestore

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/time/rate"
	firestorepb "google.golang.org/api/firestore/v1"
	"google.golang.org/api/option"

	"github.com/custodia-labs/fireload-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fireload-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.DocumentStore = (*Store)(nil)

// defaultDatabase is Firestore's default database identifier.
const defaultDatabase = "(default)"

// Config selects the target Firestore database.
type Config struct {
	// ProjectID is the Google Cloud project. Required.
	ProjectID string

	// Database is the database identifier. Empty selects "(default)".
	Database string

	// EmulatorHost, when set, routes all traffic to a local emulator
	// (host:port) without authentication.
	EmulatorHost string

	// RateLimit caps document writes per second. Zero disables the cap.
	RateLimit int
}

// Store uploads documents to Firestore.
type Store struct {
	service *firestorepb.Service
	parent  string
	limiter *rate.Limiter
}

// NewStore connects to Firestore. With an emulator host configured, the
// connection is unauthenticated and local; otherwise application
// default credentials apply.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("firestore project id is required")
	}

	database := cfg.Database
	if database == "" {
		database = defaultDatabase
	}

	var opts []option.ClientOption
	if cfg.EmulatorHost != "" {
		logger.Info("Using Firestore emulator at %s", cfg.EmulatorHost)
		opts = append(opts,
			option.WithEndpoint("http://"+cfg.EmulatorHost+"/"),
			option.WithoutAuthentication(),
		)
	}

	service, err := firestorepb.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create firestore service: %w", err)
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimit)
	}

	return &Store{
		service: service,
		parent:  fmt.Sprintf("projects/%s/databases/%s/documents", cfg.ProjectID, database),
		limiter: limiter,
	}, nil
}

// Upload writes one document via a Patch call. Patch creates the
// document when absent and overwrites it when present; with merge true
// an update mask restricts the write to the incoming top-level fields
// so the rest of the stored document survives.
func (s *Store) Upload(ctx context.Context, collection, documentID string, fields map[string]any, merge bool) error {
	if err := s.wait(ctx); err != nil {
		return err
	}

	encoded, err := encodeFields(fields)
	if err != nil {
		return fmt.Errorf("encode document %q: %w", documentID, err)
	}

	name := fmt.Sprintf("%s/%s/%s", s.parent, collection, documentID)
	call := s.service.Projects.Databases.Documents.Patch(name, &firestorepb.Document{
		Fields: encoded,
	})

	if merge {
		paths := make([]string, 0, len(fields))
		for field := range fields {
			paths = append(paths, escapeFieldPath(field))
		}
		call.UpdateMaskFieldPaths(paths...)
	}

	if _, err := call.Context(ctx).Do(); err != nil {
		return fmt.Errorf("patch document %q: %w", name, err)
	}

	return nil
}

// Close is a no-op: the REST client holds no persistent connection.
func (s *Store) Close() error { return nil }

// wait blocks until the rate limiter admits one more write.
func (s *Store) wait(ctx context.Context) error {
	if s.limiter == nil {
		return nil
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return nil
}

// escapeFieldPath quotes a field name for use in an update mask.
// Simple identifiers pass through; anything else gets backticks.
func escapeFieldPath(field string) string {
	if isSimpleFieldName(field) {
		return field
	}
	escaped := strings.ReplaceAll(field, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, "`", "\\`")
	return "`" + escaped + "`"
}

func isSimpleFieldName(field string) bool {
	if field == "" {
		return false
	}
	for i, r := range field {
		switch {
		case r == '_',
			r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
