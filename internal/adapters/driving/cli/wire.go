package cli

import (
	"context"
	"fmt"

	"github.com/custodia-labs/fireload-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/fireload-cli/internal/adapters/driven/storage/firestore"
	"github.com/custodia-labs/fireload-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/fireload-cli/internal/adapters/driven/storage/mongo"
	"github.com/custodia-labs/fireload-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/fireload-cli/internal/core/domain"
	"github.com/custodia-labs/fireload-cli/internal/core/ports/driven"
)

// Backend identifiers accepted by --store and the store.backend key.
const (
	backendFirestore = "firestore"
	backendMongo     = "mongo"
	backendMemory    = "memory"
)

// defaultEmulatorHost is where the Firestore emulator listens unless
// store.emulator_host says otherwise.
const defaultEmulatorHost = "localhost:8080"

// Package-level collaborators. Init wires the real adapters; tests
// swap them for fakes.
var (
	configStore driven.ConfigStore

	newHistoryStore = func() (driven.HistoryStore, error) {
		return sqlite.NewStore("")
	}

	newDocumentStore = buildDocumentStore
)

// Init wires the default driven adapters. Called once from main before
// Execute.
func Init() error {
	store, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config store: %w", err)
	}
	configStore = store
	return nil
}

// buildDocumentStore constructs the document store for a backend,
// reading connection settings from the config store.
func buildDocumentStore(ctx context.Context, backend string, local bool) (driven.DocumentStore, error) {
	switch backend {
	case backendMemory:
		return memory.NewDocumentStore(), nil

	case backendMongo:
		return mongo.NewStore(ctx, mongo.Config{
			URI:      configStore.GetString("store.mongo_uri"),
			Database: configStore.GetString("store.mongo_database"),
		})

	case backendFirestore:
		cfg := firestore.Config{
			ProjectID: configStore.GetString("store.project"),
			Database:  configStore.GetString("store.database"),
			RateLimit: configStore.GetInt("store.rate_limit"),
		}
		if local {
			cfg.EmulatorHost = configStore.GetString("store.emulator_host")
			if cfg.EmulatorHost == "" {
				cfg.EmulatorHost = defaultEmulatorHost
			}
			// Emulator projects need no real GCP project.
			if cfg.ProjectID == "" {
				cfg.ProjectID = "demo-local"
			}
		}
		return firestore.NewStore(ctx, cfg)

	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedBackend, backend)
	}
}
