package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/fireload-cli/internal/adapters/driven/rowsource/csvfile"
	"github.com/custodia-labs/fireload-cli/internal/core/domain"
	"github.com/custodia-labs/fireload-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fireload-cli/internal/core/services"
	"github.com/custodia-labs/fireload-cli/internal/logger"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [csv-file]",
	Short: "Upload a CSV file as documents",
	Long: `Reads a CSV file, groups rows by the DocumentId column and uploads
one document per group. A JSON schema file next to the CSV (same name,
.json extension) shapes the nesting; without one, each document holds
its rows as a flat items array.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

var (
	uploadCollection string
	uploadSchemaPath string
	uploadMerge      bool
	uploadLocal      bool
	uploadBackend    string
	uploadDryRun     bool
)

func init() {
	uploadCmd.Flags().StringVarP(&uploadCollection, "collection", "c", "", "Target collection (default: CSV file name)")
	uploadCmd.Flags().StringVar(&uploadSchemaPath, "schema", "", "Schema file path (default: CSV path with .json extension)")
	uploadCmd.Flags().BoolVar(&uploadMerge, "merge", true, "Merge into existing documents instead of replacing them")
	uploadCmd.Flags().BoolVar(&uploadLocal, "local", false, "Target a local Firestore emulator")
	uploadCmd.Flags().StringVar(&uploadBackend, "store", "", "Store backend: firestore, mongo or memory")
	uploadCmd.Flags().BoolVar(&uploadDryRun, "dry-run", false, "Assemble documents without uploading them")

	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	ctx := cmd.Context()
	spec := &domain.CollectionSpec{
		FilePath:   args[0],
		Name:       resolveCollection(cmd),
		SchemaPath: uploadSchemaPath,
		Merge:      resolveMerge(cmd),
	}

	backend := resolveBackend(cmd)
	store, err := newDocumentStore(ctx, backend, uploadLocal)
	if err != nil {
		return fmt.Errorf("connect %s store: %w", backend, err)
	}
	defer store.Close()

	history := openHistory()
	if history != nil {
		defer history.Close()
	}

	assembler := services.Assembler{
		IdentifierColumn:  configStore.GetString("upload.id_column"),
		IncludeIdentifier: configStore.GetBool("upload.include_identifier"),
	}

	svc := services.NewUploadService(csvfile.NewFactory(), store, history, backend, assembler)
	result, err := svc.Upload(ctx, spec)
	if err != nil {
		return err
	}

	if uploadDryRun {
		cmd.Printf("Dry run: would upload %d documents to %q (%d rows, %d warnings)\n",
			result.Documents, result.Collection, result.Rows, result.Warnings)
		return nil
	}

	cmd.Printf("Uploaded %d documents to %q (%d rows, %d warnings)\n",
		result.Documents, result.Collection, result.Rows, result.Warnings)
	return nil
}

// resolveCollection applies the flag > config precedence. An empty
// result defers to the CSV file stem.
func resolveCollection(cmd *cobra.Command) string {
	if cmd.Flags().Changed("collection") {
		return uploadCollection
	}
	return configStore.GetString("upload.collection")
}

// resolveMerge applies flag > config > default(true).
func resolveMerge(cmd *cobra.Command) bool {
	if cmd.Flags().Changed("merge") {
		return uploadMerge
	}
	if _, ok := configStore.Get("upload.merge"); ok {
		return configStore.GetBool("upload.merge")
	}
	return true
}

// resolveBackend applies dry-run > flag > config > firestore.
func resolveBackend(cmd *cobra.Command) string {
	if uploadDryRun {
		return backendMemory
	}
	if cmd.Flags().Changed("store") {
		return uploadBackend
	}
	if backend := configStore.GetString("store.backend"); backend != "" {
		return backend
	}
	return backendFirestore
}

// openHistory opens the upload journal. Journalling is optional; a
// failure degrades to an unjournalled run.
func openHistory() driven.HistoryStore {
	history, err := newHistoryStore()
	if err != nil {
		logger.Warn("Upload journal unavailable: %v", err)
		return nil
	}
	return history
}
