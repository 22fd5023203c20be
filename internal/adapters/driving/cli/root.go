// Package cli implements the fireload command tree.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/fireload-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verboseFlag bool
	debugFlag   bool
)

var rootCmd = &cobra.Command{
	Use:   "fireload",
	Short: "Upload CSV data as nested documents to a document store",
	Long: `fireload converts tabular CSV data into nested documents and uploads
them to a document store (Firestore by default). Rows sharing an
identifier column fold into one document; an optional JSON schema
next to the CSV file shapes the nesting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
		logger.SetDebug(debugFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable informational output")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug output")
}

// Execute runs the command tree. The context carries process signal
// cancellation so in-flight uploads stop cleanly on interrupt.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
