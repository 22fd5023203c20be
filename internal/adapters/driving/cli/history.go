package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent upload runs",
	RunE:  runHistory,
}

var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of runs to show")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	history, err := newHistoryStore()
	if err != nil {
		return fmt.Errorf("open upload journal: %w", err)
	}
	defer history.Close()

	runs, err := history.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("read upload journal: %w", err)
	}

	if len(runs) == 0 {
		cmd.Println("No upload runs recorded yet")
		return nil
	}

	for _, run := range runs {
		cmd.Printf("%s  %s\n", run.FinishedAt.Local().Format("2006-01-02 15:04:05"), run.ID)
		cmd.Printf("    %s -> %s (%s)\n", run.CSVPath, run.Collection, run.Backend)
		cmd.Printf("    %d rows, %d documents, %d warnings\n", run.Rows, run.Documents, run.Warnings)
	}

	return nil
}
