package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tasknest/tasknest/internal/cli/appctx"
	"github.com/tasknest/tasknest/internal/snapshot"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Merge a snapshot file into the dataset",
	Long: `Import reads a snapshot document and merges it into the current
dataset. Imported rows receive fresh identifiers and references between
them are rewritten to match. Rows whose parents cannot be resolved are
skipped and tallied; a corrupt document aborts with no changes at all.

Examples:
  tasknest import backup.json
  tasknest import backup.json --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: appctx.WithApp(appctx.DefaultOptions(), runImport),
}

var (
	importDryRun bool
	importJSON   bool
)

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Report what would be imported without writing anything")
	importCmd.Flags().BoolVar(&importJSON, "json", false, "Output result as JSON")
}

func runImport(app *appctx.App, cmd *cobra.Command, args []string) error {
	result, err := snapshot.ImportFile(app.Store, snapshot.ImportOptions{
		InputPath: args[0],
		DryRun:    importDryRun,
	})
	if err != nil {
		return fmt.Errorf("failed to import snapshot: %w", err)
	}

	if importJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	out := cmd.OutOrStdout()
	if importDryRun {
		fmt.Fprintf(out, "✓ Dry run: %s merges cleanly, nothing written\n", args[0])
	} else {
		fmt.Fprintf(out, "✓ Imported snapshot from %s\n", args[0])
	}
	printCounts(out, result.Counts, result.Skipped)

	return nil
}
