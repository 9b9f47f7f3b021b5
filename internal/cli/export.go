package cli

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tasknest/tasknest/internal/cli/appctx"
	"github.com/tasknest/tasknest/internal/snapshot"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the whole dataset to a snapshot file",
	Long: `Export serializes every project, section, task, label, comment,
attachment, and setting into one snapshot document and writes it
atomically. The default output path sits next to the database file.

Examples:
  tasknest export
  tasknest export --out backup.json
  tasknest export --out backup.json --canonical`,
	RunE: appctx.WithApp(appctx.DefaultOptions(), runExport),
}

var (
	exportOut       string
	exportCanonical bool
	exportJSON      bool
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output path (defaults to the configured snapshot path)")
	exportCmd.Flags().BoolVar(&exportCanonical, "canonical", false, "Write compact canonical JSON instead of indented")
	exportCmd.Flags().BoolVar(&exportJSON, "json", false, "Output result as JSON")
}

func runExport(app *appctx.App, cmd *cobra.Command, args []string) error {
	outPath := exportOut
	if outPath == "" {
		outPath = app.Config.SnapshotPath
	}

	result, err := snapshot.Export(app.Store, snapshot.ExportOptions{
		OutputPath: outPath,
		Canonical:  exportCanonical,
	})
	if err != nil {
		return fmt.Errorf("failed to export snapshot: %w", err)
	}

	if exportJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Exported snapshot to %s (%s)\n", result.OutputPath, humanize.Bytes(uint64(result.SizeBytes)))
	fmt.Fprintf(out, "  rev %s\n", result.SnapshotRev)
	printCounts(out, result.Counts, nil)

	return nil
}
