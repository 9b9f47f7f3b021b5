package cli

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tasknest/tasknest/internal/cli/appctx"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show database path, schema version, and row counts",
	RunE:  appctx.WithApp(appctx.DefaultOptions(), runInfo),
}

var infoJSON bool

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "Output as JSON")
}

// infoTables lists the user-facing tables in display order.
var infoTables = []string{
	"projects", "sections", "tasks", "labels",
	"task_labels", "comments", "attachments", "settings",
}

func runInfo(app *appctx.App, cmd *cobra.Command, args []string) error {
	version, err := app.DB.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	size := app.DB.SizeBytes()

	counts := make(map[string]int, len(infoTables))
	for _, table := range infoTables {
		var n int
		if err := app.DB.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			return fmt.Errorf("failed to count %s: %w", table, err)
		}
		counts[table] = n
	}

	if infoJSON {
		output := map[string]interface{}{
			"db_path":        app.DB.Path(),
			"schema_version": version,
			"size_bytes":     size,
			"counts":         counts,
		}
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(output)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Database:       %s\n", app.DB.Path())
	fmt.Fprintf(out, "Schema version: %d\n", version)
	fmt.Fprintf(out, "Size:           %s\n", humanize.Bytes(uint64(size)))
	fmt.Fprintln(out)
	for _, table := range infoTables {
		fmt.Fprintf(out, "  %-13s %d\n", table, counts[table])
	}

	return nil
}
