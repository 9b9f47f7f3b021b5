package cli

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tasknest/tasknest/internal/cli/appctx"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent activity",
	Long: `Log prints the most recent entries from the activity log, newest
first. Snapshot exports and imports are recorded here along with their
row counts.`,
	RunE: appctx.WithApp(appctx.DefaultOptions(), runLog),
}

var (
	logLimit int
	logJSON  bool
)

func init() {
	rootCmd.AddCommand(logCmd)

	logCmd.Flags().IntVarP(&logLimit, "limit", "n", 20, "Maximum number of entries to show")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "Output as JSON")
}

func runLog(app *appctx.App, cmd *cobra.Command, args []string) error {
	events, err := app.Store.Events().ListRecent(logLimit)
	if err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}

	if logJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(events)
	}

	out := cmd.OutOrStdout()
	for _, e := range events {
		target := e.ResourceType
		if e.ResourceID != nil {
			target += " " + *e.ResourceID
		}
		fmt.Fprintf(out, "%-16s %-20s %s\n", humanize.Time(e.Timestamp), e.EventType, target)
	}

	return nil
}
