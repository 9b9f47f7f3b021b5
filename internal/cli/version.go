package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tasknest/tasknest/internal/snapshot"
)

var (
	// Version information (set by build flags)
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Displays version, commit, build date, and the snapshot format version.`,
	RunE:  runVersion,
}

var versionJSON bool

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Output as JSON")
}

func runVersion(cmd *cobra.Command, args []string) error {
	if versionJSON {
		output := map[string]interface{}{
			"version":         Version,
			"commit":          GitCommit,
			"build_date":      BuildDate,
			"snapshot_format": snapshot.FormatVersion,
		}
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(output)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "tasknest %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	fmt.Fprintf(cmd.OutOrStdout(), "snapshot format version %d\n", snapshot.FormatVersion)
	return nil
}
