package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tasknest",
	Short: "Local-first task manager with portable snapshots",
	Long: `tasknest is a personal task manager on a SQLite backend. Projects,
sections, tasks, labels, comments, and attachments live in one database
file; the snapshot commands carry whole datasets between machines as a
single JSON document.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to database file (overrides TASKNEST_DB_PATH)")
}
