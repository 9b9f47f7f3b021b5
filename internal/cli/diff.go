package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tasknest/tasknest/internal/snapshot"
)

var diffCmd = &cobra.Command{
	Use:   "diff A B",
	Short: "Compare two snapshot files",
	Long: `Diff parses two snapshot documents, normalizes row ordering, and prints
per-kind row counts followed by a unified diff of the normalized forms.
Documents holding the same data produce no diff regardless of row order.`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

var diffQuiet bool

func init() {
	rootCmd.AddCommand(diffCmd)

	diffCmd.Flags().BoolVarP(&diffQuiet, "quiet", "q", false, "Suppress the count summary, print only the diff")
}

func runDiff(cmd *cobra.Command, args []string) error {
	docA, err := snapshot.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	docB, err := snapshot.Load(args[1])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[1], err)
	}

	text, err := snapshot.DiffDocuments(docA, docB, args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to diff snapshots: %w", err)
	}

	out := cmd.OutOrStdout()
	if !diffQuiet {
		summary := []struct {
			kind string
			a, b int
		}{
			{"projects", len(docA.Projects), len(docB.Projects)},
			{"sections", len(docA.Sections), len(docB.Sections)},
			{"tasks", len(docA.Tasks), len(docB.Tasks)},
			{"labels", len(docA.Labels), len(docB.Labels)},
			{"labelAssignments", len(docA.LabelAssignments), len(docB.LabelAssignments)},
			{"comments", len(docA.Comments), len(docB.Comments)},
			{"attachments", len(docA.Attachments), len(docB.Attachments)},
			{"settings", len(docA.Settings), len(docB.Settings)},
		}
		for _, row := range summary {
			marker := " "
			if row.a != row.b {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %-17s %d -> %d\n", marker, row.kind, row.a, row.b)
		}
		fmt.Fprintln(out)
	}

	if text == "" {
		fmt.Fprintln(out, "Snapshots hold identical data")
		return nil
	}
	fmt.Fprint(out, text)

	return nil
}
