package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tasknest/tasknest/internal/cli/appctx"
	"github.com/tasknest/tasknest/internal/domain"
	"github.com/tasknest/tasknest/internal/id"
	"github.com/tasknest/tasknest/internal/storage"
)

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Manage task comments",
}

var commentAddCmd = &cobra.Command{
	Use:   "add TASK_ID CONTENT...",
	Short: "Add a comment to a task",
	Args:  cobra.MinimumNArgs(2),
	RunE:  appctx.WithApp(appctx.DefaultOptions(), runCommentAdd),
}

var commentLsCmd = &cobra.Command{
	Use:   "ls TASK_ID",
	Short: "List comments on a task, oldest first",
	Args:  cobra.ExactArgs(1),
	RunE:  appctx.WithApp(appctx.DefaultOptions(), runCommentLs),
}

var commentLsJSON bool

func init() {
	rootCmd.AddCommand(commentCmd)
	commentCmd.AddCommand(commentAddCmd)
	commentCmd.AddCommand(commentLsCmd)

	commentLsCmd.Flags().BoolVar(&commentLsJSON, "json", false, "Output as JSON")
}

func runCommentAdd(app *appctx.App, cmd *cobra.Command, args []string) error {
	taskID := args[0]

	ok, err := app.Store.Tasks().Exists(taskID)
	if err != nil {
		return fmt.Errorf("failed to look up task: %w", err)
	}
	if !ok {
		return fmt.Errorf("task %s not found", taskID)
	}

	comment := &domain.Comment{
		ID:      id.New(),
		TaskID:  taskID,
		Content: strings.Join(args[1:], " "),
	}
	err = app.Store.RunInTransaction(func(tx storage.Dataset) error {
		if err := tx.Comments().Create(comment); err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}
		return recordEvent(tx, "comment", comment.ID, "comment.created")
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Added comment %s\n", comment.ID)
	return nil
}

func runCommentLs(app *appctx.App, cmd *cobra.Command, args []string) error {
	comments, err := app.Store.Comments().ListByTask(args[0])
	if err != nil {
		return fmt.Errorf("failed to list comments: %w", err)
	}

	if commentLsJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(comments)
	}

	out := cmd.OutOrStdout()
	for _, c := range comments {
		fmt.Fprintf(out, "%s  %s\n  %s\n", c.ID, humanize.Time(c.CreatedAt), c.Content)
	}

	return nil
}
