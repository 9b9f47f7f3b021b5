package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tasknest/tasknest/internal/cli/appctx"
	"github.com/tasknest/tasknest/internal/domain"
	"github.com/tasknest/tasknest/internal/id"
	"github.com/tasknest/tasknest/internal/storage"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add CONTENT...",
	Short: "Create a task",
	Long: `Creates a task. Without --project or --section the task lands in the
inbox. With --section the project is derived from the section.

Examples:
  tasknest task add Buy milk
  tasknest task add --project PROJECT_ID --due 2026-09-01 "File taxes"`,
	Args: cobra.MinimumNArgs(1),
	RunE: appctx.WithApp(appctx.DefaultOptions(), runTaskAdd),
}

var taskLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List tasks",
	Long:  `Lists open tasks. Completed tasks are hidden unless --all is given.`,
	RunE:  appctx.WithApp(appctx.DefaultOptions(), runTaskLs),
}

var taskDoneCmd = &cobra.Command{
	Use:   "done TASK_ID",
	Short: "Mark a task completed",
	Args:  cobra.ExactArgs(1),
	RunE:  appctx.WithApp(appctx.DefaultOptions(), runTaskDone),
}

var (
	taskAddProject  string
	taskAddSection  string
	taskAddDue      string
	taskAddOrder    int
	taskLsProject   string
	taskLsAll       bool
	taskLsJSON      bool
	taskLsPorcelain bool
)

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskLsCmd)
	taskCmd.AddCommand(taskDoneCmd)

	taskAddCmd.Flags().StringVar(&taskAddProject, "project", "", "Project id the task belongs to")
	taskAddCmd.Flags().StringVar(&taskAddSection, "section", "", "Section id the task belongs to")
	taskAddCmd.Flags().StringVar(&taskAddDue, "due", "", "Due date (YYYY-MM-DD or RFC 3339)")
	taskAddCmd.Flags().IntVar(&taskAddOrder, "order", 0, "Sort position")
	taskLsCmd.Flags().StringVar(&taskLsProject, "project", "", "Only tasks of this project")
	taskLsCmd.Flags().BoolVarP(&taskLsAll, "all", "a", false, "Include completed tasks")
	taskLsCmd.Flags().BoolVar(&taskLsJSON, "json", false, "Output as JSON")
	taskLsCmd.Flags().BoolVar(&taskLsPorcelain, "porcelain", false, "Machine-readable output")
}

// parseDueDate accepts a bare date or a full RFC 3339 timestamp.
func parseDueDate(s string) (*time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q: expected YYYY-MM-DD or RFC 3339", s)
	}
	t = t.UTC()
	return &t, nil
}

func runTaskAdd(app *appctx.App, cmd *cobra.Command, args []string) error {
	task := &domain.Task{
		ID:        id.New(),
		Content:   strings.Join(args, " "),
		SortOrder: taskAddOrder,
	}

	if taskAddSection != "" {
		section, err := app.Store.Sections().Get(taskAddSection)
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("section %s not found", taskAddSection)
		}
		if err != nil {
			return fmt.Errorf("failed to look up section: %w", err)
		}
		task.SectionID = &section.ID
		task.ProjectID = &section.ProjectID
	} else if taskAddProject != "" {
		ok, err := app.Store.Projects().Exists(taskAddProject)
		if err != nil {
			return fmt.Errorf("failed to look up project: %w", err)
		}
		if !ok {
			return fmt.Errorf("project %s not found", taskAddProject)
		}
		projectID := taskAddProject
		task.ProjectID = &projectID
	}

	if taskAddDue != "" {
		due, err := parseDueDate(taskAddDue)
		if err != nil {
			return err
		}
		task.DueAt = due
	}

	err := app.Store.RunInTransaction(func(tx storage.Dataset) error {
		if err := tx.Tasks().Create(task); err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		return recordEvent(tx, "task", task.ID, "task.created")
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Created task %s\n", task.ID)
	return nil
}

func runTaskLs(app *appctx.App, cmd *cobra.Command, args []string) error {
	var (
		tasks []*domain.Task
		err   error
	)
	if taskLsProject != "" {
		tasks, err = app.Store.Tasks().ListByProject(taskLsProject)
	} else {
		tasks, err = app.Store.Tasks().List()
	}
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	if !taskLsAll {
		open := tasks[:0]
		for _, t := range tasks {
			if !t.Completed {
				open = append(open, t)
			}
		}
		tasks = open
	}

	if taskLsJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(tasks)
	}

	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		project := "-"
		if t.ProjectID != nil {
			project = *t.ProjectID
		}
		rows = append(rows, []string{checkMark(t.Completed), t.ID, t.Content, project, formatTimePtr(t.DueAt)})
	}
	return newRenderer(app, cmd.OutOrStdout(), taskLsPorcelain).RenderTable([]string{" ", "ID", "CONTENT", "PROJECT", "DUE"}, rows)
}

func runTaskDone(app *appctx.App, cmd *cobra.Command, args []string) error {
	err := app.Store.RunInTransaction(func(tx storage.Dataset) error {
		if err := tx.Tasks().SetCompleted(args[0], time.Now().UTC()); err != nil {
			return err
		}
		return recordEvent(tx, "task", args[0], "task.completed")
	})
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("task %s not found", args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Completed task %s\n", args[0])
	return nil
}
