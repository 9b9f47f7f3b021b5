package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tasknest/tasknest/internal/cli/appctx"
	"github.com/tasknest/tasknest/internal/domain"
	"github.com/tasknest/tasknest/internal/id"
	"github.com/tasknest/tasknest/internal/storage"
)

var labelCmd = &cobra.Command{
	Use:   "label",
	Short: "Manage labels",
}

var labelAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Create a label",
	Args:  cobra.ExactArgs(1),
	RunE:  appctx.WithApp(appctx.DefaultOptions(), runLabelAdd),
}

var labelLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List labels",
	RunE:  appctx.WithApp(appctx.DefaultOptions(), runLabelLs),
}

var labelAssignCmd = &cobra.Command{
	Use:   "assign TASK_ID LABEL",
	Short: "Attach a label to a task",
	Long:  `Attaches a label to a task. LABEL may be a label id or a label name.`,
	Args:  cobra.ExactArgs(2),
	RunE:  appctx.WithApp(appctx.DefaultOptions(), runLabelAssign),
}

var (
	labelAddColor    string
	labelLsJSON      bool
	labelLsPorcelain bool
)

func init() {
	rootCmd.AddCommand(labelCmd)
	labelCmd.AddCommand(labelAddCmd)
	labelCmd.AddCommand(labelLsCmd)
	labelCmd.AddCommand(labelAssignCmd)

	labelAddCmd.Flags().StringVar(&labelAddColor, "color", "", "Display color (#rrggbb)")
	labelLsCmd.Flags().BoolVar(&labelLsJSON, "json", false, "Output as JSON")
	labelLsCmd.Flags().BoolVar(&labelLsPorcelain, "porcelain", false, "Machine-readable output")
}

func runLabelAdd(app *appctx.App, cmd *cobra.Command, args []string) error {
	label := &domain.Label{
		ID:   id.New(),
		Name: args[0],
	}
	if labelAddColor != "" {
		color := labelAddColor
		label.Color = &color
	}

	err := app.Store.RunInTransaction(func(tx storage.Dataset) error {
		if err := tx.Labels().Create(label); err != nil {
			return fmt.Errorf("failed to create label: %w", err)
		}
		return recordEvent(tx, "label", label.ID, "label.created")
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Created label %s (%s)\n", label.Name, label.ID)
	return nil
}

func runLabelLs(app *appctx.App, cmd *cobra.Command, args []string) error {
	labels, err := app.Store.Labels().List()
	if err != nil {
		return fmt.Errorf("failed to list labels: %w", err)
	}

	if labelLsJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(labels)
	}

	rows := make([][]string, 0, len(labels))
	for _, l := range labels {
		color := "-"
		if l.Color != nil {
			color = *l.Color
		}
		rows = append(rows, []string{l.ID, l.Name, color})
	}
	return newRenderer(app, cmd.OutOrStdout(), labelLsPorcelain).RenderTable([]string{"ID", "NAME", "COLOR"}, rows)
}

func runLabelAssign(app *appctx.App, cmd *cobra.Command, args []string) error {
	taskID, labelArg := args[0], args[1]

	ok, err := app.Store.Tasks().Exists(taskID)
	if err != nil {
		return fmt.Errorf("failed to look up task: %w", err)
	}
	if !ok {
		return fmt.Errorf("task %s not found", taskID)
	}

	label, err := resolveLabel(app, labelArg)
	if err != nil {
		return err
	}

	err = app.Store.RunInTransaction(func(tx storage.Dataset) error {
		if err := tx.Labels().Assign(taskID, label.ID); err != nil {
			return fmt.Errorf("failed to assign label: %w", err)
		}
		return recordEvent(tx, "task", taskID, "label.assigned")
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Assigned label %s to task %s\n", label.Name, taskID)
	return nil
}

// resolveLabel accepts a label id or a label name.
func resolveLabel(app *appctx.App, arg string) (*domain.Label, error) {
	if id.IsValid(arg) {
		label, err := app.Store.Labels().Get(arg)
		if err == nil {
			return label, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up label: %w", err)
		}
	}

	label, err := app.Store.Labels().GetByName(arg)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("label %s not found", arg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up label: %w", err)
	}
	return label, nil
}
