package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tasknest/tasknest/internal/cli/appctx"
	"github.com/tasknest/tasknest/internal/domain"
	"github.com/tasknest/tasknest/internal/id"
	"github.com/tasknest/tasknest/internal/storage"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var projectAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	RunE:  appctx.WithApp(appctx.DefaultOptions(), runProjectAdd),
}

var projectLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List projects",
	RunE:  appctx.WithApp(appctx.DefaultOptions(), runProjectLs),
}

var (
	projectAddOrder    int
	projectLsJSON      bool
	projectLsPorcelain bool
)

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectLsCmd)

	projectAddCmd.Flags().IntVar(&projectAddOrder, "order", 0, "Sort position among projects")
	projectLsCmd.Flags().BoolVar(&projectLsJSON, "json", false, "Output as JSON")
	projectLsCmd.Flags().BoolVar(&projectLsPorcelain, "porcelain", false, "Machine-readable output")
}

func runProjectAdd(app *appctx.App, cmd *cobra.Command, args []string) error {
	project := &domain.Project{
		ID:        id.New(),
		Name:      args[0],
		SortOrder: projectAddOrder,
	}
	err := app.Store.RunInTransaction(func(tx storage.Dataset) error {
		if err := tx.Projects().Create(project); err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}
		return recordEvent(tx, "project", project.ID, "project.created")
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Created project %s (%s)\n", project.Name, project.ID)
	return nil
}

func runProjectLs(app *appctx.App, cmd *cobra.Command, args []string) error {
	projects, err := app.Store.Projects().List()
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	if projectLsJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(projects)
	}

	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{p.ID, p.Name, strconv.Itoa(p.SortOrder)})
	}
	return newRenderer(app, cmd.OutOrStdout(), projectLsPorcelain).RenderTable([]string{"ID", "NAME", "ORDER"}, rows)
}
