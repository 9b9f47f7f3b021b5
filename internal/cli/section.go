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

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Manage sections within projects",
}

var sectionAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Create a section in a project",
	Args:  cobra.ExactArgs(1),
	RunE:  appctx.WithApp(appctx.DefaultOptions(), runSectionAdd),
}

var sectionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List sections",
	RunE:  appctx.WithApp(appctx.DefaultOptions(), runSectionLs),
}

var (
	sectionAddProject  string
	sectionAddOrder    int
	sectionLsProject   string
	sectionLsJSON      bool
	sectionLsPorcelain bool
)

func init() {
	rootCmd.AddCommand(sectionCmd)
	sectionCmd.AddCommand(sectionAddCmd)
	sectionCmd.AddCommand(sectionLsCmd)

	sectionAddCmd.Flags().StringVar(&sectionAddProject, "project", "", "Project id the section belongs to (required)")
	sectionAddCmd.Flags().IntVar(&sectionAddOrder, "order", 0, "Sort position within the project")
	sectionLsCmd.Flags().StringVar(&sectionLsProject, "project", "", "Only sections of this project")
	sectionLsCmd.Flags().BoolVar(&sectionLsJSON, "json", false, "Output as JSON")
	sectionLsCmd.Flags().BoolVar(&sectionLsPorcelain, "porcelain", false, "Machine-readable output")
}

func runSectionAdd(app *appctx.App, cmd *cobra.Command, args []string) error {
	if sectionAddProject == "" {
		return fmt.Errorf("--project is required")
	}

	ok, err := app.Store.Projects().Exists(sectionAddProject)
	if err != nil {
		return fmt.Errorf("failed to look up project: %w", err)
	}
	if !ok {
		return fmt.Errorf("project %s not found", sectionAddProject)
	}

	section := &domain.Section{
		ID:        id.New(),
		ProjectID: sectionAddProject,
		Name:      args[0],
		SortOrder: sectionAddOrder,
	}
	err = app.Store.RunInTransaction(func(tx storage.Dataset) error {
		if err := tx.Sections().Create(section); err != nil {
			return fmt.Errorf("failed to create section: %w", err)
		}
		return recordEvent(tx, "section", section.ID, "section.created")
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Created section %s (%s)\n", section.Name, section.ID)
	return nil
}

func runSectionLs(app *appctx.App, cmd *cobra.Command, args []string) error {
	var (
		sections []*domain.Section
		err      error
	)
	if sectionLsProject != "" {
		sections, err = app.Store.Sections().ListByProject(sectionLsProject)
	} else {
		sections, err = app.Store.Sections().List()
	}
	if err != nil {
		return fmt.Errorf("failed to list sections: %w", err)
	}

	if sectionLsJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(sections)
	}

	rows := make([][]string, 0, len(sections))
	for _, s := range sections {
		rows = append(rows, []string{s.ID, s.ProjectID, s.Name, strconv.Itoa(s.SortOrder)})
	}
	return newRenderer(app, cmd.OutOrStdout(), sectionLsPorcelain).RenderTable([]string{"ID", "PROJECT", "NAME", "ORDER"}, rows)
}
