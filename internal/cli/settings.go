package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tasknest/tasknest/internal/cli/appctx"
	"github.com/tasknest/tasknest/internal/settings"
	"github.com/tasknest/tasknest/internal/storage"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect and change user settings",
}

var settingsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List settings",
	Long: `Lists configured settings. With --all, every recognized key is shown
along with its allowed values, whether configured or not.`,
	RunE: appctx.WithApp(appctx.DefaultOptions(), runSettingsLs),
}

var settingsGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Print one setting value",
	Args:  cobra.ExactArgs(1),
	RunE:  appctx.WithApp(appctx.DefaultOptions(), runSettingsGet),
}

var settingsSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change a setting",
	Long: `Set validates the pair against the settings schema before writing.
Unknown keys and out-of-contract values are rejected.

Examples:
  tasknest settings set theme dark
  tasknest settings set dayStartHour 7`,
	Args: cobra.ExactArgs(2),
	RunE: appctx.WithApp(appctx.DefaultOptions(), runSettingsSet),
}

var (
	settingsLsAll       bool
	settingsLsPorcelain bool
)

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsLsCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)

	settingsLsCmd.Flags().BoolVarP(&settingsLsAll, "all", "a", false, "Include unset keys with their constraints")
	settingsLsCmd.Flags().BoolVar(&settingsLsPorcelain, "porcelain", false, "Machine-readable output")
}

func runSettingsLs(app *appctx.App, cmd *cobra.Command, args []string) error {
	configured, err := app.Store.Settings().List()
	if err != nil {
		return fmt.Errorf("failed to list settings: %w", err)
	}

	renderer := newRenderer(app, cmd.OutOrStdout(), settingsLsPorcelain)

	if settingsLsAll {
		byKey := make(map[string]string, len(configured))
		for _, s := range configured {
			byKey[s.Key] = s.Value
		}

		keys := settings.Keys()
		rows := make([][]string, 0, len(keys))
		for _, key := range keys {
			value := byKey[key]
			if value == "" {
				value = "-"
			}
			constraint, _ := settings.Describe(key)
			rows = append(rows, []string{key, value, constraint})
		}
		return renderer.RenderTable([]string{"KEY", "VALUE", "ALLOWED"}, rows)
	}

	rows := make([][]string, 0, len(configured))
	for _, s := range configured {
		rows = append(rows, []string{s.Key, s.Value})
	}
	return renderer.RenderTable([]string{"KEY", "VALUE"}, rows)
}

func runSettingsGet(app *appctx.App, cmd *cobra.Command, args []string) error {
	value, err := app.Store.Settings().Get(args[0])
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("setting %s is not configured", args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to get setting: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func runSettingsSet(app *appctx.App, cmd *cobra.Command, args []string) error {
	key, value, err := settings.Validate(args[0], args[1])
	if err != nil {
		return err
	}

	err = app.Store.RunInTransaction(func(tx storage.Dataset) error {
		if err := tx.Settings().Put(key, value); err != nil {
			return fmt.Errorf("failed to store setting: %w", err)
		}
		return recordEvent(tx, "setting", key, "setting.changed")
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Set %s = %s\n", key, value)
	return nil
}
