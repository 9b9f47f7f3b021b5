package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tasknest/tasknest/internal/attach"
	"github.com/tasknest/tasknest/internal/cli/appctx"
	"github.com/tasknest/tasknest/internal/domain"
	"github.com/tasknest/tasknest/internal/id"
	"github.com/tasknest/tasknest/internal/storage"
)

var attachCmd = &cobra.Command{
	Use:   "attach",
	Short: "Manage task attachments",
	Long: `Attachments are stored inside the database and travel with snapshot
exports. The configured size limit applies on the way in.`,
}

var attachAddCmd = &cobra.Command{
	Use:   "add TASK_ID FILE",
	Short: "Attach a file to a task",
	Long: `Attaches a file to a task. Use - to read from stdin, in which case
--name is required.

Examples:
  tasknest attach add TASK_ID report.pdf
  cat notes.txt | tasknest attach add TASK_ID - --name notes.txt`,
	Args: cobra.ExactArgs(2),
	RunE: appctx.WithApp(appctx.DefaultOptions(), runAttachAdd),
}

var attachLsCmd = &cobra.Command{
	Use:   "ls TASK_ID",
	Short: "List attachments on a task",
	Args:  cobra.ExactArgs(1),
	RunE:  appctx.WithApp(appctx.DefaultOptions(), runAttachLs),
}

var attachSaveCmd = &cobra.Command{
	Use:   "save ATTACHMENT_ID",
	Short: "Write an attachment payload back to disk",
	Long:  `Writes an attachment payload to disk. Use --out - to write to stdout.`,
	Args:  cobra.ExactArgs(1),
	RunE:  appctx.WithApp(appctx.DefaultOptions(), runAttachSave),
}

var (
	attachAddName     string
	attachLsJSON      bool
	attachLsPorcelain bool
	attachSaveOut     string
)

func init() {
	rootCmd.AddCommand(attachCmd)
	attachCmd.AddCommand(attachAddCmd)
	attachCmd.AddCommand(attachLsCmd)
	attachCmd.AddCommand(attachSaveCmd)

	attachAddCmd.Flags().StringVar(&attachAddName, "name", "", "Filename to store (defaults to the file's base name)")
	attachLsCmd.Flags().BoolVar(&attachLsJSON, "json", false, "Output as JSON")
	attachLsCmd.Flags().BoolVar(&attachLsPorcelain, "porcelain", false, "Machine-readable output")
	attachSaveCmd.Flags().StringVar(&attachSaveOut, "out", "", "Output path (defaults to the stored filename)")
}

func runAttachAdd(app *appctx.App, cmd *cobra.Command, args []string) error {
	taskID, file := args[0], args[1]

	ok, err := app.Store.Tasks().Exists(taskID)
	if err != nil {
		return fmt.Errorf("failed to look up task: %w", err)
	}
	if !ok {
		return fmt.Errorf("task %s not found", taskID)
	}

	filename := attachAddName
	if filename == "" {
		if file == "-" {
			return fmt.Errorf("--name is required when reading from stdin")
		}
		filename = filepath.Base(file)
	}

	data, err := attach.ReadFile(file, int64(app.Config.AttachmentsMaxMB))
	if err != nil {
		return fmt.Errorf("failed to read attachment: %w", err)
	}

	attachment := &domain.Attachment{
		ID:        id.New(),
		TaskID:    taskID,
		Filename:  filename,
		MimeType:  attach.DetectMimeType(filename),
		SizeBytes: int64(len(data)),
		Data:      data,
	}
	err = app.Store.RunInTransaction(func(tx storage.Dataset) error {
		if err := tx.Attachments().Create(attachment); err != nil {
			return fmt.Errorf("failed to store attachment: %w", err)
		}
		return recordEvent(tx, "attachment", attachment.ID, "attachment.created")
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Attached %s to task %s (%s)\n",
		attachment.Filename, taskID, humanize.Bytes(uint64(attachment.SizeBytes)))
	return nil
}

func runAttachLs(app *appctx.App, cmd *cobra.Command, args []string) error {
	attachments, err := app.Store.Attachments().ListByTask(args[0])
	if err != nil {
		return fmt.Errorf("failed to list attachments: %w", err)
	}

	if attachLsJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(attachments)
	}

	rows := make([][]string, 0, len(attachments))
	for _, a := range attachments {
		rows = append(rows, []string{
			a.ID, a.Filename, a.MimeType,
			humanize.Bytes(uint64(a.SizeBytes)),
			humanize.Time(a.CreatedAt),
		})
	}
	return newRenderer(app, cmd.OutOrStdout(), attachLsPorcelain).RenderTable([]string{"ID", "FILENAME", "TYPE", "SIZE", "ADDED"}, rows)
}

func runAttachSave(app *appctx.App, cmd *cobra.Command, args []string) error {
	attachment, err := app.Store.Attachments().Get(args[0])
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("attachment %s not found", args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to get attachment: %w", err)
	}

	outPath := attachSaveOut
	if outPath == "" {
		outPath = attachment.Filename
	}

	if err := attach.WriteFile(outPath, attachment.Data); err != nil {
		return fmt.Errorf("failed to write attachment: %w", err)
	}

	if outPath != "-" {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved %s (%s)\n", outPath, humanize.Bytes(uint64(attachment.SizeBytes)))
	}
	return nil
}
