package cli

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/tasknest/tasknest/internal/cli/appctx"
	"github.com/tasknest/tasknest/internal/domain"
	"github.com/tasknest/tasknest/internal/render"
	"github.com/tasknest/tasknest/internal/storage"
)

// exitError returns an error that will cause the CLI to exit with the given code
func exitError(code int, err error) error {
	// Exit code plumbing is not wired up yet; every failure exits 1
	return err
}

// recordEvent appends a mutation to the activity log in the same
// transaction as the mutation itself.
func recordEvent(tx storage.Dataset, resourceType, resourceID, eventType string) error {
	if err := tx.Events().Log(&domain.Event{
		ResourceType: resourceType,
		ResourceID:   &resourceID,
		EventType:    eventType,
	}); err != nil {
		return fmt.Errorf("failed to log event: %w", err)
	}
	return nil
}

// newRenderer builds a renderer for listing commands. The format comes
// from the configured output preference; porcelain is per-command.
func newRenderer(app *appctx.App, w io.Writer, porcelain bool) *render.Renderer {
	format := render.FormatTable
	if app.Config != nil {
		switch app.Config.Output {
		case "tsv":
			format = render.FormatTSV
		case "json":
			format = render.FormatJSON
		}
	}
	return render.NewRenderer(w, render.Options{
		Format:    format,
		Porcelain: porcelain,
	})
}

// printCounts writes per-kind row tallies in a stable order, with
// skip counts appended where present.
func printCounts(w io.Writer, counts, skipped map[string]int) {
	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	for _, kind := range kinds {
		line := fmt.Sprintf("  %-17s %d", kind, counts[kind])
		if n := skipped[kind]; n > 0 {
			line += fmt.Sprintf("  (%d skipped)", n)
		}
		fmt.Fprintln(w, line)
	}
}

// formatTimePtr renders a nullable timestamp for table cells.
func formatTimePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// checkMark renders a completion flag for table cells.
func checkMark(done bool) string {
	if done {
		return "✓"
	}
	return " "
}
