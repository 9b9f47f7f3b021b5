package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/tasknest/tasknest/internal/cli/appctx"
	"github.com/tasknest/tasknest/internal/config"
	"github.com/tasknest/tasknest/internal/db"
	"github.com/tasknest/tasknest/internal/store"
	"github.com/tasknest/tasknest/internal/testutil"
)

func createTestApp(t *testing.T, database *db.DB, dbPath string) *appctx.App {
	t.Helper()

	return &appctx.App{
		Config: &config.Config{
			DBPath:           dbPath,
			SnapshotPath:     filepath.Join(filepath.Dir(dbPath), "snapshot.json"),
			AttachmentsMaxMB: 50,
			Output:           "table",
		},
		DB:    database,
		Store: store.New(database),
	}
}

func newTestCommand(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	buf := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	return cmd, buf
}

func TestProjectTaskCommentFlow(t *testing.T) {
	database, dbPath := testutil.TempDB(t)
	app := createTestApp(t, database, dbPath)

	cmd, buf := newTestCommand(t)
	if err := runProjectAdd(app, cmd, []string{"Home"}); err != nil {
		t.Fatalf("runProjectAdd failed: %v", err)
	}
	if !strings.Contains(buf.String(), "✓ Created project Home") {
		t.Errorf("Unexpected output: %s", buf.String())
	}

	projects, err := app.Store.Projects().List()
	if err != nil || len(projects) != 1 {
		t.Fatalf("Expected 1 project, got %d (err %v)", len(projects), err)
	}

	taskAddProject = projects[0].ID
	defer func() { taskAddProject = "" }()

	cmd, _ = newTestCommand(t)
	if err := runTaskAdd(app, cmd, []string{"Water", "the", "plants"}); err != nil {
		t.Fatalf("runTaskAdd failed: %v", err)
	}

	tasks, err := app.Store.Tasks().List()
	if err != nil || len(tasks) != 1 {
		t.Fatalf("Expected 1 task, got %d (err %v)", len(tasks), err)
	}
	if tasks[0].Content != "Water the plants" {
		t.Errorf("Expected joined content, got %q", tasks[0].Content)
	}
	if tasks[0].ProjectID == nil || *tasks[0].ProjectID != projects[0].ID {
		t.Errorf("Task not linked to project")
	}

	cmd, _ = newTestCommand(t)
	if err := runCommentAdd(app, cmd, []string{tasks[0].ID, "soil", "still", "wet"}); err != nil {
		t.Fatalf("runCommentAdd failed: %v", err)
	}

	cmd, buf = newTestCommand(t)
	if err := runCommentLs(app, cmd, []string{tasks[0].ID}); err != nil {
		t.Fatalf("runCommentLs failed: %v", err)
	}
	if !strings.Contains(buf.String(), "soil still wet") {
		t.Errorf("Comment missing from listing: %s", buf.String())
	}
}

func TestInfoReportsCounts(t *testing.T) {
	database, dbPath := testutil.TempDB(t)
	app := createTestApp(t, database, dbPath)

	cmd, _ := newTestCommand(t)
	if err := runProjectAdd(app, cmd, []string{"Inbox"}); err != nil {
		t.Fatalf("runProjectAdd failed: %v", err)
	}

	infoJSON = true
	defer func() { infoJSON = false }()

	cmd, buf := newTestCommand(t)
	if err := runInfo(app, cmd, nil); err != nil {
		t.Fatalf("runInfo failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"schema_version": 1`) {
		t.Errorf("Expected schema version in output: %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"projects": 1`) {
		t.Errorf("Expected project count in output: %s", buf.String())
	}
}

func TestVersionReportsSnapshotFormat(t *testing.T) {
	cmd, buf := newTestCommand(t)
	if err := runVersion(cmd, nil); err != nil {
		t.Fatalf("runVersion failed: %v", err)
	}
	if !strings.Contains(buf.String(), "snapshot format version 1") {
		t.Errorf("Unexpected output: %s", buf.String())
	}
}
