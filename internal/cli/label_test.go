package cli

import (
	"strings"
	"testing"

	"github.com/tasknest/tasknest/internal/domain"
	"github.com/tasknest/tasknest/internal/id"
	"github.com/tasknest/tasknest/internal/testutil"
)

func TestLabelAssignByNameAndByID(t *testing.T) {
	database, dbPath := testutil.TempDB(t)
	app := createTestApp(t, database, dbPath)

	task := &domain.Task{ID: id.New(), Content: "labeled"}
	if err := app.Store.Tasks().Create(task); err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	labelAddColor = "#ff0000"
	defer func() { labelAddColor = "" }()

	cmd, _ := newTestCommand(t)
	if err := runLabelAdd(app, cmd, []string{"urgent"}); err != nil {
		t.Fatalf("runLabelAdd failed: %v", err)
	}

	cmd, buf := newTestCommand(t)
	if err := runLabelAssign(app, cmd, []string{task.ID, "urgent"}); err != nil {
		t.Fatalf("runLabelAssign by name failed: %v", err)
	}
	if !strings.Contains(buf.String(), "✓ Assigned label urgent") {
		t.Errorf("Unexpected output: %s", buf.String())
	}

	labels, err := app.Store.Labels().ListByTask(task.ID)
	if err != nil || len(labels) != 1 {
		t.Fatalf("Expected 1 label on task, got %d (err %v)", len(labels), err)
	}

	// Assigning again by id is idempotent
	cmd, _ = newTestCommand(t)
	if err := runLabelAssign(app, cmd, []string{task.ID, labels[0].ID}); err != nil {
		t.Fatalf("runLabelAssign by id failed: %v", err)
	}
	labels, _ = app.Store.Labels().ListByTask(task.ID)
	if len(labels) != 1 {
		t.Errorf("Expected assignment to stay single, got %d", len(labels))
	}
}

func TestLabelAssignUnknownLabel(t *testing.T) {
	database, dbPath := testutil.TempDB(t)
	app := createTestApp(t, database, dbPath)

	task := &domain.Task{ID: id.New(), Content: "no labels"}
	if err := app.Store.Tasks().Create(task); err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	cmd, _ := newTestCommand(t)
	err := runLabelAssign(app, cmd, []string{task.ID, "nothere"})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("Expected not-found error, got %v", err)
	}
}

func TestLabelLsShowsColor(t *testing.T) {
	database, dbPath := testutil.TempDB(t)
	app := createTestApp(t, database, dbPath)

	labelAddColor = "#00ff00"
	defer func() { labelAddColor = "" }()

	cmd, _ := newTestCommand(t)
	if err := runLabelAdd(app, cmd, []string{"green"}); err != nil {
		t.Fatalf("runLabelAdd failed: %v", err)
	}

	cmd, buf := newTestCommand(t)
	if err := runLabelLs(app, cmd, nil); err != nil {
		t.Fatalf("runLabelLs failed: %v", err)
	}
	if !strings.Contains(buf.String(), "green") || !strings.Contains(buf.String(), "#00ff00") {
		t.Errorf("Expected label with color in output: %s", buf.String())
	}
}
