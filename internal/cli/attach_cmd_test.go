package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/tasknest/tasknest/internal/domain"
	"github.com/tasknest/tasknest/internal/id"
	"github.com/tasknest/tasknest/internal/testutil"
)

func TestAttachAddAndSaveRoundTrip(t *testing.T) {
	database, dbPath := testutil.TempDB(t)
	app := createTestApp(t, database, dbPath)

	task := &domain.Task{ID: id.New(), Content: "holds a file"}
	if err := app.Store.Tasks().Create(task); err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	const payload = "quarterly numbers\n"
	srcPath := testutil.WriteFile(t, t.TempDir(), "report.txt", payload)

	cmd, buf := newTestCommand(t)
	if err := runAttachAdd(app, cmd, []string{task.ID, srcPath}); err != nil {
		t.Fatalf("runAttachAdd failed: %v", err)
	}
	if !strings.Contains(buf.String(), "✓ Attached report.txt") {
		t.Errorf("Unexpected output: %s", buf.String())
	}

	attachments, err := app.Store.Attachments().ListByTask(task.ID)
	if err != nil || len(attachments) != 1 {
		t.Fatalf("Expected 1 attachment, got %d (err %v)", len(attachments), err)
	}
	if attachments[0].MimeType != "text/plain" {
		t.Errorf("Expected text/plain, got %s", attachments[0].MimeType)
	}
	if string(attachments[0].Data) != payload {
		t.Error("Payload altered in storage")
	}

	outPath := filepath.Join(t.TempDir(), "saved", "report.txt")
	attachSaveOut = outPath
	defer func() { attachSaveOut = "" }()

	cmd, _ = newTestCommand(t)
	if err := runAttachSave(app, cmd, []string{attachments[0].ID}); err != nil {
		t.Fatalf("runAttachSave failed: %v", err)
	}

	if saved := testutil.ReadFile(t, outPath); saved != payload {
		t.Error("Saved payload differs from original")
	}
}

func TestAttachAddUnknownTask(t *testing.T) {
	database, dbPath := testutil.TempDB(t)
	app := createTestApp(t, database, dbPath)

	srcPath := testutil.WriteFile(t, t.TempDir(), "file.txt", "data")

	cmd, _ := newTestCommand(t)
	err := runAttachAdd(app, cmd, []string{"00000000-0000-0000-0000-000000000001", srcPath})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("Expected not-found error, got %v", err)
	}
}

func TestAttachAddStdinRequiresName(t *testing.T) {
	database, dbPath := testutil.TempDB(t)
	app := createTestApp(t, database, dbPath)

	task := &domain.Task{ID: id.New(), Content: "stdin target"}
	if err := app.Store.Tasks().Create(task); err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	cmd, _ := newTestCommand(t)
	err := runAttachAdd(app, cmd, []string{task.ID, "-"})
	if err == nil || !strings.Contains(err.Error(), "--name is required") {
		t.Errorf("Expected name-required error, got %v", err)
	}
}

func TestAttachLsShowsSizes(t *testing.T) {
	database, dbPath := testutil.TempDB(t)
	app := createTestApp(t, database, dbPath)

	task := &domain.Task{ID: id.New(), Content: "holds files"}
	if err := app.Store.Tasks().Create(task); err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	data := []byte("0123456789")
	attachment := &domain.Attachment{
		ID:        id.New(),
		TaskID:    task.ID,
		Filename:  "digits.txt",
		MimeType:  "text/plain",
		SizeBytes: int64(len(data)),
		Data:      data,
	}
	if err := app.Store.Attachments().Create(attachment); err != nil {
		t.Fatalf("Failed to create attachment: %v", err)
	}

	cmd, buf := newTestCommand(t)
	if err := runAttachLs(app, cmd, []string{task.ID}); err != nil {
		t.Fatalf("runAttachLs failed: %v", err)
	}
	if !strings.Contains(buf.String(), "digits.txt") || !strings.Contains(buf.String(), "10 B") {
		t.Errorf("Expected filename and humanized size: %s", buf.String())
	}
}
