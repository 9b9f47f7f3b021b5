package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/tasknest/tasknest/internal/settings"
	"github.com/tasknest/tasknest/internal/storage"
	"github.com/tasknest/tasknest/internal/testutil"
)

func TestSettingsSetAndGet(t *testing.T) {
	database, dbPath := testutil.TempDB(t)
	app := createTestApp(t, database, dbPath)

	cmd, buf := newTestCommand(t)
	if err := runSettingsSet(app, cmd, []string{"theme", "dark"}); err != nil {
		t.Fatalf("runSettingsSet failed: %v", err)
	}
	if !strings.Contains(buf.String(), "✓ Set theme = dark") {
		t.Errorf("Unexpected output: %s", buf.String())
	}

	cmd, buf = newTestCommand(t)
	if err := runSettingsGet(app, cmd, []string{"theme"}); err != nil {
		t.Fatalf("runSettingsGet failed: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "dark" {
		t.Errorf("Expected dark, got %q", got)
	}
}

func TestSettingsSetNormalizesValue(t *testing.T) {
	database, dbPath := testutil.TempDB(t)
	app := createTestApp(t, database, dbPath)

	cmd, _ := newTestCommand(t)
	if err := runSettingsSet(app, cmd, []string{"dayStartHour", "  7  "}); err != nil {
		t.Fatalf("runSettingsSet failed: %v", err)
	}

	value, err := app.Store.Settings().Get("dayStartHour")
	if err != nil {
		t.Fatalf("Failed to read setting back: %v", err)
	}
	if value != "7" {
		t.Errorf("Expected trimmed value, got %q", value)
	}
}

func TestSettingsSetRejectsBadPairs(t *testing.T) {
	database, dbPath := testutil.TempDB(t)
	app := createTestApp(t, database, dbPath)

	cmd, _ := newTestCommand(t)
	err := runSettingsSet(app, cmd, []string{"theme", "neon"})
	if !errors.Is(err, settings.ErrInvalidValue) {
		t.Errorf("Expected invalid value error, got %v", err)
	}

	cmd, _ = newTestCommand(t)
	err = runSettingsSet(app, cmd, []string{"fontSize", "12"})
	if !errors.Is(err, settings.ErrInvalidKey) {
		t.Errorf("Expected invalid key error, got %v", err)
	}

	// Nothing reached storage
	if _, err := app.Store.Settings().Get("fontSize"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Rejected key must not be stored, got %v", err)
	}
}

func TestSettingsGetUnconfigured(t *testing.T) {
	database, dbPath := testutil.TempDB(t)
	app := createTestApp(t, database, dbPath)

	cmd, _ := newTestCommand(t)
	err := runSettingsGet(app, cmd, []string{"theme"})
	if err == nil || !strings.Contains(err.Error(), "not configured") {
		t.Errorf("Expected not-configured error, got %v", err)
	}
}

func TestSettingsLsAllShowsConstraints(t *testing.T) {
	database, dbPath := testutil.TempDB(t)
	app := createTestApp(t, database, dbPath)

	cmd, _ := newTestCommand(t)
	if err := runSettingsSet(app, cmd, []string{"showCompleted", "true"}); err != nil {
		t.Fatalf("runSettingsSet failed: %v", err)
	}

	settingsLsAll = true
	defer func() { settingsLsAll = false }()

	cmd, buf := newTestCommand(t)
	if err := runSettingsLs(app, cmd, nil); err != nil {
		t.Fatalf("runSettingsLs failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "showCompleted") || !strings.Contains(output, "true or false") {
		t.Errorf("Expected key with constraint in output: %s", output)
	}
	if !strings.Contains(output, "weekStart") {
		t.Errorf("Expected unset keys in --all output: %s", output)
	}
}
