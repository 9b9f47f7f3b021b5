package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/tasknest/tasknest/internal/db"
)

func runInitAt(t *testing.T, dbPath string) string {
	t.Helper()

	cmd, buf := newTestCommand(t)
	cmd.Flags().String("db", "", "")
	if err := cmd.Flags().Set("db", dbPath); err != nil {
		t.Fatalf("Failed to set db flag: %v", err)
	}
	if err := runInit(cmd, nil); err != nil {
		t.Fatalf("runInit failed: %v", err)
	}
	return buf.String()
}

func TestInitCreatesAndUpgrades(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "tasks.db")

	output := runInitAt(t, dbPath)
	if !strings.Contains(output, "✓ Initialized new database at") {
		t.Errorf("Unexpected first-run output: %s", output)
	}

	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open initialized database: %v", err)
	}
	defer database.Close()

	version, err := database.SchemaVersion()
	if err != nil {
		t.Fatalf("Failed to read schema version: %v", err)
	}
	if version != db.CurrentSchemaVersion() {
		t.Errorf("Expected schema version %d, got %d", db.CurrentSchemaVersion(), version)
	}

	output = runInitAt(t, dbPath)
	if !strings.Contains(output, "✓ Database already initialized") {
		t.Errorf("Unexpected second-run output: %s", output)
	}
}
