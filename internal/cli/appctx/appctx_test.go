package appctx

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/tasknest/tasknest/internal/db"
)

func newCommandWithDB(t *testing.T, dbPath string) *cobra.Command {
	t.Helper()

	cmd := &cobra.Command{}
	cmd.Flags().String("db", "", "")
	if err := cmd.Flags().Set("db", dbPath); err != nil {
		t.Fatalf("Failed to set db flag: %v", err)
	}
	return cmd
}

func TestBootstrapRejectsUninitializedDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "fresh.db")

	// Create the file without a schema
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	database.Close()

	_, err = Bootstrap(newCommandWithDB(t, dbPath), DefaultOptions())
	if err == nil {
		t.Fatal("Expected error for uninitialized database")
	}
	if !strings.Contains(err.Error(), "tasknest init") {
		t.Errorf("Expected init hint in error, got: %v", err)
	}
}

func TestBootstrapOpensInitializedDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ready.db")

	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	if err := database.Init(); err != nil {
		t.Fatalf("Failed to initialize schema: %v", err)
	}
	database.Close()

	app, err := Bootstrap(newCommandWithDB(t, dbPath), DefaultOptions())
	if err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	defer app.Close()

	if app.Store == nil {
		t.Error("Expected store to be set")
	}
	if app.Config.DBPath != dbPath {
		t.Errorf("Expected db path %s, got %s", dbPath, app.Config.DBPath)
	}
}

func TestBootstrapConfigOnlySkipsDatabase(t *testing.T) {
	app, err := Bootstrap(newCommandWithDB(t, filepath.Join(t.TempDir(), "untouched.db")), ConfigOnly())
	if err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	defer app.Close()

	if app.DB != nil {
		t.Error("Expected no database connection")
	}
	if app.Config == nil {
		t.Error("Expected config to be loaded")
	}
}
