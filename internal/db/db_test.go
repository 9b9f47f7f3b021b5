package db

import (
	"path/filepath"
	"testing"
)

func TestOpenAndInit(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	database, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if database.Path() != dbPath {
		t.Errorf("Path() = %q, want %q", database.Path(), dbPath)
	}

	// Foreign keys pragma applied
	var fk int
	if err := database.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("failed to query pragma: %v", err)
	}
	if fk != 1 {
		t.Error("foreign_keys pragma not enabled")
	}

	if err := database.Init(); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}

	version, err := database.SchemaVersion()
	if err != nil {
		t.Fatalf("failed to read schema version: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("schema version = %d, want %d", version, currentSchemaVersion)
	}
}

func TestInitIdempotent(t *testing.T) {
	database, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if err := database.Init(); err != nil {
		t.Fatalf("first init failed: %v", err)
	}

	// Seed a row, re-init, row must survive
	if _, err := database.Exec(`INSERT INTO projects (id, name) VALUES ('p1', 'Home')`); err != nil {
		t.Fatalf("failed to insert project: %v", err)
	}

	if err := database.Init(); err != nil {
		t.Fatalf("second init failed: %v", err)
	}

	var count int
	if err := database.QueryRow("SELECT COUNT(*) FROM projects").Scan(&count); err != nil {
		t.Fatalf("failed to count projects: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 project after re-init, got %d", count)
	}
}

func TestSchemaVersionUninitialized(t *testing.T) {
	database, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if _, err := database.SchemaVersion(); err == nil {
		t.Error("expected error reading version from uninitialized database")
	}
}

func TestMigrateAtLatestIsNoop(t *testing.T) {
	database, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if err := database.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if err := database.Migrate(); err != nil {
		t.Errorf("migrate at latest version failed: %v", err)
	}
}
