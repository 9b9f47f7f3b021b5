package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindEnvLocal_InCurrentDir(t *testing.T) {
	tmpDir := t.TempDir()
	envPath := filepath.Join(tmpDir, ".env.local")
	if err := os.WriteFile(envPath, []byte("TEST=value"), 0644); err != nil {
		t.Fatal(err)
	}

	oldCwd, _ := os.Getwd()
	defer os.Chdir(oldCwd)
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatal(err)
	}

	result := findEnvLocal()
	if result == "" {
		t.Error("expected to find .env.local in current directory")
	}
}

func TestFindEnvLocal_InParentDir(t *testing.T) {
	tmpDir := t.TempDir()
	childDir := filepath.Join(tmpDir, "child")
	if err := os.Mkdir(childDir, 0755); err != nil {
		t.Fatal(err)
	}
	envPath := filepath.Join(tmpDir, ".env.local")
	if err := os.WriteFile(envPath, []byte("TEST=parent"), 0644); err != nil {
		t.Fatal(err)
	}

	oldCwd, _ := os.Getwd()
	defer os.Chdir(oldCwd)
	if err := os.Chdir(childDir); err != nil {
		t.Fatal(err)
	}

	result := findEnvLocal()
	if result == "" {
		t.Error("expected to find .env.local in parent directory")
	}
	// Resolve symlinks for comparison (macOS /var -> /private/var)
	expectedResolved, _ := filepath.EvalSymlinks(envPath)
	resultResolved, _ := filepath.EvalSymlinks(result)
	if resultResolved != expectedResolved {
		t.Errorf("expected %s, got %s", expectedResolved, resultResolved)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TASKNEST_DB_PATH", "/custom/path/tasks.db")
	t.Setenv("TASKNEST_SNAPSHOT_PATH", "/custom/path/snap.json")
	t.Setenv("TASKNEST_OUTPUT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DBPath != "/custom/path/tasks.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.SnapshotPath != "/custom/path/snap.json" {
		t.Errorf("SnapshotPath = %q", cfg.SnapshotPath)
	}
	if cfg.Output != "json" {
		t.Errorf("Output = %q", cfg.Output)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TASKNEST_DB_PATH", "/data/tasknest/tasknest.db")
	t.Setenv("TASKNEST_SNAPSHOT_PATH", "")
	t.Setenv("TASKNEST_OUTPUT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.AttachmentsMaxMB != 50 {
		t.Errorf("AttachmentsMaxMB = %d, want 50", cfg.AttachmentsMaxMB)
	}
	if cfg.Output != "table" {
		t.Errorf("Output = %q, want table", cfg.Output)
	}
	// Snapshot defaults to living next to the database.
	if cfg.SnapshotPath != "/data/tasknest/snapshot.json" {
		t.Errorf("SnapshotPath = %q", cfg.SnapshotPath)
	}
}

func TestGetEnvOrFile(t *testing.T) {
	tmpDir := t.TempDir()
	secretPath := filepath.Join(tmpDir, "dbpath")
	if err := os.WriteFile(secretPath, []byte("/from/file.db"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TASKNEST_DB_PATH", "")
	t.Setenv("TASKNEST_DB_PATH_FILE", secretPath)

	got := getEnvOrFile("TASKNEST_DB_PATH", "TASKNEST_DB_PATH_FILE")
	if got != "/from/file.db" {
		t.Errorf("getEnvOrFile = %q", got)
	}

	t.Setenv("TASKNEST_DB_PATH", "/direct.db")
	got = getEnvOrFile("TASKNEST_DB_PATH", "TASKNEST_DB_PATH_FILE")
	if got != "/direct.db" {
		t.Errorf("env must win over file, got %q", got)
	}
}
