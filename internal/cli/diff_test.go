package cli

import (
	"strings"
	"testing"

	"github.com/tasknest/tasknest/internal/testutil"
)

const diffDocTemplate = `{
	"formatVersion": 1,
	"exportedAt": 1700000000000,
	"projects": %s,
	"sections": [],
	"tasks": [],
	"labels": [],
	"labelAssignments": [],
	"comments": [],
	"attachments": [],
	"settings": []
}`

func writeDiffDoc(t *testing.T, dir, name, projects string) string {
	t.Helper()
	content := strings.Replace(diffDocTemplate, "%s", projects, 1)
	return testutil.WriteFile(t, dir, name, content)
}

func TestDiffIgnoresRowOrder(t *testing.T) {
	dir := t.TempDir()
	pathA := writeDiffDoc(t, dir, "a.json",
		`[{"id": "aaaaaaaa-0000-0000-0000-000000000001", "name": "alpha", "order": 0},
		  {"id": "bbbbbbbb-0000-0000-0000-000000000002", "name": "beta", "order": 1}]`)
	pathB := writeDiffDoc(t, dir, "b.json",
		`[{"id": "bbbbbbbb-0000-0000-0000-000000000002", "name": "beta", "order": 1},
		  {"id": "aaaaaaaa-0000-0000-0000-000000000001", "name": "alpha", "order": 0}]`)

	cmd, buf := newTestCommand(t)
	if err := runDiff(cmd, []string{pathA, pathB}); err != nil {
		t.Fatalf("runDiff failed: %v", err)
	}
	if !strings.Contains(buf.String(), "identical data") {
		t.Errorf("Expected identical-data notice, got: %s", buf.String())
	}
}

func TestDiffShowsContentChanges(t *testing.T) {
	dir := t.TempDir()
	pathA := writeDiffDoc(t, dir, "a.json",
		`[{"id": "aaaaaaaa-0000-0000-0000-000000000001", "name": "alpha", "order": 0}]`)
	pathB := writeDiffDoc(t, dir, "b.json",
		`[{"id": "aaaaaaaa-0000-0000-0000-000000000001", "name": "gamma", "order": 0}]`)

	cmd, buf := newTestCommand(t)
	if err := runDiff(cmd, []string{pathA, pathB}); err != nil {
		t.Fatalf("runDiff failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "gamma") || !strings.Contains(output, "alpha") {
		t.Errorf("Expected both names in diff output: %s", output)
	}
	if strings.Contains(output, "* projects") {
		t.Errorf("Counts are equal, no marker expected: %s", output)
	}
}

func TestDiffCountSummaryMarksChanges(t *testing.T) {
	dir := t.TempDir()
	pathA := writeDiffDoc(t, dir, "a.json", `[]`)
	pathB := writeDiffDoc(t, dir, "b.json",
		`[{"id": "aaaaaaaa-0000-0000-0000-000000000001", "name": "alpha", "order": 0}]`)

	cmd, buf := newTestCommand(t)
	if err := runDiff(cmd, []string{pathA, pathB}); err != nil {
		t.Fatalf("runDiff failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "* projects") {
		t.Errorf("Expected changed-count marker for projects: %s", output)
	}
	if !strings.Contains(output, "0 -> 1") {
		t.Errorf("Expected count transition in summary: %s", output)
	}
}

func TestDiffMissingFile(t *testing.T) {
	cmd, _ := newTestCommand(t)
	err := runDiff(cmd, []string{"/nonexistent/a.json", "/nonexistent/b.json"})
	if err == nil {
		t.Fatal("Expected error for missing files")
	}
}
