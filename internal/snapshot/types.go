// Package snapshot implements portable dataset snapshots: exporting the
// entire dataset into one self-contained JSON document, and merging such
// a document back into a live dataset. The importer rewrites identifiers
// as it goes, so a snapshot can be re-imported into the dataset it came
// from without ever overwriting existing rows.
package snapshot

import (
	"errors"
	"time"
)

// FormatVersion is the document format this build writes.
const FormatVersion = 1

// ErrCorrupt marks structural damage in a snapshot document:
// unparseable input, a missing collection, or a row without its
// required identifiers. Corrupt documents abort the import and nothing
// is written.
var ErrCorrupt = errors.New("corrupt snapshot document")

// Document is the portable serialization of an entire dataset. Foreign
// keys inside it are verbatim source-side identifiers; translation is
// the importer's job. A document is immutable once produced.
type Document struct {
	FormatVersion    int                    `json:"formatVersion"`
	ExportedAt       int64                  `json:"exportedAt"`
	Projects         []ProjectEntry         `json:"projects"`
	Sections         []SectionEntry         `json:"sections"`
	Tasks            []TaskEntry            `json:"tasks"`
	Labels           []LabelEntry           `json:"labels"`
	LabelAssignments []LabelAssignmentEntry `json:"labelAssignments"`
	Comments         []CommentEntry         `json:"comments"`
	Attachments      []AttachmentEntry      `json:"attachments"`
	Settings         []SettingEntry         `json:"settings"`
}

// ProjectEntry represents a project in the document.
type ProjectEntry struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Order      int    `json:"order"`
	Attributes string `json:"attributes,omitempty"`
}

// SectionEntry represents a section in the document.
type SectionEntry struct {
	ID          string `json:"id"`
	ProjectID   string `json:"projectId"`
	Name        string `json:"name"`
	Order       int    `json:"order"`
	IsCollapsed bool   `json:"isCollapsed"`
}

// TaskEntry represents a task in the document. Timestamps are epoch
// milliseconds.
type TaskEntry struct {
	ID          string  `json:"id"`
	ProjectID   *string `json:"projectId,omitempty"`
	SectionID   *string `json:"sectionId,omitempty"`
	Content     string  `json:"content"`
	Completed   bool    `json:"completed"`
	CompletedAt *int64  `json:"completedAt,omitempty"`
	DueAt       *int64  `json:"dueAt,omitempty"`
	Order       int     `json:"order"`
	CreatedAt   int64   `json:"createdAt"`
}

// LabelEntry represents a label in the document.
type LabelEntry struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Color *string `json:"color,omitempty"`
}

// LabelAssignmentEntry links a task to a label, both by their
// source-side identifiers.
type LabelAssignmentEntry struct {
	TaskID  string `json:"taskId"`
	LabelID string `json:"labelId"`
}

// CommentEntry represents a comment in the document.
type CommentEntry struct {
	ID        string `json:"id"`
	TaskID    string `json:"taskId"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"createdAt"`
}

// AttachmentEntry represents an attachment with its payload inlined as
// base64. Size is the declared byte count of the decoded payload.
type AttachmentEntry struct {
	ID         string `json:"id"`
	TaskID     string `json:"taskId"`
	Filename   string `json:"filename"`
	MimeType   string `json:"mimeType"`
	Size       int64  `json:"size"`
	CreatedAt  int64  `json:"createdAt"`
	DataBase64 string `json:"dataBase64"`
}

// SettingEntry represents one settings pair in the document.
type SettingEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ExportOptions configures snapshot export behavior.
type ExportOptions struct {
	// OutputPath is the file to write to
	OutputPath string
	// Canonical writes compact canonical JSON instead of indented
	Canonical bool
}

// ImportOptions configures snapshot import behavior.
type ImportOptions struct {
	// InputPath is the file to read from
	InputPath string
	// DryRun runs the full merge, then rolls every write back
	DryRun bool
}

// ExportResult contains the result of an export operation.
type ExportResult struct {
	OutputPath  string         `json:"out"`
	SnapshotRev string         `json:"snapshot_rev"`
	Counts      map[string]int `json:"counts"`
	SizeBytes   int64          `json:"size_bytes"`
}

// ImportResult contains the result of an import operation. Counts
// carries one entry per collection present in the document; a zero
// count means the collection was there but no row survived its checks.
// Skipped breaks down the rows that were dropped.
type ImportResult struct {
	InputPath string         `json:"from,omitempty"`
	Counts    map[string]int `json:"counts"`
	Skipped   map[string]int `json:"skipped,omitempty"`
	DryRun    bool           `json:"dry_run,omitempty"`
}

// TimeToMillis converts a time to epoch milliseconds.
func TimeToMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// MillisToTime converts epoch milliseconds to UTC time.
func MillisToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func timePtrToMillis(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

func millisToTimePtr(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := time.UnixMilli(*ms).UTC()
	return &t
}
