package snapshot

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"

	"github.com/tasknest/tasknest/internal/domain"
	"github.com/tasknest/tasknest/internal/storage"
)

// Build reads every entity through the repositories and assembles a
// document. Read-only: foreign keys are carried verbatim and attachment
// payloads are inlined as base64.
func Build(ds storage.Dataset) (*Document, error) {
	doc := &Document{
		FormatVersion:    FormatVersion,
		ExportedAt:       time.Now().UnixMilli(),
		Projects:         []ProjectEntry{},
		Sections:         []SectionEntry{},
		Tasks:            []TaskEntry{},
		Labels:           []LabelEntry{},
		LabelAssignments: []LabelAssignmentEntry{},
		Comments:         []CommentEntry{},
		Attachments:      []AttachmentEntry{},
		Settings:         []SettingEntry{},
	}

	projects, err := ds.Projects().List()
	if err != nil {
		return nil, fmt.Errorf("failed to export projects: %w", err)
	}
	for _, p := range projects {
		entry := ProjectEntry{ID: p.ID, Name: p.Name, Order: p.SortOrder}
		if p.Attributes != nil {
			entry.Attributes = *p.Attributes
		}
		doc.Projects = append(doc.Projects, entry)
	}

	sections, err := ds.Sections().List()
	if err != nil {
		return nil, fmt.Errorf("failed to export sections: %w", err)
	}
	for _, s := range sections {
		doc.Sections = append(doc.Sections, SectionEntry{
			ID:          s.ID,
			ProjectID:   s.ProjectID,
			Name:        s.Name,
			Order:       s.SortOrder,
			IsCollapsed: s.IsCollapsed,
		})
	}

	tasks, err := ds.Tasks().List()
	if err != nil {
		return nil, fmt.Errorf("failed to export tasks: %w", err)
	}
	for _, t := range tasks {
		doc.Tasks = append(doc.Tasks, TaskEntry{
			ID:          t.ID,
			ProjectID:   t.ProjectID,
			SectionID:   t.SectionID,
			Content:     t.Content,
			Completed:   t.Completed,
			CompletedAt: timePtrToMillis(t.CompletedAt),
			DueAt:       timePtrToMillis(t.DueAt),
			Order:       t.SortOrder,
			CreatedAt:   TimeToMillis(t.CreatedAt),
		})
	}

	labels, err := ds.Labels().List()
	if err != nil {
		return nil, fmt.Errorf("failed to export labels: %w", err)
	}
	for _, l := range labels {
		doc.Labels = append(doc.Labels, LabelEntry{ID: l.ID, Name: l.Name, Color: l.Color})
	}

	assignments, err := ds.Labels().ListAssignments()
	if err != nil {
		return nil, fmt.Errorf("failed to export label assignments: %w", err)
	}
	for _, a := range assignments {
		doc.LabelAssignments = append(doc.LabelAssignments, LabelAssignmentEntry{
			TaskID:  a.TaskID,
			LabelID: a.LabelID,
		})
	}

	comments, err := ds.Comments().List()
	if err != nil {
		return nil, fmt.Errorf("failed to export comments: %w", err)
	}
	for _, c := range comments {
		doc.Comments = append(doc.Comments, CommentEntry{
			ID:        c.ID,
			TaskID:    c.TaskID,
			Content:   c.Content,
			CreatedAt: TimeToMillis(c.CreatedAt),
		})
	}

	attachments, err := ds.Attachments().List()
	if err != nil {
		return nil, fmt.Errorf("failed to export attachments: %w", err)
	}
	for _, a := range attachments {
		doc.Attachments = append(doc.Attachments, AttachmentEntry{
			ID:         a.ID,
			TaskID:     a.TaskID,
			Filename:   a.Filename,
			MimeType:   a.MimeType,
			Size:       a.SizeBytes,
			CreatedAt:  TimeToMillis(a.CreatedAt),
			DataBase64: base64.StdEncoding.EncodeToString(a.Data),
		})
	}

	settings, err := ds.Settings().List()
	if err != nil {
		return nil, fmt.Errorf("failed to export settings: %w", err)
	}
	for _, s := range settings {
		doc.Settings = append(doc.Settings, SettingEntry{Key: s.Key, Value: s.Value})
	}

	return doc, nil
}

// Export builds a document from the live dataset and writes it to disk.
// The file is replaced atomically so a crashed export never leaves a
// half-written snapshot behind.
func Export(st storage.Store, opts ExportOptions) (*ExportResult, error) {
	doc, err := Build(st)
	if err != nil {
		return nil, err
	}

	var data []byte
	if opts.Canonical {
		data, err = CanonicalJSON(doc)
	} else {
		data, err = PrettyJSON(doc)
	}
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(opts.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}
	if err := atomic.WriteFile(opts.OutputPath, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to write snapshot: %w", err)
	}

	result := &ExportResult{
		OutputPath:  opts.OutputPath,
		SnapshotRev: ComputeRev(data),
		Counts:      collectionCounts(doc),
		SizeBytes:   int64(len(data)),
	}

	if err := logSnapshotEvent(st.Events(), "snapshot.exported", result); err != nil {
		return nil, err
	}
	return result, nil
}

func collectionCounts(doc *Document) map[string]int {
	return map[string]int{
		"projects":         len(doc.Projects),
		"sections":         len(doc.Sections),
		"tasks":            len(doc.Tasks),
		"labels":           len(doc.Labels),
		"labelAssignments": len(doc.LabelAssignments),
		"comments":         len(doc.Comments),
		"attachments":      len(doc.Attachments),
		"settings":         len(doc.Settings),
	}
}

// logSnapshotEvent records a snapshot operation in the activity log.
func logSnapshotEvent(events storage.EventRepo, eventType string, detail interface{}) error {
	data, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("failed to encode event payload: %w", err)
	}
	payload := string(data)
	if err := events.Log(&domain.Event{
		ResourceType: "snapshot",
		EventType:    eventType,
		Payload:      &payload,
	}); err != nil {
		return fmt.Errorf("failed to log %s event: %w", eventType, err)
	}
	return nil
}
