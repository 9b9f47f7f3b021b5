package domain

import (
	"encoding/json"
	"time"
)

// Project is a top-level grouping of tasks.
type Project struct {
	ID         string  `json:"id" db:"id"`
	Name       string  `json:"name" db:"name"`
	SortOrder  int     `json:"sort_order" db:"sort_order"`
	Attributes *string `json:"attributes,omitempty" db:"attributes"` // JSON object
}

// Section is a named lane inside a project.
type Section struct {
	ID          string `json:"id" db:"id"`
	ProjectID   string `json:"project_id" db:"project_id"`
	Name        string `json:"name" db:"name"`
	SortOrder   int    `json:"sort_order" db:"sort_order"`
	IsCollapsed bool   `json:"is_collapsed" db:"is_collapsed"`
}

// Task represents a task. ProjectID and SectionID are nullable: a task
// with neither lives in the inbox.
type Task struct {
	ID          string     `json:"id" db:"id"`
	ProjectID   *string    `json:"project_id,omitempty" db:"project_id"`
	SectionID   *string    `json:"section_id,omitempty" db:"section_id"`
	Content     string     `json:"content" db:"content"`
	Completed   bool       `json:"completed" db:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	DueAt       *time.Time `json:"due_at,omitempty" db:"due_at"`
	SortOrder   int        `json:"sort_order" db:"sort_order"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// Label represents a label. Names are not required to be unique.
type Label struct {
	ID    string  `json:"id" db:"id"`
	Name  string  `json:"name" db:"name"`
	Color *string `json:"color,omitempty" db:"color"` // #rrggbb
}

// LabelAssignment links a task to a label.
type LabelAssignment struct {
	TaskID  string `json:"task_id" db:"task_id"`
	LabelID string `json:"label_id" db:"label_id"`
}

// Comment represents a comment on a task.
type Comment struct {
	ID        string    `json:"id" db:"id"`
	TaskID    string    `json:"task_id" db:"task_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Attachment represents a file attached to a task. The payload lives in
// the database; SizeBytes must always equal len(Data).
type Attachment struct {
	ID        string    `json:"id" db:"id"`
	TaskID    string    `json:"task_id" db:"task_id"`
	Filename  string    `json:"filename" db:"filename"`
	MimeType  string    `json:"mime_type" db:"mime_type"`
	SizeBytes int64     `json:"size_bytes" db:"size_bytes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Data      []byte    `json:"-" db:"data"`
}

// Setting is one user-configuration pair. Keys are gated by the
// settings package before they reach storage.
type Setting struct {
	Key   string `json:"key" db:"key"`
	Value string `json:"value" db:"value"`
}

// Event represents an entry in the activity log.
type Event struct {
	ID           int64     `json:"id" db:"id"`
	Timestamp    time.Time `json:"timestamp" db:"timestamp"`
	ResourceType string    `json:"resource_type" db:"resource_type"`
	ResourceID   *string   `json:"resource_id,omitempty" db:"resource_id"`
	EventType    string    `json:"event_type" db:"event_type"`
	Payload      *string   `json:"payload,omitempty" db:"payload"` // JSON
}

// GetAttributes parses the attributes JSON into a map
func (p *Project) GetAttributes() (map[string]interface{}, error) {
	if p.Attributes == nil || *p.Attributes == "" {
		return map[string]interface{}{}, nil
	}
	var attrs map[string]interface{}
	if err := json.Unmarshal([]byte(*p.Attributes), &attrs); err != nil {
		return nil, err
	}
	return attrs, nil
}

// SetAttributes sets the attributes from a map
func (p *Project) SetAttributes(attrs map[string]interface{}) error {
	if attrs == nil {
		attrs = map[string]interface{}{}
	}
	data, err := json.Marshal(attrs)
	if err != nil {
		return err
	}
	s := string(data)
	p.Attributes = &s
	return nil
}
