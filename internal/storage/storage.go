// Package storage defines the repository contracts the rest of the
// application is written against. The snapshot engine and the CLI only
// ever see these interfaces; the SQLite implementation lives in the
// store package.
package storage

import (
	"errors"
	"time"

	"github.com/tasknest/tasknest/internal/domain"
)

var (
	// ErrNotFound is returned by Get when no row matches.
	ErrNotFound = errors.New("not found")

	// ErrPayloadSizeMismatch is returned when an attachment payload
	// length disagrees with its declared size.
	ErrPayloadSizeMismatch = errors.New("payload size mismatch")
)

// ProjectRepo persists projects.
type ProjectRepo interface {
	Create(p *domain.Project) error
	Get(id string) (*domain.Project, error)
	List() ([]*domain.Project, error)
	Exists(id string) (bool, error)
}

// SectionRepo persists sections.
type SectionRepo interface {
	Create(s *domain.Section) error
	Get(id string) (*domain.Section, error)
	List() ([]*domain.Section, error)
	ListByProject(projectID string) ([]*domain.Section, error)
	Exists(id string) (bool, error)
}

// TaskRepo persists tasks.
type TaskRepo interface {
	Create(t *domain.Task) error
	Get(id string) (*domain.Task, error)
	List() ([]*domain.Task, error)
	ListByProject(projectID string) ([]*domain.Task, error)
	Exists(id string) (bool, error)
	SetCompleted(id string, completedAt time.Time) error
}

// LabelRepo persists labels and the task-label association.
type LabelRepo interface {
	Create(l *domain.Label) error
	Get(id string) (*domain.Label, error)
	GetByName(name string) (*domain.Label, error)
	List() ([]*domain.Label, error)
	Exists(id string) (bool, error)
	Assign(taskID, labelID string) error
	ListAssignments() ([]*domain.LabelAssignment, error)
	ListByTask(taskID string) ([]*domain.Label, error)
}

// CommentRepo persists comments.
type CommentRepo interface {
	Create(c *domain.Comment) error
	Get(id string) (*domain.Comment, error)
	List() ([]*domain.Comment, error)
	ListByTask(taskID string) ([]*domain.Comment, error)
	Exists(id string) (bool, error)
}

// AttachmentRepo persists attachments with their payloads.
type AttachmentRepo interface {
	Create(a *domain.Attachment) error
	Get(id string) (*domain.Attachment, error)
	List() ([]*domain.Attachment, error)
	ListByTask(taskID string) ([]*domain.Attachment, error)
	Exists(id string) (bool, error)
}

// SettingRepo persists validated settings. Put upserts.
type SettingRepo interface {
	Put(key, value string) error
	Get(key string) (string, error)
	List() ([]*domain.Setting, error)
}

// EventRepo appends to and reads the activity log.
type EventRepo interface {
	Log(e *domain.Event) error
	ListRecent(limit int) ([]*domain.Event, error)
}

// Dataset bundles the per-entity repositories backed by one database
// connection or one open transaction.
type Dataset interface {
	Projects() ProjectRepo
	Sections() SectionRepo
	Tasks() TaskRepo
	Labels() LabelRepo
	Comments() CommentRepo
	Attachments() AttachmentRepo
	Settings() SettingRepo
	Events() EventRepo
}

// Store is a Dataset that can run a function inside a single
// transaction. The fn sees a Dataset view whose writes all commit or
// all roll back together; returning an error rolls back.
type Store interface {
	Dataset
	RunInTransaction(fn func(tx Dataset) error) error
}
