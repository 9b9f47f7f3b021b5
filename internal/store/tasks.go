package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tasknest/tasknest/internal/domain"
	"github.com/tasknest/tasknest/internal/storage"
)

// TaskStore handles task persistence.
type TaskStore struct {
	q queryer
}

// Create inserts a new task. CreatedAt defaults to now when unset.
func (ts *TaskStore) Create(t *domain.Task) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	_, err := ts.q.Exec(`
		INSERT INTO tasks (id, project_id, section_id, content, completed, completed_at, due_at, sort_order, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.ProjectID, t.SectionID, t.Content, t.Completed,
		toNullMillis(t.CompletedAt), toNullMillis(t.DueAt), t.SortOrder, toMillis(t.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// Get retrieves a task by id.
func (ts *TaskStore) Get(id string) (*domain.Task, error) {
	row := ts.q.QueryRow(`
		SELECT id, project_id, section_id, content, completed, completed_at, due_at, sort_order, created_at
		FROM tasks
		WHERE id = ?
	`, id)

	t, err := scanTask(row.Scan)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return t, nil
}

// List returns all tasks ordered by display order then creation time.
func (ts *TaskStore) List() ([]*domain.Task, error) {
	return ts.scanTasks(`
		SELECT id, project_id, section_id, content, completed, completed_at, due_at, sort_order, created_at
		FROM tasks
		ORDER BY sort_order, created_at
	`)
}

// ListByProject returns the tasks of one project in display order.
func (ts *TaskStore) ListByProject(projectID string) ([]*domain.Task, error) {
	return ts.scanTasks(`
		SELECT id, project_id, section_id, content, completed, completed_at, due_at, sort_order, created_at
		FROM tasks
		WHERE project_id = ?
		ORDER BY sort_order, created_at
	`, projectID)
}

// Exists reports whether a task with the given id is present.
func (ts *TaskStore) Exists(id string) (bool, error) {
	return exists(ts.q, "tasks", id)
}

// SetCompleted marks a task complete with the given completion time.
func (ts *TaskStore) SetCompleted(id string, completedAt time.Time) error {
	res, err := ts.q.Exec(`
		UPDATE tasks SET completed = 1, completed_at = ? WHERE id = ?
	`, toMillis(completedAt), id)
	if err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (ts *TaskStore) scanTasks(query string, args ...interface{}) ([]*domain.Task, error) {
	rows, err := ts.q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func scanTask(scan func(dest ...interface{}) error) (*domain.Task, error) {
	var (
		t           domain.Task
		completedAt sql.NullInt64
		dueAt       sql.NullInt64
		createdAt   int64
	)
	err := scan(&t.ID, &t.ProjectID, &t.SectionID, &t.Content, &t.Completed,
		&completedAt, &dueAt, &t.SortOrder, &createdAt)
	if err != nil {
		return nil, err
	}
	t.CompletedAt = fromNullMillis(completedAt)
	t.DueAt = fromNullMillis(dueAt)
	t.CreatedAt = fromMillis(createdAt)
	return &t, nil
}
