package store

import (
	"database/sql"
	"fmt"

	"github.com/tasknest/tasknest/internal/domain"
	"github.com/tasknest/tasknest/internal/storage"
)

// LabelStore handles label persistence and task associations.
type LabelStore struct {
	q queryer
}

// Create inserts a new label.
func (ls *LabelStore) Create(l *domain.Label) error {
	_, err := ls.q.Exec(`
		INSERT INTO labels (id, name, color)
		VALUES (?, ?, ?)
	`, l.ID, l.Name, l.Color)
	if err != nil {
		return fmt.Errorf("failed to create label: %w", err)
	}
	return nil
}

// Get retrieves a label by id.
func (ls *LabelStore) Get(id string) (*domain.Label, error) {
	var l domain.Label
	err := ls.q.QueryRow(`
		SELECT id, name, color FROM labels WHERE id = ?
	`, id).Scan(&l.ID, &l.Name, &l.Color)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get label: %w", err)
	}
	return &l, nil
}

// GetByName retrieves a label by its exact name.
func (ls *LabelStore) GetByName(name string) (*domain.Label, error) {
	var l domain.Label
	err := ls.q.QueryRow(`
		SELECT id, name, color FROM labels WHERE name = ?
	`, name).Scan(&l.ID, &l.Name, &l.Color)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get label: %w", err)
	}
	return &l, nil
}

// List returns all labels by name.
func (ls *LabelStore) List() ([]*domain.Label, error) {
	rows, err := ls.q.Query(`
		SELECT id, name, color FROM labels ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	defer rows.Close()

	var labels []*domain.Label
	for rows.Next() {
		var l domain.Label
		if err := rows.Scan(&l.ID, &l.Name, &l.Color); err != nil {
			return nil, fmt.Errorf("failed to scan label: %w", err)
		}
		labels = append(labels, &l)
	}
	return labels, rows.Err()
}

// Exists reports whether a label with the given id is present.
func (ls *LabelStore) Exists(id string) (bool, error) {
	return exists(ls.q, "labels", id)
}

// Assign associates a label with a task. Repeating an existing
// association is a no-op.
func (ls *LabelStore) Assign(taskID, labelID string) error {
	_, err := ls.q.Exec(`
		INSERT OR IGNORE INTO task_labels (task_id, label_id)
		VALUES (?, ?)
	`, taskID, labelID)
	if err != nil {
		return fmt.Errorf("failed to assign label: %w", err)
	}
	return nil
}

// ListAssignments returns every task-label association.
func (ls *LabelStore) ListAssignments() ([]*domain.LabelAssignment, error) {
	rows, err := ls.q.Query(`
		SELECT task_id, label_id FROM task_labels ORDER BY task_id, label_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list label assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*domain.LabelAssignment
	for rows.Next() {
		var a domain.LabelAssignment
		if err := rows.Scan(&a.TaskID, &a.LabelID); err != nil {
			return nil, fmt.Errorf("failed to scan label assignment: %w", err)
		}
		assignments = append(assignments, &a)
	}
	return assignments, rows.Err()
}

// ListByTask returns the labels assigned to one task, by name.
func (ls *LabelStore) ListByTask(taskID string) ([]*domain.Label, error) {
	rows, err := ls.q.Query(`
		SELECT l.id, l.name, l.color
		FROM labels l
		JOIN task_labels tl ON tl.label_id = l.id
		WHERE tl.task_id = ?
		ORDER BY l.name
	`, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list task labels: %w", err)
	}
	defer rows.Close()

	var labels []*domain.Label
	for rows.Next() {
		var l domain.Label
		if err := rows.Scan(&l.ID, &l.Name, &l.Color); err != nil {
			return nil, fmt.Errorf("failed to scan label: %w", err)
		}
		labels = append(labels, &l)
	}
	return labels, rows.Err()
}
