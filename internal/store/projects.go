package store

import (
	"database/sql"
	"fmt"

	"github.com/tasknest/tasknest/internal/domain"
	"github.com/tasknest/tasknest/internal/storage"
)

// ProjectStore handles project persistence.
type ProjectStore struct {
	q queryer
}

// Create inserts a new project.
func (ps *ProjectStore) Create(p *domain.Project) error {
	_, err := ps.q.Exec(`
		INSERT INTO projects (id, name, sort_order, attributes)
		VALUES (?, ?, ?, ?)
	`, p.ID, p.Name, p.SortOrder, p.Attributes)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// Get retrieves a project by id.
func (ps *ProjectStore) Get(id string) (*domain.Project, error) {
	var p domain.Project
	err := ps.q.QueryRow(`
		SELECT id, name, sort_order, attributes
		FROM projects
		WHERE id = ?
	`, id).Scan(&p.ID, &p.Name, &p.SortOrder, &p.Attributes)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &p, nil
}

// List returns all projects in display order.
func (ps *ProjectStore) List() ([]*domain.Project, error) {
	rows, err := ps.q.Query(`
		SELECT id, name, sort_order, attributes
		FROM projects
		ORDER BY sort_order, name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.SortOrder, &p.Attributes); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, &p)
	}
	return projects, rows.Err()
}

// Exists reports whether a project with the given id is present.
func (ps *ProjectStore) Exists(id string) (bool, error) {
	return exists(ps.q, "projects", id)
}
