package store

import (
	"database/sql"
	"fmt"

	"github.com/tasknest/tasknest/internal/domain"
	"github.com/tasknest/tasknest/internal/storage"
)

// SectionStore handles section persistence.
type SectionStore struct {
	q queryer
}

// Create inserts a new section.
func (ss *SectionStore) Create(s *domain.Section) error {
	_, err := ss.q.Exec(`
		INSERT INTO sections (id, project_id, name, sort_order, is_collapsed)
		VALUES (?, ?, ?, ?, ?)
	`, s.ID, s.ProjectID, s.Name, s.SortOrder, s.IsCollapsed)
	if err != nil {
		return fmt.Errorf("failed to create section: %w", err)
	}
	return nil
}

// Get retrieves a section by id.
func (ss *SectionStore) Get(id string) (*domain.Section, error) {
	var s domain.Section
	err := ss.q.QueryRow(`
		SELECT id, project_id, name, sort_order, is_collapsed
		FROM sections
		WHERE id = ?
	`, id).Scan(&s.ID, &s.ProjectID, &s.Name, &s.SortOrder, &s.IsCollapsed)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get section: %w", err)
	}
	return &s, nil
}

// List returns all sections ordered by project then display order.
func (ss *SectionStore) List() ([]*domain.Section, error) {
	return ss.scanSections(`
		SELECT id, project_id, name, sort_order, is_collapsed
		FROM sections
		ORDER BY project_id, sort_order, name
	`)
}

// ListByProject returns the sections of one project in display order.
func (ss *SectionStore) ListByProject(projectID string) ([]*domain.Section, error) {
	return ss.scanSections(`
		SELECT id, project_id, name, sort_order, is_collapsed
		FROM sections
		WHERE project_id = ?
		ORDER BY sort_order, name
	`, projectID)
}

// Exists reports whether a section with the given id is present.
func (ss *SectionStore) Exists(id string) (bool, error) {
	return exists(ss.q, "sections", id)
}

func (ss *SectionStore) scanSections(query string, args ...interface{}) ([]*domain.Section, error) {
	rows, err := ss.q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	defer rows.Close()

	var sections []*domain.Section
	for rows.Next() {
		var s domain.Section
		if err := rows.Scan(&s.ID, &s.ProjectID, &s.Name, &s.SortOrder, &s.IsCollapsed); err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		sections = append(sections, &s)
	}
	return sections, rows.Err()
}
