package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tasknest/tasknest/internal/domain"
	"github.com/tasknest/tasknest/internal/storage"
)

// CommentStore handles comment persistence.
type CommentStore struct {
	q queryer
}

// Create inserts a new comment. CreatedAt defaults to now when unset.
func (cs *CommentStore) Create(c *domain.Comment) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	_, err := cs.q.Exec(`
		INSERT INTO comments (id, task_id, content, created_at)
		VALUES (?, ?, ?, ?)
	`, c.ID, c.TaskID, c.Content, toMillis(c.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// Get retrieves a comment by id.
func (cs *CommentStore) Get(id string) (*domain.Comment, error) {
	var (
		c         domain.Comment
		createdAt int64
	)
	err := cs.q.QueryRow(`
		SELECT id, task_id, content, created_at FROM comments WHERE id = ?
	`, id).Scan(&c.ID, &c.TaskID, &c.Content, &createdAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	c.CreatedAt = fromMillis(createdAt)
	return &c, nil
}

// List returns all comments in creation order.
func (cs *CommentStore) List() ([]*domain.Comment, error) {
	return cs.scanComments(`
		SELECT id, task_id, content, created_at FROM comments ORDER BY created_at, id
	`)
}

// ListByTask returns the comments on one task in creation order.
func (cs *CommentStore) ListByTask(taskID string) ([]*domain.Comment, error) {
	return cs.scanComments(`
		SELECT id, task_id, content, created_at
		FROM comments
		WHERE task_id = ?
		ORDER BY created_at, id
	`, taskID)
}

// Exists reports whether a comment with the given id is present.
func (cs *CommentStore) Exists(id string) (bool, error) {
	return exists(cs.q, "comments", id)
}

func (cs *CommentStore) scanComments(query string, args ...interface{}) ([]*domain.Comment, error) {
	rows, err := cs.q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		var (
			c         domain.Comment
			createdAt int64
		)
		if err := rows.Scan(&c.ID, &c.TaskID, &c.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		c.CreatedAt = fromMillis(createdAt)
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}
