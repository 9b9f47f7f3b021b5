package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tasknest/tasknest/internal/domain"
	"github.com/tasknest/tasknest/internal/storage"
)

// AttachmentStore handles attachment persistence. Payloads live in the
// database alongside their metadata.
type AttachmentStore struct {
	q queryer
}

// Create inserts a new attachment. The payload length must equal the
// declared size.
func (as *AttachmentStore) Create(a *domain.Attachment) error {
	if int64(len(a.Data)) != a.SizeBytes {
		return fmt.Errorf("%w: declared %d bytes, payload is %d",
			storage.ErrPayloadSizeMismatch, a.SizeBytes, len(a.Data))
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	_, err := as.q.Exec(`
		INSERT INTO attachments (id, task_id, filename, mime_type, size_bytes, created_at, data)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.TaskID, a.Filename, a.MimeType, a.SizeBytes, toMillis(a.CreatedAt), a.Data)
	if err != nil {
		return fmt.Errorf("failed to create attachment: %w", err)
	}
	return nil
}

// Get retrieves an attachment, payload included.
func (as *AttachmentStore) Get(id string) (*domain.Attachment, error) {
	var (
		a         domain.Attachment
		createdAt int64
	)
	err := as.q.QueryRow(`
		SELECT id, task_id, filename, mime_type, size_bytes, created_at, data
		FROM attachments
		WHERE id = ?
	`, id).Scan(&a.ID, &a.TaskID, &a.Filename, &a.MimeType, &a.SizeBytes, &createdAt, &a.Data)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attachment: %w", err)
	}
	a.CreatedAt = fromMillis(createdAt)
	return &a, nil
}

// List returns all attachments with payloads, in creation order.
func (as *AttachmentStore) List() ([]*domain.Attachment, error) {
	return as.scanAttachments(`
		SELECT id, task_id, filename, mime_type, size_bytes, created_at, data
		FROM attachments
		ORDER BY created_at, id
	`)
}

// ListByTask returns the attachments on one task in creation order.
func (as *AttachmentStore) ListByTask(taskID string) ([]*domain.Attachment, error) {
	return as.scanAttachments(`
		SELECT id, task_id, filename, mime_type, size_bytes, created_at, data
		FROM attachments
		WHERE task_id = ?
		ORDER BY created_at, id
	`, taskID)
}

// Exists reports whether an attachment with the given id is present.
func (as *AttachmentStore) Exists(id string) (bool, error) {
	return exists(as.q, "attachments", id)
}

func (as *AttachmentStore) scanAttachments(query string, args ...interface{}) ([]*domain.Attachment, error) {
	rows, err := as.q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	defer rows.Close()

	var attachments []*domain.Attachment
	for rows.Next() {
		var (
			a         domain.Attachment
			createdAt int64
		)
		if err := rows.Scan(&a.ID, &a.TaskID, &a.Filename, &a.MimeType, &a.SizeBytes, &createdAt, &a.Data); err != nil {
			return nil, fmt.Errorf("failed to scan attachment: %w", err)
		}
		a.CreatedAt = fromMillis(createdAt)
		attachments = append(attachments, &a)
	}
	return attachments, rows.Err()
}
