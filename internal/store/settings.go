package store

import (
	"database/sql"
	"fmt"

	"github.com/tasknest/tasknest/internal/domain"
	"github.com/tasknest/tasknest/internal/storage"
)

// SettingStore handles setting persistence. Validation happens above
// this layer; the store writes whatever it is handed.
type SettingStore struct {
	q queryer
}

// Put writes a setting, replacing any existing value for the key.
func (ss *SettingStore) Put(key, value string) error {
	_, err := ss.q.Exec(`
		INSERT INTO settings (key, value)
		VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to put setting: %w", err)
	}
	return nil
}

// Get retrieves the value for a key.
func (ss *SettingStore) Get(key string) (string, error) {
	var value string
	err := ss.q.QueryRow(`
		SELECT value FROM settings WHERE key = ?
	`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting: %w", err)
	}
	return value, nil
}

// List returns all settings ordered by key.
func (ss *SettingStore) List() ([]*domain.Setting, error) {
	rows, err := ss.q.Query(`
		SELECT key, value FROM settings ORDER BY key
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	var settings []*domain.Setting
	for rows.Next() {
		var s domain.Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings = append(settings, &s)
	}
	return settings, rows.Err()
}
