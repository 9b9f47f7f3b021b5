// Package store provides the SQLite-backed implementation of the
// storage interfaces. All repositories run their statements through a
// shared queryer so they work identically on the live connection and
// inside an open transaction.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tasknest/tasknest/internal/db"
	"github.com/tasknest/tasknest/internal/storage"
)

// queryer is the subset of database/sql used by the repositories,
// satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// dataset bundles the per-entity repositories over a single queryer,
// either the live connection or an open transaction.
type dataset struct {
	q queryer
}

func (d *dataset) Projects() storage.ProjectRepo       { return &ProjectStore{q: d.q} }
func (d *dataset) Sections() storage.SectionRepo       { return &SectionStore{q: d.q} }
func (d *dataset) Tasks() storage.TaskRepo             { return &TaskStore{q: d.q} }
func (d *dataset) Labels() storage.LabelRepo           { return &LabelStore{q: d.q} }
func (d *dataset) Comments() storage.CommentRepo       { return &CommentStore{q: d.q} }
func (d *dataset) Attachments() storage.AttachmentRepo { return &AttachmentStore{q: d.q} }
func (d *dataset) Settings() storage.SettingRepo       { return &SettingStore{q: d.q} }
func (d *dataset) Events() storage.EventRepo           { return &EventStore{q: d.q} }

// Store is the root SQLite store.
type Store struct {
	dataset
	db *db.DB
}

// New creates a Store over an open database connection.
func New(database *db.DB) *Store {
	return &Store{dataset: dataset{q: database.DB}, db: database}
}

// DB returns the underlying database handle.
func (s *Store) DB() *db.DB {
	return s.db
}

// RunInTransaction runs fn against a transaction-scoped dataset. The
// transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) RunInTransaction(fn func(tx storage.Dataset) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&dataset{q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// exists reports whether a row with the given id is present in table.
func exists(q queryer, table, id string) (bool, error) {
	var count int
	err := q.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE id = ?", table), id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check %s existence: %w", table, err)
	}
	return count > 0, nil
}

// Timestamps are stored as integer epoch milliseconds. Nullable
// columns round-trip through sql.NullInt64.

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func toNullMillis(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UnixMilli()
}

func fromNullMillis(ms sql.NullInt64) *time.Time {
	if !ms.Valid {
		return nil
	}
	t := time.UnixMilli(ms.Int64).UTC()
	return &t
}
