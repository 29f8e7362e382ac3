// Package archive keeps finished tasks in a SQLite database.
package archive

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/runoshun/daytrack/internal/domain"
)

//go:embed schema.sql
var schema string

// Ensure Store implements domain.TaskArchive.
var _ domain.TaskArchive = (*Store)(nil)

// Store is the long-term task archive.
type Store struct {
	db *sql.DB
}

// Open opens the archive at path and creates the schema if needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("archive: create directory: %w", err)
	}
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("archive: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("archive: init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Archive stores the given tasks in one transaction.
func (s *Store) Archive(ctx context.Context, tasks []*domain.Task, at time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("archive: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO archived_tasks (task_id, project_id, title, archived_at, data)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("archive: prepare: %w", err)
	}
	defer stmt.Close()

	for _, t := range tasks {
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("archive: encode task #%d: %w", t.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, t.ID, t.ProjectID, t.Title, at.UnixMilli(), string(data)); err != nil {
			return fmt.Errorf("archive: insert task #%d: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("archive: commit: %w", err)
	}
	return nil
}

// List returns archived tasks, most recent first. limit <= 0 means no limit.
func (s *Store) List(ctx context.Context, limit int) ([]domain.ArchivedTask, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT task_id, archived_at, data
		FROM archived_tasks
		ORDER BY archived_at DESC, row_id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("archive: query: %w", err)
	}
	defer rows.Close()

	var out []domain.ArchivedTask
	for rows.Next() {
		var (
			id         int
			archivedAt int64
			data       string
		)
		if err := rows.Scan(&id, &archivedAt, &data); err != nil {
			return nil, fmt.Errorf("archive: scan: %w", err)
		}
		var task domain.Task
		if err := json.Unmarshal([]byte(data), &task); err != nil {
			return nil, fmt.Errorf("archive: decode task #%d: %w", id, err)
		}
		task.ID = id
		out = append(out, domain.ArchivedTask{Task: task, ArchivedAt: time.UnixMilli(archivedAt)})
	}
	return out, rows.Err()
}
