// Package history persists scan runs and logged changes across sessions.
//
// It uses SQLite under ~/.guardian/ so an agent can ask what was scanned
// and changed before the current conversation. History is strictly
// best-effort infrastructure: the scanner works without it, the server
// degrades gracefully when it fails to open.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Config holds history store configuration.
type Config struct {
	DataDir string
}

// DefaultConfig places the database under the user's home directory.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{DataDir: filepath.Join(home, ".guardian")}
}

// Store is the persistent history engine backed by SQLite.
type Store struct {
	db  *sql.DB
	cfg Config
}

// ScanRecord is one persisted scan run.
type ScanRecord struct {
	ID          int64  `json:"id"`
	Project     string `json:"project"`
	Root        string `json:"root"`
	FileCount   int    `json:"file_count"`
	Connections int    `json:"connections"`
	TechStack   string `json:"tech_stack"` // JSON role->value
	CreatedAt   string `json:"created_at"`
}

// AddScanParams holds the input for recording a scan run.
type AddScanParams struct {
	Project     string
	Root        string
	FileCount   int
	Connections int
	TechStack   map[string]string
}

// ChangeRecord is one persisted change log entry.
type ChangeRecord struct {
	ID          int64    `json:"id"`
	Project     string   `json:"project"`
	Description string   `json:"description"`
	Files       []string `json:"files"`
	Source      string   `json:"source"`
	CreatedAt   string   `json:"created_at"`
}

// AddChangeParams holds the input for logging a change.
type AddChangeParams struct {
	Project     string
	Description string
	Files       []string
	Source      string
}

// New creates a Store with the given configuration. It creates the data
// directory if needed, opens SQLite with WAL mode, and runs migrations.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("history: create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(cfg.DataDir, "history.db"))
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("history: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, cfg: cfg}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("history: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scans (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			project     TEXT    NOT NULL,
			root        TEXT    NOT NULL,
			file_count  INTEGER NOT NULL DEFAULT 0,
			connections INTEGER NOT NULL DEFAULT 0,
			tech_stack  TEXT    NOT NULL DEFAULT '{}',
			created_at  TEXT    NOT NULL DEFAULT (datetime('now'))
		);

		CREATE INDEX IF NOT EXISTS idx_scans_project ON scans(project);
		CREATE INDEX IF NOT EXISTS idx_scans_created ON scans(created_at DESC);

		CREATE TABLE IF NOT EXISTS changes (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			project     TEXT    NOT NULL,
			description TEXT    NOT NULL,
			files       TEXT    NOT NULL DEFAULT '[]',
			source      TEXT    NOT NULL DEFAULT 'manual',
			created_at  TEXT    NOT NULL DEFAULT (datetime('now'))
		);

		CREATE INDEX IF NOT EXISTS idx_changes_project ON changes(project);
		CREATE INDEX IF NOT EXISTS idx_changes_created ON changes(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// AddScan records a completed scan run and returns its ID.
func (s *Store) AddScan(p AddScanParams) (int64, error) {
	stack, err := json.Marshal(p.TechStack)
	if err != nil {
		return 0, fmt.Errorf("history: encode tech stack: %w", err)
	}
	res, err := s.db.Exec(
		`INSERT INTO scans (project, root, file_count, connections, tech_stack)
		 VALUES (?, ?, ?, ?, ?)`,
		p.Project, p.Root, p.FileCount, p.Connections, string(stack),
	)
	if err != nil {
		return 0, fmt.Errorf("history: insert scan: %w", err)
	}
	return res.LastInsertId()
}

// RecentScans returns the latest scan runs, newest first, optionally
// filtered by project.
func (s *Store) RecentScans(project string, limit int) ([]ScanRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `SELECT id, project, root, file_count, connections, tech_stack, created_at
	          FROM scans`
	args := []any{}
	if project != "" {
		query += ` WHERE project = ?`
		args = append(args, project)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("history: query scans: %w", err)
	}
	defer rows.Close()

	var records []ScanRecord
	for rows.Next() {
		var r ScanRecord
		if err := rows.Scan(&r.ID, &r.Project, &r.Root, &r.FileCount, &r.Connections, &r.TechStack, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("history: scan row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// AddChange logs a change entry and returns its ID.
func (s *Store) AddChange(p AddChangeParams) (int64, error) {
	files, err := json.Marshal(p.Files)
	if err != nil {
		return 0, fmt.Errorf("history: encode files: %w", err)
	}
	source := p.Source
	if source == "" {
		source = "manual"
	}
	res, err := s.db.Exec(
		`INSERT INTO changes (project, description, files, source) VALUES (?, ?, ?, ?)`,
		p.Project, p.Description, string(files), source,
	)
	if err != nil {
		return 0, fmt.Errorf("history: insert change: %w", err)
	}
	return res.LastInsertId()
}

// RecentChanges returns the latest change entries, newest first,
// optionally filtered by project.
func (s *Store) RecentChanges(project string, limit int) ([]ChangeRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `SELECT id, project, description, files, source, created_at FROM changes`
	args := []any{}
	if project != "" {
		query += ` WHERE project = ?`
		args = append(args, project)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("history: query changes: %w", err)
	}
	defer rows.Close()

	var records []ChangeRecord
	for rows.Next() {
		var r ChangeRecord
		var files string
		if err := rows.Scan(&r.ID, &r.Project, &r.Description, &files, &r.Source, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("history: change row: %w", err)
		}
		if err := json.Unmarshal([]byte(files), &r.Files); err != nil {
			r.Files = nil
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
