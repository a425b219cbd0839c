// Package database persists the open workspace in sqlite.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ispapp/sandpad/internal/logger"
	"github.com/ispapp/sandpad/pkg/files"
)

// Settings keys stored in app_settings.
const (
	KeyTheme      = "theme"
	KeyActiveFile = "active_file"
	KeyEntry      = "entry"
	// KeyDependencies holds the project dependencies as a JSON object.
	KeyDependencies = "dependencies"
)

type DB struct {
	conn *sql.DB
	log  *logger.Logger
}

// New opens the database at dbPath, creating it and its directory as needed.
// ":memory:" opens a private in-memory database.
func New(dbPath string, log *logger.Logger) (*DB, error) {
	log = log.WithFields(map[string]any{"path": dbPath}).With("database")

	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{conn: conn, log: log}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}
	if err := db.runMigrations(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	log.Debug("database ready")
	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS files (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		position INTEGER NOT NULL,
		name TEXT UNIQUE NOT NULL,
		type TEXT NOT NULL DEFAULT '',
		value TEXT NOT NULL DEFAULT '',
		editable BOOLEAN NOT NULL DEFAULT 1,
		visible BOOLEAN NOT NULL DEFAULT 1,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS app_settings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		key TEXT UNIQUE NOT NULL,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_app_settings_key ON app_settings(key);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// SaveFiles replaces the stored workspace with list, keeping its order.
func (db *DB) SaveFiles(list []files.File) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM files`); err != nil {
		return fmt.Errorf("failed to clear files: %w", err)
	}

	stmt, err := tx.Prepare(`
	INSERT INTO files (position, name, type, value, editable, visible, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, f := range list {
		if _, err := stmt.Exec(i, f.Name, f.Type, f.Value, f.Editable, f.Visible); err != nil {
			return fmt.Errorf("failed to save file %s: %w", f.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit files: %w", err)
	}
	db.log.WithFields(map[string]any{"files": len(list)}).Debug("workspace saved")
	return nil
}

// LoadFiles returns the stored workspace in order. An empty store returns
// no files and no error.
func (db *DB) LoadFiles() ([]files.File, error) {
	rows, err := db.conn.Query(`
	SELECT name, type, value, editable, visible
	FROM files
	ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query files: %w", err)
	}
	defer rows.Close()

	var out []files.File
	for rows.Next() {
		var f files.File
		if err := rows.Scan(&f.Name, &f.Type, &f.Value, &f.Editable, &f.Visible); err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// UpdateFileValue stores new content for the named file.
func (db *DB) UpdateFileValue(name, value string) error {
	res, err := db.conn.Exec(`
	UPDATE files SET value = ?, updated_at = CURRENT_TIMESTAMP WHERE name = ?
	`, value, name)
	if err != nil {
		return fmt.Errorf("failed to update file %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("failed to update file %s: %w", name, sql.ErrNoRows)
	}
	return nil
}

// FileCount returns the number of stored files
func (db *DB) FileCount() (int, error) {
	var count int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM files`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count files: %w", err)
	}
	return count, nil
}

// SaveSetting saves an application setting
func (db *DB) SaveSetting(key, value string) error {
	query := `
	INSERT INTO app_settings (key, value, updated_at)
	VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET
		value = excluded.value,
		updated_at = CURRENT_TIMESTAMP
	`

	_, err := db.conn.Exec(query, key, value)
	return err
}

// LoadSetting loads an application setting. Missing keys return "".
func (db *DB) LoadSetting(key string) (string, error) {
	var value string
	err := db.conn.QueryRow(`SELECT value FROM app_settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load setting %s: %w", key, err)
	}
	return value, nil
}

func (db *DB) migrationVersion() (int, error) {
	var version int
	if err := db.conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

func (db *DB) setMigrationVersion(version int) error {
	_, err := db.conn.Exec(fmt.Sprintf("PRAGMA user_version = %d", version))
	return err
}

// migrations[i] upgrades the schema from version i to i+1.
var migrations = []string{
	// 1: initial schema, created by initSchema
	"",
	// 2: ordered reads of the workspace
	`CREATE INDEX IF NOT EXISTS idx_files_position ON files(position);`,
}

func (db *DB) runMigrations() error {
	current, err := db.migrationVersion()
	if err != nil {
		return err
	}

	target := len(migrations)
	if current >= target {
		return nil
	}

	for i := current; i < target; i++ {
		if migrations[i] == "" {
			continue
		}
		db.log.WithFields(map[string]any{"version": i + 1}).Info("running migration")
		if _, err := db.conn.Exec(migrations[i]); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return db.setMigrationVersion(target)
}

// SchemaVersion returns the applied migration version.
func (db *DB) SchemaVersion() (int, error) {
	return db.migrationVersion()
}
