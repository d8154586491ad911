package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// database/sql driver names
const (
	DriverCGO    = "sqlite3"
	DriverPureGo = "sqlite"
)

const MemoryPath = ":memory:"

type DB struct {
	*sqlx.DB
}

type Config struct {
	Path string
	// Driver is DriverCGO (mattn/go-sqlite3, default) or DriverPureGo (modernc.org/sqlite).
	Driver string
}

// creates a new db conn & runs migrations
func NewDB(cfg Config) (*DB, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverCGO
	}
	if driver != DriverCGO && driver != DriverPureGo {
		return nil, fmt.Errorf("unsupported database driver: %s (expected %s or %s)", driver, DriverCGO, DriverPureGo)
	}

	if cfg.Path != MemoryPath {
		dir := filepath.Dir(cfg.Path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// open SQLite connection
	db, err := sqlx.Open(driver, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// every connection to :memory: is a separate database
	if cfg.Path == MemoryPath {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if cfg.Path != MemoryPath {
		if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	// run migrations
	if err := runMigrations(db.DB); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &DB{DB: db}, nil
}

// executes db schema
func runMigrations(db *sql.DB) error {
	schema := `
	-- Folders, in storage order
	CREATE TABLE IF NOT EXISTS folders (
		position INTEGER PRIMARY KEY,
		id TEXT NOT NULL,
		name TEXT NOT NULL,
		parent TEXT NOT NULL DEFAULT '',
		color TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS members (
		position INTEGER PRIMARY KEY,
		id TEXT NOT NULL,
		name TEXT NOT NULL
	);

	-- Tasks, in storage order
	CREATE TABLE IF NOT EXISTS tasks (
		position INTEGER PRIMARY KEY,
		id INTEGER NOT NULL,
		title TEXT NOT NULL,
		folder_id TEXT NOT NULL DEFAULT '',
		folder TEXT NOT NULL DEFAULT '',
		priority TEXT NOT NULL DEFAULT 'normal',
		start_date TEXT NOT NULL DEFAULT '',
		end_date TEXT NOT NULL DEFAULT '',
		leave_days INTEGER NOT NULL DEFAULT 0,
		members TEXT NOT NULL DEFAULT '[]',
		notes TEXT NOT NULL DEFAULT '',
		subtasks TEXT NOT NULL DEFAULT '[]',
		attachments TEXT NOT NULL DEFAULT '[]',
		completed INTEGER NOT NULL DEFAULT 0,
		completed_at TEXT,
		created_at TEXT NOT NULL,

		CHECK(priority IN ('critical', 'urgent', 'high', 'normal', 'low', 'lowest'))
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_id ON tasks(id);
	CREATE INDEX IF NOT EXISTS idx_tasks_folder_id ON tasks(folder_id);

	-- Single-row board state
	CREATE TABLE IF NOT EXISTS board_state (
		id INTEGER PRIMARY KEY CHECK(id = 1),
		version INTEGER NOT NULL,
		current_folder TEXT NOT NULL DEFAULT 'all',
		collapsed_folders TEXT NOT NULL DEFAULT '[]',
		manual_sort INTEGER NOT NULL DEFAULT 0,
		saved_at TEXT NOT NULL
	);

	-- Local fallback cache
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS attachments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		stored_name TEXT NOT NULL UNIQUE,
		original_name TEXT NOT NULL,
		size INTEGER NOT NULL DEFAULT 0,
		content_type TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}
