package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS plans (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id        TEXT NOT NULL,
		kind           TEXT NOT NULL,
		title          TEXT NOT NULL DEFAULT '',
		start_date     TEXT,
		duration_weeks INTEGER NOT NULL DEFAULT 1,
		schedule       TEXT NOT NULL DEFAULT '[]',
		active         INTEGER NOT NULL DEFAULT 1,
		created_at     TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE INDEX IF NOT EXISTS idx_plans_user_kind ON plans(user_id, kind, active);

	CREATE TABLE IF NOT EXISTS workout_logs (
		id                  INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id             TEXT NOT NULL,
		date                TEXT NOT NULL,
		title               TEXT NOT NULL DEFAULT '',
		exercises_completed INTEGER NOT NULL DEFAULT 0,
		total_exercises     INTEGER NOT NULL DEFAULT 0,
		duration            INTEGER NOT NULL DEFAULT 0,
		exercises           TEXT NOT NULL DEFAULT '[]',
		created_at          TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE INDEX IF NOT EXISTS idx_logs_user_date ON workout_logs(user_id, date);

	CREATE TABLE IF NOT EXISTS session_snapshots (
		user_id    TEXT PRIMARY KEY,
		snapshot   TEXT NOT NULL,
		updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS completed_meals (
		user_id TEXT NOT NULL,
		plan_id INTEGER NOT NULL,
		meals   TEXT NOT NULL DEFAULT '{}',
		PRIMARY KEY (user_id, plan_id)
	);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('rest_duration', '60'),
		('week_start',    'monday'),
		('profile',       'local'),
		('units',         'kg');
	`
	_, err := s.db.Exec(ddl)
	return err
}

// DefaultDBPath returns ~/.config/liftlog/liftlog.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "liftlog", "liftlog.db"), nil
}
