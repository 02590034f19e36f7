package database

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations are embedded rather than loaded from a directory so the binary
// carries its own schema. Versions must stay strictly increasing.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "initial_schema",
		SQL: `
			CREATE TABLE IF NOT EXISTS tbl_cameras (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				cam_id INTEGER UNIQUE NOT NULL,
				cam_name TEXT,
				cam_ip TEXT,
				cam_mac TEXT,
				cam_enable INTEGER NOT NULL DEFAULT 1,
				cam_rtsp TEXT,
				cam_desc TEXT
			);

			CREATE TABLE IF NOT EXISTS tbl_counters (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				counter_id INTEGER UNIQUE NOT NULL,
				counter_name TEXT,
				counter_cam_id INTEGER,
				num_of_rois INTEGER NOT NULL DEFAULT 0,
				counter_desc TEXT
			);

			CREATE TABLE IF NOT EXISTS tbl_rois (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				roi_id INTEGER UNIQUE NOT NULL,
				counter_roi_id INTEGER,
				roi_coor TEXT,
				roi_desc TEXT
			);

			CREATE TABLE IF NOT EXISTS tbl_events (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				event_id INTEGER UNIQUE NOT NULL,
				event_name TEXT,
				event_desc TEXT
			);

			CREATE TABLE IF NOT EXISTS tbl_accounts (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id INTEGER UNIQUE NOT NULL,
				user_name TEXT UNIQUE NOT NULL,
				password_hash TEXT NOT NULL,
				first_name TEXT,
				last_name TEXT,
				tel TEXT,
				user_status TEXT NOT NULL DEFAULT 'active'
			);

			CREATE TABLE IF NOT EXISTS tbl_visits (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				person_id INTEGER NOT NULL,
				roi_id INTEGER NOT NULL,
				counter_id INTEGER NOT NULL,
				cam_id INTEGER NOT NULL,
				duration_seconds INTEGER NOT NULL CHECK (duration_seconds >= 0),
				age_group TEXT NOT NULL,
				gender TEXT NOT NULL,
				visit_time TEXT NOT NULL,
				event_id INTEGER
			);
		`,
	},
	{
		Version: 2,
		Name:    "visit_indexes",
		SQL: `
			CREATE INDEX IF NOT EXISTS idx_visits_time ON tbl_visits(visit_time);
			CREATE INDEX IF NOT EXISTS idx_visits_counter_time ON tbl_visits(counter_id, visit_time);
			CREATE INDEX IF NOT EXISTS idx_visits_event ON tbl_visits(event_id);
		`,
	},
}

// Migrate applies all pending migrations inside transactions.
func Migrate(db *sql.DB) error {
	if err := initMigrationsTable(db); err != nil {
		return err
	}

	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if err := applyMigration(db, m); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
	}
	return nil
}

func initMigrationsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

func appliedMigrations(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func applyMigration(db *sql.DB, m Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.SQL); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}
	return tx.Commit()
}
