package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations are applied in version order; each runs at most once.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_location_points",
		SQL: `
			CREATE TABLE IF NOT EXISTS location_points (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				ts INTEGER NOT NULL,
				lat REAL NOT NULL,
				lon REAL NOT NULL,
				altitude REAL,
				accuracy REAL,
				source TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_location_points_ts ON location_points(ts);
		`,
	},
	{
		Version: 2,
		Name:    "create_activity_sessions",
		SQL: `
			CREATE TABLE IF NOT EXISTS activity_sessions (
				id TEXT PRIMARY KEY,
				activity_type TEXT NOT NULL,
				date TEXT NOT NULL,
				start_ts INTEGER NOT NULL,
				end_ts INTEGER NOT NULL,
				duration_hours REAL NOT NULL,
				location_name TEXT NOT NULL DEFAULT '',
				location_lat REAL NOT NULL DEFAULT 0,
				location_lon REAL NOT NULL DEFAULT 0,
				confidence REAL NOT NULL,
				confidence_label TEXT NOT NULL,
				details_json TEXT NOT NULL DEFAULT '{}',
				algo_version TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_activity_sessions_date ON activity_sessions(date);
			CREATE INDEX IF NOT EXISTS idx_activity_sessions_type ON activity_sessions(activity_type);
		`,
	},
}

// Migrate applies all pending migrations in version order.
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
		if _, err := db.Exec(m.SQL); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
		if _, err := db.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
		log.Printf("[Database] Applied migration %d: %s", m.Version, m.Name)
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
