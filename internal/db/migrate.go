package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and are
// re-run on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS kv_store (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS plans (
		id          TEXT PRIMARY KEY,
		history     TEXT NOT NULL DEFAULT '',
		goals       TEXT NOT NULL DEFAULT '',
		streak      INTEGER NOT NULL DEFAULT 0,
		result_json TEXT NOT NULL,
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plans_created ON plans(created_at)`,

	// Burnout level is denormalised so history listings need not decode JSON.
	`ALTER TABLE plans ADD COLUMN burnout_level TEXT NOT NULL DEFAULT ''`,
}
