package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	// Create the schema_version table if it does not exist.
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means version 0 (fresh database).
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 creates all initial tables and indexes.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS task_contexts (
			tool_use_id TEXT PRIMARY KEY,
			agent_type  TEXT NOT NULL,
			session_id  TEXT NOT NULL,
			created_at  TEXT NOT NULL,
			prompt      TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_task_contexts_session
			ON task_contexts(session_id)`,

		`CREATE TABLE IF NOT EXISTS session_counters (
			session_id TEXT NOT NULL,
			name       TEXT NOT NULL,
			value      INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (session_id, name)
		)`,

		`CREATE TABLE IF NOT EXISTS port_leases (
			port       INTEGER PRIMARY KEY,
			lease_id   TEXT NOT NULL,
			service    TEXT NOT NULL,
			session_id TEXT NOT NULL,
			leased_at  TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_port_leases_session
			ON port_leases(session_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return err
		}
	}

	if _, err := db.conn.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := db.conn.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return nil
}
