package database

import (
	"database/sql"
	"fmt"
)

// Schema creates the tables that hold suite runs and their scenario results.
const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	id UUID PRIMARY KEY,
	base_url TEXT NOT NULL,
	status VARCHAR(16) NOT NULL,
	passed INTEGER NOT NULL DEFAULT 0,
	failed INTEGER NOT NULL DEFAULT 0,
	started_at TIMESTAMP NOT NULL,
	finished_at TIMESTAMP
);

CREATE TABLE IF NOT EXISTS scenario_results (
	id UUID PRIMARY KEY,
	run_id UUID NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	scenario VARCHAR(128) NOT NULL,
	session_id VARCHAR(64) NOT NULL DEFAULT '',
	status VARCHAR(16) NOT NULL,
	failures TEXT[] NOT NULL DEFAULT '{}',
	started_at TIMESTAMP NOT NULL,
	duration_ms BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_scenario_results_run ON scenario_results(run_id);
CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
`

// RunMigrations creates the results tables if they do not exist
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("database connection not initialized")
	}

	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create results tables: %w", err)
	}
	return nil
}
