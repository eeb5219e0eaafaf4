package database

import (
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Schema holds the tables for recorded runs and their scenario results
const Schema = `
	CREATE TABLE IF NOT EXISTS runs (
		id UUID PRIMARY KEY,
		base_url TEXT NOT NULL,
		driver VARCHAR(50) NOT NULL,
		browser VARCHAR(50) NOT NULL DEFAULT '',
		status VARCHAR(50) NOT NULL,
		total INTEGER NOT NULL DEFAULT 0,
		passed INTEGER NOT NULL DEFAULT 0,
		failed INTEGER NOT NULL DEFAULT 0,
		started_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		finished_at TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at DESC);

	CREATE TABLE IF NOT EXISTS scenario_results (
		id UUID PRIMARY KEY,
		run_id UUID NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		tags TEXT[] NOT NULL DEFAULT '{}',
		status VARCHAR(50) NOT NULL,
		failure_kind VARCHAR(50) NOT NULL DEFAULT '',
		message TEXT NOT NULL DEFAULT '',
		screenshot TEXT NOT NULL DEFAULT '',
		diagnostics TEXT[] NOT NULL DEFAULT '{}',
		started_at TIMESTAMP NOT NULL,
		duration_ms BIGINT NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_scenario_results_run_id ON scenario_results(run_id);
	`

// Migrate creates the run tables on db
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create run tables: %w", err)
	}
	return nil
}

// RunMigrations creates the necessary database tables
func RunMigrations(log logrus.FieldLogger) error {
	if DB == nil {
		return fmt.Errorf("database connection not initialized")
	}

	if err := Migrate(DB); err != nil {
		return err
	}

	log.Info("database migrations completed")
	return nil
}
