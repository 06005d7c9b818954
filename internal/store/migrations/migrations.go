// Package migrations creates the management schema: one table per resource
// type (plus trash twins where a type supports a trashcan), the generic
// tagging relation, the settings table, and the SQL macros the sort
// expressions of the filter compiler rely on.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

// resourceColumns is the shared column layout of a resource table.
const resourceColumns = `
	id BIGINT PRIMARY KEY DEFAULT nextval('%s'),
	uuid TEXT NOT NULL UNIQUE,
	owner TEXT NOT NULL DEFAULT '',
	created BIGINT NOT NULL DEFAULT 0,
	modified BIGINT NOT NULL DEFAULT 0`

var statements = []string{
	`CREATE SEQUENCE IF NOT EXISTS tasks_id_seq`,
	`CREATE SEQUENCE IF NOT EXISTS reports_id_seq`,
	`CREATE SEQUENCE IF NOT EXISTS results_id_seq`,
	`CREATE SEQUENCE IF NOT EXISTS hosts_id_seq`,
	`CREATE SEQUENCE IF NOT EXISTS credentials_id_seq`,
	`CREATE SEQUENCE IF NOT EXISTS users_id_seq`,
	`CREATE SEQUENCE IF NOT EXISTS filters_id_seq`,
	`CREATE SEQUENCE IF NOT EXISTS tags_id_seq`,
	`CREATE SEQUENCE IF NOT EXISTS notes_id_seq`,
	`CREATE SEQUENCE IF NOT EXISTS overrides_id_seq`,

	resourceTable("tasks", "tasks_id_seq", `
		name TEXT NOT NULL DEFAULT '',
		comment TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'New',
		progress INTEGER NOT NULL DEFAULT 0,
		threat TEXT NOT NULL DEFAULT '',
		trend TEXT NOT NULL DEFAULT '',
		severity DOUBLE,
		schedule BIGINT,
		target BIGINT`),
	resourceTable("tasks_trash", "tasks_id_seq", `
		name TEXT NOT NULL DEFAULT '',
		comment TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'New',
		progress INTEGER NOT NULL DEFAULT 0,
		threat TEXT NOT NULL DEFAULT '',
		trend TEXT NOT NULL DEFAULT '',
		severity DOUBLE,
		schedule BIGINT,
		target BIGINT`),

	resourceTable("reports", "reports_id_seq", `
		task BIGINT,
		status TEXT NOT NULL DEFAULT 'New',
		progress INTEGER NOT NULL DEFAULT 0,
		severity DOUBLE,
		start_time BIGINT,
		end_time BIGINT`),

	resourceTable("results", "results_id_seq", `
		name TEXT NOT NULL DEFAULT '',
		host TEXT NOT NULL DEFAULT '',
		port TEXT NOT NULL DEFAULT '',
		severity DOUBLE,
		threat TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		nvt TEXT NOT NULL DEFAULT '',
		report BIGINT,
		task BIGINT`),

	resourceTable("hosts", "hosts_id_seq", `
		name TEXT NOT NULL DEFAULT '',
		comment TEXT NOT NULL DEFAULT '',
		ip TEXT NOT NULL DEFAULT '',
		os TEXT NOT NULL DEFAULT '',
		severity DOUBLE`),

	resourceTable("credentials", "credentials_id_seq", `
		name TEXT NOT NULL DEFAULT '',
		comment TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL DEFAULT '',
		login TEXT NOT NULL DEFAULT ''`),
	resourceTable("credentials_trash", "credentials_id_seq", `
		name TEXT NOT NULL DEFAULT '',
		comment TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL DEFAULT '',
		login TEXT NOT NULL DEFAULT ''`),

	resourceTable("users", "users_id_seq", `
		name TEXT NOT NULL DEFAULT '',
		comment TEXT NOT NULL DEFAULT '',
		roles TEXT NOT NULL DEFAULT '',
		hosts TEXT NOT NULL DEFAULT '',
		method TEXT NOT NULL DEFAULT ''`),

	resourceTable("filters", "filters_id_seq", `
		name TEXT NOT NULL DEFAULT '',
		comment TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL DEFAULT '',
		term TEXT NOT NULL DEFAULT ''`),
	resourceTable("filters_trash", "filters_id_seq", `
		name TEXT NOT NULL DEFAULT '',
		comment TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL DEFAULT '',
		term TEXT NOT NULL DEFAULT ''`),

	resourceTable("tags", "tags_id_seq", `
		name TEXT NOT NULL DEFAULT '',
		value TEXT NOT NULL DEFAULT '',
		comment TEXT NOT NULL DEFAULT '',
		active INTEGER NOT NULL DEFAULT 1,
		resource_type TEXT NOT NULL DEFAULT ''`),

	resourceTable("notes", "notes_id_seq", `
		nvt TEXT NOT NULL DEFAULT '',
		text TEXT NOT NULL DEFAULT '',
		hosts TEXT NOT NULL DEFAULT '',
		port TEXT NOT NULL DEFAULT '',
		severity DOUBLE,
		task BIGINT`),
	resourceTable("notes_trash", "notes_id_seq", `
		nvt TEXT NOT NULL DEFAULT '',
		text TEXT NOT NULL DEFAULT '',
		hosts TEXT NOT NULL DEFAULT '',
		port TEXT NOT NULL DEFAULT '',
		severity DOUBLE,
		task BIGINT`),

	resourceTable("overrides", "overrides_id_seq", `
		nvt TEXT NOT NULL DEFAULT '',
		text TEXT NOT NULL DEFAULT '',
		hosts TEXT NOT NULL DEFAULT '',
		port TEXT NOT NULL DEFAULT '',
		severity DOUBLE,
		new_severity DOUBLE,
		task BIGINT`),
	resourceTable("overrides_trash", "overrides_id_seq", `
		nvt TEXT NOT NULL DEFAULT '',
		text TEXT NOT NULL DEFAULT '',
		hosts TEXT NOT NULL DEFAULT '',
		port TEXT NOT NULL DEFAULT '',
		severity DOUBLE,
		new_severity DOUBLE,
		task BIGINT`),

	`CREATE TABLE IF NOT EXISTS tag_resources (
		tag_id BIGINT NOT NULL,
		resource_type TEXT NOT NULL,
		resource_id BIGINT NOT NULL,
		resource_uuid TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS settings (
		name TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
	`INSERT INTO settings (name, value) VALUES
		('rows_per_page', '10'),
		('max_rows_per_page', '1000')
	ON CONFLICT (name) DO NOTHING`,

	// Sort helpers referenced by compiled ORDER BY clauses.

	// Run states sort by lifecycle phase, with container tasks grouped
	// first, instead of alphabetically by the raw status string.
	`CREATE OR REPLACE MACRO order_status(status) AS
		CASE status
			WHEN 'Container' THEN '00'
			WHEN 'Running' THEN '10'
			WHEN 'Processing' THEN '11'
			WHEN 'Queued' THEN '12'
			WHEN 'Requested' THEN '13'
			WHEN 'Stop Requested' THEN '20'
			WHEN 'Stopped' THEN '21'
			WHEN 'Interrupted' THEN '22'
			WHEN 'Delete Requested' THEN '23'
			WHEN 'Done' THEN '30'
			WHEN 'New' THEN '31'
			ELSE '9' || lower(status)
		END`,

	// Ordinal threat ranking, highest first when sorted descending.
	`CREATE OR REPLACE MACRO order_threat(threat) AS
		CASE threat
			WHEN 'High' THEN 7
			WHEN 'Medium' THEN 6
			WHEN 'Low' THEN 5
			WHEN 'Log' THEN 4
			WHEN 'False Positive' THEN 3
			WHEN 'Debug' THEN 2
			WHEN 'Error' THEN 1
			ELSE 0
		END`,

	// Dotted quads sort numerically per octet; anything else keeps its
	// text order after all addresses.
	`CREATE OR REPLACE MACRO order_inet(ip) AS
		CASE WHEN regexp_matches(ip, '^[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}$')
		THEN '0' || lpad(split_part(ip, '.', 1), 3, '0')
			|| lpad(split_part(ip, '.', 2), 3, '0')
			|| lpad(split_part(ip, '.', 3), 3, '0')
			|| lpad(split_part(ip, '.', 4), 3, '0')
		ELSE '1' || lower(ip)
		END`,

	// Administrators first.
	`CREATE OR REPLACE MACRO order_role(role) AS
		CASE WHEN role = 'Admin' THEN '0' ELSE '1' || lower(role) END`,
}

func resourceTable(table, sequence, columns string) string {
	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s ("+resourceColumns+",%s)",
		table, sequence, columns,
	)
}

// Run applies the full schema. Every statement is idempotent, so Run is
// safe to call on every startup.
func Run(ctx context.Context, db *sql.DB) error {
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w\nstatement: %s", err, stmt)
		}
	}
	return nil
}
