/*
MIT License

# Copyright (c) 2025 OcomSoft

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

// Package mysql is the MySQL/MariaDB runner: it executes rendered SQL
// steps and, when bound to the "mitre" configuration name, also backs
// the applied-migrations ledger. Grounded on the teacher's cmd/goose.go
// raw database/sql + blank-import driver idiom, with the ledger schema
// expressed as two CREATE TABLE IF NOT EXISTS statements run inside one
// transaction per pressly/goose's own bookkeeping-table precedent.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/ocomsoft/mitre/internal/model"
)

const (
	ledgerTable = "migrations"
	stepsTable  = "migration_steps"
)

// Runner is the MySQL/MariaDB adapter, doubling as a state store.
type Runner struct {
	db *sql.DB
	rc model.RunnerConfiguration
}

// New opens a connection for rc. The connection is lazily pinged on
// first use rather than here, matching database/sql's own deferred-dial
// behavior.
func New(rc model.RunnerConfiguration) (*Runner, error) {
	dsn := buildDSN(rc)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql %q: failed to open connection: %w", rc.Name, err)
	}
	return &Runner{db: db, rc: rc}, nil
}

func buildDSN(rc model.RunnerConfiguration) string {
	host := rc.Host
	if host == "" {
		host = "127.0.0.1"
	}
	port := rc.Port
	if port == 0 {
		port = 3306
	}
	if rc.Password != "" {
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&multiStatements=true", rc.Username, rc.Password, host, port, rc.Database)
	}
	return fmt.Sprintf("%s@tcp(%s:%d)/%s?parseTime=true&multiStatements=true", rc.Username, host, port, rc.Database)
}

// Execute runs rendered against the connection in one Exec call; the DSN
// enables multiStatements, so a step may hold several statements.
func (r *Runner) Execute(ctx context.Context, rendered string) error {
	if _, err := r.db.ExecContext(ctx, rendered); err != nil {
		return fmt.Errorf("mysql %q: %w", r.rc.Name, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (r *Runner) Close() error {
	return r.db.Close()
}

// Bootstrap idempotently creates the ledger tables inside one
// transaction.
func (r *Runner) Bootstrap(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("mysql %q: bootstrap: %w", r.rc.Name, err)
	}
	defer tx.Rollback()

	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			version BIGINT(14) PRIMARY KEY,
			slug VARCHAR(255) NOT NULL,
			configuration_name VARCHAR(255) NOT NULL,
			built_in BOOLEAN NOT NULL DEFAULT FALSE,
			applied_at DATETIME NOT NULL,
			apply_duration_ms BIGINT NOT NULL DEFAULT 0
		)`, ledgerTable),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			version BIGINT(14) NOT NULL,
			direction ENUM('up','down','change') NOT NULL,
			path VARCHAR(1024) NOT NULL,
			source MEDIUMBLOB NOT NULL CHECK (source <> ''),
			FOREIGN KEY (version) REFERENCES %s(version)
		)`, stepsTable, ledgerTable),
	}

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("mysql %q: bootstrap: %w", r.rc.Name, err)
		}
	}

	return tx.Commit()
}

// RecordApplied appends ledger rows for up/change, or removes the
// version's rows for down, inside one transaction.
func (r *Runner) RecordApplied(ctx context.Context, m model.Migration, dir model.Direction, duration time.Duration) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("mysql %q: record_applied: %w", r.rc.Name, err)
	}
	defer tx.Rollback()

	if dir == model.DirectionDown {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE version = ?`, stepsTable), m.Version); err != nil {
			return fmt.Errorf("mysql %q: record_applied: %w", r.rc.Name, err)
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE version = ?`, ledgerTable), m.Version); err != nil {
			return fmt.Errorf("mysql %q: record_applied: %w", r.rc.Name, err)
		}
		return tx.Commit()
	}

	_, err = tx.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (version, slug, configuration_name, built_in, applied_at, apply_duration_ms) VALUES (?, ?, ?, ?, ?, ?)`, ledgerTable),
		m.Version, m.Slug, m.ConfigurationName, m.BuiltIn, time.Now().UTC(), duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("mysql %q: record_applied: %w", r.rc.Name, err)
	}

	for _, step := range m.Steps {
		_, err = tx.ExecContext(ctx,
			fmt.Sprintf(`INSERT INTO %s (version, direction, path, source) VALUES (?, ?, ?, ?)`, stepsTable),
			m.Version, string(step.Direction), step.Path, step.Source)
		if err != nil {
			return fmt.Errorf("mysql %q: record_applied: %w", r.rc.Name, err)
		}
	}

	return tx.Commit()
}

// ListApplied reads every ledger row back, ordered by version.
func (r *Runner) ListApplied(ctx context.Context) ([]model.AppliedEntry, error) {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT version, configuration_name, built_in, applied_at FROM %s ORDER BY version ASC`, ledgerTable))
	if err != nil {
		return nil, fmt.Errorf("mysql %q: list_applied: %w", r.rc.Name, err)
	}
	defer rows.Close()

	var entries []model.AppliedEntry
	for rows.Next() {
		var e model.AppliedEntry
		if err := rows.Scan(&e.Version, &e.ConfigurationName, &e.BuiltIn, &e.StoredAt); err != nil {
			return nil, fmt.Errorf("mysql %q: list_applied: %w", r.rc.Name, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("mysql %q: list_applied: %w", r.rc.Name, err)
	}

	for i := range entries {
		steps, err := r.loadSteps(ctx, entries[i].Version)
		if err != nil {
			return nil, err
		}
		entries[i].Steps = steps
	}

	return entries, nil
}

func (r *Runner) loadSteps(ctx context.Context, version uint64) ([]model.MigrationStep, error) {
	rows, err := r.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT direction, path, source FROM %s WHERE version = ?`, stepsTable), version)
	if err != nil {
		return nil, fmt.Errorf("mysql %q: list_applied: steps for version %d: %w", r.rc.Name, version, err)
	}
	defer rows.Close()

	var steps []model.MigrationStep
	for rows.Next() {
		var s model.MigrationStep
		var dir string
		if err := rows.Scan(&dir, &s.Path, &s.Source); err != nil {
			return nil, fmt.Errorf("mysql %q: list_applied: steps for version %d: %w", r.rc.Name, version, err)
		}
		s.Direction = model.Direction(dir)
		steps = append(steps, s)
	}
	return steps, rows.Err()
}
