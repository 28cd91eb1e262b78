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
package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/ocomsoft/mitre/internal/model"
)

func newMockRunner(t *testing.T) (*Runner, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &Runner{db: db, rc: model.RunnerConfiguration{Name: "mitre", Driver: model.DriverMySQL}}, mock
}

func TestBootstrap_CreatesBothTablesInOneTransaction(t *testing.T) {
	r, mock := newMockRunner(t)

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS migration_steps").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	if err := r.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRecordApplied_Up_InsertsLedgerAndStepRows(t *testing.T) {
	r, mock := newMockRunner(t)

	m := model.Migration{
		Version:           20260101120000,
		Slug:              "create_users",
		ConfigurationName: "appdb",
		Steps: []model.MigrationStep{
			{Direction: model.DirectionChange, Path: "x.appdb.sql", Source: "CREATE TABLE users (id INT);"},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO migrations").
		WithArgs(m.Version, m.Slug, m.ConfigurationName, m.BuiltIn, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO migration_steps").
		WithArgs(m.Version, "change", "x.appdb.sql", "CREATE TABLE users (id INT);").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if err := r.RecordApplied(context.Background(), m, model.DirectionChange, 5*time.Millisecond); err != nil {
		t.Fatalf("RecordApplied: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRecordApplied_Down_DeletesStepsThenLedgerRow(t *testing.T) {
	r, mock := newMockRunner(t)

	m := model.Migration{Version: 20260101120000, ConfigurationName: "appdb"}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM migration_steps WHERE version").
		WithArgs(m.Version).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM migrations WHERE version").
		WithArgs(m.Version).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := r.RecordApplied(context.Background(), m, model.DirectionDown, 0); err != nil {
		t.Fatalf("RecordApplied: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListApplied_ReassemblesStepsPerVersion(t *testing.T) {
	r, mock := newMockRunner(t)

	now := time.Now().UTC().Truncate(time.Second)
	mock.ExpectQuery("SELECT version, configuration_name, built_in, applied_at FROM migrations").
		WillReturnRows(sqlmock.NewRows([]string{"version", "configuration_name", "built_in", "applied_at"}).
			AddRow(uint64(20260101120000), "appdb", false, now))
	mock.ExpectQuery("SELECT direction, path, source FROM migration_steps WHERE version").
		WithArgs(uint64(20260101120000)).
		WillReturnRows(sqlmock.NewRows([]string{"direction", "path", "source"}).
			AddRow("change", "x.appdb.sql", "CREATE TABLE users (id INT);"))

	entries, err := r.ListApplied(context.Background())
	if err != nil {
		t.Fatalf("ListApplied: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if len(entries[0].Steps) != 1 || entries[0].Steps[0].Source != "CREATE TABLE users (id INT);" {
		t.Errorf("unexpected steps: %+v", entries[0].Steps)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
