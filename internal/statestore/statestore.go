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

// Package statestore defines the narrow protocol any persistent runner may
// implement to back the applied-migrations ledger: bootstrap the schema,
// record an application, and list what's already applied. Its callers are
// internal/executor (RecordApplied) and the CLI's shared discover-and-plan
// step in cmd (Bootstrap, ListApplied); the only
// implementations live under internal/runner/mysql and
// internal/runner/postgresql, the two drivers the acceptance table marks
// can_store_state.
package statestore

import (
	"context"
	"time"

	"github.com/ocomsoft/mitre/internal/model"
)

// StateStore is implemented by any runner capable of persisting the
// applied-migrations ledger.
type StateStore interface {
	// Bootstrap idempotently creates the ledger schema (the migrations and
	// migration_steps tables). Must be safe to call on every invocation.
	Bootstrap(ctx context.Context) error

	// RecordApplied appends a ledger row for an up/change application, or
	// removes the version's up/change rows for a down application. duration
	// is the wall-clock time the runner spent executing the step.
	RecordApplied(ctx context.Context, m model.Migration, dir model.Direction, duration time.Duration) error

	// ListApplied returns every ledger row, with its stored step sources,
	// ordered by version ascending.
	ListApplied(ctx context.Context) ([]model.AppliedEntry, error)
}
