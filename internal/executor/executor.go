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

// Package executor drives a planner.Plan: for each Pending, unskipped
// migration in ascending version order, render its step, invoke the
// bound runner, and record the application with the state store.
// Generalized from the teacher's runDefaultMakeMigrations orchestration
// in cmd/root.go — a straight-line sequence of named, verbosely logged
// steps, each error wrapped with its stage — into a reusable
// Executor.Run the CLI calls instead of inlining the sequence.
package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"

	mitreerrors "github.com/ocomsoft/mitre/internal/errors"
	"github.com/ocomsoft/mitre/internal/model"
	"github.com/ocomsoft/mitre/internal/runner"
	"github.com/ocomsoft/mitre/internal/statestore"
	"github.com/ocomsoft/mitre/internal/tmpl"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

// Options configures one Run invocation.
type Options struct {
	// Direction selects which step of each migration to apply: Up,
	// Down, or Change. Down iterates the plan in descending order.
	Direction model.Direction
	// DryRun renders and logs each step without invoking its runner or
	// recording it applied.
	DryRun bool
	Verbose bool
}

// Executor applies a plan against the configured runners and state
// store.
type Executor struct {
	runners    map[string]runner.Runner
	stateStore statestore.StateStore
	bag        map[string]tmpl.Bag
}

// New constructs an Executor. runners maps a configuration name to its
// constructed Runner; bag maps a configuration name to its template
// variable bag; stateStore is the runner bound to the "mitre" name.
func New(runners map[string]runner.Runner, bag map[string]tmpl.Bag, stateStore statestore.StateStore) *Executor {
	return &Executor{runners: runners, bag: bag, stateStore: stateStore}
}

// Run iterates plan, applying every Pending, unskipped entry matching
// opts.Direction. It stops at the first failure; the ledger reflects
// the prefix of successfully applied migrations.
func (e *Executor) Run(ctx context.Context, plan []model.MigrationState, opts Options) error {
	states := plan
	if opts.Direction == model.DirectionDown {
		states = reversed(plan)
	}

	for _, state := range states {
		if state.Status != model.StatusPending {
			continue
		}
		if state.IsSkipped() {
			if opts.Verbose {
				fmt.Printf("%s version %d skipped (tag %q disallowed)\n", yellow("-"), state.Migration.Version, state.Skipped)
			}
			continue
		}

		step, ok := resolveStep(state.Migration, opts.Direction)
		if !ok {
			continue
		}

		if err := e.applyStep(ctx, state.Migration, step, opts); err != nil {
			fmt.Printf("%s version %d failed: %v\n", red("✗"), state.Migration.Version, err)
			return err
		}

		if opts.Verbose || !opts.DryRun {
			fmt.Printf("%s version %d (%s) applied\n", green("✓"), state.Migration.Version, state.Migration.Slug)
		}
	}

	return nil
}

func (e *Executor) applyStep(ctx context.Context, m model.Migration, step model.MigrationStep, opts Options) error {
	bag := e.bag[m.ConfigurationName]
	rendered, warnings := tmpl.Render(step.Source, bag)
	for _, w := range warnings {
		fmt.Printf("%s version %d: template variable %q is undefined\n", yellow("!"), m.Version, w.Key)
	}

	if opts.DryRun {
		return nil
	}

	r, ok := e.runners[m.ConfigurationName]
	if !ok {
		return mitreerrors.NewRunnerError(m.Version, m.SourcePath, m.ConfigurationName,
			fmt.Sprintf("no runner constructed for configuration %q", m.ConfigurationName))
	}

	start := time.Now()
	if err := r.Execute(ctx, rendered); err != nil {
		return mitreerrors.NewRunnerError(m.Version, m.SourcePath, m.ConfigurationName, err.Error())
	}
	duration := time.Since(start)

	if e.stateStore == nil {
		return mitreerrors.NewStateStoreError("record_applied", "no state store configured")
	}
	if err := e.stateStore.RecordApplied(ctx, m, step.Direction, duration); err != nil {
		return mitreerrors.NewStateStoreError("record_applied", err.Error())
	}

	return nil
}

// resolveStep finds the step to run for dir. A "change"-form migration
// has no "up" or "down" step of its own; its single DirectionChange
// step stands in for "up" (it has nothing to stand in for "down" with
// — a change-form migration cannot be rolled back).
func resolveStep(m model.Migration, dir model.Direction) (model.MigrationStep, bool) {
	if step, ok := m.Step(dir); ok {
		return step, true
	}
	if dir == model.DirectionUp {
		return m.Step(model.DirectionChange)
	}
	return model.MigrationStep{}, false
}

func reversed(plan []model.MigrationState) []model.MigrationState {
	out := make([]model.MigrationState, len(plan))
	for i, s := range plan {
		out[len(plan)-1-i] = s
	}
	return out
}
