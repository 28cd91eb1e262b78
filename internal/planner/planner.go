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

// Package planner computes the ordered diff between discovered
// migrations and the ledger's applied entries: a pure, side-effect-free
// join generalized from the teacher's internal/diff (which compared two
// SQL schema strings) to comparing two sets of migration versions.
package planner

import (
	"fmt"
	"sort"

	"github.com/ocomsoft/mitre/internal/model"
)

// Engine computes plans. The zero value is not usable; construct with
// New.
type Engine struct {
	verbose        bool
	disallowedTags map[string]bool
}

// New constructs an Engine. disallowedTags is the set of flags that
// demote a Pending entry to Pending(Skipped: <tag>); pass nil to use
// no filter.
func New(verbose bool, disallowedTags []string) *Engine {
	set := make(map[string]bool, len(disallowedTags))
	for _, t := range disallowedTags {
		set[t] = true
	}
	return &Engine{verbose: verbose, disallowedTags: set}
}

// Plan joins discovered migrations with ledger entries by version and
// returns the union, sorted by version ascending. v ∈ M ∩ L is Applied,
// v ∈ M \ L is Pending (subject to the tag filter), v ∈ L \ M is
// Orphaned.
func (e *Engine) Plan(discovered []model.Migration, applied []model.AppliedEntry) []model.MigrationState {
	byVersion := make(map[uint64]model.Migration, len(discovered))
	for _, m := range discovered {
		byVersion[m.Version] = m
	}

	appliedSet := make(map[uint64]model.AppliedEntry, len(applied))
	for _, a := range applied {
		appliedSet[a.Version] = a
	}

	versions := make(map[uint64]bool, len(discovered)+len(applied))
	for _, m := range discovered {
		versions[m.Version] = true
	}
	for _, a := range applied {
		versions[a.Version] = true
	}

	ordered := make([]uint64, 0, len(versions))
	for v := range versions {
		ordered = append(ordered, v)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	states := make([]model.MigrationState, 0, len(ordered))
	for _, v := range ordered {
		m, inDisk := byVersion[v]
		a, inLedger := appliedSet[v]

		switch {
		case inDisk && inLedger:
			at := a.StoredAt
			states = append(states, model.MigrationState{
				Migration: m,
				Status:    model.StatusApplied,
				AppliedAt: &at,
			})
		case inDisk && !inLedger:
			states = append(states, e.pendingState(m))
		default: // inLedger only
			states = append(states, model.MigrationState{
				Migration: model.Migration{
					Version:           a.Version,
					ConfigurationName: a.ConfigurationName,
					Flags:             a.Flags,
					BuiltIn:           a.BuiltIn,
					Steps:             a.Steps,
				},
				Status: model.StatusOrphaned,
			})
		}
	}

	if e.verbose {
		fmt.Printf("planner: %d version(s) considered, %d discovered, %d in ledger\n", len(ordered), len(discovered), len(applied))
	}

	return states
}

// pendingState classifies m as Pending, demoting it to
// Pending(Skipped: <tag>) when one of its flags is disallowed. The diff
// never drops an entry; filtering is advisory metadata only.
func (e *Engine) pendingState(m model.Migration) model.MigrationState {
	for _, flag := range m.Flags {
		if e.disallowedTags[flag] {
			return model.MigrationState{Migration: m, Status: model.StatusPending, Skipped: flag}
		}
	}
	return model.MigrationState{Migration: m, Status: model.StatusPending}
}
