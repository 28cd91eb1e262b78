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
package planner

import (
	"testing"
	"time"

	"github.com/ocomsoft/mitre/internal/model"
)

func TestPlan_JoinsAndOrdersByVersion(t *testing.T) {
	discovered := []model.Migration{
		{Version: 20260103000000, ConfigurationName: "appdb"},
		{Version: 20260101000000, ConfigurationName: "appdb"},
	}
	applied := []model.AppliedEntry{
		{Version: 20260101000000, StoredAt: time.Now().UTC()},
		{Version: 20260102000000, StoredAt: time.Now().UTC()},
	}

	states := New(false, nil).Plan(discovered, applied)

	if len(states) != 3 {
		t.Fatalf("expected 3 states, got %d", len(states))
	}
	wantOrder := []uint64{20260101000000, 20260102000000, 20260103000000}
	for i, s := range states {
		if s.Migration.Version != wantOrder[i] {
			t.Errorf("position %d: expected version %d, got %d", i, wantOrder[i], s.Migration.Version)
		}
	}

	if states[0].Status != model.StatusApplied {
		t.Errorf("version 20260101000000: expected Applied, got %v", states[0].Status)
	}
	if states[1].Status != model.StatusOrphaned {
		t.Errorf("version 20260102000000: expected Orphaned, got %v", states[1].Status)
	}
	if states[2].Status != model.StatusPending {
		t.Errorf("version 20260103000000: expected Pending, got %v", states[2].Status)
	}
}

func TestPlan_DemotesDisallowedTagToSkipped(t *testing.T) {
	discovered := []model.Migration{
		{Version: 20260101000000, ConfigurationName: "appdb", Flags: []string{"risky"}},
	}

	states := New(false, []string{"data", "risky", "long"}).Plan(discovered, nil)

	if len(states) != 1 {
		t.Fatalf("expected 1 state, got %d", len(states))
	}
	if states[0].Status != model.StatusPending {
		t.Errorf("expected Pending, got %v", states[0].Status)
	}
	if !states[0].IsSkipped() || states[0].Skipped != "risky" {
		t.Errorf("expected Skipped(risky), got Skipped=%q", states[0].Skipped)
	}
}

func TestPlan_DoesNotDropEntriesWhenFiltering(t *testing.T) {
	discovered := []model.Migration{
		{Version: 20260101000000, ConfigurationName: "appdb", Flags: []string{"data"}},
		{Version: 20260102000000, ConfigurationName: "appdb"},
	}

	states := New(false, []string{"data"}).Plan(discovered, nil)

	if len(states) != 2 {
		t.Fatalf("diff must never drop entries, got %d states", len(states))
	}
}

func TestPlan_EmptyInputsYieldsEmptyPlan(t *testing.T) {
	states := New(false, nil).Plan(nil, nil)
	if len(states) != 0 {
		t.Fatalf("expected empty plan, got %d states", len(states))
	}
}

func TestPlan_IsIdempotentGivenUnchangedInputs(t *testing.T) {
	discovered := []model.Migration{{Version: 20260101000000, ConfigurationName: "appdb"}}
	applied := []model.AppliedEntry{{Version: 20260101000000, StoredAt: time.Now().UTC()}}

	e := New(false, nil)
	first := e.Plan(discovered, applied)
	second := e.Plan(discovered, applied)

	if len(first) != len(second) {
		t.Fatalf("expected stable plan length, got %d then %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Migration.Version != second[i].Migration.Version || first[i].Status != second[i].Status {
			t.Errorf("position %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}
