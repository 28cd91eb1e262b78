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
package cmd

import (
	"context"
	"fmt"

	"github.com/ocomsoft/mitre/internal/bootstrap"
	"github.com/ocomsoft/mitre/internal/config"
	"github.com/ocomsoft/mitre/internal/discovery"
	"github.com/ocomsoft/mitre/internal/model"
	"github.com/ocomsoft/mitre/internal/planner"
	"github.com/ocomsoft/mitre/internal/registry"
	"github.com/ocomsoft/mitre/internal/reserved"
	"github.com/ocomsoft/mitre/internal/runner"
	"github.com/ocomsoft/mitre/internal/statestore"
	"github.com/ocomsoft/mitre/internal/tmpl"
)

// session bundles everything a command needs after loading the
// configuration: the configuration itself, one constructed Runner per
// named configuration, the corresponding template bags, and the
// state-store handle.
type session struct {
	cfg        *model.Configuration
	runners    map[string]runner.Runner
	bags       map[string]tmpl.Bag
	stateStore statestore.StateStore
}

// openSession loads path, constructs every runner, and resolves the
// state store. Callers must call close() when done.
func openSession(path string) (*session, error) {
	cfg, err := config.New(verbose).Load(path)
	if err != nil {
		return nil, err
	}

	runners := make(map[string]runner.Runner, len(cfg.Runners))
	bags := make(map[string]tmpl.Bag, len(cfg.Runners))
	for name, rc := range cfg.Runners {
		r, err := runner.New(rc)
		if err != nil {
			return nil, fmt.Errorf("configuration %q: %w", name, err)
		}
		runners[name] = r
		bags[name] = tmpl.ConfigurationBag(rc)
	}

	storeConfig, _ := cfg.StateStore()
	storeRunner := runners[storeConfig.Name]
	store, ok := storeRunner.(statestore.StateStore)
	if !ok {
		return nil, fmt.Errorf("configuration %q (driver %q) does not implement the state-store protocol", storeConfig.Name, storeConfig.Driver)
	}

	return &session{cfg: cfg, runners: runners, bags: bags, stateStore: store}, nil
}

func (s *session) close() {
	for _, r := range s.runners {
		r.Close()
	}
}

// discoverAndPlan discovers migrations, prepends the built-in ledger
// migration, bootstraps the ledger, lists applied entries, and returns
// the planner's diff. It's the shared core of ls/up/down/check.
func discoverAndPlan(ctx context.Context, s *session) ([]model.MigrationState, error) {
	disc := discovery.New(verbose)
	migrations, warnings, err := disc.Discover(s.cfg.MigrationsDirectory, s.cfg)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		fmt.Printf("warning: malformed candidate %s: %s\n", w.Path, w.Message)
	}

	migrations = append([]model.Migration{bootstrap.Migration()}, migrations...)

	storeConfig, _ := s.cfg.StateStore()
	if registry.CanStoreState(storeConfig.Driver) {
		if err := s.stateStore.Bootstrap(ctx); err != nil {
			return nil, err
		}
	}

	applied, err := s.stateStore.ListApplied(ctx)
	if err != nil {
		return nil, err
	}

	eng := planner.New(verbose, reserved.DefaultDisallowedTags())
	return eng.Plan(migrations, applied), nil
}
