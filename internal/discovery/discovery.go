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

// Package discovery recursively walks a migrations_directory, honoring
// .gitignore semantics and skipping hidden directories, and assembles
// every regular file or up/down directory whose name parses into a
// model.Migration.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	mitreerrors "github.com/ocomsoft/mitre/internal/errors"
	"github.com/ocomsoft/mitre/internal/filename"
	"github.com/ocomsoft/mitre/internal/model"
	"github.com/ocomsoft/mitre/internal/registry"
)

// MalformedCandidate is a non-fatal warning: a path looked like it might
// be a migration (14 digits then underscore) but didn't parse cleanly.
type MalformedCandidate struct {
	Path    string
	Message string
}

// Discoverer walks a migrations directory and assembles Migrations.
type Discoverer struct {
	parser  *filename.Parser
	verbose bool
}

func New(verbose bool) *Discoverer {
	return &Discoverer{parser: filename.New(verbose), verbose: verbose}
}

// Discover walks root and returns every parsed Migration plus any
// MalformedCandidate warnings, in strictly ascending version order. A
// duplicate version, a directory mixing change with up/down, an unknown
// configuration name, or an extension the named configuration's driver
// doesn't accept is returned as a fatal error (not a warning).
func (d *Discoverer) Discover(root string, cfg *model.Configuration) ([]model.Migration, []MalformedCandidate, error) {
	ignore, err := loadIgnore(root)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load .gitignore: %w", err)
	}

	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to stat migrations directory %s: %w", root, err)
	}

	var migrations []model.Migration
	var warnings []MalformedCandidate

	if err := d.walk(root, root, ignore, &migrations, &warnings); err != nil {
		return nil, nil, err
	}

	if err := d.validate(migrations, cfg); err != nil {
		return nil, nil, err
	}

	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Version < migrations[j].Version })

	return migrations, warnings, nil
}

func (d *Discoverer) walk(root, dir string, ignore *gitignore.GitIgnore, migrations *[]model.Migration, warnings *[]MalformedCandidate) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)
		rel, _ := filepath.Rel(root, path)

		if ignore != nil && ignore.MatchesPath(rel) {
			continue
		}

		if entry.IsDir() {
			if strings.HasPrefix(name, ".") {
				continue
			}

			mig, ok, malformed, err := d.tryDirectoryMigration(root, path, name)
			if err != nil {
				return err
			}
			if malformed != nil {
				*warnings = append(*warnings, *malformed)
				continue
			}
			if ok {
				*migrations = append(*migrations, mig)
				continue
			}

			if err := d.walk(root, path, ignore, migrations, warnings); err != nil {
				return err
			}
			continue
		}

		if strings.HasPrefix(name, ".") {
			continue
		}

		parsed, err := filename.Parse(name)
		if err != nil {
			if looksLikeCandidate(name) {
				*warnings = append(*warnings, MalformedCandidate{Path: rel, Message: err.Error()})
			}
			continue
		}

		source, readErr := os.ReadFile(path)
		if readErr != nil {
			return fmt.Errorf("failed to read migration file %s: %w", path, readErr)
		}

		*migrations = append(*migrations, model.Migration{
			Version:           parsed.Version,
			Slug:              parsed.Slug,
			Flags:             parsed.Flags,
			ConfigurationName: parsed.ConfigurationName,
			SourcePath:        rel,
			Steps: []model.MigrationStep{{
				Direction: model.DirectionChange,
				Path:      rel,
				Source:    string(source),
			}},
		})
	}

	return nil
}

// tryDirectoryMigration attempts to treat dir as the directory form of a
// migration: its name must parse, and its children must be exactly
// up.<ext> and/or down.<ext> sharing one extension.
func (d *Discoverer) tryDirectoryMigration(root, dir, base string) (model.Migration, bool, *MalformedCandidate, error) {
	rel, _ := filepath.Rel(root, dir)

	parsed, err := filename.ParseDir(strings.TrimRight(base, string(filepath.Separator)))
	if err != nil {
		if looksLikeCandidate(base) {
			return model.Migration{}, false, &MalformedCandidate{Path: rel, Message: err.Error()}, nil
		}
		return model.Migration{}, false, nil, nil
	}

	children, err := os.ReadDir(dir)
	if err != nil {
		return model.Migration{}, false, nil, fmt.Errorf("failed to read migration directory %s: %w", dir, err)
	}

	var up, down *model.MigrationStep
	for _, c := range children {
		if c.IsDir() {
			continue
		}
		cname := c.Name()
		stem := strings.TrimSuffix(cname, filepath.Ext(cname))
		if stem != "up" && stem != "down" {
			return model.Migration{}, false, nil, mitreerrors.NewDiscoveryError(
				"MixedChangeAndUpDown", parsed.Version, rel, parsed.ConfigurationName,
				fmt.Sprintf("unexpected file %q in migration directory — only up.<ext> and down.<ext> are allowed", cname))
		}

		path := filepath.Join(dir, cname)
		source, readErr := os.ReadFile(path)
		if readErr != nil {
			return model.Migration{}, false, nil, fmt.Errorf("failed to read %s: %w", path, readErr)
		}
		childRel, _ := filepath.Rel(root, path)
		step := model.MigrationStep{Path: childRel, Source: string(source)}
		if stem == "up" {
			step.Direction = model.DirectionUp
			up = &step
		} else {
			step.Direction = model.DirectionDown
			down = &step
		}
	}

	if up == nil && down == nil {
		return model.Migration{}, false, nil, mitreerrors.NewDiscoveryError(
			"MixedChangeAndUpDown", parsed.Version, rel, parsed.ConfigurationName,
			"migration directory contains neither up.<ext> nor down.<ext>")
	}

	if up != nil && down != nil {
		upExt := strings.TrimPrefix(filepath.Ext(filepath.Base(up.Path)), ".")
		downExt := strings.TrimPrefix(filepath.Ext(filepath.Base(down.Path)), ".")
		if upExt != downExt {
			return model.Migration{}, false, nil, mitreerrors.NewDiscoveryError(
				"UnacceptedExtension", parsed.Version, rel, parsed.ConfigurationName,
				fmt.Sprintf("up.%s and down.%s must share the same extension", upExt, downExt))
		}
	}

	var steps []model.MigrationStep
	if up != nil {
		steps = append(steps, *up)
	}
	if down != nil {
		steps = append(steps, *down)
	}

	return model.Migration{
		Version:           parsed.Version,
		Slug:              parsed.Slug,
		Flags:             parsed.Flags,
		ConfigurationName: parsed.ConfigurationName,
		SourcePath:        rel,
		Steps:             steps,
	}, true, nil, nil
}

// validate enforces the cross-migration invariants: unique versions,
// resolvable configuration names, and extensions accepted by the
// resolved driver.
func (d *Discoverer) validate(migrations []model.Migration, cfg *model.Configuration) error {
	seenVersions := make(map[uint64]string)
	for _, m := range migrations {
		if existing, dup := seenVersions[m.Version]; dup {
			return mitreerrors.NewDiscoveryError("DuplicateVersion", m.Version, m.SourcePath, m.ConfigurationName,
				fmt.Sprintf("version %d is also used by %s", m.Version, existing))
		}
		seenVersions[m.Version] = m.SourcePath

		rc, ok := cfg.Runners[m.ConfigurationName]
		if !ok {
			return mitreerrors.NewDiscoveryError("UnknownConfigurationName", m.Version, m.SourcePath, m.ConfigurationName,
				fmt.Sprintf("no configuration named %q is loaded", m.ConfigurationName))
		}

		for _, step := range m.Steps {
			ext := strings.TrimPrefix(filepath.Ext(step.Path), ".")
			if ext == "" {
				// a step file with no extension (e.g. a bare "up" in
				// the directory form) is not checked against the
				// driver's accepted extensions.
				continue
			}
			if !registry.AcceptsExtension(rc.Driver, ext) {
				return mitreerrors.NewDiscoveryError("UnacceptedExtension", m.Version, m.SourcePath, m.ConfigurationName,
					fmt.Sprintf("driver %q does not accept extension %q", rc.Driver, ext))
			}
		}
	}
	return nil
}

func looksLikeCandidate(name string) bool {
	idx := strings.IndexByte(name, '_')
	if idx != 14 {
		return false
	}
	for _, r := range name[:14] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func loadIgnore(root string) (*gitignore.GitIgnore, error) {
	path := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}
	return gitignore.CompileIgnoreFile(path)
}
