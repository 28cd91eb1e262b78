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

// Package model holds the data shapes shared by every other package:
// runner configurations, discovered migrations, ledger entries, and the
// planner's joined view of the two. Nothing here touches I/O.
package model

import "time"

// Driver enumerates the runner backends mitre knows how to dispatch to.
type Driver string

const (
	DriverMySQL         Driver = "mysql"
	DriverMariaDB       Driver = "mariadb"
	DriverPostgreSQL    Driver = "postgresql"
	DriverElasticsearch Driver = "elasticsearch"
	DriverRedis         Driver = "redis"
	DriverCurl          Driver = "curl"
	DriverBash          Driver = "bash"
	DriverSh            Driver = "sh"
)

// Direction is the step a MigrationStep performs.
type Direction string

const (
	DirectionUp     Direction = "up"
	DirectionDown   Direction = "down"
	DirectionChange Direction = "change"
)

// RunnerConfiguration is one named block from the configuration YAML.
// Immutable once loaded.
type RunnerConfiguration struct {
	Name           string
	Driver         Driver
	Database       string
	Index          string
	DatabaseNumber int
	Host           string
	Port           int
	Username       string
	Password       string
	// Extra holds arbitrary user keys from the YAML block, visible to
	// template expansion but otherwise opaque to the core.
	Extra map[string]string
}

// Configuration is the fully loaded, interpolated set of runner
// configurations plus the discovery root and the state-store binding.
type Configuration struct {
	MigrationsDirectory string
	Runners             map[string]RunnerConfiguration
	// LoadOrder preserves the YAML document order of the named blocks,
	// since map iteration order is not guaranteed.
	LoadOrder []string
}

const StateStoreName = "mitre"

// StateStore returns the distinguished "mitre" configuration.
func (c *Configuration) StateStore() (RunnerConfiguration, bool) {
	rc, ok := c.Runners[StateStoreName]
	return rc, ok
}

// MigrationStep is one file's worth of raw, unexpanded source.
type MigrationStep struct {
	Direction Direction
	Path      string
	Source    string
}

// Migration is a single discovered (or built-in) migration unit.
type Migration struct {
	Version           uint64
	Slug              string
	Flags             []string
	ConfigurationName string
	Steps             []MigrationStep
	BuiltIn           bool
	SourcePath        string
}

// HasFlag reports whether the migration carries the given flag.
func (m Migration) HasFlag(flag string) bool {
	for _, f := range m.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// Step returns the step for the given direction, if present.
func (m Migration) Step(dir Direction) (MigrationStep, bool) {
	for _, s := range m.Steps {
		if s.Direction == dir {
			return s, true
		}
	}
	return MigrationStep{}, false
}

// AppliedEntry is one ledger row as read back from the state store,
// reconstructed with its stored step sources.
type AppliedEntry struct {
	Version           uint64
	StoredAt          time.Time
	Flags             []string
	ConfigurationName string
	BuiltIn           bool
	Steps             []MigrationStep
}

// Status is the planner's classification of a migration relative to the
// ledger.
type Status int

const (
	StatusPending Status = iota
	StatusApplied
	StatusOrphaned
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusApplied:
		return "Applied"
	case StatusOrphaned:
		return "Orphaned"
	default:
		return "Unknown"
	}
}

// MigrationState is one row of the planner's diff output: a migration (or
// ledger-only stand-in for an Orphaned entry) joined with its status.
type MigrationState struct {
	Migration     Migration
	Status        Status
	AppliedAt     *time.Time
	ApplyDuration time.Duration
	// Skipped names the disallowed tag that demoted this entry from
	// Pending to Pending(Skipped: <tag>). Empty when not skipped.
	Skipped string
}

// IsSkipped reports whether the filter policy marked this entry as
// skipped rather than eligible to run.
func (ms MigrationState) IsSkipped() bool {
	return ms.Skipped != ""
}
