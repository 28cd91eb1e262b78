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

// Package registry is the authoritative driver -> {accepted extensions,
// capabilities} table. It replaces the teacher's per-dialect SQL provider
// factory (internal/providers/factory.go in the original tool) with a
// capability lookup: mitre's runners don't generate dialect-specific DDL,
// they execute whatever the migration file already contains.
package registry

import "github.com/ocomsoft/mitre/internal/model"

// Capabilities describes what a driver is able to do.
type Capabilities struct {
	CanExecute    bool
	CanStoreState bool
	CanTransact   bool
}

// Entry is one row of the acceptance table.
type Entry struct {
	Driver       model.Driver
	Extensions   []string
	Capabilities Capabilities
}

var table = map[model.Driver]Entry{
	model.DriverMySQL: {
		Driver:       model.DriverMySQL,
		Extensions:   []string{"sql"},
		Capabilities: Capabilities{CanExecute: true, CanStoreState: true, CanTransact: true},
	},
	model.DriverMariaDB: {
		Driver:       model.DriverMariaDB,
		Extensions:   []string{"sql"},
		Capabilities: Capabilities{CanExecute: true, CanStoreState: true, CanTransact: true},
	},
	model.DriverPostgreSQL: {
		Driver:       model.DriverPostgreSQL,
		Extensions:   []string{"sql", "pgsql"},
		Capabilities: Capabilities{CanExecute: true, CanStoreState: true, CanTransact: true},
	},
	model.DriverCurl: {
		Driver:       model.DriverCurl,
		Extensions:   []string{"curl"},
		Capabilities: Capabilities{CanExecute: true},
	},
	model.DriverElasticsearch: {
		Driver:       model.DriverElasticsearch,
		Extensions:   []string{"es", "curl"},
		Capabilities: Capabilities{CanExecute: true},
	},
	model.DriverRedis: {
		Driver:       model.DriverRedis,
		Extensions:   []string{"redis"},
		Capabilities: Capabilities{CanExecute: true},
	},
	model.DriverBash: {
		Driver:       model.DriverBash,
		Extensions:   []string{"sh", "bash"},
		Capabilities: Capabilities{CanExecute: true},
	},
	model.DriverSh: {
		Driver:       model.DriverSh,
		Extensions:   []string{"sh", "bash"},
		Capabilities: Capabilities{CanExecute: true},
	},
}

// Lookup returns the acceptance-table entry for a driver.
func Lookup(driver model.Driver) (Entry, bool) {
	e, ok := table[driver]
	return e, ok
}

// IsKnownDriver reports whether driver appears in the acceptance table.
func IsKnownDriver(driver model.Driver) bool {
	_, ok := table[driver]
	return ok
}

// AcceptsExtension reports whether driver's accepted-extensions set
// contains ext (case-sensitive, without the leading dot).
func AcceptsExtension(driver model.Driver, ext string) bool {
	e, ok := table[driver]
	if !ok {
		return false
	}
	for _, accepted := range e.Extensions {
		if accepted == ext {
			return true
		}
	}
	return false
}

// CanStoreState reports whether driver may be bound to the "mitre"
// state-store configuration.
func CanStoreState(driver model.Driver) bool {
	e, ok := table[driver]
	return ok && e.Capabilities.CanStoreState
}
