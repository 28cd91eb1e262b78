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

// Package bootstrap holds the one built-in migration mitre ships inside
// its own binary: the ledger schema itself. It is prepended to every
// discovery result with built_in = true and a version drawn from the
// reserved prefix, per the built-in-migrations rule. Unlike the
// teacher's struct2schema code generator, the embedded asset here is
// not generated — it's the literal SQL statement text, via go:embed,
// the same pattern other_examples/*migrator*.go use for shipping a
// migration tree inside a binary.
package bootstrap

import (
	_ "embed"

	"github.com/ocomsoft/mitre/internal/model"
)

//go:embed migrations/ledger.sql
var ledgerSQL string

// Version is the reserved version assigned to the built-in ledger
// migration. It sits below any version a 14-digit timestamp-derived
// filename can parse to, so the ledger migration always sorts first; it
// is not itself a 14-digit value and no filename can produce it.
const Version uint64 = 0

// Migration returns the built-in ledger-schema migration, ready to be
// prepended to a discovery result.
func Migration() model.Migration {
	return model.Migration{
		Version:           Version,
		Slug:              "mitre-ledger-bootstrap",
		ConfigurationName: model.StateStoreName,
		BuiltIn:           true,
		SourcePath:        "<built-in>",
		Steps: []model.MigrationStep{{
			Direction: model.DirectionChange,
			Path:      "<built-in>/ledger.sql",
			Source:    ledgerSQL,
		}},
	}
}
