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

// Package filename decodes a single migration base name (a file name,
// extension included, for the "change" form; a directory name for the
// "up"/"down" form) into its
// version, slug, flags, configuration name, and extension.
package filename

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ocomsoft/mitre/internal/reserved"
)

// Parsed is the decoded form of a migration base name.
type Parsed struct {
	Version           uint64
	Slug              string
	Flags             []string
	ConfigurationName string
	Extension         string
}

var slugPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Parser decodes migration base names. It carries no state beyond an
// optional verbose trace flag; parsing itself is a pure function.
type Parser struct {
	verbose bool
}

func New(verbose bool) *Parser {
	return &Parser{verbose: verbose}
}

// Parse decodes base, which must already have any path separators and
// trailing slashes stripped (Discovery is responsible for that).
func (p *Parser) Parse(base string) (Parsed, error) {
	return Parse(base)
}

// ParseDir decodes base, the directory-form migration's directory name,
// which carries no trailing extension (Discovery is responsible for
// stripping any trailing separator).
func (p *Parser) ParseDir(base string) (Parsed, error) {
	return ParseDir(base)
}

// Parse is the stateless entry point used by packages that don't need a
// Parser instance (the tag-extraction CLI command, tests, etc.). base is
// a file name of the form version_slug(.flag)*.configuration_name.ext.
func Parse(base string) (Parsed, error) {
	return parse(base, true)
}

// ParseDir is Parse's counterpart for the directory form of a migration,
// whose base name has no trailing extension — the extension instead
// lives on its up.<ext>/down.<ext> children. base is of the form
// slug(.flag)*.configuration_name.
func ParseDir(base string) (Parsed, error) {
	return parse(base, false)
}

// parse decodes base shared by Parse and ParseDir. When wantExt is true,
// the last dot-segment is the extension and the one before it is the
// configuration name; when false, base has no extension segment and the
// last dot-segment is the configuration name directly.
func parse(base string, wantExt bool) (Parsed, error) {
	underscore := strings.IndexByte(base, '_')
	if underscore < 0 {
		return Parsed{}, fmt.Errorf("filename %q: missing \"_\" separator after the 14-digit version", base)
	}

	versionStr := base[:underscore]
	if len(versionStr) != 14 || !isAllDigits(versionStr) {
		return Parsed{}, fmt.Errorf("filename %q: version %q must be exactly 14 ASCII digits", base, versionStr)
	}
	version, err := strconv.ParseUint(versionStr, 10, 64)
	if err != nil {
		return Parsed{}, fmt.Errorf("filename %q: version %q does not fit in 64 bits: %w", base, versionStr, err)
	}

	rest := base[underscore+1:]
	parts := strings.Split(rest, ".")

	minParts := 3
	if !wantExt {
		minParts = 2
	}
	if len(parts) < minParts {
		if wantExt {
			return Parsed{}, fmt.Errorf("filename %q: ill-formed — need slug.configuration_name.ext at minimum, got %q", base, rest)
		}
		return Parsed{}, fmt.Errorf("filename %q: ill-formed — need slug.configuration_name at minimum, got %q", base, rest)
	}

	slug := parts[0]
	if !slugPattern.MatchString(slug) {
		return Parsed{}, fmt.Errorf("filename %q: slug %q contains characters outside [a-zA-Z0-9_-]", base, slug)
	}

	var ext, configName string
	var flags []string
	if wantExt {
		ext = parts[len(parts)-1]
		configName = parts[len(parts)-2]
		flags = append([]string{}, parts[1:len(parts)-2]...)
	} else {
		configName = parts[len(parts)-1]
		flags = append([]string{}, parts[1:len(parts)-1]...)
	}

	if reserved.IsReserved(configName) {
		w, _ := reserved.Lookup(configName)
		return Parsed{}, fmt.Errorf("filename %q: configuration_name %q is a reserved word (%s: %s)", base, configName, w.Kind, w.Reason)
	}

	for _, flag := range flags {
		if reserved.IsNonFlagReserved(flag) {
			w, _ := reserved.Lookup(flag)
			return Parsed{}, fmt.Errorf("filename %q: flag %q collides with reserved word (%s: %s)", base, flag, w.Kind, w.Reason)
		}
	}

	return Parsed{
		Version:           version,
		Slug:              slug,
		Flags:             flags,
		ConfigurationName: configName,
		Extension:         ext,
	}, nil
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
