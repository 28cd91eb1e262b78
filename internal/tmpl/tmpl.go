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

// Package tmpl renders a migration step's raw source through a
// logic-less template: {tag} variable substitution plus {{#tag}}...{{/tag}}
// / {{^tag}}...{{/tag}} presence sections. No arbitrary expressions are
// ever evaluated — a section only tests whether a bag key is present and
// non-empty.
package tmpl

import (
	"io"
	"regexp"
	"strconv"

	"github.com/valyala/fasttemplate"

	"github.com/ocomsoft/mitre/internal/model"
)

// Bag is the variable bag a step is rendered against.
type Bag map[string]string

// ConfigurationBag builds the variable bag for a RunnerConfiguration,
// seeded with the fixed bootstrap variables every render needs.
func ConfigurationBag(rc model.RunnerConfiguration) Bag {
	bag := Bag{
		"host":                          rc.Host,
		"port":                          itoaOrEmpty(rc.Port),
		"database":                      rc.Database,
		"index":                         rc.Index,
		"username":                      rc.Username,
		"password":                      rc.Password,
		"migration_state_database_name": rc.Database,
		"migration_state_table_name":    "migrations",
		"migration_steps_table_name":    "migration_steps",
	}
	if rc.DatabaseNumber != 0 {
		bag["database_number"] = itoaOrEmpty(rc.DatabaseNumber)
	}
	for k, v := range rc.Extra {
		bag[k] = v
	}
	return bag
}

func itoaOrEmpty(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// Warning is returned (alongside the rendered text) for every bag key a
// template referenced but the bag didn't have — non-fatal per §4.5.
type Warning struct {
	Key string
}

var sectionPattern = regexp.MustCompile(`(?s)\{\{(#|\^)([A-Za-z0-9_]+)\}\}(.*?)\{\{/([A-Za-z0-9_]+)\}\}`)
var tagPattern = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)
var tagName = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Render expands source against bag, returning the rendered text and the
// set of referenced-but-missing variable names (as warnings, not errors).
func Render(source string, bag Bag) (string, []Warning) {
	var warnings []Warning

	// Resolve section blocks first: {{#key}}...{{/key}} keeps its body
	// iff bag[key] is present and non-empty; {{^key}}...{{/key}} is the
	// inverse. Sections do not nest in practice for a variable bag of
	// scalars, so one pass is sufficient.
	expanded := sectionPattern.ReplaceAllStringFunc(source, func(match string) string {
		groups := sectionPattern.FindStringSubmatch(match)
		kind, key, body := groups[1], groups[2], groups[3]
		val, ok := bag[key]
		truthy := ok && val != ""
		if kind == "#" && truthy {
			return body
		}
		if kind == "^" && !truthy {
			return body
		}
		return ""
	})

	// Track missing tags before handing off to fasttemplate, since
	// fasttemplate's TagFunc has no notion of "key absent" versus "key
	// present but empty" — both must render as "".
	for _, m := range tagPattern.FindAllStringSubmatch(expanded, -1) {
		if _, ok := bag[m[1]]; !ok {
			warnings = append(warnings, Warning{Key: m[1]})
		}
	}

	t, err := fasttemplate.NewTemplate(expanded, "{", "}")
	if err != nil {
		// Not a template parse error mitre treats as fatal (unbalanced
		// braces in the rendered prose are just literal text to us);
		// fall back to the section-expanded text verbatim.
		return expanded, warnings
	}

	rendered := t.ExecuteFuncString(func(w io.Writer, tag string) (int, error) {
		// Brace groups that are not a bare tag name (JSON bodies, for
		// instance) are literal text and are written back unchanged.
		if !tagName.MatchString(tag) {
			return w.Write([]byte("{" + tag + "}"))
		}
		return w.Write([]byte(bag[tag]))
	})

	return rendered, warnings
}
