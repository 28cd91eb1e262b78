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

// Package reserved holds the built-in table of words that carry special
// meaning in a migration filename: driver names, step directions, and the
// three canonical policy flags. The filename parser consults it to decide
// whether a token is a legal configuration name or flag; the CLI exposes it
// verbatim through list-reserved-words and extract-tags.
package reserved

// Kind classifies why a word is reserved.
type Kind string

const (
	KindRunner    Kind = "runner"
	KindDirection Kind = "direction"
	KindFlag      Kind = "flag"
	KindKeyword   Kind = "keyword"
)

// Word is one entry of the reserved-word table.
type Word struct {
	Word   string
	Kind   Kind
	Reason string
}

// table is the authoritative list. Flags (Kind: KindFlag) are the only
// reserved words permitted as a migration's flag tokens; everything else
// reserved may never appear as a configuration_name or a flag.
var table = []Word{
	{"mysql", KindRunner, "driver name"},
	{"mariadb", KindRunner, "driver name"},
	{"postgresql", KindRunner, "driver name"},
	{"elasticsearch", KindRunner, "driver name"},
	{"redis", KindRunner, "driver name"},
	{"curl", KindRunner, "driver name"},
	{"bash", KindRunner, "driver name"},
	{"sh", KindRunner, "driver name"},
	{"rails", KindKeyword, "reserved for framework interop"},

	{"up", KindDirection, "migration step direction"},
	{"down", KindDirection, "migration step direction"},
	{"change", KindDirection, "migration step direction"},

	{"data", KindFlag, "default-disallowed tag: migration mutates data, not schema"},
	{"risky", KindFlag, "default-disallowed tag: migration is unsafe to run unattended"},
	{"long", KindFlag, "default-disallowed tag: migration may run for a long time"},
}

var byWord = func() map[string]Word {
	m := make(map[string]Word, len(table))
	for _, w := range table {
		m[w.Word] = w
	}
	return m
}()

// All returns the full reserved-word table in declaration order.
func All() []Word {
	out := make([]Word, len(table))
	copy(out, table)
	return out
}

// Lookup returns the table entry for word and whether it was found.
func Lookup(word string) (Word, bool) {
	w, ok := byWord[word]
	return w, ok
}

// IsReserved reports whether word appears in the table at all.
func IsReserved(word string) bool {
	_, ok := byWord[word]
	return ok
}

// IsFlag reports whether word is one of the three canonical flags, which
// are the only reserved words a migration's flags may legally contain.
func IsFlag(word string) bool {
	w, ok := byWord[word]
	return ok && w.Kind == KindFlag
}

// IsNonFlagReserved reports whether word is reserved for something other
// than flag use — i.e. it may never appear as a configuration_name or as a
// flag token.
func IsNonFlagReserved(word string) bool {
	w, ok := byWord[word]
	return ok && w.Kind != KindFlag
}

// DefaultDisallowedTags is the policy-layer default filter set. The CLI
// passes it to planner.New; the planner applies no filter when given nil.
func DefaultDisallowedTags() []string {
	return []string{"data", "risky", "long"}
}
