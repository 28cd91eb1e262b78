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
package filename

import "testing"

func TestParse_ChangeForm(t *testing.T) {
	p, err := Parse("20260115093000_create_users.primary.sql")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Version != 20260115093000 {
		t.Errorf("version: got %d", p.Version)
	}
	if p.Slug != "create_users" {
		t.Errorf("slug: got %q", p.Slug)
	}
	if p.ConfigurationName != "primary" {
		t.Errorf("configuration_name: got %q", p.ConfigurationName)
	}
	if p.Extension != "sql" {
		t.Errorf("extension: got %q", p.Extension)
	}
	if len(p.Flags) != 0 {
		t.Errorf("flags: expected none, got %v", p.Flags)
	}
}

func TestParse_WithFlags(t *testing.T) {
	p, err := Parse("20260115093000_backfill.destructive.noncritical.primary.sql")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"destructive", "noncritical"}
	if len(p.Flags) != len(want) {
		t.Fatalf("flags: got %v, want %v", p.Flags, want)
	}
	for i := range want {
		if p.Flags[i] != want[i] {
			t.Errorf("flags[%d]: got %q, want %q", i, p.Flags[i], want[i])
		}
	}
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"missing separator":       "20260115093000create_users.primary.sql",
		"short version":           "2026011_create_users.primary.sql",
		"non-digit version":      "2026011509300x_create_users.primary.sql",
		"too few dot segments":   "20260115093000_create_users.sql",
		"bad slug characters":    "20260115093000_create users.primary.sql",
		"reserved configuration": "20260115093000_create_users.mysql.sql",
		"reserved flag":          "20260115093000_create_users.up.primary.sql",
	}
	for name, base := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse(base); err == nil {
				t.Fatalf("expected an error for %q", base)
			}
		})
	}
}

func TestNew_ParserDelegatesToPackageFunc(t *testing.T) {
	p := New(true)
	parsed, err := p.Parse("20260115093000_create_users.primary.sql")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Slug != "create_users" {
		t.Errorf("slug: got %q", parsed.Slug)
	}
}

func TestParseDir_NoTrailingExtension(t *testing.T) {
	p, err := ParseDir("20260115093000_create_users.primary")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Slug != "create_users" || p.ConfigurationName != "primary" {
		t.Errorf("unexpected parse: %+v", p)
	}
	if p.Extension != "" {
		t.Errorf("expected no extension for the directory form, got %q", p.Extension)
	}
	if len(p.Flags) != 0 {
		t.Errorf("flags: expected none, got %v", p.Flags)
	}
}

func TestParseDir_WithFlags(t *testing.T) {
	p, err := ParseDir("20260115093000_swap.risky.primary")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Flags) != 1 || p.Flags[0] != "risky" {
		t.Errorf("flags: got %v", p.Flags)
	}
	if p.ConfigurationName != "primary" {
		t.Errorf("configuration_name: got %q", p.ConfigurationName)
	}
}

func TestParseDir_TooFewSegmentsIsIllFormed(t *testing.T) {
	if _, err := ParseDir("20260115093000_create_users"); err == nil {
		t.Fatalf("expected an error when the directory name has no configuration_name segment")
	}
}
