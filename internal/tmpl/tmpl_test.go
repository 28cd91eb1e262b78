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
package tmpl

import (
	"testing"

	"github.com/ocomsoft/mitre/internal/model"
)

func TestRender_SubstitutesTags(t *testing.T) {
	bag := Bag{"database": "mitre", "host": "127.0.0.1"}
	out, warnings := Render("CREATE DATABASE {database}; -- on {host}", bag)

	if out != "CREATE DATABASE mitre; -- on 127.0.0.1" {
		t.Errorf("unexpected render: %q", out)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestRender_MissingVariableRendersEmptyAndWarns(t *testing.T) {
	out, warnings := Render("user={username}", Bag{})

	if out != "user=" {
		t.Errorf("expected empty substitution, got %q", out)
	}
	if len(warnings) != 1 || warnings[0].Key != "username" {
		t.Errorf("expected one warning for 'username', got %v", warnings)
	}
}

func TestRender_PresenceSectionKeepsBodyWhenKeyPresent(t *testing.T) {
	src := "{{#index}}USE {index};{{/index}}"
	out, _ := Render(src, Bag{"index": "products"})
	if out != "USE products;" {
		t.Errorf("unexpected render: %q", out)
	}

	out, _ = Render(src, Bag{})
	if out != "" {
		t.Errorf("expected empty render when key absent, got %q", out)
	}
}

func TestRender_InvertedSectionKeepsBodyWhenKeyAbsentOrEmpty(t *testing.T) {
	src := "{{^database_number}}no db number set{{/database_number}}"

	out, _ := Render(src, Bag{})
	if out != "no db number set" {
		t.Errorf("expected inverted body when key absent, got %q", out)
	}

	out, _ = Render(src, Bag{"database_number": "2"})
	if out != "" {
		t.Errorf("expected empty render when key present, got %q", out)
	}
}

func TestConfigurationBag_SeedsBootstrapVariablesAndExtras(t *testing.T) {
	rc := model.RunnerConfiguration{
		Host: "db.internal", Port: 5432, Database: "appdb",
		Extra: map[string]string{"region": "us-east"},
	}
	bag := ConfigurationBag(rc)

	if bag["host"] != "db.internal" || bag["port"] != "5432" || bag["database"] != "appdb" {
		t.Errorf("unexpected bag: %+v", bag)
	}
	if bag["migration_state_table_name"] != "migrations" || bag["migration_steps_table_name"] != "migration_steps" {
		t.Errorf("missing bootstrap variables: %+v", bag)
	}
	if bag["region"] != "us-east" {
		t.Errorf("expected arbitrary extra key to flow through, got %+v", bag)
	}
}
