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
package config

import (
	"os"
	"path/filepath"
	"testing"

	mitreerrors "github.com/ocomsoft/mitre/internal/errors"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_ResolvesAnchorsAndMergeKeys(t *testing.T) {
	path := writeConfig(t, `
appdb: &appdb
  _driver: mysql
  host: 127.0.0.1
  port: 3306
  username: root

mitre:
  <<: *appdb
  database: mitre
`)

	cfg, err := New(false).Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	store, ok := cfg.Runners["mitre"]
	if !ok {
		t.Fatalf("expected mitre configuration")
	}
	if store.Host != "127.0.0.1" || store.Port != 3306 || store.Database != "mitre" {
		t.Errorf("merge did not inherit appdb fields: %+v", store)
	}
}

func TestLoad_InterpolatesEnvironmentVariables(t *testing.T) {
	t.Setenv("MITRE_TEST_PASSWORD", "s3cret")
	path := writeConfig(t, `
mitre:
  _driver: mysql
  database: mitre
  password: "${MITRE_TEST_PASSWORD}"
`)

	cfg, err := New(false).Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Runners["mitre"].Password != "s3cret" {
		t.Errorf("expected interpolated password, got %q", cfg.Runners["mitre"].Password)
	}
}

func TestLoad_UnsetEnvironmentVariableExpandsEmpty(t *testing.T) {
	os.Unsetenv("MITRE_TEST_UNSET_VAR")
	path := writeConfig(t, `
mitre:
  _driver: mysql
  database: "${MITRE_TEST_UNSET_VAR}"
`)

	cfg, err := New(false).Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Runners["mitre"].Database != "" {
		t.Errorf("expected empty expansion for unset var, got %q", cfg.Runners["mitre"].Database)
	}
}

func TestLoad_MissingMitreBlockFails(t *testing.T) {
	path := writeConfig(t, `
appdb:
  _driver: mysql
`)

	_, err := New(false).Load(path)
	if err == nil {
		t.Fatalf("expected error for missing mitre block")
	}
	if _, ok := err.(mitreerrors.MissingStateStoreConfigError); !ok {
		t.Errorf("expected MissingStateStoreConfigError, got %T: %v", err, err)
	}
}

func TestLoad_StateStoreDriverIncapableOfStorageFails(t *testing.T) {
	path := writeConfig(t, `
mitre:
  _driver: redis
`)

	_, err := New(false).Load(path)
	if err == nil {
		t.Fatalf("expected error when mitre driver cannot store state")
	}
}

func TestLoad_UnknownDriverFails(t *testing.T) {
	path := writeConfig(t, `
mitre:
  _driver: oracle
`)

	_, err := New(false).Load(path)
	if err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestLoad_MigrationsDirectoryDefaultsToConfigDir(t *testing.T) {
	path := writeConfig(t, `
mitre:
  _driver: mysql
  database: mitre
`)

	cfg, err := New(false).Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MigrationsDirectory != filepath.Dir(path) {
		t.Errorf("expected migrations_directory to default to config dir, got %q", cfg.MigrationsDirectory)
	}
}

func TestLoad_ExtraKeysFlowIntoExtraBag(t *testing.T) {
	path := writeConfig(t, `
mitre:
  _driver: mysql
  database: mitre
  region: us-east
`)

	cfg, err := New(false).Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Runners["mitre"].Extra["region"] != "us-east" {
		t.Errorf("expected extra key 'region' to survive decoding, got %+v", cfg.Runners["mitre"].Extra)
	}
}
