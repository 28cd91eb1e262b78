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

// Package config loads mitre's YAML configuration file into a
// model.Configuration: a named set of runner configurations plus the
// migrations directory root. Loading is a one-shot, one-invocation
// affair — the result is immutable data from that point on.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	yaml "gopkg.in/yaml.v3"

	mitreerrors "github.com/ocomsoft/mitre/internal/errors"
	"github.com/ocomsoft/mitre/internal/model"
	"github.com/ocomsoft/mitre/internal/registry"
)

var envToken = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Loader reads a configuration file. The zero value is ready to use.
type Loader struct {
	verbose bool
}

func New(verbose bool) *Loader {
	return &Loader{verbose: verbose}
}

// Load reads and decodes the YAML document at path into a
// model.Configuration, applying ${NAME} environment interpolation and
// validating that a "mitre" state-store block exists and is capable.
func (l *Loader) Load(path string) (*model.Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, mitreerrors.NewConfigError(path, fmt.Sprintf("cannot read file: %v", err))
	}

	// Decode twice: once into a generic map (gopkg.in/yaml.v3 resolves
	// anchors and "<<" merges for us during this decode), and once into
	// a document Node purely to recover the top-level key order, which
	// plain map decoding does not preserve.
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, mitreerrors.NewConfigError(path, fmt.Sprintf("invalid YAML: %v", err))
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, mitreerrors.NewConfigError(path, fmt.Sprintf("invalid YAML: %v", err))
	}
	order := topLevelKeyOrder(&doc)

	interpolate(raw)

	cfg := &model.Configuration{
		Runners: make(map[string]model.RunnerConfiguration),
	}

	if dir, ok := raw["migrations_directory"].(string); ok && dir != "" {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(filepath.Dir(path), dir)
		}
		cfg.MigrationsDirectory = dir
	} else {
		cfg.MigrationsDirectory = filepath.Dir(path)
	}
	if abs, err := filepath.Abs(cfg.MigrationsDirectory); err == nil {
		cfg.MigrationsDirectory = abs
	}

	for _, name := range order {
		if name == "migrations_directory" {
			continue
		}
		block, ok := raw[name].(map[string]interface{})
		if !ok {
			return nil, mitreerrors.NewConfigError(path, fmt.Sprintf("configuration block %q must be a mapping", name))
		}
		rc, err := decodeRunnerConfiguration(name, block)
		if err != nil {
			return nil, mitreerrors.NewConfigError(path, err.Error())
		}
		cfg.Runners[name] = rc
		cfg.LoadOrder = append(cfg.LoadOrder, name)
	}

	store, ok := cfg.StateStore()
	if !ok {
		return nil, mitreerrors.MissingStateStoreConfigError{}
	}
	if !registry.CanStoreState(store.Driver) {
		return nil, mitreerrors.NewConfigError(path, fmt.Sprintf(
			"the %q configuration uses driver %q, which cannot implement the state-store protocol", model.StateStoreName, store.Driver))
	}

	if l.verbose {
		fmt.Printf("Loaded configuration from %s: %d runner(s), migrations_directory=%s\n",
			path, len(cfg.Runners), cfg.MigrationsDirectory)
	}

	return cfg, nil
}

// decodeRunnerConfiguration pulls the well-known fields out of a
// configuration block and stashes everything else in Extra, where
// template expansion can still see it.
func decodeRunnerConfiguration(name string, block map[string]interface{}) (model.RunnerConfiguration, error) {
	driverRaw, ok := block["_driver"]
	if !ok {
		return model.RunnerConfiguration{}, fmt.Errorf("configuration block %q is missing required \"_driver\"", name)
	}
	driverStr, ok := driverRaw.(string)
	if !ok {
		return model.RunnerConfiguration{}, fmt.Errorf("configuration block %q: \"_driver\" must be a string", name)
	}
	driver := model.Driver(driverStr)
	if !registry.IsKnownDriver(driver) {
		return model.RunnerConfiguration{}, fmt.Errorf("configuration block %q: unknown driver %q", name, driverStr)
	}

	rc := model.RunnerConfiguration{
		Name:   name,
		Driver: driver,
		Extra:  make(map[string]string),
	}

	known := map[string]bool{"_driver": true}

	if v, ok := stringField(block, "database"); ok {
		rc.Database = v
		known["database"] = true
	}
	if v, ok := stringField(block, "index"); ok {
		rc.Index = v
		known["index"] = true
	}
	if v, ok := block["database_number"]; ok {
		n, err := toInt(v)
		if err != nil {
			return model.RunnerConfiguration{}, fmt.Errorf("configuration block %q: database_number: %w", name, err)
		}
		rc.DatabaseNumber = n
		known["database_number"] = true
	}
	if v, ok := stringField(block, "host"); ok {
		rc.Host = v
		known["host"] = true
	}
	if v, ok := stringField(block, "ip_or_hostname"); ok && rc.Host == "" {
		rc.Host = v
		known["ip_or_hostname"] = true
	}
	if v, ok := block["port"]; ok {
		n, err := toInt(v)
		if err != nil {
			return model.RunnerConfiguration{}, fmt.Errorf("configuration block %q: port: %w", name, err)
		}
		rc.Port = n
		known["port"] = true
	}
	if v, ok := stringField(block, "username"); ok {
		rc.Username = v
		known["username"] = true
	}
	if v, ok := stringField(block, "password"); ok {
		rc.Password = v
		known["password"] = true
	}

	for k, v := range block {
		if known[k] {
			continue
		}
		rc.Extra[k] = fmt.Sprintf("%v", v)
	}

	return rc, nil
}

func stringField(block map[string]interface{}, key string) (string, bool) {
	v, ok := block[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func toInt(v interface{}) (int, error) {
	switch t := v.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case float64:
		return int(t), nil
	case string:
		n, err := strconv.Atoi(t)
		if err != nil {
			return 0, fmt.Errorf("%q is not an integer", t)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("unsupported numeric type %T", v)
	}
}

// interpolate walks the decoded document in place, replacing every
// ${NAME} token in string values with the corresponding environment
// variable (empty when unset — no default syntax is supported, per
// mitre's interpolation contract).
func interpolate(v interface{}) {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, child := range t {
			if s, ok := child.(string); ok {
				t[k] = expandEnv(s)
			} else {
				interpolate(child)
			}
		}
	case []interface{}:
		for i, child := range t {
			if s, ok := child.(string); ok {
				t[i] = expandEnv(s)
			} else {
				interpolate(child)
			}
		}
	}
}

func expandEnv(s string) string {
	return envToken.ReplaceAllStringFunc(s, func(token string) string {
		name := envToken.FindStringSubmatch(token)[1]
		return os.Getenv(name)
	})
}

// topLevelKeyOrder recovers the document order of the top-level mapping
// keys from a parsed yaml.Node tree.
func topLevelKeyOrder(doc *yaml.Node) []string {
	if len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil
	}
	var order []string
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i]
		if key.Tag == "!!merge" {
			continue
		}
		order = append(order, key.Value)
	}
	return order
}
