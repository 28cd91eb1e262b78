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

// Package runner declares the Runner interface every driver adapter
// implements, and a factory constructing the right adapter for a
// RunnerConfiguration's driver. Generalized from the teacher's
// internal/providers factory — a switch over an enumerated database
// type returning a concrete implementation — to migration-execution
// backends instead of SQL-dialect generators.
package runner

import (
	"context"
	"fmt"

	"github.com/ocomsoft/mitre/internal/model"
	"github.com/ocomsoft/mitre/internal/runner/curl"
	"github.com/ocomsoft/mitre/internal/runner/elasticsearch"
	"github.com/ocomsoft/mitre/internal/runner/mysql"
	"github.com/ocomsoft/mitre/internal/runner/postgresql"
	"github.com/ocomsoft/mitre/internal/runner/redis"
	"github.com/ocomsoft/mitre/internal/runner/shell"
)

// Runner executes one rendered migration step against a backend. It does
// not time the call; the executor measures the duration itself.
type Runner interface {
	// Execute runs rendered against the backend identified by the
	// configuration the Runner was constructed with.
	Execute(ctx context.Context, rendered string) error

	// Close releases any connection the Runner holds open.
	Close() error
}

// New constructs the Runner for rc's driver.
func New(rc model.RunnerConfiguration) (Runner, error) {
	switch rc.Driver {
	case model.DriverMySQL, model.DriverMariaDB:
		return mysql.New(rc)
	case model.DriverPostgreSQL:
		return postgresql.New(rc)
	case model.DriverCurl:
		return curl.New(rc), nil
	case model.DriverElasticsearch:
		return elasticsearch.New(rc)
	case model.DriverRedis:
		return redis.New(rc)
	case model.DriverBash:
		return shell.New(rc, "bash"), nil
	case model.DriverSh:
		return shell.New(rc, "sh"), nil
	default:
		return nil, fmt.Errorf("no runner implements driver %q", rc.Driver)
	}
}
